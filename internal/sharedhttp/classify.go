package sharedhttp

import (
	"mangadesk/internal/domain"

	"github.com/tidwall/gjson"
)

// Classify converts a failed round trip into a *domain.Error. It is the only
// place where transport and HTTP failures are interpreted.
//
// A non-nil err with status 0 means no response was received. Otherwise the
// upstream status is kept and details come from the first entry of the
// structured "errors" array when the body has one.
func Classify(status int, body []byte, err error) error {
	if status == 0 {
		return &domain.Error{
			Kind:    domain.KindTransport,
			Status:  domain.StatusNoResponse,
			Details: domain.DetailsTransport,
			Err:     err,
		}
	}

	return &domain.Error{
		Kind:    domain.KindAPI,
		Status:  status,
		Details: errorDetails(body),
		Err:     err,
	}
}

func errorDetails(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return domain.DetailsUnknown
	}

	first := gjson.GetBytes(body, "errors.0")
	if !first.Exists() {
		return domain.DetailsUnknown
	}

	if detail := first.Get("detail").String(); detail != "" {
		return detail
	}
	if title := first.Get("title").String(); title != "" {
		return title
	}

	return domain.DetailsUnknown
}
