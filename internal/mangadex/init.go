package mangadex

import (
	"context"

	"mangadesk/internal/domain"

	"github.com/pkg/errors"
)

const (
	initDetailsLogin       = "Login required"
	initDetailsAuthServers = "Unable to contact authentication servers. Login required"
	initDetailsTags        = "Unable to get taglist"
	initDetailsUnknown     = "Unknown error during initialization"
)

// Init resumes the stored session and loads the tag catalog. Failures do not
// stop startup; they are returned as records for the UI to show. A rejected
// refresh token yields a "Login required" record so the caller can prompt
// for credentials again.
func (c *Client) Init(ctx context.Context) []domain.InitError {
	var records []domain.InitError

	if err := c.session.Start(ctx); err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthRequired):
			c.log.Info().Msg("stored session rejected, login required")
			records = append(records, domain.InitError{Status: domain.StatusOf(err), Details: initDetailsLogin})
		case errors.Is(err, domain.ErrTransport):
			c.log.Error().Err(err).Msg("could not resume session")
			records = append(records, domain.InitError{Status: domain.StatusNoResponse, Details: initDetailsUnknown})
		case errors.Is(err, domain.ErrServersUnreachable):
			c.log.Error().Err(err).Msg("could not resume session")
			records = append(records, domain.InitError{Status: domain.StatusOf(err), Details: initDetailsAuthServers})
		default:
			c.log.Error().Err(err).Msg("could not resume session")
			records = append(records, domain.InitError{Status: domain.StatusNoResponse, Details: initDetailsUnknown})
		}
	}

	if err := c.InitTags(ctx); err != nil {
		c.log.Error().Err(err).Msg("could not load tag catalog")

		if errors.Is(err, domain.ErrAPI) {
			records = append(records, domain.InitError{Status: domain.StatusOf(err), Details: initDetailsTags})
		} else {
			records = append(records, domain.InitError{Status: domain.StatusNoResponse, Details: initDetailsUnknown})
		}
	}

	return records
}
