package mangadex

import (
	"bytes"
	"encoding/json"
	"time"

	"mangadesk/internal/domain"

	"github.com/tidwall/gjson"
)

// localized is a {locale: text} map as used by titles, descriptions and tag names.
type localized map[string]string

// UnmarshalJSON accepts the API's array encoding of an empty map.
func (l *localized) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		*l = localized{}
		return nil
	}

	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*l = m

	return nil
}

type entity[A any] struct {
	ID         string            `json:"id"`
	Type       domain.EntityType `json:"type"`
	Attributes A                 `json:"attributes"`
}

// result is one element of a list response, or the body of a single-entity
// response.
type result[A any] struct {
	Result        string        `json:"result"`
	Data          entity[A]     `json:"data"`
	Relationships relationships `json:"relationships"`
}

type paginated[A any] struct {
	Results []result[A] `json:"results"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	Total   int         `json:"total"`
}

type tagAttributes struct {
	Name  localized `json:"name"`
	Group string    `json:"group"`
}

type mangaAttributes struct {
	Title                  localized                     `json:"title"`
	Description            localized                     `json:"description"`
	OriginalLanguage       string                        `json:"originalLanguage"`
	PublicationDemographic domain.PublicationDemographic `json:"publicationDemographic"`
	Status                 domain.Status                 `json:"status"`
	Year                   int                           `json:"year"`
	ContentRating          domain.ContentRating          `json:"contentRating"`
	Tags                   []entity[tagAttributes]       `json:"tags"`
}

type chapterAttributes struct {
	Title              string    `json:"title"`
	Volume             string    `json:"volume"`
	Chapter            string    `json:"chapter"`
	TranslatedLanguage string    `json:"translatedLanguage"`
	Hash               string    `json:"hash"`
	Data               []string  `json:"data"`
	DataSaver          []string  `json:"dataSaver"`
	Pages              int       `json:"pages"`
	UpdatedAt          time.Time `json:"updatedAt"`
	PublishAt          time.Time `json:"publishAt"`
}

type atHomeResponse struct {
	Result  string `json:"result"`
	BaseURL string `json:"baseUrl"`
}

// relationship is a reference to a related entity. Attributes are only
// present when the type was requested through includes[].
type relationship struct {
	ID         string            `json:"id"`
	Type       domain.EntityType `json:"type"`
	Attributes json.RawMessage   `json:"attributes,omitempty"`
}

// attr returns the attribute at path, or nil when the relationship was not
// expanded or has no such attribute.
func (r relationship) attr(path string) *string {
	if len(r.Attributes) == 0 {
		return nil
	}

	v := gjson.GetBytes(r.Attributes, path)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}

	s := v.String()
	return &s
}

type relationships []relationship

func (rs relationships) first(t domain.EntityType) (relationship, bool) {
	for _, r := range rs {
		if r.Type == t {
			return r, true
		}
	}
	return relationship{}, false
}

func (rs relationships) names(t domain.EntityType, path string) []string {
	var out []string
	for _, r := range rs {
		if r.Type != t {
			continue
		}
		if name := r.attr(path); name != nil {
			out = append(out, *name)
		}
	}
	return out
}

// CoverArt returns the file name of the first cover art relationship.
func (rs relationships) CoverArt() *string {
	r, ok := rs.first(domain.TypeCoverArt)
	if !ok {
		return nil
	}
	return r.attr("fileName")
}

func (rs relationships) Authors() []string {
	return rs.names(domain.TypeAuthor, "name")
}

func (rs relationships) Artists() []string {
	return rs.names(domain.TypeArtist, "name")
}

func (rs relationships) ScanlationGroup() *string {
	r, ok := rs.first(domain.TypeScanlationGroup)
	if !ok {
		return nil
	}
	return r.attr("name")
}

func (rs relationships) Uploader() *string {
	r, ok := rs.first(domain.TypeUser)
	if !ok {
		return nil
	}
	return r.attr("username")
}
