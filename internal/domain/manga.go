package domain

import "time"

type EntityType string

const (
	TypeManga           EntityType = "manga"
	TypeChapter         EntityType = "chapter"
	TypeCoverArt        EntityType = "cover_art"
	TypeAuthor          EntityType = "author"
	TypeArtist          EntityType = "artist"
	TypeScanlationGroup EntityType = "scanlation_group"
	TypeTag             EntityType = "tag"
	TypeUser            EntityType = "user"
	TypeCustomList      EntityType = "custom_list"
)

type PublicationDemographic string

const (
	DemographicShounen PublicationDemographic = "shounen"
	DemographicShoujo  PublicationDemographic = "shoujo"
	DemographicJosei   PublicationDemographic = "josei"
	DemographicSeinen  PublicationDemographic = "seinen"
	DemographicNone    PublicationDemographic = "none"
)

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
)

type ContentRating string

const (
	ContentRatingSafe         ContentRating = "safe"
	ContentRatingSuggestive   ContentRating = "suggestive"
	ContentRatingErotica      ContentRating = "erotica"
	ContentRatingPornographic ContentRating = "pornographic"
)

type TagsMode string

const (
	TagsModeAnd TagsMode = "AND"
	TagsModeOr  TagsMode = "OR"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// TagEntry is one entry of the tag catalog.
type TagEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// MangaRow is a manga list row shaped for display. CoverArt is nil when the
// response carried no cover art relationship.
type MangaRow struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name"`
	CoverArt               *string                `json:"coverArt"`
	Description            string                 `json:"description"`
	PublicationDemographic PublicationDemographic `json:"publicationDemographic"`
	ContentRating          ContentRating          `json:"contentRating"`
	Tags                   []TagEntry             `json:"tags"`
	OriginalLanguage       string                 `json:"originalLanguage"`
	Status                 Status                 `json:"status"`
	Year                   int                    `json:"year,omitempty"`
	Authors                []string               `json:"authors,omitempty"`
	Artists                []string               `json:"artists,omitempty"`
}

// ChapterRow is a chapter row shaped for display. GroupName and Uploader are
// nil when the matching relationship is absent.
type ChapterRow struct {
	ID                 string    `json:"id"`
	Volume             string    `json:"volume"`
	Chapter            string    `json:"chapter"`
	Title              string    `json:"title"`
	TranslatedLanguage string    `json:"translatedLanguage"`
	Pages              int       `json:"pages"`
	UpdatedAt          time.Time `json:"updatedAt"`
	PublishAt          time.Time `json:"publishAt"`
	GroupName          *string   `json:"groupName"`
	Uploader           *string   `json:"uploader"`
}

type MangaList struct {
	Data   []MangaRow `json:"data"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type ChapterList struct {
	Data   []ChapterRow `json:"data"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// Page is a fetched page image. Width and Height are zero when the image
// format could not be decoded.
type Page struct {
	Number      int
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// ProgressFunc receives the number of bytes read so far and the expected
// total, which is -1 when the server did not announce a length.
type ProgressFunc func(read, total int64)

// InitError is a non-fatal failure collected during startup.
type InitError struct {
	Status  int    `json:"status"`
	Details string `json:"details"`
}
