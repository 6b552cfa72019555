package domain

import "time"

type MangaOrder struct {
	CreatedAt Order
	UpdatedAt Order
}

// MangaListOptions filters GET /manga. Zero values are omitted from the query;
// Limit and ContentRating fall back to the user's preferences.
type MangaListOptions struct {
	Limit                  int
	Offset                 int
	Title                  string
	Authors                []string
	Artists                []string
	Year                   int
	IncludedTags           []string
	IncludedTagsMode       TagsMode
	ExcludedTags           []string
	ExcludedTagsMode       TagsMode
	Status                 []Status
	OriginalLanguage       []string
	PublicationDemographic []PublicationDemographic
	IDs                    []string
	ContentRating          []ContentRating
	CreatedAtSince         time.Time
	UpdatedAtSince         time.Time
	Order                  MangaOrder
	Includes               []EntityType
}

type ChapterOrder struct {
	CreatedAt Order
	UpdatedAt Order
	PublishAt Order
	Volume    Order
	Chapter   Order
}

// ChapterListOptions filters GET /chapter. Limit falls back to the user's preference.
type ChapterListOptions struct {
	Limit              int
	Offset             int
	IDs                []string
	Title              string
	Groups             []string
	Uploader           string
	Manga              string
	Volume             []string
	Chapter            []string
	TranslatedLanguage []string
	CreatedAtSince     time.Time
	UpdatedAtSince     time.Time
	PublishAtSince     time.Time
	Order              ChapterOrder
	Includes           []EntityType
}
