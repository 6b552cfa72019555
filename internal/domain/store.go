package domain

// Keys read from and written to the settings store.
const (
	KeyRefreshToken  = "refreshToken"
	KeyUsername      = "username"
	KeyContentRating = "contentRating"
	KeyLocale        = "locale"
	KeyMangaLimit    = "mangaLimit"
	KeyChapterLimit  = "chapterLimit"
)

const (
	DefaultLocale       = "en"
	DefaultMangaLimit   = 30
	DefaultChapterLimit = 100
)

// DefaultContentRating is used when the store has no contentRating preference.
var DefaultContentRating = []ContentRating{ContentRatingSafe, ContentRatingSuggestive}

// Store is the persisted key-value settings collaborator. Values are read at
// call time, so changes made by the user take effect on the next request.
type Store interface {
	GetString(key string) string
	GetInt(key string) int
	GetStringSlice(key string) []string
	Set(key string, value any) error
}

// Locale returns the configured locale, falling back to DefaultLocale.
func Locale(s Store) string {
	if l := s.GetString(KeyLocale); l != "" {
		return l
	}
	return DefaultLocale
}

// ContentRatings returns the configured content ratings, falling back to DefaultContentRating.
func ContentRatings(s Store) []ContentRating {
	values := s.GetStringSlice(KeyContentRating)
	if len(values) == 0 {
		return append([]ContentRating(nil), DefaultContentRating...)
	}

	ratings := make([]ContentRating, 0, len(values))
	for _, v := range values {
		ratings = append(ratings, ContentRating(v))
	}
	return ratings
}

// LimitOr returns the positive integer stored under key, or fallback.
func LimitOr(s Store, key string, fallback int) int {
	if n := s.GetInt(key); n > 0 {
		return n
	}
	return fallback
}
