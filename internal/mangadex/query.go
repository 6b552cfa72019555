package mangadex

import (
	"net/url"
	"strconv"
	"time"

	"mangadesk/internal/domain"
)

// the API rejects offsets and fractional seconds in date filters
const sinceLayout = "2006-01-02T15:04:05"

func addList[T ~string](q url.Values, key string, values []T) {
	for _, v := range values {
		q.Add(key+"[]", string(v))
	}
}

func addString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func addInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}

func addSince(q url.Values, key string, t time.Time) {
	if !t.IsZero() {
		q.Set(key, t.UTC().Format(sinceLayout))
	}
}

func addOrder(q url.Values, field string, o domain.Order) {
	if o != "" {
		q.Set("order["+field+"]", string(o))
	}
}

func mangaQuery(o domain.MangaListOptions) url.Values {
	q := url.Values{}

	addInt(q, "limit", o.Limit)
	addInt(q, "offset", o.Offset)
	addString(q, "title", o.Title)
	addList(q, "authors", o.Authors)
	addList(q, "artists", o.Artists)
	addInt(q, "year", o.Year)
	addList(q, "includedTags", o.IncludedTags)
	addString(q, "includedTagsMode", string(o.IncludedTagsMode))
	addList(q, "excludedTags", o.ExcludedTags)
	addString(q, "excludedTagsMode", string(o.ExcludedTagsMode))
	addList(q, "status", o.Status)
	addList(q, "originalLanguage", o.OriginalLanguage)
	addList(q, "publicationDemographic", o.PublicationDemographic)
	addList(q, "ids", o.IDs)
	addList(q, "contentRating", o.ContentRating)
	addSince(q, "createdAtSince", o.CreatedAtSince)
	addSince(q, "updatedAtSince", o.UpdatedAtSince)
	addOrder(q, "createdAt", o.Order.CreatedAt)
	addOrder(q, "updatedAt", o.Order.UpdatedAt)
	addList(q, "includes", o.Includes)

	return q
}

func chapterQuery(o domain.ChapterListOptions) url.Values {
	q := url.Values{}

	addInt(q, "limit", o.Limit)
	addInt(q, "offset", o.Offset)
	addList(q, "ids", o.IDs)
	addString(q, "title", o.Title)
	addList(q, "groups", o.Groups)
	addString(q, "uploader", o.Uploader)
	addString(q, "manga", o.Manga)
	addList(q, "volume", o.Volume)
	addList(q, "chapter", o.Chapter)
	addList(q, "translatedLanguage", o.TranslatedLanguage)
	addSince(q, "createdAtSince", o.CreatedAtSince)
	addSince(q, "updatedAtSince", o.UpdatedAtSince)
	addSince(q, "publishAtSince", o.PublishAtSince)
	addOrder(q, "createdAt", o.Order.CreatedAt)
	addOrder(q, "updatedAt", o.Order.UpdatedAt)
	addOrder(q, "publishAt", o.Order.PublishAt)
	addOrder(q, "volume", o.Order.Volume)
	addOrder(q, "chapter", o.Order.Chapter)
	addList(q, "includes", o.Includes)

	return q
}
