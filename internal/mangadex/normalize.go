package mangadex

import (
	"mangadesk/internal/domain"
	"mangadesk/internal/pagecache"
)

// localize picks the text for locale, or "" when there is none.
func localize(s localized, locale string) string {
	return s[locale]
}

func tagEntry(t entity[tagAttributes], locale string) domain.TagEntry {
	return domain.TagEntry{
		ID:    t.ID,
		Name:  localize(t.Attributes.Name, locale),
		Group: t.Attributes.Group,
	}
}

func mangaRow(r result[mangaAttributes], locale string) domain.MangaRow {
	a := r.Data.Attributes

	tags := make([]domain.TagEntry, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, tagEntry(t, locale))
	}

	return domain.MangaRow{
		ID:                     r.Data.ID,
		Name:                   localize(a.Title, locale),
		CoverArt:               r.Relationships.CoverArt(),
		Description:            localize(a.Description, locale),
		PublicationDemographic: a.PublicationDemographic,
		ContentRating:          a.ContentRating,
		Tags:                   tags,
		OriginalLanguage:       a.OriginalLanguage,
		Status:                 a.Status,
		Year:                   a.Year,
		Authors:                r.Relationships.Authors(),
		Artists:                r.Relationships.Artists(),
	}
}

func chapterRow(r result[chapterAttributes]) domain.ChapterRow {
	a := r.Data.Attributes

	pages := a.Pages
	if pages == 0 {
		pages = len(a.Data)
	}

	return domain.ChapterRow{
		ID:                 r.Data.ID,
		Volume:             a.Volume,
		Chapter:            a.Chapter,
		Title:              a.Title,
		TranslatedLanguage: a.TranslatedLanguage,
		Pages:              pages,
		UpdatedAt:          a.UpdatedAt,
		PublishAt:          a.PublishAt,
		GroupName:          r.Relationships.ScanlationGroup(),
		Uploader:           r.Relationships.Uploader(),
	}
}

func pageEntry(a chapterAttributes) pagecache.Entry {
	return pagecache.Entry{
		Hash:      a.Hash,
		Data:      a.Data,
		DataSaver: a.DataSaver,
	}
}
