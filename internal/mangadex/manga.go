package mangadex

import (
	"context"

	"mangadesk/internal/domain"
)

var defaultMangaIncludes = []domain.EntityType{domain.TypeCoverArt, domain.TypeAuthor, domain.TypeArtist}

// MangaList searches GET /manga. Unset limit, content rating and includes
// fall back to the stored preferences and the cover/author/artist includes.
func (c *Client) MangaList(ctx context.Context, opts domain.MangaListOptions) (domain.MangaList, error) {
	if opts.Limit <= 0 {
		opts.Limit = domain.LimitOr(c.store, domain.KeyMangaLimit, domain.DefaultMangaLimit)
	}
	if len(opts.ContentRating) == 0 {
		opts.ContentRating = domain.ContentRatings(c.store)
	}
	if len(opts.Includes) == 0 {
		opts.Includes = defaultMangaIncludes
	}

	var resp paginated[mangaAttributes]
	if err := c.getJSON(ctx, "/manga", mangaQuery(opts), &resp); err != nil {
		return domain.MangaList{}, err
	}

	locale := c.locale()

	rows := make([]domain.MangaRow, 0, len(resp.Results))
	for _, r := range resp.Results {
		rows = append(rows, mangaRow(r, locale))
	}

	c.log.Debug().Int("count", len(rows)).Int("total", resp.Total).Msg("fetched manga list")

	return domain.MangaList{
		Data:   rows,
		Total:  resp.Total,
		Limit:  resp.Limit,
		Offset: resp.Offset,
	}, nil
}
