package mangadex

import (
	"context"
	"net/http"
	"net/url"

	"mangadesk/internal/domain"
)

var defaultChapterIncludes = []domain.EntityType{domain.TypeScanlationGroup, domain.TypeUser}

// ChapterList searches GET /chapter. Every returned chapter is recorded in
// the page cache so its pages can be fetched without another lookup.
func (c *Client) ChapterList(ctx context.Context, opts domain.ChapterListOptions) (domain.ChapterList, error) {
	if opts.Manga != "" {
		if err := validateID("manga", opts.Manga); err != nil {
			return domain.ChapterList{}, err
		}
	}
	if opts.Limit <= 0 {
		opts.Limit = domain.LimitOr(c.store, domain.KeyChapterLimit, domain.DefaultChapterLimit)
	}
	if len(opts.Includes) == 0 {
		opts.Includes = defaultChapterIncludes
	}

	var resp paginated[chapterAttributes]
	if err := c.getJSON(ctx, "/chapter", chapterQuery(opts), &resp); err != nil {
		return domain.ChapterList{}, err
	}

	rows := make([]domain.ChapterRow, 0, len(resp.Results))
	for _, r := range resp.Results {
		c.pages.Put(r.Data.ID, pageEntry(r.Data.Attributes))
		rows = append(rows, chapterRow(r))
	}

	c.log.Debug().Int("count", len(rows)).Int("total", resp.Total).Msg("fetched chapter list")

	return domain.ChapterList{
		Data:   rows,
		Total:  resp.Total,
		Limit:  resp.Limit,
		Offset: resp.Offset,
	}, nil
}

// Chapter fetches GET /chapter/{id} and records its pages in the cache.
func (c *Client) Chapter(ctx context.Context, chapterID string) (domain.ChapterRow, error) {
	if err := validateID("chapter", chapterID); err != nil {
		return domain.ChapterRow{}, err
	}

	query := url.Values{}
	addList(query, "includes", defaultChapterIncludes)

	var resp result[chapterAttributes]
	if err := c.getJSON(ctx, "/chapter/"+chapterID, query, &resp); err != nil {
		return domain.ChapterRow{}, err
	}

	c.pages.Put(resp.Data.ID, pageEntry(resp.Data.Attributes))

	return chapterRow(resp), nil
}

// ServerURL asks GET /at-home/server/{id} for an image server base URL.
// Assignments are short-lived, so the answer is never cached.
func (c *Client) ServerURL(ctx context.Context, chapterID string) (string, error) {
	if err := validateID("chapter", chapterID); err != nil {
		return "", err
	}

	var resp atHomeResponse
	if err := c.getJSON(ctx, "/at-home/server/"+chapterID, nil, &resp); err != nil {
		return "", err
	}

	if resp.BaseURL == "" {
		return "", &domain.Error{
			Kind:    domain.KindAPI,
			Status:  http.StatusOK,
			Details: "response did not contain a server url",
		}
	}

	return resp.BaseURL, nil
}
