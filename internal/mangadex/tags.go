package mangadex

import (
	"context"
	"slices"
	"strings"

	"mangadesk/internal/domain"
)

// InitTags loads the tag catalog from GET /manga/tag. Once loaded, later
// calls return immediately; a failed load may be retried.
func (c *Client) InitTags(ctx context.Context) error {
	c.tagsInit.Lock()
	defer c.tagsInit.Unlock()

	if c.tagsLoaded() {
		return nil
	}

	var resp []result[tagAttributes]
	if err := c.getJSON(ctx, "/manga/tag", nil, &resp); err != nil {
		return err
	}

	locale := c.locale()

	tags := make([]domain.TagEntry, 0, len(resp))
	for _, r := range resp {
		tags = append(tags, tagEntry(r.Data, locale))
	}

	c.tagsMu.Lock()
	c.tags = tags
	c.tagsMu.Unlock()

	c.log.Debug().Int("count", len(tags)).Msg("loaded tag catalog")

	return nil
}

func (c *Client) tagsLoaded() bool {
	c.tagsMu.RLock()
	defer c.tagsMu.RUnlock()
	return c.tags != nil
}

// Tags returns a copy of the tag catalog, empty before InitTags succeeded.
func (c *Client) Tags() []domain.TagEntry {
	c.tagsMu.RLock()
	defer c.tagsMu.RUnlock()
	return slices.Clone(c.tags)
}

// TagByName finds a catalog entry by its localized name, ignoring case.
func (c *Client) TagByName(name string) (domain.TagEntry, bool) {
	c.tagsMu.RLock()
	defer c.tagsMu.RUnlock()

	for _, t := range c.tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return domain.TagEntry{}, false
}
