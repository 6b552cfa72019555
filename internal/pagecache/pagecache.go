// Package pagecache keeps the page file names and content hash of recently
// seen chapters, which is all that is needed to build page image URLs.
package pagecache

import (
	"slices"
	"time"

	"mangadesk/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultSize = 512

// Entry is the page metadata of one chapter.
type Entry struct {
	Hash      string
	Data      []string
	DataSaver []string
}

// Filenames returns the page file names for the requested quality.
func (e Entry) Filenames(lowQuality bool) []string {
	if lowQuality {
		return e.DataSaver
	}
	return e.Data
}

// Filename returns the file name of the 1-based page number.
func (e Entry) Filename(pageNumber int, lowQuality bool) (string, error) {
	names := e.Filenames(lowQuality)
	if pageNumber < 1 || pageNumber > len(names) {
		return "", domain.OutOfRange("page %d is outside 1..%d", pageNumber, len(names))
	}
	return names[pageNumber-1], nil
}

func (e Entry) clone() Entry {
	return Entry{
		Hash:      e.Hash,
		Data:      slices.Clone(e.Data),
		DataSaver: slices.Clone(e.DataSaver),
	}
}

// Cache maps chapter ids to entries, evicting the least recently used
// chapter beyond size entries and, when ttl > 0, entries older than ttl.
// Values going in and out are copied.
type Cache struct {
	lru *expirable.LRU[string, Entry]
}

// New creates a cache. A size of 0 means unbounded and a ttl of 0 means
// entries never expire.
func New(size int, ttl time.Duration) *Cache {
	if size < 0 {
		size = DefaultSize
	}
	return &Cache{
		lru: expirable.NewLRU[string, Entry](size, nil, ttl),
	}
}

// Put creates or overwrites the entry for chapterID.
func (c *Cache) Put(chapterID string, e Entry) {
	c.lru.Add(chapterID, e.clone())
}

func (c *Cache) Get(chapterID string) (Entry, bool) {
	e, ok := c.lru.Get(chapterID)
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

func (c *Cache) Contains(chapterID string) bool {
	return c.lru.Contains(chapterID)
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
