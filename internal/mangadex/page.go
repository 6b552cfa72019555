package mangadex

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"mangadesk/internal/domain"
	"mangadesk/internal/files"
	"mangadesk/internal/pagecache"
	"mangadesk/internal/sharedhttp"

	"github.com/pkg/errors"
)

// progressReader reports the running byte count of every Read.
type progressReader struct {
	r     io.Reader
	read  int64
	total int64
	fn    domain.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(p.read, p.total)
	}
	return n, err
}

// Page fetches one page image of a chapter from serverURL, as returned by
// ServerURL. On a cache miss the chapter is looked up first. The page number
// is 1-based and is checked before any image request is made. onProgress may
// be nil.
func (c *Client) Page(ctx context.Context, chapterID string, pageNumber int, serverURL string, onProgress domain.ProgressFunc, lowQuality bool) (domain.Page, error) {
	if err := validateID("chapter", chapterID); err != nil {
		return domain.Page{}, err
	}

	entry, err := c.pageEntry(ctx, chapterID)
	if err != nil {
		return domain.Page{}, err
	}

	filename, err := entry.Filename(pageNumber, lowQuality)
	if err != nil {
		return domain.Page{}, err
	}

	quality := "data"
	if lowQuality {
		quality = "data-saver"
	}

	target, err := url.JoinPath(serverURL, quality, entry.Hash, filename)
	if err != nil {
		return domain.Page{}, errors.Wrapf(err, "could not build page url from %q", serverURL)
	}

	req, err := c.http.NewRequest(ctx, http.MethodGet, target, nil, nil)
	if err != nil {
		return domain.Page{}, err
	}
	// image servers are not API hosts, the session token stays off these requests
	req.Header.Set("Accept", "image/*")

	page := domain.Page{Number: pageNumber}

	err = c.http.Do(ctx, req, func(resp *http.Response) error {
		var body io.Reader = resp.Body
		if onProgress != nil {
			total := resp.ContentLength
			if total < 0 {
				total = -1
			}
			body = &progressReader{r: resp.Body, total: total, fn: onProgress}
		}

		data, err := io.ReadAll(body)
		if err != nil {
			return sharedhttp.Classify(0, nil, errors.Wrap(err, "could not read page body"))
		}

		page.Data = data
		page.ContentType = resp.Header.Get("Content-Type")
		if page.ContentType == "" || !strings.HasPrefix(page.ContentType, "image/") {
			page.ContentType = http.DetectContentType(data)
		}

		return nil
	})
	if err != nil {
		return domain.Page{}, err
	}

	if w, h, _, err := files.ImageSize(page.Data); err == nil {
		page.Width, page.Height = w, h
	} else {
		c.log.Debug().Err(err).Str("chapter", chapterID).Int("page", pageNumber).Msg("page dimensions unknown")
	}

	c.log.Trace().Str("chapter", chapterID).Int("page", pageNumber).Int("bytes", len(page.Data)).Msg("fetched page")

	return page, nil
}

func (c *Client) pageEntry(ctx context.Context, chapterID string) (pagecache.Entry, error) {
	if e, ok := c.pages.Get(chapterID); ok {
		return e, nil
	}

	if _, err := c.Chapter(ctx, chapterID); err != nil {
		return pagecache.Entry{}, err
	}

	if e, ok := c.pages.Get(chapterID); ok {
		return e, nil
	}

	return pagecache.Entry{}, &domain.Error{
		Kind:    domain.KindAPI,
		Status:  http.StatusOK,
		Details: "chapter response did not describe its pages",
	}
}
