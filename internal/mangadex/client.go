// Package mangadex is the MangaDex API client: endpoint calls, normalization
// of responses into display rows and the chapter page metadata cache.
package mangadex

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"mangadesk/internal/domain"
	"mangadesk/internal/pagecache"
	"mangadesk/internal/ratelimit"
	"mangadesk/internal/session"
	"mangadesk/internal/sharedhttp"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type options struct {
	baseURL       string
	maxConcurrent int
	minInterval   time.Duration
	httpClient    *http.Client
	log           zerolog.Logger
	cacheSize     int
	cacheTTL      time.Duration
	staleRetry    bool
}

type Option func(*options)

func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithRateLimit overrides the limit of concurrent requests and the minimum
// spacing between request starts.
func WithRateLimit(maxConcurrent int, minInterval time.Duration) Option {
	return func(o *options) {
		o.maxConcurrent = maxConcurrent
		o.minInterval = minInterval
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithPageCache bounds the chapter page cache. A size of 0 means unbounded,
// a ttl of 0 means entries do not expire.
func WithPageCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// WithStaleSessionRetry retries a request once when it was rejected with 401
// after the session token changed while it was in flight.
func WithStaleSessionRetry(enabled bool) Option {
	return func(o *options) { o.staleRetry = enabled }
}

type Client struct {
	store   domain.Store
	log     zerolog.Logger
	limiter *ratelimit.Limiter
	http    *sharedhttp.Client
	session *session.Manager
	pages   *pagecache.Cache

	staleRetry bool

	tagsInit sync.Mutex
	tagsMu   sync.RWMutex
	tags     []domain.TagEntry
}

func New(store domain.Store, opts ...Option) *Client {
	o := options{
		baseURL:       sharedhttp.DefaultBaseURL,
		maxConcurrent: ratelimit.DefaultMaxConcurrent,
		minInterval:   ratelimit.DefaultMinInterval,
		log:           zerolog.Nop(),
		cacheSize:     pagecache.DefaultSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	limiter := ratelimit.New(o.maxConcurrent, o.minInterval)
	httpClient := sharedhttp.NewClient(o.baseURL, limiter, o.httpClient, o.log.With().Str("module", "http").Logger())

	return &Client{
		store:      store,
		log:        o.log,
		limiter:    limiter,
		http:       httpClient,
		session:    session.New(httpClient, store, o.log.With().Str("module", "session").Logger()),
		pages:      pagecache.New(o.cacheSize, o.cacheTTL),
		staleRetry: o.staleRetry,
	}
}

func (c *Client) Session() *session.Manager {
	return c.session
}

// Close stops the rate limiter. Requests issued afterwards fail with
// ratelimit.ErrClosed.
func (c *Client) Close() {
	c.limiter.Close()
}

func (c *Client) locale() string {
	return domain.Locale(c.store)
}

// getJSON performs an authorized GET against the API and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	var used string

	attempt := func() error {
		req, err := c.http.NewRequest(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		used = c.session.Authorize(req)

		return c.http.DoJSON(ctx, req, v)
	}

	if !c.staleRetry {
		return attempt()
	}

	return retry.Do(attempt,
		retry.Attempts(2),
		retry.RetryIf(func(err error) bool {
			current := c.session.Token()
			stale := domain.StatusOf(err) == http.StatusUnauthorized && current != "" && current != used
			if stale {
				c.log.Debug().Str("path", path).Msg("session changed during request, retrying")
			}
			return stale
		}),
		retry.LastErrorOnly(true),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
		retry.Context(ctx),
	)
}

func validateID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrapf(err, "invalid %s id %q", kind, id)
	}
	return nil
}
