package sharedhttp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mangadesk/internal/buildinfo"
	"mangadesk/internal/domain"
	"mangadesk/internal/ratelimit"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://api.mangadex.org"
	DefaultTimeout = 60 * time.Second

	// error bodies are small; anything larger is not a structured error
	maxErrorBody = 64 << 10
)

var Transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ReadBufferSize:        65536,
	WriteBufferSize:       65536,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

// Client sends every request through one shared rate limiter and converts
// every failure with Classify.
type Client struct {
	HTTP    *http.Client
	Limiter *ratelimit.Limiter
	BaseURL string

	log zerolog.Logger
}

func NewClient(baseURL string, limiter *ratelimit.Limiter, httpClient *http.Client, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: Transport,
		}
	}

	return &Client{
		HTTP:    httpClient,
		Limiter: limiter,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}
}

// NewRequest builds a request for path, which is either relative to BaseURL
// or an absolute URL. A non-nil body is sent as JSON.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		joined, err := url.JoinPath(c.BaseURL, path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not join path %q", path)
		}
		target = joined
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse url %q", target)
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "could not encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Do executes req inside a rate limiter slot. Non-2xx responses and
// transport failures are returned as classified errors; otherwise handle
// consumes the response while the slot is still held.
func (c *Client) Do(ctx context.Context, req *http.Request, handle func(*http.Response) error) error {
	return c.Limiter.Do(ctx, func(ctx context.Context) error {
		resp, err := c.HTTP.Do(req.WithContext(ctx))
		if err != nil {
			classified := Classify(0, nil, err)
			c.log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.Redacted()).Msg("request failed without a response")
			return classified
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			classified := Classify(resp.StatusCode, body, nil)
			c.log.Debug().Err(classified).Str("method", req.Method).Str("url", req.URL.Redacted()).Msg("request rejected")
			return classified
		}

		c.log.Trace().Str("method", req.Method).Str("url", req.URL.Redacted()).Int("status", resp.StatusCode).Msg("request done")

		if handle == nil {
			return nil
		}
		return handle(resp)
	})
}

// DoJSON executes req and decodes the response body into v.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, v any) error {
	return c.Do(ctx, req, func(resp *http.Response) error {
		if v == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return &domain.Error{
				Kind:    domain.KindAPI,
				Status:  resp.StatusCode,
				Details: domain.DetailsUnknown,
				Err:     errors.Wrap(err, "could not decode response"),
			}
		}
		return nil
	})
}
