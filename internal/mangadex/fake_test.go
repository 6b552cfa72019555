package mangadex

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mangadesk/internal/config"
	"mangadesk/internal/domain"

	"github.com/stretchr/testify/require"
)

const (
	mangaWithCover    = "6b1eb93e-473a-4ab3-9922-1a66d2a29a4a"
	mangaWithoutCover = "a96676e5-8ae2-425e-b549-7f15dd34a6d8"
	chapterOne        = "e6a1f4c0-3a3b-4bb1-8f7e-7b3a0f1f2c11"
	chapterTwo        = "0f3e2d1c-9a8b-4c7d-8e6f-5a4b3c2d1e0f"
	groupID           = "b8b3c7e2-1d4f-4a5b-9c6d-7e8f9a0b1c2d"
	userID            = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"
	chapterHash       = "3fe26d2b9a8a5d2e6c8a1f2f0c6a9b8e"
)

// pngPage encodes a w x h image so page tests can check decoded dimensions.
func pngPage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"result": "error",
		"errors": []map[string]any{{"status": status, "title": "error", "detail": detail}},
	})
}

func chapterJSON(id string) map[string]any {
	return map[string]any{
		"result": "ok",
		"data": map[string]any{
			"id":   id,
			"type": "chapter",
			"attributes": map[string]any{
				"title":              "Romance Dawn",
				"volume":             "1",
				"chapter":            "1",
				"translatedLanguage": "en",
				"hash":               chapterHash,
				"data":               []string{"1-a.png", "2-b.png", "3-c.png"},
				"dataSaver":          []string{"1-a.jpg", "2-b.jpg", "3-c.jpg"},
				"updatedAt":          "2021-05-01T10:00:00+00:00",
				"publishAt":          "2021-04-30T10:00:00+00:00",
			},
		},
		"relationships": []map[string]any{
			{"id": groupID, "type": "scanlation_group", "attributes": map[string]any{"name": "Straw Hat Scans"}},
			{"id": userID, "type": "user", "attributes": map[string]any{"username": "uploader1"}},
			{"id": mangaWithCover, "type": "manga"},
		},
	}
}

func mangaJSON(id string, withCover bool) map[string]any {
	rels := []map[string]any{
		{"id": "d1a2b3c4-0000-4000-8000-000000000001", "type": "author", "attributes": map[string]any{"name": "Oda Eiichiro"}},
		{"id": "d1a2b3c4-0000-4000-8000-000000000002", "type": "artist", "attributes": map[string]any{"name": "Oda Eiichiro"}},
	}
	if withCover {
		rels = append(rels, map[string]any{
			"id": "d1a2b3c4-0000-4000-8000-000000000003", "type": "cover_art",
			"attributes": map[string]any{"fileName": "cover.jpg"},
		})
	}

	return map[string]any{
		"result": "ok",
		"data": map[string]any{
			"id":   id,
			"type": "manga",
			"attributes": map[string]any{
				"title":                  map[string]string{"en": "One Piece", "ja": "ワンピース"},
				"description":            map[string]string{"ja": "海賊"},
				"originalLanguage":       "ja",
				"publicationDemographic": "shounen",
				"status":                 "ongoing",
				"year":                   1997,
				"contentRating":          "safe",
				"tags": []map[string]any{{
					"id": "391b0423-d847-456f-aff0-8b0cfc03066b", "type": "tag",
					"attributes": map[string]any{"name": map[string]string{"en": "Action"}, "group": "genre"},
				}},
			},
		},
		"relationships": rels,
	}
}

// fakeAPI serves the subset of the MangaDex API and image servers used by the client.
type fakeAPI struct {
	mu       sync.Mutex
	hits     map[string]int
	queries  map[string][]string
	auth     map[string][]string
	pageData []byte

	// optional overrides per path prefix
	handlers map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{
		hits:     map[string]int{},
		queries:  map[string][]string{},
		auth:     map[string][]string{},
		pageData: pngPage(t, 4, 6),
		handlers: map[string]http.HandlerFunc{},
	}
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) lastQuery(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.queries[path]
	if len(q) == 0 {
		return ""
	}
	return q[len(q)-1]
}

func (f *fakeAPI) authHeaders(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.auth[path]...)
}

func (f *fakeAPI) handle(prefix string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[prefix] = h
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.queries[r.URL.Path] = append(f.queries[r.URL.Path], r.URL.RawQuery)
	f.auth[r.URL.Path] = append(f.auth[r.URL.Path], r.Header.Get("Authorization"))
	var override http.HandlerFunc
	for prefix, h := range f.handlers {
		if strings.HasPrefix(r.URL.Path, prefix) {
			override = h
		}
	}
	f.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	switch {
	case r.URL.Path == "/manga":
		results := make([]map[string]any, 0, 10)
		results = append(results, mangaJSON(mangaWithCover, true), mangaJSON(mangaWithoutCover, false))
		emptyDescription := mangaJSON(mangaWithCover, true)
		emptyDescription["data"].(map[string]any)["attributes"].(map[string]any)["description"] = []any{}
		results = append(results, emptyDescription)
		for len(results) < 10 {
			results = append(results, mangaJSON(mangaWithCover, true))
		}
		writeJSON(w, map[string]any{"result": "ok", "results": results, "limit": 10, "offset": 0, "total": 37})

	case r.URL.Path == "/manga/tag":
		tags := []map[string]any{}
		for i, name := range []string{"Action", "Romance", "Oneshot"} {
			group := "genre"
			if name == "Oneshot" {
				group = "format"
			}
			tags = append(tags, map[string]any{
				"result": "ok",
				"data": map[string]any{
					"id":         []string{"391b0423-d847-456f-aff0-8b0cfc03066b", "423e2eae-a7a2-4a8b-ac03-a8351462d71d", "0234a31e-a729-4e28-9d6a-3f87c4966b9e"}[i],
					"type":       "tag",
					"attributes": map[string]any{"name": map[string]string{"en": name}, "group": group},
				},
			})
		}
		writeJSON(w, tags)

	case r.URL.Path == "/chapter":
		writeJSON(w, map[string]any{
			"result":  "ok",
			"results": []map[string]any{chapterJSON(chapterOne), chapterJSON(chapterTwo)},
			"limit":   100, "offset": 0, "total": 2,
		})

	case strings.HasPrefix(r.URL.Path, "/chapter/"):
		writeJSON(w, chapterJSON(strings.TrimPrefix(r.URL.Path, "/chapter/")))

	case strings.HasPrefix(r.URL.Path, "/at-home/server/"):
		writeJSON(w, map[string]any{"result": "ok", "baseUrl": "http://" + r.Host})

	case strings.HasPrefix(r.URL.Path, "/data/"+chapterHash+"/"),
		strings.HasPrefix(r.URL.Path, "/data-saver/"+chapterHash+"/"):
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(f.pageData)

	default:
		writeAPIError(w, http.StatusNotFound, "no route "+r.URL.Path)
	}
}

func newTestClient(t *testing.T, h http.Handler, store domain.Store, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	if store == nil {
		store = config.NewMemory(nil)
	}

	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithRateLimit(5, 0),
		WithPageCache(16, time.Hour),
	}, opts...)

	c := New(store, opts...)
	t.Cleanup(c.Close)

	return c, srv
}
