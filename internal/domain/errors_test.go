package domain

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	t.Parallel()

	transport := &Error{Kind: KindTransport, Status: StatusNoResponse, Details: DetailsTransport}
	unreachable := &Error{Kind: KindServersUnreachable, Status: StatusNoResponse, Details: "x", Err: transport}

	assert.ErrorIs(t, transport, ErrTransport)
	assert.NotErrorIs(t, transport, ErrAPI)

	assert.ErrorIs(t, unreachable, ErrServersUnreachable)
	assert.ErrorIs(t, unreachable, ErrTransport, "wrapped cause stays visible")
	assert.NotErrorIs(t, unreachable, ErrAuthRequired)

	wrapped := errors.Wrap(&Error{Kind: KindAuthRequired, Status: http.StatusUnauthorized}, "refresh")
	assert.ErrorIs(t, wrapped, ErrAuthRequired)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(wrapped))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: KindAPI, Status: http.StatusNotFound, Details: "Manga not found"}
	assert.Equal(t, "api error: Manga not found (status code: 404)", err.Error())

	err.Err = errors.New("boom")
	assert.Equal(t, "api error: Manga not found (status code: 404): boom", err.Error())
}

func TestReport(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrorReport{Source: "MangaDex", Status: 500, Details: "Unknown Error"},
		Report(&Error{Kind: KindAPI, Status: 500, Details: DetailsUnknown}))

	assert.Equal(t, ErrorReport{Source: "MangaDex", Status: -1, Details: "unknown transport error"},
		Report(&Error{Kind: KindTransport, Status: StatusNoResponse, Details: DetailsTransport}))

	assert.Equal(t, ErrorReport{Source: "MangaDex", Status: -1, Details: "Unknown Error"},
		Report(errors.New("plain")))
}

func TestOutOfRange(t *testing.T) {
	t.Parallel()

	err := OutOfRange("page %d is outside 1..%d", 4, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, StatusNoResponse, StatusOf(err))
	assert.Equal(t, "page 4 is outside 1..3", Report(err).Details)
}

func TestIsAuthStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAuthStatus(401))
	assert.True(t, IsAuthStatus(403))
	assert.False(t, IsAuthStatus(400))
	assert.False(t, IsAuthStatus(StatusNoResponse))
}
