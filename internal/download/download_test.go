package download

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"mangadesk/internal/domain"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")

	var calls int32
	fetch := func(_ context.Context, n int) (domain.Page, error) {
		atomic.AddInt32(&calls, 1)
		return domain.Page{Number: n, ContentType: "image/png", Data: []byte(fmt.Sprintf("page-%d", n))}, nil
	}
	name := func(n int) string { return fmt.Sprintf("%03d", n) }

	paths, err := Pages(context.Background(), zerolog.Nop(), dir, []int{1, 2, 5}, fetch, name, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	require.Equal(t, []string{
		filepath.Join(dir, "001.png"),
		filepath.Join(dir, "002.png"),
		filepath.Join(dir, "005.png"),
	}, paths)

	raw, err := os.ReadFile(paths[2])
	require.NoError(t, err)
	assert.Equal(t, "page-5", string(raw))
}

func TestPages_FetchError(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context, n int) (domain.Page, error) {
		if n == 2 {
			return domain.Page{}, domain.OutOfRange("page %d", n)
		}
		return domain.Page{ContentType: "image/jpeg", Data: []byte("x")}, nil
	}

	_, err := Pages(context.Background(), zerolog.Nop(), t.TempDir(), []int{1, 2}, fetch, func(n int) string { return fmt.Sprint(n) }, 0)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestPages_UnsupportedContentType(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context, _ int) (domain.Page, error) {
		return domain.Page{ContentType: "text/html", Data: []byte("<html>")}, nil
	}

	_, err := Pages(context.Background(), zerolog.Nop(), t.TempDir(), []int{1}, fetch, func(int) string { return "p" }, 1)
	assert.ErrorContains(t, err, "unsupported content type")
}

func TestPages_OutputDirUnderFile(t *testing.T) {
	t.Parallel()

	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	fetch := func(_ context.Context, n int) (domain.Page, error) {
		return domain.Page{Number: n, ContentType: "image/png", Data: []byte("x")}, nil
	}

	_, err := Pages(context.Background(), zerolog.Nop(), filepath.Join(parent, "out"), []int{1}, fetch, func(int) string { return "p" }, 1)
	assert.ErrorContains(t, err, "could not use output dir")
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
}

func (f *failingCloser) Close() error { return f.closeErr }

func TestWritePage_CloseError(t *testing.T) {
	t.Parallel()

	out := &failingCloser{closeErr: errors.New("disk full")}
	err := writePage(out, []byte("page"))
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, "page", out.String())

	ok := &failingCloser{}
	require.NoError(t, writePage(ok, []byte("page")))
	assert.Equal(t, "page", ok.String())
}
