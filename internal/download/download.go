package download

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"mangadesk/internal/domain"
	"mangadesk/internal/files"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency matches the number of request slots of the client.
const DefaultConcurrency = 5

// FetchFunc fetches one page by its 1-based number.
type FetchFunc func(ctx context.Context, pageNumber int) (domain.Page, error)

// NameFunc returns the file name, without extension, for a page.
type NameFunc func(pageNumber int) string

// Pages fetches the selected pages in parallel and writes each one into dir
// with an extension matching its content type. It returns the written paths
// in the order of pages. The first failure cancels the remaining fetches.
func Pages(ctx context.Context, log zerolog.Logger, dir string, pages []int, fetch FetchFunc, name NameFunc, concurrency int) ([]string, error) {
	if err := files.IsValidLocation(dir); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "could not use output dir %q", dir)
		}

		log.Debug().Str("dir", dir).Msg("output dir does not exist yet, creating it")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "could not create output dir %q", dir)
		}
	}

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	paths := make([]string, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pageNumber := range pages {
		g.Go(func() error {
			page, err := fetch(ctx, pageNumber)
			if err != nil {
				return errors.Wrapf(err, "could not fetch page %d", pageNumber)
			}

			path, err := singleFile(page, filepath.Join(dir, name(pageNumber)))
			if err != nil {
				return errors.Wrapf(err, "could not save page %d", pageNumber)
			}

			log.Debug().Int("page", pageNumber).Str("path", path).Msg("saved page")
			paths[i] = path

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

// singleFile writes page to filenameNoExt plus the extension of its content type.
func singleFile(page domain.Page, filenameNoExt string) (string, error) {
	ext, err := files.Extension(page.ContentType)
	if err != nil {
		return "", err
	}
	filename := filenameNoExt + ext

	out, err := os.Create(filename)
	if err != nil {
		return "", err
	}

	if err := writePage(out, page.Data); err != nil {
		return "", errors.Wrapf(err, "could not write %s", filename)
	}

	return filename, nil
}

// writePage copies data into out and closes it. A close error is returned
// when the write itself succeeded.
func writePage(out io.WriteCloser, data []byte) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	writeBuf := bufio.NewWriter(out)
	if _, err := io.Copy(writeBuf, bytes.NewReader(data)); err != nil {
		return err
	}

	return writeBuf.Flush()
}
