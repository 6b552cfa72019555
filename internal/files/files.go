package files

import (
	"bytes"
	"image"
	_ "image/gif"  // registers gif for DecodeConfig
	_ "image/jpeg" // registers jpeg for DecodeConfig
	_ "image/png"  // registers png for DecodeConfig
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // needed to decode webp
)

func IsValidLocation(location string) error {
	if _, err := os.Stat(location); err != nil {
		return err
	}

	return nil
}

// ImageSize returns the pixel dimensions and format name of an encoded page image.
func ImageSize(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", errors.Wrap(err, "could not decode image header")
	}

	return cfg.Width, cfg.Height, format, nil
}

// Extension maps an image content type to a file extension including the dot.
func Extension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", errors.Errorf("unsupported content type: %s", contentType)
	}
}
