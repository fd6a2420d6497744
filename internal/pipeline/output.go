package pipeline

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"gpx_overlay_image/internal/errs"
)

func encode(w io.Writer, img image.Image, path string, quality int) error {
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		return png.Encode(w, img)
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// writeImage encodes into a pending file next to path and atomically
// replaces path with it.
func writeImage(img image.Image, path string, quality int) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return errs.Encoding(err, "failed to create temp file for %s", path)
	}
	defer f.Cleanup()

	if err := encode(f, img, path, quality); err != nil {
		return errs.Encoding(err, "failed to encode %s", path)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return errs.Encoding(err, "failed to move output into %s", path)
	}
	return nil
}
