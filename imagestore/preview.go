package imagestore

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/soocke/cpe-annotator/domain/annotation"
	"github.com/soocke/cpe-annotator/overlay"
)

// PreviewWriter saves copies of images with their boxes outlined. Output
// keeps the input file name, so a re-commit overwrites the earlier preview.
type PreviewWriter struct {
	Dir     string
	Color   color.Color
	Width   int
	Quality int
}

// Path returns where the preview for name is written.
func (w *PreviewWriter) Path(name string) string {
	return filepath.Join(w.Dir, filepath.Base(name))
}

// Write renders boxes over base and saves the result.
func (w *PreviewWriter) Write(name string, base image.Image, boxes []annotation.Rectangle) error {
	if base == nil {
		return fmt.Errorf("no image data for %s", name)
	}
	if err := EnsureDir(w.Dir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out := overlay.Annotate(base, boxes, w.Color, w.Width)
	path := w.Path(name)
	quality := w.Quality
	if quality <= 0 {
		quality = 95
	}
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := webp.Encode(f, out, &webp.Options{Quality: float32(quality)}); err != nil {
			f.Close()
			return fmt.Errorf("encode webp: %w", err)
		}
		return f.Close()
	}
	return imaging.Save(out, path, imaging.JPEGQuality(quality))
}
