package imagestore

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Store reads images from the input directory. Images keep the file's raw
// pixel grid unless autoOrient is set, so stored boxes line up with the
// file as other tools decode it.
type Store struct {
	dir        string
	autoOrient bool
	logger     *slog.Logger
}

func New(dir string, autoOrient bool, logger *slog.Logger) *Store {
	return &Store{dir: dir, autoOrient: autoOrient, logger: logger}
}

// Load decodes name, relative to the input directory.
func (s *Store) Load(name string) (image.Image, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid image name %q", name)
	}
	path := filepath.Join(s.dir, name)
	img, err := imaging.Open(path, imaging.AutoOrientation(s.autoOrient))
	if err == nil {
		return imaging.Clone(img), nil
	}
	if !strings.EqualFold(filepath.Ext(name), ".webp") {
		return nil, err
	}
	// chai2010 handles webp variants the x/image decoder rejects.
	f, ferr := os.Open(path)
	if ferr != nil {
		return nil, ferr
	}
	defer f.Close()
	wimg, werr := webp.Decode(f)
	if werr != nil {
		return nil, fmt.Errorf("decode webp %s: %w", name, werr)
	}
	if s.logger != nil {
		s.logger.Debug("webp fallback decoder used", "image", name)
	}
	return imaging.Clone(wimg), nil
}
