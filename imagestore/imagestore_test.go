package imagestore

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/soocke/cpe-annotator/domain/annotation"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 200, B: 10, A: 255})
		}
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func TestList_FiltersSortsAndIgnoresDirs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.PNG", "a.jpg", "c.txt", "d.bmp", "e.gif"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "z.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := List(dir, []string{".jpg", ".jpeg", ".png", ".tif", ".bmp"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"a.jpg", "b.PNG", "d.bmp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestList_MissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "nope"), []string{".jpg"}); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), 8, 6)
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(dir, false, nil)
	img, err := s.Load("a.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if _, err := s.Load("broken.jpg"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := s.Load("../a.png"); err == nil {
		t.Fatalf("expected path error")
	}
}

// writeOrientedJPEG writes a w x h JPEG carrying an EXIF orientation tag.
func writeOrientedJPEG(t *testing.T, path string, w, h int, orientation byte) {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h)), imaging.JPEG); err != nil {
		t.Fatal(err)
	}
	jpg := buf.Bytes()
	app1 := []byte{
		0xff, 0xe1, 0x00, 0x22, // APP1, length 34
		'E', 'x', 'i', 'f', 0, 0,
		'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08, // big-endian TIFF header, IFD at 8
		0x00, 0x01, // one entry
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	out := append(append(append([]byte{}, jpg[:2]...), app1...), jpg[2:]...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStore_LoadKeepsRawPixelGrid(t *testing.T) {
	dir := t.TempDir()
	writeOrientedJPEG(t, filepath.Join(dir, "cam.jpg"), 40, 20, 6)
	tests := []struct {
		name       string
		autoOrient bool
		w, h       int
	}{
		{"raw", false, 40, 20},
		{"auto orient", true, 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(dir, tt.autoOrient, nil).Load("cam.jpg")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Fatalf("bounds %v, want %dx%d", b, tt.w, tt.h)
			}
		})
	}
}

func TestPreviewWriter_Write(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	w := &PreviewWriter{Dir: out, Color: color.NRGBA{R: 255, A: 255}, Width: 1}
	base := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	if err := w.Write("x.png", base, []annotation.Rectangle{{X1: 1, Y1: 1, X2: 5, Y2: 5}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	img, err := imaging.Open(w.Path("x.png"))
	if err != nil {
		t.Fatalf("open preview: %v", err)
	}
	r, _, _, _ := img.At(1, 1).RGBA()
	if r>>8 != 255 {
		t.Fatalf("expected outline at (1,1)")
	}
	r, _, _, _ = img.At(3, 3).RGBA()
	if r != 0 {
		t.Fatalf("box interior must stay untouched")
	}
	if err := w.Write("y.jpg", base, nil); err != nil {
		t.Fatalf("write jpeg: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "y.jpg")); err != nil {
		t.Fatalf("jpeg preview missing: %v", err)
	}
	if err := w.Write("z.png", nil, nil); err == nil {
		t.Fatalf("expected error for nil base")
	}
}
