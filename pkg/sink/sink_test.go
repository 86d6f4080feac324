package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/figforge/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "fig.png")
	data := pngBytes(t, 12, 8)

	if err := WritePNG(path, data); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("written bytes differ")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the PNG in the directory, found %d entries", len(entries))
	}
}

func TestWritePNGRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	err := WritePNG(path, []byte("not a png"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WritePNG() error = %v, want INVALID_FORMAT", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("garbage should not be written")
	}
}

func TestDescribe(t *testing.T) {
	data := pngBytes(t, 30, 20)
	e, err := Describe("fig", "out/fig.png", data, true)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if e.Width != 30 || e.Height != 20 {
		t.Errorf("size = %dx%d, want 30x20", e.Width, e.Height)
	}
	if e.Bytes != len(data) || len(e.SHA256) != 64 || !e.Cached {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := NewManifest(2)
	m.Add(Entry{Name: "zeta", Width: 1, Height: 1})
	m.Add(Entry{Name: "alpha", Width: 2, Height: 2})
	m.Sort()
	if m.Figures[0].Name != "alpha" {
		t.Errorf("Sort() did not order entries: %v", m.Figures)
	}
	if len(m.RunID) != 36 {
		t.Errorf("RunID %q is not a UUID", m.RunID)
	}

	path := filepath.Join(t.TempDir(), ManifestFile)
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if got.RunID != m.RunID || got.Scale != 2 || len(got.Figures) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if e, ok := got.Lookup("zeta"); !ok || e.Width != 1 {
		t.Errorf("Lookup(zeta) = %+v, %v", e, ok)
	}
	if _, ok := got.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestReadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadManifest(filepath.Join(dir, "nope.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := ReadManifest(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad json error = %v", err)
	}
}

func TestContactSheet(t *testing.T) {
	thumbs := []Thumb{
		{Name: "a", Image: image.NewRGBA(image.Rect(0, 0, 200, 100))},
		{Name: "b", Image: image.NewRGBA(image.Rect(0, 0, 100, 100))},
		{Name: "c", Image: image.NewRGBA(image.Rect(0, 0, 400, 100))},
	}
	img, err := ContactSheet(thumbs, WithColumns(2), WithThumbWidth(100))
	if err != nil {
		t.Fatalf("ContactSheet: %v", err)
	}
	// Two columns: 16 + 2*(100+16). Row heights 100 and 25.
	b := img.Bounds()
	if b.Dx() != 248 {
		t.Errorf("width = %d, want 248", b.Dx())
	}
	if want := 16 + (100 + captionHeight + 16) + (25 + captionHeight + 16); b.Dy() != want {
		t.Errorf("height = %d, want %d", b.Dy(), want)
	}

	titled, err := ContactSheet(thumbs[:1], WithTitle("Figures"), WithThumbWidth(100))
	if err != nil {
		t.Fatalf("ContactSheet with title: %v", err)
	}
	if titled.Bounds().Dx() != 132 {
		t.Errorf("single column width = %d, want 132", titled.Bounds().Dx())
	}
}

func TestContactSheetInvalid(t *testing.T) {
	if _, err := ContactSheet(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty input error = %v", err)
	}
	if _, err := ContactSheet([]Thumb{{Name: "x"}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil image error = %v", err)
	}
	one := []Thumb{{Name: "x", Image: image.NewRGBA(image.Rect(0, 0, 4, 4))}}
	if _, err := ContactSheet(one, WithColumns(0)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero columns error = %v", err)
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), SheetFile)
	if err := SaveImage(path, image.NewRGBA(image.Rect(0, 0, 5, 7))); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	data, _ := os.ReadFile(path)
	e, err := Describe("sheet", path, data, false)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if e.Width != 5 || e.Height != 7 {
		t.Errorf("size = %dx%d", e.Width, e.Height)
	}
}
