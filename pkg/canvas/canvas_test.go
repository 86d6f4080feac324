package canvas

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/figforge/pkg/errors"
)

func TestNewSizes(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		scale        float64
		wantW, wantH int
		wantErr      bool
	}{
		{"unit scale", 200, 100, 1, 200, 100, false},
		{"double scale", 200, 100, 2, 400, 200, false},
		{"fractional scale", 100, 50, 1.5, 150, 75, false},
		{"zero width", 0, 100, 1, 0, 0, true},
		{"negative height", 10, -1, 1, 0, 0, true},
		{"zero scale", 10, 10, 0, 0, 0, true},
		{"too large", 20000, 20000, 1, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.w, tt.h, WithScale(tt.scale))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
				}
				return
			}
			if w, h := c.PixelSize(); w != tt.wantW || h != tt.wantH {
				t.Errorf("PixelSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if w, h := c.Size(); w != tt.w || h != tt.h {
				t.Errorf("Size = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestBackgroundIsWhite(t *testing.T) {
	c, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := c.Image().At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("background = %d,%d,%d,%d, want opaque white", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestTransparentBackground(t *testing.T) {
	c, err := New(10, 10, WithBackground(""))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := c.Image().At(5, 5).RGBA(); a != 0 {
		t.Errorf("alpha = %d, want 0", a)
	}
}

func TestFillRectScaled(t *testing.T) {
	c, err := New(20, 20, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	c.FillRect(R(0, 0, 10, 10), "#ff0000", 1)

	// Logical (5,5) is device (10,10) and must be red; device (30,30) is
	// outside the rectangle.
	r, g, b, _ := c.Image().At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("inside = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = c.Image().At(30, 30).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("outside = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
}

func TestBadColorRecorded(t *testing.T) {
	c, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	c.FillRect(R(0, 0, 5, 5), "not-a-color", 1)
	if c.Err() == nil {
		t.Fatal("Err() should report the bad color")
	}
	if err := c.WritePNG(&bytes.Buffer{}); err == nil {
		t.Error("WritePNG should refuse to encode a canvas with errors")
	}
}

func TestSavePNG(t *testing.T) {
	c, err := New(120, 80, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	a := c.Box(R(10, 10, 40, 30), "A", BoxStyle{Fill: "#e8eef7", Border: "#3b6fb6"})
	b := c.Box(R(70, 40, 40, 30), "B", BoxStyle{Fill: "#fdf0e6", Border: "#e07b39", Shadow: true})
	c.Connect(a, b, ArrowStyle{})

	path := filepath.Join(t.TempDir(), "nested", "fig.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 240 || cfg.Height != 160 {
		t.Errorf("png size = %dx%d, want 240x160", cfg.Width, cfg.Height)
	}
}

func TestMeasureTextScaleIndependent(t *testing.T) {
	c1, _ := New(100, 100)
	c2, _ := New(100, 100, WithScale(3))
	w1, _ := c1.MeasureText("attention", TextStyle{Size: 14})
	w2, _ := c2.MeasureText("attention", TextStyle{Size: 14})
	if w1 <= 0 {
		t.Fatalf("width = %v, want > 0", w1)
	}
	if math.Abs(w1-w2) > w1*0.1 {
		t.Errorf("logical widths differ across scales: %v vs %v", w1, w2)
	}
}

func TestWrap(t *testing.T) {
	c, _ := New(100, 100)
	lines := c.Wrap("multi head self attention block", 60, TextStyle{Size: 12})
	if len(lines) < 2 {
		t.Errorf("expected wrapping, got %q", lines)
	}
	lines = c.Wrap("a\nb", 500, TextStyle{})
	if len(lines) != 2 {
		t.Errorf("explicit newline should split, got %q", lines)
	}
}
