package figures

import (
	"bytes"
	"context"
	"image/png"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/figforge/pkg/figure"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	want := []string{
		"ablation-bars",
		"architecture",
		"attention-heatmap",
		"gaussian-overlap",
		"scaling-trend",
		"training-pipeline",
	}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, f := range r.All() {
		if f.Description() == "" {
			t.Errorf("%s has no description", f.Name())
		}
		if len(figure.TagsOf(f)) == 0 {
			t.Errorf("%s has no tags", f.Name())
		}
	}

	charts, err := r.Select([]string{"tag:" + TagChart})
	if err != nil {
		t.Fatalf("Select(tag:chart): %v", err)
	}
	if len(charts) != 4 {
		t.Errorf("tag:chart selected %d figures, want 4", len(charts))
	}
}

// Each figure must write a decodable PNG of its declared size.
func TestFiguresRender(t *testing.T) {
	ctx := context.Background()
	for _, f := range Default().All() {
		t.Run(f.Name(), func(t *testing.T) {
			c, err := figure.Render(ctx, f, 1)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			var buf bytes.Buffer
			if err := c.WritePNG(&buf); err != nil {
				t.Fatalf("WritePNG: %v", err)
			}
			cfg, err := png.DecodeConfig(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			w, h := f.Size()
			if cfg.Width != w || cfg.Height != h {
				t.Errorf("PNG is %dx%d, want %dx%d", cfg.Width, cfg.Height, w, h)
			}
		})
	}
}

func TestFiguresRenderScaled(t *testing.T) {
	for _, f := range []figure.Figure{AttentionHeatmap(), TrainingPipeline()} {
		c, err := figure.Render(context.Background(), f, 2)
		if err != nil {
			t.Fatalf("%s: Render: %v", f.Name(), err)
		}
		w, h := f.Size()
		if pw, ph := c.PixelSize(); pw != 2*w || ph != 2*h {
			t.Errorf("%s: PixelSize() = %dx%d, want %dx%d", f.Name(), pw, ph, 2*w, 2*h)
		}
	}
}

func TestTrainingGraph(t *testing.T) {
	g := trainingGraph(192)
	out := g.String()
	for _, want := range []string{"dpi=192;", "rankdir=LR;", `"eval" -> "sft"`, "constraint=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
	if n, e := g.Len(); n != 9 || e != 9 {
		t.Errorf("Len() = %d nodes, %d edges, want 9, 9", n, e)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := figure.Render(ctx, TrainingPipeline(), 1); err == nil {
		t.Error("expected error for canceled context")
	}
}
