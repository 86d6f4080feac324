package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/figforge/pkg/errors"
)

func TestGraphString(t *testing.T) {
	g := NewGraph("flow")
	g.RankDir = "LR"
	g.Node(Node{ID: "a", Label: "Raw data", Fill: "#eef3fa", Shape: "cylinder"})
	g.Node(Node{ID: "b", Dashed: true})
	g.Node(Node{ID: "c"})
	g.Chain(Edge{}, "a", "b", "c")
	g.Edge(Edge{From: "c", To: "a", Label: "feedback", Dashed: true, NoConstraint: true})
	g.Groups = [][]string{{"b", "c"}}

	out := g.String()
	for _, want := range []string{
		`digraph "flow" {`,
		"rankdir=LR;",
		`"a" [label="Raw data", shape=cylinder, fillcolor="#eef3fa"];`,
		`"b" [label="b", style="rounded,filled,dashed"];`,
		`"a" -> "b";`,
		`"b" -> "c";`,
		`"c" -> "a" [label=" feedback ", style=dashed, constraint=false];`,
		`{ rank=same; "b"; "c"; }`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q\n%s", want, out)
		}
	}

	if n, e := g.Len(); n != 3 || e != 3 {
		t.Errorf("Len() = %d, %d, want 3, 3", n, e)
	}
}

func TestGraphStringQuotesLabels(t *testing.T) {
	g := NewGraph("q")
	g.Node(Node{ID: "x", Label: `say "hi"`})
	if out := g.String(); !strings.Contains(out, `label="say \"hi\""`) {
		t.Errorf("label not escaped:\n%s", out)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a "b"`, `"a \"b\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"tab\there", `"tab here"`},
		{"bell\x07\x00", `"bell"`},
		{"größe → ✓", `"größe → ✓"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRenderPNGNonASCIILabels(t *testing.T) {
	g := NewGraph("labels")
	g.Node(Node{ID: "a", Label: "Größe\nµ-batch"})
	g.Node(Node{ID: "b", Label: "ctrl\x01 char"})
	g.Edge(Edge{From: "a", To: "b", Label: "→"})
	if _, err := RenderPNG(context.Background(), g.String()); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
}

func TestRenderPNG(t *testing.T) {
	g := NewGraph("small")
	g.Node(Node{ID: "in"}).Node(Node{ID: "out"})
	g.Edge(Edge{From: "in", To: "out"})

	img, err := RenderPNG(context.Background(), g.String())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Fatalf("empty image %v", b)
	}
	if b.Dy() <= b.Dx() {
		t.Errorf("top-to-bottom chain should be taller than wide, got %v", b)
	}
}

func TestRenderPNGInvalid(t *testing.T) {
	_, err := RenderPNG(context.Background(), "digraph {{{ nope")
	if err == nil {
		t.Fatal("expected error for malformed DOT")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestRenderPNGCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderPNG(ctx, "digraph { a -> b }"); err == nil {
		t.Error("expected error for canceled context")
	}
}
