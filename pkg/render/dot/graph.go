package dot

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// Node is a DOT node. Empty fields fall back to the graph defaults.
type Node struct {
	ID        string
	Label     string
	Shape     string // box, ellipse, cylinder, ...
	Fill      string // hex
	Border    string // hex
	FontColor string // hex
	Dashed    bool
	Bold      bool
}

// Edge is a directed DOT edge.
type Edge struct {
	From, To string
	Label    string
	Color    string
	Dashed   bool
	// Constraint=false keeps the edge out of rank assignment, for
	// feedback loops that should not stretch the layout.
	NoConstraint bool
}

// Graph accumulates nodes and edges in insertion order.
type Graph struct {
	Name    string
	RankDir string  // TB (default) or LR
	DPI     float64 // raster resolution, default 96
	Font    string  // default "Helvetica"
	// Groups lists node IDs that share a rank.
	Groups [][]string

	nodes []Node
	edges []Edge
}

// NewGraph creates an empty top-to-bottom graph.
func NewGraph(name string) *Graph {
	return &Graph{Name: name, RankDir: "TB", DPI: 96, Font: "Helvetica"}
}

// Node adds n.
func (g *Graph) Node(n Node) *Graph {
	g.nodes = append(g.nodes, n)
	return g
}

// Edge adds e.
func (g *Graph) Edge(e Edge) *Graph {
	g.edges = append(g.edges, e)
	return g
}

// Chain adds edges ids[0]->ids[1]->... with the same style as tmpl.
func (g *Graph) Chain(tmpl Edge, ids ...string) *Graph {
	for i := 1; i < len(ids); i++ {
		e := tmpl
		e.From, e.To = ids[i-1], ids[i]
		g.edges = append(g.edges, e)
	}
	return g
}

// Len returns the number of nodes and edges.
func (g *Graph) Len() (nodes, edges int) { return len(g.nodes), len(g.edges) }

// String renders the graph as DOT source.
func (g *Graph) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(g.Name))
	fmt.Fprintf(&buf, "  rankdir=%s;\n", orDefault(g.RankDir, "TB"))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if g.DPI > 0 {
		fmt.Fprintf(&buf, "  dpi=%g;\n", g.DPI)
	}
	font := orDefault(g.Font, "Helvetica")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=\"#ffffff\", color=\"#222222\", fontname=%s, fontsize=12, margin=\"0.2,0.1\"];\n", quote(font))
	fmt.Fprintf(&buf, "  edge [color=\"#222222\", arrowsize=0.8, fontname=%s, fontsize=10];\n", quote(font))
	buf.WriteString("  ranksep=0.45;\n")
	buf.WriteString("  nodesep=0.35;\n")
	buf.WriteString("\n")

	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n), ", "))
	}
	if len(g.edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
	}
	for _, group := range g.Groups {
		quoted := make([]string, len(group))
		for i, id := range group {
			quoted[i] = quote(id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n Node) []string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	attrs := []string{"label="+quote(label)}
	if n.Shape != "" {
		attrs = append(attrs, "shape="+n.Shape)
	}
	if n.Fill != "" {
		attrs = append(attrs, "fillcolor="+quote(n.Fill))
	}
	if n.Border != "" {
		attrs = append(attrs, "color="+quote(n.Border))
	}
	if n.FontColor != "" {
		attrs = append(attrs, "fontcolor="+quote(n.FontColor))
	}
	style := []string{"rounded", "filled"}
	if n.Dashed {
		style = append(style, "dashed")
	}
	if n.Bold {
		style = append(style, "bold")
	}
	if n.Dashed || n.Bold {
		attrs = append(attrs, "style="+quote(strings.Join(style, ",")))
	}
	return attrs
}

func edgeAttrs(e Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(" "+e.Label+" "))
	}
	if e.Color != "" {
		attrs = append(attrs, "color="+quote(e.Color), "fontcolor="+quote(e.Color))
	}
	if e.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if e.NoConstraint {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// quote renders s as a DOT double-quoted string. Only '"' and '\\' are
// escaped; newlines become DOT's centered line break and other control
// characters are dropped.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
