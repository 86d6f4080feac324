// Package dot builds Graphviz DOT graphs and rasterizes them.
//
// Diagrams whose layout is better left to a graph layout engine (flow
// charts with many crossing edges) are described with a [Graph], converted
// to DOT with [Graph.String], and rendered with [RenderPNG]. Rendering runs
// Graphviz compiled to WebAssembly through goccy/go-graphviz, so no system
// Graphviz install is needed.
//
//	g := dot.NewGraph("pipeline")
//	g.Node(dot.Node{ID: "data", Label: "Raw corpus"})
//	g.Node(dot.Node{ID: "tok", Label: "Tokenizer"})
//	g.Edge(dot.Edge{From: "data", To: "tok"})
//	img, err := dot.RenderPNG(ctx, g.String())
package dot
