package canvas

import "github.com/matzehuels/figforge/pkg/fonts"

// Align controls horizontal alignment of multi-line text.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Stroke describes a line.
type Stroke struct {
	Color string    // hex, default ink
	Width float64   // logical pixels, default 1.5
	Dash  []float64 // dash pattern in logical pixels, nil for solid
}

// TextStyle describes a run of text.
type TextStyle struct {
	Size        float64 // points, default 13
	Weight      fonts.Weight
	Color       string  // hex, default ink
	Align       Align   // for multi-line text
	LineSpacing float64 // multiple of the font height, default 1.2
}

// BoxStyle describes a labelled rectangle.
type BoxStyle struct {
	Fill        string // hex, empty for no fill
	Border      string // hex, empty for no border
	BorderWidth float64
	Radius      float64 // corner radius, default 6, negative for square corners
	Dash        []float64
	Padding     float64 // text inset, default 8
	Text        TextStyle
	Shadow      bool // offset drop shadow under the box
}

// ArrowStyle describes a connector.
type ArrowStyle struct {
	Color      string
	Width      float64 // shaft width, default 1.6
	HeadLength float64 // default 10
	HeadWidth  float64 // default 8
	Dash       []float64
	BothEnds   bool
	Gap        float64 // space left between arrow tips and the boxes they join
}

const (
	defaultInk         = "#222222"
	defaultLineWidth   = 1.5
	defaultTextSize    = 13
	defaultLineSpacing = 1.2
	defaultRadius      = 6
	defaultPadding     = 8
	defaultArrowWidth  = 1.6
	defaultHeadLength  = 10
	defaultHeadWidth   = 8
)

func (s Stroke) withDefaults() Stroke {
	if s.Color == "" {
		s.Color = defaultInk
	}
	if s.Width <= 0 {
		s.Width = defaultLineWidth
	}
	return s
}

func (t TextStyle) withDefaults() TextStyle {
	if t.Size <= 0 {
		t.Size = defaultTextSize
	}
	if t.Color == "" {
		t.Color = defaultInk
	}
	if t.LineSpacing <= 0 {
		t.LineSpacing = defaultLineSpacing
	}
	return t
}

func (b BoxStyle) withDefaults() BoxStyle {
	if b.Radius < 0 {
		b.Radius = 0
	} else if b.Radius == 0 {
		b.Radius = defaultRadius
	}
	if b.BorderWidth <= 0 {
		b.BorderWidth = defaultLineWidth
	}
	if b.Padding <= 0 {
		b.Padding = defaultPadding
	}
	b.Text = b.Text.withDefaults()
	return b
}

func (a ArrowStyle) withDefaults() ArrowStyle {
	if a.Color == "" {
		a.Color = defaultInk
	}
	if a.Width <= 0 {
		a.Width = defaultArrowWidth
	}
	if a.HeadLength <= 0 {
		a.HeadLength = defaultHeadLength
	}
	if a.HeadWidth <= 0 {
		a.HeadWidth = defaultHeadWidth
	}
	return a
}
