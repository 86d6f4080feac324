package sink

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/palette"
)

// SheetFile is the contact sheet's file name inside the output directory.
const SheetFile = "contact-sheet.png"

// Thumb is one tile of a contact sheet.
type Thumb struct {
	Name  string
	Image image.Image
}

// SheetOption configures [ContactSheet].
type SheetOption func(*sheet)

type sheet struct {
	columns    int
	thumbWidth int
	padding    int
	title      string
}

// WithColumns sets the number of tiles per row (default 3).
func WithColumns(n int) SheetOption { return func(s *sheet) { s.columns = n } }

// WithThumbWidth sets the tile width in pixels (default 320).
func WithThumbWidth(w int) SheetOption { return func(s *sheet) { s.thumbWidth = w } }

// WithTitle adds a heading above the grid.
func WithTitle(t string) SheetOption { return func(s *sheet) { s.title = t } }

const (
	captionHeight = 24
	titleHeight   = 44
)

// ContactSheet tiles downscaled thumbnails into a grid with a caption under
// each tile. Tiles keep their aspect ratio; each row is as tall as its
// tallest tile.
func ContactSheet(thumbs []Thumb, opts ...SheetOption) (image.Image, error) {
	if len(thumbs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "contact sheet needs at least one image")
	}
	s := sheet{columns: 3, thumbWidth: 320, padding: 16}
	for _, opt := range opts {
		opt(&s)
	}
	if s.columns <= 0 || s.thumbWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "contact sheet needs positive columns and width, got %d, %d", s.columns, s.thumbWidth)
	}
	cols := min(s.columns, len(thumbs))

	scaled := make([]image.Image, len(thumbs))
	for i, t := range thumbs {
		if t.Image == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "thumbnail %s has no image", t.Name)
		}
		scaled[i] = imaging.Resize(t.Image, s.thumbWidth, 0, imaging.Lanczos)
	}

	rows := (len(thumbs) + cols - 1) / cols
	rowHeights := make([]int, rows)
	for i, img := range scaled {
		r := i / cols
		rowHeights[r] = max(rowHeights[r], img.Bounds().Dy())
	}

	top := s.padding
	if s.title != "" {
		top += titleHeight
	}
	width := s.padding + cols*(s.thumbWidth+s.padding)
	height := top
	for _, h := range rowHeights {
		height += h + captionHeight + s.padding
	}

	c, err := canvas.New(width, height, canvas.WithBackground(palette.LightBox))
	if err != nil {
		return nil, err
	}
	if s.title != "" {
		c.Text(s.title, canvas.P(float64(s.padding), float64(s.padding)), 0, 0, canvas.TextStyle{Size: 20, Weight: fonts.Bold})
	}

	y := top
	for r := range rows {
		for col := range cols {
			i := r*cols + col
			if i >= len(scaled) {
				break
			}
			x := s.padding + col*(s.thumbWidth+s.padding)
			img := scaled[i]
			tile := canvas.R(float64(x), float64(y), float64(s.thumbWidth), float64(img.Bounds().Dy()))
			c.FillRect(tile.Inset(-1), palette.Grid, 1)
			c.DrawImage(img, canvas.P(tile.X, tile.Y))
			c.Text(thumbs[i].Name, canvas.P(tile.Center().X, float64(y+rowHeights[r]+6)), 0.5, 0,
				canvas.TextStyle{Size: 12, Color: palette.Ink})
		}
		y += rowHeights[r] + captionHeight + s.padding
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// SaveImage writes img to path as PNG.
func SaveImage(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	return writeAtomic(path, buf.Bytes())
}
