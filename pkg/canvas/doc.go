// Package canvas is the shared drawing layer every figure renders through.
//
// It wraps a fogleman/gg context with the handful of primitives paper
// figures are made of: labelled boxes, arrows, text, circles, lines and
// filled polygons. All coordinates are logical pixels; a canvas created
// with [WithScale] multiplies them (and font sizes) when rasterizing, so a
// figure laid out at 800×400 can be written at 2× without touching its
// coordinates and without resampling text.
//
// # Usage
//
//	c, err := canvas.New(640, 240, canvas.WithScale(2))
//	if err != nil {
//	    return err
//	}
//	enc := c.Box(canvas.R(40, 80, 160, 60), "Encoder", canvas.BoxStyle{Fill: "#e8eef7", Border: "#3b6fb6"})
//	dec := c.Box(canvas.R(440, 80, 160, 60), "Decoder", canvas.BoxStyle{Fill: "#fdf0e6", Border: "#e07b39"})
//	c.Connect(enc, dec, canvas.ArrowStyle{})
//	return c.SavePNG("figures/overview.png")
//
// A Canvas is not safe for concurrent use.
package canvas
