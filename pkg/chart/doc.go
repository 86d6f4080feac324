// Package chart draws plot scaffolding on a [canvas.Canvas]: data-to-pixel
// axes, tick selection, scatter and line series, grouped bars, heatmaps,
// colorbars and legends.
//
// The package has no notion of a figure; callers position every axes frame
// with literal coordinates, the same way figures place boxes.
package chart
