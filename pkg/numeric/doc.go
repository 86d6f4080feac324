// Package numeric provides the small amount of math figures need to
// decorate plots: softmax attention weights, least-squares trendlines and
// Gaussian densities.
//
// None of it models a system. Inputs are hard-coded or seeded so that
// every figure renders identically from run to run.
package numeric
