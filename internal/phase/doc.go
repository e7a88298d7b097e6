// Package phase reports the directional structure of image gradients:
// per-pixel gradient angles, a magnitude-weighted angular histogram, dominant
// directions, and circular statistics (weighted mean and coherence).
//
// All angular aggregation uses unit-vector (cos/sin) accumulation. Averaging
// angles as scalars would produce wraparound artifacts at the 0/360 boundary,
// so no code path in this package does that.
package phase
