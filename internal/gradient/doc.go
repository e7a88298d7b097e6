// Package gradient implements the derivative-kernel strategies shared by the
// magnitude, phase and edge analyzers: Sobel, Scharr, and the 4-connected
// Laplacian.
//
// Strategies convolve fixed 3x3 kernels over the interior of a luminance
// field. The outer 1-pixel border of every output field is zero; no edge
// replication or reflection is applied.
package gradient
