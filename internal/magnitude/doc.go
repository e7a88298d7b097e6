// Package magnitude reports gradient magnitude statistics over an image:
// thresholded magnitude map, nonzero min/max/mean, optional 0-255
// normalization, and a histogram/percentile block.
package magnitude
