// Package edges implements pluggable edge detection (a full Canny pipeline
// and a plain Sobel threshold) and a region-based edge density analyzer.
//
// # Canny Pipeline
//
//  1. Grayscale conversion (shared raster.Grayscale)
//  2. Gaussian blur, sigma 1.4, kernel radius ceil(3*sigma), normalized by
//     the weight actually accumulated so borders stay unbiased
//  3. Sobel gradients
//  4. Non-maximum suppression across four quantized direction sectors
//  5. Double threshold and stack-based 8-connected hysteresis
//
// # Density Analysis
//
// The analyzer runs the injected strategy once, then slides a square window
// across the edge map. Windows step by round(regionSize*(1-overlapRatio));
// the final window per axis is clamped in-bounds, so border windows can
// overlap more than the nominal ratio.
package edges
