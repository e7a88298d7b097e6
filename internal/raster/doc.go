// Package raster provides the shared input layer for all analyzers: image
// loading and caching, luminance conversion, and the typed errors analysis
// pipelines propagate.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// X increases rightward, Y increases downward. GrayField stores luminance
// row-major, so index = y*Width + x.
//
// # Luminance Scale
//
// Grayscale() produces values on the 0-255 scale using ITU-R BT.601 weights.
// Keeping the 8-bit scale means user-facing thresholds (edge thresholds,
// magnitude thresholds) compare directly against pixel intensities.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. GrayField is not: each analysis call
// derives its own field and owns it for the duration of the call.
package raster
