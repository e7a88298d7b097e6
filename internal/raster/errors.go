package raster

import "fmt"

// DimensionError reports an input raster whose dimensions violate a
// precondition of the requested analysis (for example non-power-of-two
// dimensions handed to the FFT analyzer).
type DimensionError struct {
	Width  int
	Height int
	Reason string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("invalid dimensions %dx%d: %s", e.Width, e.Height, e.Reason)
}

// DimensionMismatchError reports a row-major buffer whose length disagrees
// with its declared dimensions (for example a result struct assembled by hand
// and passed to a renderer).
type DimensionMismatchError struct {
	Width, Height int
	Len           int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("buffer length %d does not match declared dimensions %dx%d",
		e.Len, e.Width, e.Height)
}
