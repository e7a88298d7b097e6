package raster

import "image"

// GrayField is a width x height luminance field on the 0-255 scale, stored
// row-major. It is derived from a source image on every call and never cached:
// analyzers own their field for the duration of a single analysis and may
// write into it freely (windowing, smoothing) without affecting other calls.
type GrayField struct {
	Width  int
	Height int
	Pix    []float64
}

// At returns the luminance at (x, y). No bounds checking; callers iterate
// within the field's own dimensions.
func (f *GrayField) At(x, y int) float64 {
	return f.Pix[y*f.Width+x]
}

// Set writes the luminance at (x, y).
func (f *GrayField) Set(x, y int, v float64) {
	f.Pix[y*f.Width+x] = v
}

// Grayscale converts an image to a luminance field using ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B), the same conversion every analyzer in this
// module shares. Values stay on the 0-255 scale so thresholds in tool
// arguments line up with 8-bit pixel intensities.
//
// A fresh field is allocated per call. Conversion results are deliberately not
// cached: the cost is linear and caching would couple analyzer calls to each
// other through shared mutable state.
func Grayscale(img image.Image) *GrayField {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	f := &GrayField{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// 16-bit color channels down to 8-bit
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			f.Pix[y*width+x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}

	return f
}

// Clone returns a deep copy of the field. Used by passes that need to read
// the original values while overwriting in place (smoothing, windowing).
func (f *GrayField) Clone() *GrayField {
	pix := make([]float64, len(f.Pix))
	copy(pix, f.Pix)
	return &GrayField{Width: f.Width, Height: f.Height, Pix: pix}
}
