package spectrum

import (
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

// fft1D runs an in-place iterative radix-2 Cooley-Tukey transform over the
// parallel real/imaginary slices. len(re) must be a power of two; callers
// validate dimensions before any transform work.
func fft1D(re, im []float64) {
	n := len(re)
	if n < 2 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	// Butterfly passes over doubling block sizes.
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := -2 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				angle := step * float64(k)
				wr := math.Cos(angle)
				wi := math.Sin(angle)

				i := start + k
				j := i + half
				tr := wr*re[j] - wi*im[j]
				ti := wr*im[j] + wi*re[j]
				re[j] = re[i] - tr
				im[j] = im[i] - ti
				re[i] += tr
				im[i] += ti
			}
		}
	}
}

// fft2D performs the separable 2D transform: row-wise 1D FFTs, then
// column-wise. re and im are row-major width x height, modified in place.
// All row transforms are independent of each other, as are all column
// transforms; only the row-then-column ordering matters.
func fft2D(re, im []float64, width, height int) {
	for y := 0; y < height; y++ {
		row := y * width
		fft1D(re[row:row+width], im[row:row+width])
	}

	colRe := make([]float64, height)
	colIm := make([]float64, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			colRe[y] = re[y*width+x]
			colIm[y] = im[y*width+x]
		}
		fft1D(colRe, colIm)
		for y := 0; y < height; y++ {
			re[y*width+x] = colRe[y]
			im[y*width+x] = colIm[y]
		}
	}
}

// Shift performs the fftShift quadrant swap: the zero-frequency bin moves to
// (width/2, height/2) by a toroidal translation of half the extent in each
// axis. For even dimensions the operation is its own inverse.
func Shift(data []float64, width, height int) []float64 {
	out := make([]float64, len(data))
	hw := width / 2
	hh := height / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nx := (x + hw) % width
			ny := (y + hh) % height
			out[ny*width+nx] = data[y*width+x]
		}
	}
	return out
}

// validateDimensions enforces the radix-2 precondition. Input is never padded
// or cropped to fit.
func validateDimensions(width, height int) error {
	if !raster.IsPowerOfTwo(width) || !raster.IsPowerOfTwo(height) {
		return &raster.DimensionError{
			Width:  width,
			Height: height,
			Reason: "FFT requires power-of-two dimensions",
		}
	}
	return nil
}
