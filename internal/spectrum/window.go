package spectrum

import (
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

const kaiserBeta = 8.0

// windowCoefficients returns the 1D taper of length n for the named window,
// or nil for "none"/unknown names (no tapering).
func windowCoefficients(name string, n int) []float64 {
	if n < 2 {
		return nil
	}

	w := make([]float64, n)
	nm1 := float64(n - 1)

	switch name {
	case "hanning":
		for i := range w {
			w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/nm1))
		}
	case "hamming":
		for i := range w {
			w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/nm1)
		}
	case "blackman":
		for i := range w {
			t := float64(i) / nm1
			w[i] = 0.42 - 0.5*math.Cos(2*math.Pi*t) + 0.08*math.Cos(4*math.Pi*t)
		}
	case "kaiser":
		denom := besselI0(kaiserBeta)
		for i := range w {
			t := 2*float64(i)/nm1 - 1
			w[i] = besselI0(kaiserBeta*math.Sqrt(1-t*t)) / denom
		}
	default:
		return nil
	}

	return w
}

// applyWindow tapers the field separably: pixel (x, y) is scaled by
// w[x] * w[y] (per-axis coefficients of matching lengths).
func applyWindow(g *raster.GrayField, name string) {
	wx := windowCoefficients(name, g.Width)
	wy := windowCoefficients(name, g.Height)
	if wx == nil || wy == nil {
		return
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Pix[y*g.Width+x] *= wx[x] * wy[y]
		}
	}
}

// besselI0 approximates the modified Bessel function of the first kind,
// order zero, by its power series. The series is truncated at 50 terms or
// once a term drops below 1e-12, whichever comes first.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2

	for k := 1; k <= 50; k++ {
		term *= (half / float64(k)) * (half / float64(k))
		sum += term
		if term < 1e-12 {
			break
		}
	}

	return sum
}
