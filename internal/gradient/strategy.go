package gradient

import (
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

// Field holds per-pixel gradient components computed from a luminance field.
//
// GX, GY and Magnitude are parallel row-major arrays with one entry per
// pixel. The outermost 1-pixel ring is always zero: the 3x3 kernels need a
// full neighborhood, and no border replication is applied. Callers that need
// border gradients should treat that as an extension point, not patch the
// strategies.
type Field struct {
	Width     int
	Height    int
	GX        []float64
	GY        []float64
	Magnitude []float64
}

// Strategy computes a gradient field from a grayscale field. Implementations
// are stateless configuration holders: safe to reuse across many calls,
// sequential or concurrent, as long as their configuration is fixed at
// construction.
type Strategy interface {
	// Compute derives the gradient field. The input field is not modified.
	Compute(g *raster.GrayField) *Field

	// Name returns the method key this strategy was registered under.
	Name() string
}

// New maps a method key to a constructed strategy. Unknown keys deliberately
// fall back to Sobel rather than erroring; the default arm is the contract,
// not an accident.
func New(method string, kernelSize int) Strategy {
	switch method {
	case "scharr":
		return &Scharr{}
	case "laplacian":
		return &Laplacian{}
	case "sobel":
		return &Sobel{KernelSize: kernelSize}
	default:
		return &Sobel{KernelSize: kernelSize}
	}
}

func newField(width, height int) *Field {
	n := width * height
	return &Field{
		Width:     width,
		Height:    height,
		GX:        make([]float64, n),
		GY:        make([]float64, n),
		Magnitude: make([]float64, n),
	}
}

// convolve3x3 runs a pair of 3x3 kernels over the interior pixels, writing
// gx, gy and the Euclidean magnitude. norm divides both components (1 for
// plain integer kernels).
func convolve3x3(g *raster.GrayField, kx, ky *[3][3]float64, norm float64) *Field {
	f := newField(g.Width, g.Height)

	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			var sx, sy float64
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					v := g.At(x+i, y+j)
					sx += v * kx[j+1][i+1]
					sy += v * ky[j+1][i+1]
				}
			}
			sx /= norm
			sy /= norm

			idx := y*g.Width + x
			f.GX[idx] = sx
			f.GY[idx] = sy
			f.Magnitude[idx] = math.Sqrt(sx*sx + sy*sy)
		}
	}

	return f
}

// Sobel computes gradients with the classic 3x3 Sobel kernels.
//
// KernelSize is advisory: only the 3x3 kernels are implemented, and other
// sizes are accepted without effect so callers can carry the option through
// configuration.
type Sobel struct {
	KernelSize int
}

var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

func (s *Sobel) Compute(g *raster.GrayField) *Field {
	return convolve3x3(g, &sobelX, &sobelY, 1)
}

func (s *Sobel) Name() string { return "sobel" }

// Scharr computes gradients with the 3x3 Scharr kernels, which have better
// rotational symmetry than Sobel. Components are normalized by 32 to keep
// magnitudes on a scale comparable with Sobel output.
type Scharr struct{}

var scharrX = [3][3]float64{
	{-3, 0, 3},
	{-10, 0, 10},
	{-3, 0, 3},
}

var scharrY = [3][3]float64{
	{-3, -10, -3},
	{0, 0, 0},
	{3, 10, 3},
}

func (s *Scharr) Compute(g *raster.GrayField) *Field {
	return convolve3x3(g, &scharrX, &scharrY, 32)
}

func (s *Scharr) Name() string { return "scharr" }

// Laplacian computes the 4-connected Laplacian. It is an isotropic second
// derivative with no directional components, so GX and GY stay zero and the
// magnitude is the absolute filter response.
type Laplacian struct{}

var laplacianKernel = [3][3]float64{
	{0, -1, 0},
	{-1, 4, -1},
	{0, -1, 0},
}

func (l *Laplacian) Compute(g *raster.GrayField) *Field {
	f := newField(g.Width, g.Height)

	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			var sum float64
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					sum += g.At(x+i, y+j) * laplacianKernel[j+1][i+1]
				}
			}
			f.Magnitude[y*g.Width+x] = math.Abs(sum)
		}
	}

	return f
}

func (l *Laplacian) Name() string { return "laplacian" }
