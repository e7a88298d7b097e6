package edges

import (
	"image"
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/gradient"
	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

// Edge map grades: suppressed, weak (awaiting hysteresis), strong.
const (
	edgeNone   = 0.0
	edgeWeak   = 0.5
	edgeStrong = 1.0
)

// Map is a graded edge raster: one value per pixel in [0,1], where 1 marks a
// confirmed edge. Exported rasters replicate the value across R, G and B.
type Map struct {
	Width  int
	Height int
	Pix    []float64
}

// At returns the edge intensity at (x, y).
func (m *Map) At(x, y int) float64 {
	return m.Pix[y*m.Width+x]
}

// Params carries the threshold configuration shared by the strategies.
// Thresholds compare against gradient magnitudes on the 0-255 luminance
// scale.
type Params struct {
	// LowThreshold is the weak-edge floor for Canny hysteresis.
	LowThreshold float64 `json:"low_threshold"`

	// HighThreshold is the strong-edge floor for Canny, and the binary
	// threshold for the Sobel strategy.
	HighThreshold float64 `json:"high_threshold"`
}

// Strategy produces an edge map from an image. Implementations hold only
// fixed configuration and are safe to reuse across calls.
type Strategy interface {
	Detect(img image.Image, p Params) *Map

	// Name returns the method key this strategy was registered under.
	Name() string
}

// NewStrategy maps a detector key to a constructed strategy. Unknown keys
// deliberately fall back to Canny; the default arm is part of the contract.
func NewStrategy(name string) Strategy {
	switch name {
	case "sobel":
		return &SobelThreshold{}
	case "canny":
		return &Canny{}
	default:
		return &Canny{}
	}
}

// Canny implements the full Canny pipeline: Gaussian blur, Sobel gradients,
// non-maximum suppression, double threshold, and hysteresis edge tracking.
type Canny struct{}

func (c *Canny) Name() string { return "canny" }

const (
	gaussianSigma = 1.4
)

func (c *Canny) Detect(img image.Image, p Params) *Map {
	gray := raster.Grayscale(img)
	blurred := gaussianBlur(gray, gaussianSigma)

	field := (&gradient.Sobel{}).Compute(blurred)
	suppressed := nonMaxSuppress(field)
	return hysteresis(suppressed, field.Width, field.Height, p.LowThreshold, p.HighThreshold)
}

// gaussianBlur convolves a full 2D Gaussian kernel with radius ceil(3*sigma).
// Out-of-bounds taps are skipped and the result is normalized by the weight
// actually accumulated, so border pixels average over their in-bounds
// neighborhood instead of darkening.
func gaussianBlur(g *raster.GrayField, sigma float64) *raster.GrayField {
	radius := int(math.Ceil(3 * sigma))
	size := 2*radius + 1

	kernel := make([][]float64, size)
	twoSigmaSq := 2 * sigma * sigma
	for j := 0; j < size; j++ {
		kernel[j] = make([]float64, size)
		for i := 0; i < size; i++ {
			dx := float64(i - radius)
			dy := float64(j - radius)
			kernel[j][i] = math.Exp(-(dx*dx + dy*dy) / twoSigmaSq)
		}
	}

	out := &raster.GrayField{
		Width:  g.Width,
		Height: g.Height,
		Pix:    make([]float64, g.Width*g.Height),
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var sum, weight float64
			for j := -radius; j <= radius; j++ {
				for i := -radius; i <= radius; i++ {
					nx, ny := x+i, y+j
					if nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
						continue
					}
					w := kernel[j+radius][i+radius]
					sum += g.At(nx, ny) * w
					weight += w
				}
			}
			out.Set(x, y, sum/weight)
		}
	}

	return out
}

// nonMaxSuppress thins the gradient magnitude to local maxima along the
// gradient direction. The direction is quantized into four sectors
// (horizontal, diagonal "/", vertical, diagonal "\") and the pixel survives
// only if it is at least as strong as both neighbors along that sector.
func nonMaxSuppress(f *gradient.Field) []float64 {
	out := make([]float64, len(f.Magnitude))

	for y := 1; y < f.Height-1; y++ {
		for x := 1; x < f.Width-1; x++ {
			idx := y*f.Width + x
			mag := f.Magnitude[idx]
			if mag == 0 {
				continue
			}

			// Fold the direction into [0, 180) degrees.
			angle := math.Atan2(f.GY[idx], f.GX[idx]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var n1, n2 float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				// Horizontal gradient: compare left/right.
				n1 = f.Magnitude[idx-1]
				n2 = f.Magnitude[idx+1]
			case angle < 67.5:
				// Diagonal "/".
				n1 = f.Magnitude[(y-1)*f.Width+x+1]
				n2 = f.Magnitude[(y+1)*f.Width+x-1]
			case angle < 112.5:
				// Vertical gradient: compare up/down.
				n1 = f.Magnitude[(y-1)*f.Width+x]
				n2 = f.Magnitude[(y+1)*f.Width+x]
			default:
				// Diagonal "\".
				n1 = f.Magnitude[(y-1)*f.Width+x-1]
				n2 = f.Magnitude[(y+1)*f.Width+x+1]
			}

			if mag >= n1 && mag >= n2 {
				out[idx] = mag
			}
		}
	}

	return out
}

// hysteresis applies the double threshold and promotes weak edges reachable
// from strong ones through a stack-based 8-connected flood fill. Weak pixels
// never reached are zeroed.
func hysteresis(mag []float64, width, height int, low, high float64) *Map {
	m := &Map{Width: width, Height: height, Pix: make([]float64, len(mag))}

	var stack []int
	for i, v := range mag {
		switch {
		case v >= high:
			m.Pix[i] = edgeStrong
			stack = append(stack, i)
		case v >= low:
			m.Pix[i] = edgeWeak
		}
	}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x := idx % width
		y := idx / width

		for j := -1; j <= 1; j++ {
			for i := -1; i <= 1; i++ {
				if i == 0 && j == 0 {
					continue
				}
				nx, ny := x+i, y+j
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				nidx := ny*width + nx
				if m.Pix[nidx] == edgeWeak {
					m.Pix[nidx] = edgeStrong
					stack = append(stack, nidx)
				}
			}
		}
	}

	// Weak pixels not absorbed by the fill are dropped.
	for i, v := range m.Pix {
		if v == edgeWeak {
			m.Pix[i] = edgeNone
		}
	}

	return m
}

// SobelThreshold is the simple strategy: a binary threshold on the Sobel
// gradient magnitude, with no suppression or hysteresis. Params.HighThreshold
// is the cut.
type SobelThreshold struct{}

func (s *SobelThreshold) Name() string { return "sobel" }

func (s *SobelThreshold) Detect(img image.Image, p Params) *Map {
	gray := raster.Grayscale(img)
	field := (&gradient.Sobel{}).Compute(gray)

	m := &Map{Width: field.Width, Height: field.Height, Pix: make([]float64, len(field.Magnitude))}
	for i, v := range field.Magnitude {
		if v >= p.HighThreshold && v > 0 {
			m.Pix[i] = edgeStrong
		}
	}
	return m
}
