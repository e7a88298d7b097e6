package edges

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

// stepImage builds a vertical step edge: dark left half, light right half.
func stepImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func uniformImage(width, height int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewStrategy_FactoryDispatch(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"canny", "canny"},
		{"sobel", "sobel"},
		{"", "canny"},
		{"roberts", "canny"}, // unknown keys fall back to canny
	}
	for _, tt := range tests {
		if got := NewStrategy(tt.name).Name(); got != tt.want {
			t.Errorf("NewStrategy(%q): got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCanny_UniformImageHasNoEdges(t *testing.T) {
	m := (&Canny{}).Detect(uniformImage(32, 32, color.RGBA{128, 128, 128, 255}), Params{LowThreshold: 20, HighThreshold: 60})
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d]=%.2f on uniform input, want 0", i, v)
		}
	}
}

func TestCanny_StepEdgeThinConnectedLine(t *testing.T) {
	width, height := 40, 40
	m := (&Canny{}).Detect(stepImage(width, height), Params{LowThreshold: 20, HighThreshold: 60})

	// Every interior row crosses the boundary on a single thin line: at
	// least one edge pixel near the step, and no more than two wide.
	for y := 8; y < height-8; y++ {
		count := 0
		for x := 0; x < width; x++ {
			if m.At(x, y) > 0 {
				count++
				if x < width/2-4 || x > width/2+4 {
					t.Fatalf("edge pixel far from boundary at (%d,%d)", x, y)
				}
			}
		}
		if count < 1 {
			t.Errorf("row %d: no edge pixel at the step", y)
		}
		if count > 2 {
			t.Errorf("row %d: edge %d pixels wide, suppression should thin it", y, count)
		}
	}
}

func TestCanny_HighLowThresholdWipesMap(t *testing.T) {
	m := (&Canny{}).Detect(stepImage(32, 32), Params{LowThreshold: 1e6, HighThreshold: 2e6})
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d]=%.2f, want 0 when lowThreshold exceeds all magnitudes", i, v)
		}
	}
}

func TestHysteresis_PromotesConnectedWeakOnly(t *testing.T) {
	// 1x7 magnitude row: strong seed at 0, weak chain at 1-2, gap at 3,
	// isolated weak at 5.
	mag := []float64{100, 50, 50, 0, 0, 50, 0}
	m := hysteresis(mag, 7, 1, 40, 90)

	want := []float64{1, 1, 1, 0, 0, 0, 0}
	for i := range want {
		if m.Pix[i] != want[i] {
			t.Errorf("Pix[%d]: got %.1f, want %.1f", i, m.Pix[i], want[i])
		}
	}
}

func TestHysteresis_EightConnectivity(t *testing.T) {
	// Strong pixel at (0,0), weak at (1,1): diagonal contact promotes.
	mag := []float64{
		100, 0,
		0, 50,
	}
	m := hysteresis(mag, 2, 2, 40, 90)
	if m.At(1, 1) != 1 {
		t.Error("diagonally connected weak pixel should be promoted")
	}
}

func TestGaussianBlur_PreservesUniformField(t *testing.T) {
	g := &raster.GrayField{Width: 20, Height: 20, Pix: make([]float64, 400)}
	for i := range g.Pix {
		g.Pix[i] = 77
	}

	out := gaussianBlur(g, 1.4)
	for i, v := range out.Pix {
		if math.Abs(v-77) > 1e-9 {
			t.Fatalf("Pix[%d]=%.6f, want 77 (normalization must hold at borders too)", i, v)
		}
	}
}

func TestGaussianBlur_SpreadsBrightSpot(t *testing.T) {
	g := &raster.GrayField{Width: 15, Height: 15, Pix: make([]float64, 225)}
	g.Set(7, 7, 255)

	out := gaussianBlur(g, 1.4)
	if out.At(7, 7) >= 255 {
		t.Error("center should lose intensity to neighbors")
	}
	if out.At(8, 7) <= 0 || out.At(7, 8) <= 0 {
		t.Error("neighbors should gain intensity")
	}
}

func TestSobelThreshold_BinaryOutput(t *testing.T) {
	m := (&SobelThreshold{}).Detect(stepImage(24, 24), Params{HighThreshold: 100})

	seen := false
	for _, v := range m.Pix {
		if v != 0 && v != 1 {
			t.Fatalf("non-binary edge value %.2f", v)
		}
		if v == 1 {
			seen = true
		}
	}
	if !seen {
		t.Error("step edge should produce edge pixels")
	}
}

func TestSobelThreshold_UniformImage(t *testing.T) {
	m := (&SobelThreshold{}).Detect(uniformImage(16, 16, color.RGBA{200, 200, 200, 255}), Params{HighThreshold: 0})
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d]=%.2f on uniform input, want 0 even at zero threshold", i, v)
		}
	}
}
