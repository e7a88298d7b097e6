package magnitude

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/spectralab/spectral-tools-mcp/internal/gradient"
)

func uniformImage(width, height int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// stepImage builds a vertical step edge: left half dark, right half light.
func stepImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{200, 200, 200, 255})
			}
		}
	}
	return img
}

func TestAnalyze_UniformImage(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(uniformImage(20, 20, color.RGBA{90, 90, 90, 255}), Options{})

	if res.MinMagnitude != 0 || res.MaxMagnitude != 0 || res.AverageMagnitude != 0 {
		t.Errorf("uniform image stats: got min=%.2f max=%.2f avg=%.2f, want all 0",
			res.MinMagnitude, res.MaxMagnitude, res.AverageMagnitude)
	}
	if res.NonZeroCount != 0 {
		t.Errorf("NonZeroCount: got %d, want 0", res.NonZeroCount)
	}
}

func TestAnalyze_StepEdge(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(stepImage(20, 20), Options{})

	if res.NonZeroCount == 0 {
		t.Fatal("step edge should produce nonzero magnitudes")
	}
	if res.MaxMagnitude <= 0 || res.MinMagnitude <= 0 {
		t.Error("nonzero min/max expected on a step edge")
	}
	if res.AverageMagnitude < res.MinMagnitude || res.AverageMagnitude > res.MaxMagnitude {
		t.Error("average must lie between min and max")
	}
}

func TestAnalyze_ThresholdRemovesAll(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(stepImage(20, 20), Options{Threshold: 1e9})

	if res.NonZeroCount != 0 {
		t.Errorf("NonZeroCount: got %d, want 0 after huge threshold", res.NonZeroCount)
	}
	if res.MinMagnitude != 0 || res.MaxMagnitude != 0 {
		t.Error("statistics must degrade to zero, not error, on an empty map")
	}
}

func TestAnalyze_NormalizeRescalesTo255(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(stepImage(20, 20), Options{Normalize: true})

	if math.Abs(res.MaxMagnitude-255) > 1e-9 {
		t.Errorf("MaxMagnitude after normalize: got %.2f, want 255", res.MaxMagnitude)
	}
	max := 0.0
	for _, v := range res.MagnitudeMap {
		if v > max {
			max = v
		}
	}
	if math.Abs(max-255) > 1e-9 {
		t.Errorf("map maximum after normalize: got %.2f, want 255", max)
	}
}

func TestAnalyze_NormalizeIsNoOpWhenMaxZero(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(uniformImage(16, 16, color.RGBA{50, 50, 50, 255}), Options{Normalize: true})

	for i, v := range res.MagnitudeMap {
		if v != 0 {
			t.Fatalf("MagnitudeMap[%d]=%.4f, want 0 (normalize must be a no-op)", i, v)
		}
	}
	if res.MaxMagnitude != 0 {
		t.Errorf("MaxMagnitude: got %.2f, want 0", res.MaxMagnitude)
	}
}

func TestAnalyze_HistogramAndPercentiles(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(stepImage(32, 32), Options{GenerateHistogram: true})

	if res.Statistics == nil {
		t.Fatal("Statistics missing with GenerateHistogram set")
	}
	if len(res.Statistics.Histogram) != 256 {
		t.Fatalf("histogram buckets: got %d, want 256", len(res.Statistics.Histogram))
	}

	total := 0
	for _, c := range res.Statistics.Histogram {
		total += c
	}
	if total != 32*32 {
		t.Errorf("histogram total: got %d, want %d", total, 32*32)
	}

	for _, p := range []int{5, 25, 50, 75, 95} {
		if _, ok := res.Statistics.Percentiles[p]; !ok {
			t.Errorf("percentile %d missing", p)
		}
	}
	if res.Statistics.Percentiles[5] > res.Statistics.Percentiles[95] {
		t.Error("percentiles must be non-decreasing")
	}
}

func TestBuildStatistics_NearestRank(t *testing.T) {
	nonzero := []float64{10, 20, 30, 40, 50}
	s := buildStatistics(nonzero, nonzero)

	// floor(p/100*(n-1)) over n=5 sorted values.
	tests := []struct {
		p    int
		want float64
	}{
		{5, 10},  // floor(0.2) = 0
		{25, 20}, // floor(1.0) = 1
		{50, 30}, // floor(2.0) = 2
		{75, 40}, // floor(3.0) = 3
		{95, 40}, // floor(3.8) = 3
	}
	for _, tt := range tests {
		if got := s.Percentiles[tt.p]; got != tt.want {
			t.Errorf("percentile %d: got %.1f, want %.1f", tt.p, got, tt.want)
		}
	}
}

func TestBuildStatistics_EmptyInput(t *testing.T) {
	s := buildStatistics(nil, nil)
	for _, p := range []int{5, 25, 50, 75, 95} {
		if s.Percentiles[p] != 0 {
			t.Errorf("percentile %d on empty input: got %.1f, want 0", p, s.Percentiles[p])
		}
	}
}

func TestVisualize_TransparentBackground(t *testing.T) {
	a := NewAnalyzer(gradient.New("sobel", 3))
	res := a.Analyze(stepImage(24, 24), Options{})

	raster, err := Visualize(res, "jet")
	if err != nil {
		t.Fatalf("Visualize failed: %v", err)
	}
	if raster.Width != 24 || raster.Height != 24 {
		t.Errorf("dimensions: got %dx%d, want 24x24", raster.Width, raster.Height)
	}

	decoded, err := base64.StdEncoding.DecodeString(raster.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// Far from the edge the magnitude is zero: alpha must be 0 there.
	_, _, _, a0 := img.At(2, 12).RGBA()
	if a0 != 0 {
		t.Errorf("background alpha: got %d, want 0", a0)
	}
	// At the edge column the pixel is opaque.
	_, _, _, a1 := img.At(24/2-1, 12).RGBA()
	if a1 == 0 {
		t.Error("edge pixel should be opaque")
	}
}
