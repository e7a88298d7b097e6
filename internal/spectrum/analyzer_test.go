package spectrum

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
	"github.com/spectralab/spectral-tools-mcp/internal/render"
)

func uniformImage(width, height int, v uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// stripeImage alternates luminance every period columns, producing a strong
// horizontal frequency component.
func stripeImage(width, height, period int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/period)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestAnalyze_NonPowerOfTwoFailsFast(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.Analyze(uniformImage(100, 64, 128), Options{})
	if err == nil {
		t.Fatal("expected DimensionError for 100x64")
	}
	var dimErr *raster.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("error type: got %T, want *raster.DimensionError", err)
	}
}

func TestAnalyze_AllZeroImage(t *testing.T) {
	a := NewAnalyzer()
	res, err := a.Analyze(uniformImage(32, 32, 0), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.DCReal != 0 || res.DCImag != 0 {
		t.Errorf("DC: got (%.2f, %.2f), want (0, 0)", res.DCReal, res.DCImag)
	}
	for i, m := range res.MagnitudeSpectrum {
		if m != 0 {
			t.Fatalf("MagnitudeSpectrum[%d]=%.2e, want 0", i, m)
		}
	}
	if res.Statistics.MaxMagnitude != 0 || res.Statistics.MeanMagnitude != 0 {
		t.Error("statistics over a zero spectrum must be zero")
	}
}

func TestAnalyze_ConstantImageSingleDCBin(t *testing.T) {
	const c = 100
	width, height := 32, 16

	a := NewAnalyzer()
	res, err := a.Analyze(uniformImage(width, height, c), Options{CenterDC: true})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// After centering the only nonzero bin is DC with value c*width*height.
	want := float64(c) * float64(width*height)
	center := (height/2)*width + width/2
	for i, m := range res.MagnitudeSpectrum {
		if i == center {
			if math.Abs(m-want)/want > 1e-9 {
				t.Errorf("DC magnitude: got %.4f, want %.4f", m, want)
			}
			continue
		}
		if m > want*1e-10 {
			t.Fatalf("bin %d: magnitude %.4e, want 0", i, m)
		}
	}
	if math.Abs(res.DCReal-want)/want > 1e-9 {
		t.Errorf("DCReal: got %.4f, want %.4f", res.DCReal, want)
	}
}

func TestAnalyze_StripesProduceOffCenterPeaks(t *testing.T) {
	a := NewAnalyzer()
	res, err := a.Analyze(stripeImage(64, 64, 4), Options{CenterDC: true})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	peaks := res.Statistics.Peaks
	if len(peaks) == 0 {
		t.Fatal("striped image should produce spectral peaks")
	}
	offCenter := false
	for _, p := range peaks {
		if p.Frequency > 0.05 {
			offCenter = true
		}
	}
	if !offCenter {
		t.Error("expected at least one off-center peak for a periodic pattern")
	}
}

func TestAnalyze_PeaksSortedAndCapped(t *testing.T) {
	a := NewAnalyzer()
	res, err := a.Analyze(stripeImage(64, 64, 2), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	peaks := res.Statistics.Peaks
	if len(peaks) > 10 {
		t.Fatalf("peak count: got %d, want <= 10", len(peaks))
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Magnitude > peaks[i-1].Magnitude {
			t.Error("peaks must be sorted by magnitude descending")
		}
	}
}

func TestAnalyze_WindowReducesLeakage(t *testing.T) {
	// Tapering cannot increase total energy: windowed DC is strictly less
	// than unwindowed for a constant image.
	a := NewAnalyzer()
	plain, err := a.Analyze(uniformImage(32, 32, 200), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	windowed, err := a.Analyze(uniformImage(32, 32, 200), Options{WindowFunction: "hanning"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if windowed.DCReal >= plain.DCReal {
		t.Errorf("windowed DC %.2f should be below plain DC %.2f", windowed.DCReal, plain.DCReal)
	}
}

func TestAnalyze_LowpassSuppressesHighBand(t *testing.T) {
	a := NewAnalyzer()
	img := stripeImage(64, 64, 1) // alternating columns: energy at the Nyquist bin

	plain, err := a.Analyze(img, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	filtered, err := a.Analyze(img, Options{
		FilterType:      "lowpass",
		CutoffFrequency: 0.2,
		FilterOrder:     2,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if filtered.Statistics.HighBandEnergy >= plain.Statistics.HighBandEnergy {
		t.Errorf("lowpass high-band energy %.4f should drop below %.4f",
			filtered.Statistics.HighBandEnergy, plain.Statistics.HighBandEnergy)
	}
}

func TestAnalyze_HighpassRemovesDC(t *testing.T) {
	a := NewAnalyzer()
	res, err := a.Analyze(uniformImage(32, 32, 150), Options{
		FilterType:      "highpass",
		CutoffFrequency: 0.3,
		FilterOrder:     2,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// At r=0 the highpass response is 1 - 1/(1+0) = 0.
	if math.Abs(res.DCReal) > 1e-6 {
		t.Errorf("DC after highpass: got %.6f, want 0", res.DCReal)
	}
}

func TestAnalyze_FilteredSingleBinRaster(t *testing.T) {
	// 1x1 is a valid power-of-two raster; its lone axis carries only DC,
	// so there is no half-dimension to fold frequencies against.
	if f := foldedFrequency(0, 1); f != 0 {
		t.Fatalf("foldedFrequency(0, 1): got %v, want 0", f)
	}

	a := NewAnalyzer()
	res, err := a.Analyze(uniformImage(1, 1, 100), Options{
		FilterType:      "lowpass",
		CutoffFrequency: 0.5,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.IsNaN(res.DCReal) || math.IsNaN(res.MagnitudeSpectrum[0]) {
		t.Fatal("filtering a 1x1 raster must not produce NaN")
	}
	if math.Abs(res.DCReal-100) > 1e-9 {
		t.Errorf("1x1 DC through lowpass: got %v, want 100", res.DCReal)
	}
}

func TestTransfer_Responses(t *testing.T) {
	tests := []struct {
		name   string
		ftype  string
		r      float64
		expect func(h float64) bool
	}{
		{"lowpass passes DC", "lowpass", 0, func(h float64) bool { return h > 0.999 }},
		{"lowpass blocks far band", "lowpass", 1, func(h float64) bool { return h < 0.01 }},
		{"highpass blocks DC", "highpass", 0, func(h float64) bool { return h < 0.001 }},
		{"highpass passes far band", "highpass", 1, func(h float64) bool { return h > 0.99 }},
		{"bandpass peaks at cutoff", "bandpass", 0.3, func(h float64) bool { return h > 0.999 }},
		{"notch dips at cutoff", "notch", 0.3, func(h float64) bool { return h < 0.001 }},
		{"unknown passes all", "", 0.5, func(h float64) bool { return h == 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := transfer(tt.ftype, tt.r, 0.3, 2)
			if !tt.expect(h) {
				t.Errorf("transfer(%s, r=%.1f) = %.6f fails expectation", tt.ftype, tt.r, h)
			}
		})
	}
}

func TestVisualize_Modes(t *testing.T) {
	a := NewAnalyzer()
	res, err := a.Analyze(stripeImage(32, 32, 4), Options{CenterDC: true})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	tests := []struct {
		name       string
		opts       VisualizeOptions
		wantWidth  int
		wantHeight int
	}{
		{"magnitude", VisualizeOptions{Mode: "magnitude", LogScale: true, Normalize: true}, 32, 32},
		{"phase", VisualizeOptions{Mode: "phase"}, 32, 32},
		{"both", VisualizeOptions{Mode: "both", LogScale: true, Normalize: true}, 64, 32},
		{"spectrum plain", VisualizeOptions{Mode: "spectrum"}, 32, 32},
		{"spectrum with profile", VisualizeOptions{Mode: "spectrum", ShowRadialProfile: true}, 32, 72},
		{"default mode", VisualizeOptions{}, 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Visualize(res, tt.opts)
			if err != nil {
				t.Fatalf("Visualize failed: %v", err)
			}
			if out.Width != tt.wantWidth || out.Height != tt.wantHeight {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					out.Width, out.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestRenderMagnitude_NormalizeToggle(t *testing.T) {
	res := &Result{
		Width:             2,
		Height:            1,
		MagnitudeSpectrum: []float64{0, 0.5},
		PhaseSpectrum:     make([]float64, 2),
	}

	norm := renderMagnitude(res, render.Grayscale, false, true)
	if got := norm.RGBAAt(1, 0).R; got != 255 {
		t.Errorf("normalized peak: got %d, want 255", got)
	}

	raw := renderMagnitude(res, render.Grayscale, false, false)
	if got := raw.RGBAAt(1, 0).R; got != 128 {
		t.Errorf("unnormalized 0.5 magnitude: got %d, want 128", got)
	}
	if got := raw.RGBAAt(0, 0).R; got != 0 {
		t.Errorf("unnormalized zero magnitude: got %d, want 0", got)
	}
}

func TestVisualize_NormalizePassThrough(t *testing.T) {
	mags := make([]float64, 16)
	for i := range mags {
		mags[i] = 0.25
	}
	res := &Result{
		Width:             4,
		Height:            4,
		MagnitudeSpectrum: mags,
		PhaseSpectrum:     make([]float64, 16),
	}

	normalized, err := Visualize(res, VisualizeOptions{Colormap: "grayscale", Normalize: true})
	if err != nil {
		t.Fatalf("Visualize failed: %v", err)
	}
	raw, err := Visualize(res, VisualizeOptions{Colormap: "grayscale"})
	if err != nil {
		t.Fatalf("Visualize failed: %v", err)
	}

	// Normalizing lifts the flat 0.25 spectrum to full brightness; raw
	// rendering leaves it at quarter gray.
	if normalized.ImageBase64 == raw.ImageBase64 {
		t.Error("normalized and raw renderings should differ for a sub-maximal spectrum")
	}
}

func TestVisualize_MalformedResult(t *testing.T) {
	res := &Result{
		Width:             8,
		Height:            8,
		MagnitudeSpectrum: make([]float64, 16),
		PhaseSpectrum:     make([]float64, 16),
	}
	_, err := Visualize(res, VisualizeOptions{})
	if err == nil {
		t.Fatal("expected error for spectra shorter than the declared dimensions")
	}
	var mismatch *raster.DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error type: got %T, want *raster.DimensionMismatchError", err)
	}
}

func TestVisualize_ZeroSpectrumGuarded(t *testing.T) {
	a := NewAnalyzer()
	res, err := a.Analyze(uniformImage(16, 16, 0), Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// All-zero magnitudes must not divide by zero anywhere.
	if _, err := Visualize(res, VisualizeOptions{Mode: "spectrum", ShowRadialProfile: true, LogScale: true, Normalize: true}); err != nil {
		t.Fatalf("Visualize failed on zero spectrum: %v", err)
	}
}
