package spectrum

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

const maxPeaks = 10

// Options configures a spectrum analysis call.
type Options struct {
	// WindowFunction tapers the input before the transform: "hanning",
	// "hamming", "blackman", "kaiser" (beta 8), or "none".
	WindowFunction string `json:"window_function"`

	// CenterDC moves the zero-frequency bin to the spectrum center
	// (fftShift) in the exported magnitude and phase spectra.
	CenterDC bool `json:"center_dc"`

	// FilterType applies a Butterworth-style radial transfer to the
	// transform before spectra are derived: "lowpass", "highpass",
	// "bandpass", "notch", or "" for no filtering.
	FilterType string `json:"filter_type"`

	// CutoffFrequency is the filter cutoff as a normalized radius in
	// (0, 1]. Ignored when FilterType is empty.
	CutoffFrequency float64 `json:"cutoff_frequency"`

	// FilterOrder is the Butterworth order. Zero means 2.
	FilterOrder int `json:"filter_order"`
}

// Peak is one dominant frequency component.
type Peak struct {
	// X and Y locate the peak in the centered spectrum grid.
	X int `json:"x"`
	Y int `json:"y"`

	// Magnitude is the spectral magnitude at the peak.
	Magnitude float64 `json:"magnitude"`

	// Frequency is the peak's radius from the spectrum center, with each
	// axis normalized by its half-dimension.
	Frequency float64 `json:"frequency"`
}

// Statistics summarizes the magnitude spectrum.
type Statistics struct {
	MaxMagnitude  float64 `json:"max_magnitude"`
	MinMagnitude  float64 `json:"min_magnitude"`
	MeanMagnitude float64 `json:"mean_magnitude"`

	// Energy bands partition bins by normalized radial distance from the
	// center: low <= 0.25, mid <= 0.75, high > 0.75 of the maximum radius.
	// Each value is the band's summed squared magnitude divided by the
	// number of bins in the band.
	LowBandEnergy  float64 `json:"low_band_energy"`
	MidBandEnergy  float64 `json:"mid_band_energy"`
	HighBandEnergy float64 `json:"high_band_energy"`

	// Peaks holds up to 10 dominant frequencies sorted by magnitude
	// descending.
	Peaks []Peak `json:"peaks"`
}

// Result is the outcome of a spectrum analysis.
type Result struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// RealPart and ImaginaryPart are the raw transform output, row-major,
	// in natural (uncentered) bin order.
	RealPart      []float64 `json:"-"`
	ImaginaryPart []float64 `json:"-"`

	// MagnitudeSpectrum and PhaseSpectrum are derived per bin; centered
	// when Options.CenterDC is set.
	MagnitudeSpectrum []float64 `json:"-"`
	PhaseSpectrum     []float64 `json:"-"`

	// Centered records whether the exported spectra are fftShift-ed.
	Centered bool `json:"centered"`

	// DCReal and DCImag form the zero-frequency component.
	DCReal float64 `json:"dc_real"`
	DCImag float64 `json:"dc_imag"`

	Statistics *Statistics `json:"statistics"`
}

// Analyzer performs windowed 2D Fourier analysis. Stateless across calls.
type Analyzer struct{}

// NewAnalyzer constructs a spectrum analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the full pipeline: grayscale, windowing, separable 2D FFT,
// optional frequency-domain filtering, spectra derivation, statistics.
// Dimensions must be powers of two; anything else fails fast with a
// *raster.DimensionError.
func (a *Analyzer) Analyze(img image.Image, opts Options) (*Result, error) {
	gray := raster.Grayscale(img)
	if err := validateDimensions(gray.Width, gray.Height); err != nil {
		return nil, err
	}

	applyWindow(gray, opts.WindowFunction)

	n := gray.Width * gray.Height
	re := make([]float64, n)
	im := make([]float64, n)
	copy(re, gray.Pix)

	fft2D(re, im, gray.Width, gray.Height)

	if opts.FilterType != "" && opts.CutoffFrequency > 0 {
		applyFilter(re, im, gray.Width, gray.Height, opts)
	}

	res := &Result{
		Width:         gray.Width,
		Height:        gray.Height,
		RealPart:      re,
		ImaginaryPart: im,
		DCReal:        re[0],
		DCImag:        im[0],
		Centered:      opts.CenterDC,
	}

	mag := make([]float64, n)
	ph := make([]float64, n)
	for i := 0; i < n; i++ {
		mag[i] = math.Hypot(re[i], im[i])
		ph[i] = math.Atan2(im[i], re[i])
	}

	// Statistics always use the centered layout so radial measures are
	// taken from the DC bin outward.
	centeredMag := Shift(mag, gray.Width, gray.Height)
	res.Statistics = buildStatistics(centeredMag, gray.Width, gray.Height)

	if opts.CenterDC {
		res.MagnitudeSpectrum = centeredMag
		res.PhaseSpectrum = Shift(ph, gray.Width, gray.Height)
	} else {
		res.MagnitudeSpectrum = mag
		res.PhaseSpectrum = ph
	}

	return res, nil
}

// applyFilter multiplies each bin by a Butterworth-style radial transfer.
// Radial distance is measured toroidally so the natural bin order needs no
// shifting: bin (x, y) sits at normalized radius hypot(fx, fy) where fx, fy
// fold into [0, 1] of the half-dimension.
func applyFilter(re, im []float64, width, height int, opts Options) {
	order := opts.FilterOrder
	if order <= 0 {
		order = 2
	}
	cutoff := opts.CutoffFrequency

	for y := 0; y < height; y++ {
		fy := foldedFrequency(y, height)
		for x := 0; x < width; x++ {
			fx := foldedFrequency(x, width)
			r := math.Hypot(fx, fy)

			h := transfer(opts.FilterType, r, cutoff, order)
			idx := y*width + x
			re[idx] *= h
			im[idx] *= h
		}
	}
}

// foldedFrequency maps a natural-order bin index to its normalized frequency
// magnitude in [0, 1]. A single-bin axis carries only DC.
func foldedFrequency(i, n int) float64 {
	if n < 2 {
		return 0
	}
	if i > n/2 {
		i = n - i
	}
	return float64(i) / float64(n/2)
}

// transfer evaluates the filter response at normalized radius r.
func transfer(filterType string, r, cutoff float64, order int) float64 {
	lowpass := func(c float64) float64 {
		return 1 / (1 + math.Pow(r/c, 2*float64(order)))
	}

	switch filterType {
	case "lowpass":
		return lowpass(cutoff)
	case "highpass":
		return 1 - lowpass(cutoff)
	case "bandpass":
		// Band centered on the cutoff with half its width on each side.
		width := cutoff / 2
		d := math.Abs(r - cutoff)
		return 1 / (1 + math.Pow(d/width, 2*float64(order)))
	case "notch":
		width := cutoff / 2
		d := math.Abs(r - cutoff)
		return 1 - 1/(1+math.Pow(d/width, 2*float64(order)))
	default:
		return 1
	}
}

// buildStatistics derives magnitude extrema, radial band energies, and
// dominant peaks from a centered magnitude spectrum.
func buildStatistics(mag []float64, width, height int) *Statistics {
	s := &Statistics{}
	if len(mag) == 0 {
		return s
	}

	s.MaxMagnitude = floats.Max(mag)
	s.MinMagnitude = floats.Min(mag)
	s.MeanMagnitude = stat.Mean(mag, nil)

	cx := width / 2
	cy := height / 2
	maxRadius := math.Hypot(float64(cx), float64(cy))
	if maxRadius == 0 {
		maxRadius = 1
	}

	var lowSum, midSum, highSum float64
	var lowCount, midCount, highCount int

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m := mag[y*width+x]
			r := math.Hypot(float64(x-cx), float64(y-cy)) / maxRadius
			e := m * m
			switch {
			case r <= 0.25:
				lowSum += e
				lowCount++
			case r <= 0.75:
				midSum += e
				midCount++
			default:
				highSum += e
				highCount++
			}
		}
	}

	if lowCount > 0 {
		s.LowBandEnergy = lowSum / float64(lowCount)
	}
	if midCount > 0 {
		s.MidBandEnergy = midSum / float64(midCount)
	}
	if highCount > 0 {
		s.HighBandEnergy = highSum / float64(highCount)
	}

	s.Peaks = findPeaks(mag, width, height)
	return s
}

// findPeaks locates bins strictly greater than all 8 neighbors, sorted by
// magnitude descending, capped at maxPeaks.
func findPeaks(mag []float64, width, height int) []Peak {
	var peaks []Peak
	cx := width / 2
	cy := height / 2

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			m := mag[y*width+x]
			if m == 0 {
				continue
			}

			isPeak := true
			for j := -1; j <= 1 && isPeak; j++ {
				for i := -1; i <= 1; i++ {
					if i == 0 && j == 0 {
						continue
					}
					if mag[(y+j)*width+x+i] >= m {
						isPeak = false
						break
					}
				}
			}
			if !isPeak {
				continue
			}

			fx := float64(x-cx) / float64(width/2)
			fy := float64(y-cy) / float64(height/2)
			peaks = append(peaks, Peak{
				X:         x,
				Y:         y,
				Magnitude: m,
				Frequency: math.Hypot(fx, fy),
			})
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].Magnitude > peaks[j].Magnitude
	})
	if len(peaks) > maxPeaks {
		peaks = peaks[:maxPeaks]
	}
	return peaks
}
