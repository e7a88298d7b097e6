package phase

import (
	"image"
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/gradient"
	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

const histogramBins = 36

// Options configures a phase analysis call.
type Options struct {
	// AngleUnit selects "degrees" (default) or "radians" for the phase map
	// and statistics.
	AngleUnit string `json:"angle_unit"`

	// MagnitudeThreshold masks pixels whose gradient magnitude falls below
	// it: both the phase and magnitude maps are zeroed there.
	MagnitudeThreshold float64 `json:"magnitude_threshold"`

	// Smoothing applies a 3x3 weighted circular average to the phase map.
	Smoothing bool `json:"smoothing"`

	// GenerateStatistics enables the directional statistics block.
	GenerateStatistics bool `json:"generate_statistics"`
}

// DominantDirection is one peak of the weighted angular histogram.
type DominantDirection struct {
	// Angle is the bin center in the requested unit.
	Angle float64 `json:"angle"`

	// Percentage is the bin's share of the total weighted energy (0-100).
	Percentage float64 `json:"percentage"`

	// Strength is the raw accumulated weight in the bin.
	Strength float64 `json:"strength"`
}

// Statistics summarizes gradient directionality.
type Statistics struct {
	// DominantDirections holds up to 3 histogram peaks, strongest first.
	DominantDirections []DominantDirection `json:"dominant_directions"`

	// Coherence is the circular concentration of weighted directions in
	// [0,1]: 0 for uniformly scattered gradients, 1 for perfect alignment.
	Coherence float64 `json:"coherence"`

	// CircularMean is the weighted circular mean direction in the requested
	// unit, normalized to the positive range.
	CircularMean float64 `json:"circular_mean"`

	// Histogram is the 36-bin magnitude-weighted angular histogram.
	Histogram []float64 `json:"histogram"`
}

// Result is the outcome of a phase analysis.
type Result struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// PhaseMap holds the per-pixel gradient angle in the requested unit,
	// zero where the magnitude mask applies.
	PhaseMap []float64 `json:"-"`

	// MagnitudeMap is the gradient magnitude with the same mask applied.
	MagnitudeMap []float64 `json:"-"`

	// MaskedCount is the number of pixels that passed the threshold.
	MaskedCount int `json:"masked_count"`

	// Statistics is present only when Options.GenerateStatistics is set.
	Statistics *Statistics `json:"statistics,omitempty"`
}

// Analyzer computes directional gradient statistics using an injected
// gradient strategy. Stateless across calls.
type Analyzer struct {
	strategy gradient.Strategy
}

// NewAnalyzer constructs an analyzer around the given strategy.
func NewAnalyzer(s gradient.Strategy) *Analyzer {
	return &Analyzer{strategy: s}
}

// fullCircle returns the period of the requested unit: 360 or 2*pi.
func fullCircle(unit string) float64 {
	if unit == "radians" {
		return 2 * math.Pi
	}
	return 360
}

// Analyze runs the phase pipeline: grayscale, gradient, angle extraction with
// magnitude masking, optional circular smoothing, optional statistics.
func (a *Analyzer) Analyze(img image.Image, opts Options) *Result {
	gray := raster.Grayscale(img)
	field := a.strategy.Compute(gray)

	circle := fullCircle(opts.AngleUnit)
	n := gray.Width * gray.Height

	res := &Result{
		Width:        gray.Width,
		Height:       gray.Height,
		PhaseMap:     make([]float64, n),
		MagnitudeMap: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		mag := field.Magnitude[i]
		if mag < opts.MagnitudeThreshold || mag == 0 {
			continue
		}
		angle := math.Atan2(field.GY[i], field.GX[i])
		res.PhaseMap[i] = normalizeAngle(angle/(2*math.Pi)*circle, circle)
		res.MagnitudeMap[i] = mag
		res.MaskedCount++
	}

	if opts.Smoothing {
		smoothCircular(res, circle)
	}

	if opts.GenerateStatistics {
		res.Statistics = buildStatistics(res, circle)
	}

	return res
}

// normalizeAngle wraps an angle into [0, circle).
func normalizeAngle(angle, circle float64) float64 {
	angle = math.Mod(angle, circle)
	if angle < 0 {
		angle += circle
	}
	return angle
}

// smoothKernel is the 3x3 binomial weight mask used for circular smoothing.
var smoothKernel = [3][3]float64{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

// smoothCircular replaces each unmasked angle with the weighted circular
// average of its unmasked 3x3 neighborhood. Angles are accumulated as unit
// vectors so the 0/360 wraparound cannot bias the average, then recovered
// with atan2.
func smoothCircular(res *Result, circle float64) {
	src := make([]float64, len(res.PhaseMap))
	copy(src, res.PhaseMap)

	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			idx := y*res.Width + x
			if res.MagnitudeMap[idx] == 0 {
				continue
			}

			var sumCos, sumSin float64
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					nx, ny := x+i, y+j
					if nx < 0 || nx >= res.Width || ny < 0 || ny >= res.Height {
						continue
					}
					nidx := ny*res.Width + nx
					if res.MagnitudeMap[nidx] == 0 {
						continue
					}
					w := smoothKernel[j+1][i+1]
					rad := src[nidx] / circle * 2 * math.Pi
					sumCos += w * math.Cos(rad)
					sumSin += w * math.Sin(rad)
				}
			}

			if sumCos == 0 && sumSin == 0 {
				continue
			}
			avg := math.Atan2(sumSin, sumCos)
			res.PhaseMap[idx] = normalizeAngle(avg/(2*math.Pi)*circle, circle)
		}
	}
}

// buildStatistics accumulates the weighted angular histogram and derives
// dominant directions, coherence and the circular mean.
func buildStatistics(res *Result, circle float64) *Statistics {
	s := &Statistics{
		Histogram: make([]float64, histogramBins),
	}

	binSize := circle / histogramBins
	var totalWeight, sumCos, sumSin float64

	for i, mag := range res.MagnitudeMap {
		if mag == 0 {
			continue
		}
		angle := res.PhaseMap[i]
		bin := int(math.Floor(angle/binSize)) % histogramBins
		s.Histogram[bin] += mag

		rad := angle / circle * 2 * math.Pi
		sumCos += mag * math.Cos(rad)
		sumSin += mag * math.Sin(rad)
		totalWeight += mag
	}

	if totalWeight == 0 {
		return s
	}

	s.Coherence = math.Hypot(sumCos, sumSin) / totalWeight
	s.CircularMean = normalizeAngle(math.Atan2(sumSin, sumCos)/(2*math.Pi)*circle, circle)

	// A bin is a dominant direction when it beats both circular neighbors
	// and carries more than 5% of the total weight.
	type peak struct {
		bin    int
		weight float64
	}
	var peaks []peak
	for b := 0; b < histogramBins; b++ {
		w := s.Histogram[b]
		prev := s.Histogram[(b+histogramBins-1)%histogramBins]
		next := s.Histogram[(b+1)%histogramBins]
		if w > prev && w > next && w > 0.05*totalWeight {
			peaks = append(peaks, peak{bin: b, weight: w})
		}
	}

	for i := 0; i < len(peaks); i++ {
		for j := i + 1; j < len(peaks); j++ {
			if peaks[j].weight > peaks[i].weight {
				peaks[i], peaks[j] = peaks[j], peaks[i]
			}
		}
	}
	if len(peaks) > 3 {
		peaks = peaks[:3]
	}

	for _, p := range peaks {
		s.DominantDirections = append(s.DominantDirections, DominantDirection{
			Angle:      (float64(p.bin) + 0.5) * binSize,
			Percentage: p.weight / totalWeight * 100,
			Strength:   p.weight,
		})
	}

	return s
}
