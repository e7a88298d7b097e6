package magnitude

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spectralab/spectral-tools-mcp/internal/gradient"
	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

// percentileRanks are the nonzero-magnitude percentiles reported in the
// statistics block.
var percentileRanks = []int{5, 25, 50, 75, 95}

// Options configures a magnitude analysis call.
type Options struct {
	// Threshold zeroes magnitudes strictly below it before any statistics
	// are computed. Zero keeps everything.
	Threshold float64 `json:"threshold"`

	// Normalize rescales the thresholded map linearly to the 0-255 range.
	// If the maximum magnitude is zero the map is left unchanged.
	Normalize bool `json:"normalize"`

	// GenerateHistogram enables the histogram and percentile pass.
	GenerateHistogram bool `json:"generate_histogram"`
}

// Statistics summarizes the distribution of nonzero magnitudes.
type Statistics struct {
	// Histogram is a 256-bucket count of the (possibly normalized) map,
	// bucketed by clamping each value to 0-255.
	Histogram []int `json:"histogram"`

	// Percentiles holds nearest-rank percentiles of the nonzero magnitudes,
	// keyed 5, 25, 50, 75, 95.
	Percentiles map[int]float64 `json:"percentiles"`
}

// Result is the outcome of a magnitude analysis.
type Result struct {
	// Width and Height of the analyzed image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// MagnitudeMap is the post-threshold (and optionally normalized)
	// gradient magnitude per pixel, row-major.
	MagnitudeMap []float64 `json:"-"`

	// MinMagnitude and MaxMagnitude are taken over nonzero entries only;
	// both are 0 when the map is entirely zero.
	MinMagnitude float64 `json:"min_magnitude"`
	MaxMagnitude float64 `json:"max_magnitude"`

	// AverageMagnitude is the mean of nonzero entries, 0 when none exist.
	AverageMagnitude float64 `json:"average_magnitude"`

	// NonZeroCount is the number of pixels that survived the threshold.
	NonZeroCount int `json:"non_zero_count"`

	// Statistics is present only when Options.GenerateHistogram is set.
	Statistics *Statistics `json:"statistics,omitempty"`
}

// Analyzer computes gradient magnitude statistics using an injected gradient
// strategy. The analyzer itself carries no per-call state and is safe to
// reuse across calls.
type Analyzer struct {
	strategy gradient.Strategy
}

// NewAnalyzer constructs an analyzer around the given strategy.
func NewAnalyzer(s gradient.Strategy) *Analyzer {
	return &Analyzer{strategy: s}
}

// Analyze runs the magnitude pipeline: grayscale, gradient, threshold,
// nonzero statistics, optional normalization and histogram.
func (a *Analyzer) Analyze(img image.Image, opts Options) *Result {
	gray := raster.Grayscale(img)
	field := a.strategy.Compute(gray)

	m := make([]float64, len(field.Magnitude))
	copy(m, field.Magnitude)

	for i, v := range m {
		if v < opts.Threshold {
			m[i] = 0
		}
	}

	res := &Result{
		Width:        gray.Width,
		Height:       gray.Height,
		MagnitudeMap: m,
	}

	nonzero := make([]float64, 0, len(m))
	for _, v := range m {
		if v > 0 {
			nonzero = append(nonzero, v)
		}
	}
	res.NonZeroCount = len(nonzero)

	if len(nonzero) > 0 {
		res.MinMagnitude = floats.Min(nonzero)
		res.MaxMagnitude = floats.Max(nonzero)
		res.AverageMagnitude = stat.Mean(nonzero, nil)
	}

	if opts.Normalize && res.MaxMagnitude > 0 {
		scale := 255 / res.MaxMagnitude
		for i, v := range m {
			m[i] = v * scale
		}
		for i, v := range nonzero {
			nonzero[i] = v * scale
		}
		res.MinMagnitude *= scale
		res.MaxMagnitude = 255
		res.AverageMagnitude *= scale
	}

	if opts.GenerateHistogram {
		res.Statistics = buildStatistics(m, nonzero)
	}

	return res
}

// buildStatistics fills the 256-bucket histogram and the nearest-rank
// percentiles over nonzero magnitudes.
func buildStatistics(m, nonzero []float64) *Statistics {
	s := &Statistics{
		Histogram:   make([]int, 256),
		Percentiles: make(map[int]float64, len(percentileRanks)),
	}

	for _, v := range m {
		bucket := int(v)
		if bucket > 255 {
			bucket = 255
		}
		if bucket < 0 {
			bucket = 0
		}
		s.Histogram[bucket]++
	}

	if len(nonzero) == 0 {
		for _, p := range percentileRanks {
			s.Percentiles[p] = 0
		}
		return s
	}

	sorted := make([]float64, len(nonzero))
	copy(sorted, nonzero)
	sort.Float64s(sorted)

	n := len(sorted)
	for _, p := range percentileRanks {
		// Nearest rank, not interpolated.
		idx := int(math.Floor(float64(p) / 100 * float64(n-1)))
		s.Percentiles[p] = sorted[idx]
	}

	return s
}
