package edges

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spectralab/spectral-tools-mcp/internal/gradient"
	"github.com/spectralab/spectral-tools-mcp/internal/raster"
)

const distributionBuckets = 20

// DensityOptions configures an edge density analysis.
type DensityOptions struct {
	// RegionSize is the analysis window side length in pixels. Zero means 32.
	RegionSize int `json:"region_size"`

	// OverlapRatio in [0, 0.9] controls window overlap: the stride is
	// round(RegionSize * (1 - OverlapRatio)).
	OverlapRatio float64 `json:"overlap_ratio"`

	// EdgeParams is handed to the injected edge strategy.
	EdgeParams Params `json:"edge_params"`

	// HeatmapMode selects the reported density channel: "density"
	// (occupancy fraction, the default), "strength" (mean edge intensity
	// normalized by 255), or "direction" (per-region circular coherence of
	// gradient directions at edge pixels).
	HeatmapMode string `json:"heatmap_mode"`
}

// RegionCenter describes one analysis window.
type RegionCenter struct {
	// X and Y are the window center in image coordinates.
	X int `json:"x"`
	Y int `json:"y"`

	// Density is the edge-pixel occupancy fraction of the window.
	Density float64 `json:"density"`

	// Strength is the mean edge intensity among the window's edge pixels
	// on the 0-255 scale, 0 when the window has none.
	Strength float64 `json:"strength"`
}

// DensityStatistics summarizes nonzero-density regions.
type DensityStatistics struct {
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Variance float64 `json:"variance"`

	// Distribution is a 20-bucket histogram of nonzero densities in [0,1].
	Distribution []int `json:"distribution"`

	// Hotspots holds the top 10% of regions by density (at least one when
	// any region is nonzero), strongest first.
	Hotspots []RegionCenter `json:"hotspots"`
}

// DensityResult is the outcome of an edge density analysis.
type DensityResult struct {
	// GridWidth and GridHeight are the density grid dimensions (one cell
	// per analysis window).
	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`

	// DensityMap is the per-region channel selected by HeatmapMode,
	// row-major over the grid.
	DensityMap []float64 `json:"-"`

	// RegionCenters lists every analysis window in grid order.
	RegionCenters []RegionCenter `json:"region_centers"`

	// RegionSize and Step echo the effective window geometry.
	RegionSize int `json:"region_size"`
	Step       int `json:"step"`

	Statistics *DensityStatistics `json:"statistics"`
}

// DensityAnalyzer aggregates edge density over sliding regions using an
// injected edge detection strategy. Stateless across calls.
type DensityAnalyzer struct {
	strategy Strategy
}

// NewDensityAnalyzer constructs an analyzer around the given strategy.
func NewDensityAnalyzer(s Strategy) *DensityAnalyzer {
	return &DensityAnalyzer{strategy: s}
}

// Analyze runs the strategy once, then slides a RegionSize window with the
// configured overlap. The last window in each axis is clamped to stay within
// bounds, so border windows may overlap more than the nominal ratio.
func (a *DensityAnalyzer) Analyze(img image.Image, opts DensityOptions) *DensityResult {
	if opts.RegionSize <= 0 {
		opts.RegionSize = 32
	}
	if opts.OverlapRatio < 0 {
		opts.OverlapRatio = 0
	}
	if opts.OverlapRatio > 0.9 {
		opts.OverlapRatio = 0.9
	}

	edgeMap := a.strategy.Detect(img, opts.EdgeParams)

	size := opts.RegionSize
	if size > edgeMap.Width {
		size = edgeMap.Width
	}
	if size > edgeMap.Height {
		size = edgeMap.Height
	}

	step := int(math.Round(float64(size) * (1 - opts.OverlapRatio)))
	if step < 1 {
		step = 1
	}

	xs := windowStarts(edgeMap.Width, size, step)
	ys := windowStarts(edgeMap.Height, size, step)

	// Direction mode needs gradient angles at edge pixels.
	var field *gradient.Field
	if opts.HeatmapMode == "direction" {
		field = (&gradient.Sobel{}).Compute(raster.Grayscale(img))
	}

	res := &DensityResult{
		GridWidth:  len(xs),
		GridHeight: len(ys),
		DensityMap: make([]float64, len(xs)*len(ys)),
		RegionSize: size,
		Step:       step,
	}

	for gy, y0 := range ys {
		for gx, x0 := range xs {
			center := analyzeRegion(edgeMap, x0, y0, size)
			res.RegionCenters = append(res.RegionCenters, center)

			var channel float64
			switch opts.HeatmapMode {
			case "strength":
				channel = center.Strength / 255
			case "direction":
				channel = regionDirectionCoherence(edgeMap, field, x0, y0, size)
			default:
				channel = center.Density
			}
			res.DensityMap[gy*len(xs)+gx] = channel
		}
	}

	res.Statistics = buildDensityStatistics(res)
	return res
}

// windowStarts returns the window origin offsets along one axis, clamping the
// final window into bounds.
func windowStarts(extent, size, step int) []int {
	if extent <= size {
		return []int{0}
	}
	var starts []int
	for x := 0; ; x += step {
		if x+size >= extent {
			starts = append(starts, extent-size)
			break
		}
		starts = append(starts, x)
	}
	return starts
}

// analyzeRegion computes occupancy and mean edge strength for one window.
func analyzeRegion(m *Map, x0, y0, size int) RegionCenter {
	edgeCount := 0
	var strengthSum float64

	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			v := m.At(x, y)
			if v > 0 {
				edgeCount++
				strengthSum += v * 255
			}
		}
	}

	c := RegionCenter{
		X:       x0 + size/2,
		Y:       y0 + size/2,
		Density: float64(edgeCount) / float64(size*size),
	}
	if edgeCount > 0 {
		c.Strength = strengthSum / float64(edgeCount)
	}
	return c
}

// regionDirectionCoherence measures how aligned the gradient directions are
// at the window's edge pixels: |sum of unit vectors| / count, 0 when the
// window has no edge pixels.
func regionDirectionCoherence(m *Map, field *gradient.Field, x0, y0, size int) float64 {
	var sumCos, sumSin float64
	count := 0

	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			if m.At(x, y) == 0 {
				continue
			}
			idx := y*field.Width + x
			if field.Magnitude[idx] == 0 {
				continue
			}
			angle := math.Atan2(field.GY[idx], field.GX[idx])
			sumCos += math.Cos(angle)
			sumSin += math.Sin(angle)
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return math.Hypot(sumCos, sumSin) / float64(count)
}

// buildDensityStatistics summarizes nonzero-density regions and extracts
// hotspots: the top 10% of regions by density, at least one.
func buildDensityStatistics(res *DensityResult) *DensityStatistics {
	s := &DensityStatistics{
		Distribution: make([]int, distributionBuckets),
	}

	var nonzero []float64
	var nonzeroRegions []RegionCenter
	for _, c := range res.RegionCenters {
		if c.Density > 0 {
			nonzero = append(nonzero, c.Density)
			nonzeroRegions = append(nonzeroRegions, c)
		}
	}

	if len(nonzero) == 0 {
		return s
	}

	s.Mean = stat.Mean(nonzero, nil)
	s.Min = floats.Min(nonzero)
	s.Max = floats.Max(nonzero)

	// Population variance, not the sample estimator.
	var sq float64
	for _, v := range nonzero {
		d := v - s.Mean
		sq += d * d
	}
	s.Variance = sq / float64(len(nonzero))

	for _, v := range nonzero {
		bucket := int(v * distributionBuckets)
		if bucket >= distributionBuckets {
			bucket = distributionBuckets - 1
		}
		s.Distribution[bucket]++
	}

	sort.Slice(nonzeroRegions, func(i, j int) bool {
		return nonzeroRegions[i].Density > nonzeroRegions[j].Density
	})
	count := len(nonzeroRegions) / 10
	if count < 1 {
		count = 1
	}
	s.Hotspots = nonzeroRegions[:count]

	return s
}
