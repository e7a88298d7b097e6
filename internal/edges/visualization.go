package edges

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
	"github.com/spectralab/spectral-tools-mcp/internal/render"
)

const heatmapScale = 10

// VisualizeMap exports a graded edge map as a grayscale raster with the edge
// intensity replicated across R, G and B.
func VisualizeMap(m *Map) (*render.Raster, error) {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := uint8(m.At(x, y)*255 + 0.5)
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return render.EncodeRaster(out)
}

// VisualizeDensity renders the region grid as a colorized heatmap upscaled
// 10x with nearest-neighbor resampling so each region reads as a solid cell.
// With annotate set, hotspots get a ring and their rank stamped at the cell
// center.
func VisualizeDensity(res *DensityResult, colormap string, annotate bool) (*render.Raster, error) {
	if len(res.DensityMap) != res.GridWidth*res.GridHeight {
		return nil, &raster.DimensionMismatchError{
			Width:  res.GridWidth,
			Height: res.GridHeight,
			Len:    len(res.DensityMap),
		}
	}

	cm := render.ColormapByName(colormap)

	grid := image.NewRGBA(image.Rect(0, 0, res.GridWidth, res.GridHeight))
	max := 0.0
	for _, v := range res.DensityMap {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	for gy := 0; gy < res.GridHeight; gy++ {
		for gx := 0; gx < res.GridWidth; gx++ {
			grid.SetRGBA(gx, gy, cm(res.DensityMap[gy*res.GridWidth+gx]/max))
		}
	}

	scaled := imaging.Resize(grid, res.GridWidth*heatmapScale, res.GridHeight*heatmapScale, imaging.NearestNeighbor)
	out := render.AsRGBA(scaled)

	if annotate && res.Statistics != nil {
		annotateHotspots(out, res)
	}

	return render.EncodeRaster(out)
}

// annotateHotspots marks each hotspot cell with a ring and its 1-based rank.
func annotateHotspots(out *image.RGBA, res *DensityResult) {
	ringColor := color.RGBA{255, 255, 255, 255}
	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 180}

	for rank, h := range res.Statistics.Hotspots {
		// Map the hotspot's image-space center back to its grid cell.
		gx := (h.X - res.RegionSize/2) / res.Step
		gy := (h.Y - res.RegionSize/2) / res.Step
		if gx >= res.GridWidth {
			gx = res.GridWidth - 1
		}
		if gy >= res.GridHeight {
			gy = res.GridHeight - 1
		}

		cx := gx*heatmapScale + heatmapScale/2
		cy := gy*heatmapScale + heatmapScale/2
		render.DrawRing(out, cx, cy, heatmapScale/2-1, ringColor)
		render.DrawLabel(out, cx-3, cy-3, fmt.Sprintf("%d", rank+1), fg, bg)
	}
}
