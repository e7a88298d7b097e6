package phase

import (
	"image"
	"image/color"
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/render"
)

const (
	hueSaturation = 0.9
	hueValue      = 0.95
)

// VisualizeOptions configures the phase visualization.
type VisualizeOptions struct {
	// ShowArrows overlays direction vectors on a regular sampling grid.
	ShowArrows bool `json:"show_arrows"`

	// ArrowDensity controls the sampling grid: spacing is
	// min(width,height)/density. Zero means 16.
	ArrowDensity int `json:"arrow_density"`
}

// Visualize maps each unmasked pixel's angle to a hue at fixed saturation and
// brightness, with alpha scaled by gradient magnitude (clamped to 0-255).
// Masked pixels stay transparent. Optionally overlays direction arrows.
func Visualize(res *Result, unit string, opts VisualizeOptions) (*render.Raster, error) {
	out := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	circle := fullCircle(unit)

	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			idx := y*res.Width + x
			mag := res.MagnitudeMap[idx]
			if mag == 0 {
				continue
			}
			deg := res.PhaseMap[idx] / circle * 360
			c := render.AngleColor(deg, hueSaturation, hueValue)
			alpha := mag
			if alpha > 255 {
				alpha = 255
			}
			c.A = uint8(alpha)
			out.SetRGBA(x, y, c)
		}
	}

	if opts.ShowArrows {
		drawArrowGrid(out, res, circle, opts.ArrowDensity)
	}

	return render.EncodeRaster(out)
}

// drawArrowGrid samples the phase map on a regular grid and draws a direction
// vector at each unmasked sample.
func drawArrowGrid(out *image.RGBA, res *Result, circle float64, density int) {
	if density <= 0 {
		density = 16
	}
	minDim := res.Width
	if res.Height < minDim {
		minDim = res.Height
	}
	spacing := minDim / density
	if spacing < 2 {
		spacing = 2
	}

	arrowColor := color.RGBA{255, 255, 255, 255}
	length := float64(spacing) * 0.8

	for y := spacing / 2; y < res.Height; y += spacing {
		for x := spacing / 2; x < res.Width; x += spacing {
			idx := y*res.Width + x
			if res.MagnitudeMap[idx] == 0 {
				continue
			}
			rad := res.PhaseMap[idx] / circle * 2 * math.Pi
			render.DrawArrow(out, x, y, rad, length, arrowColor)
		}
	}
}
