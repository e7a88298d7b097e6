package spectrum

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/spectralab/spectral-tools-mcp/internal/raster"
	"github.com/spectralab/spectral-tools-mcp/internal/render"
)

const profileStripHeight = 40

// VisualizeOptions configures spectrum rendering.
type VisualizeOptions struct {
	// Mode selects "magnitude" (default), "phase", "both" (side by side),
	// or "spectrum" (magnitude plus optional radial profile strip).
	Mode string `json:"mode"`

	// Colormap names one of jet, hot, cool, grayscale, hsv.
	Colormap string `json:"colormap"`

	// LogScale applies log(1+m) to magnitudes before normalization.
	// Without it the DC bin dominates and the rest of the spectrum renders
	// black.
	LogScale bool `json:"log_scale"`

	// Normalize rescales magnitudes by the spectrum maximum so the
	// brightest bin maps to the top of the colormap. Without it values
	// feed the colormap directly and clamp at 1.
	Normalize bool `json:"normalize"`

	// ShowRadialProfile appends an averaged radial profile strip below the
	// spectrum in "spectrum" mode.
	ShowRadialProfile bool `json:"show_radial_profile"`
}

// Visualize renders a result's spectra according to the options.
func Visualize(res *Result, opts VisualizeOptions) (*render.Raster, error) {
	n := res.Width * res.Height
	if len(res.MagnitudeSpectrum) != n || len(res.PhaseSpectrum) != n {
		return nil, &raster.DimensionMismatchError{
			Width:  res.Width,
			Height: res.Height,
			Len:    len(res.MagnitudeSpectrum),
		}
	}

	cm := render.ColormapByName(opts.Colormap)

	switch opts.Mode {
	case "phase":
		return render.EncodeRaster(renderPhase(res, cm))
	case "both":
		left := renderMagnitude(res, cm, opts.LogScale, opts.Normalize)
		right := renderPhase(res, cm)
		out := image.NewRGBA(image.Rect(0, 0, res.Width*2, res.Height))
		draw.Draw(out, image.Rect(0, 0, res.Width, res.Height), left, image.Point{}, draw.Src)
		draw.Draw(out, image.Rect(res.Width, 0, res.Width*2, res.Height), right, image.Point{}, draw.Src)
		return render.EncodeRaster(out)
	case "spectrum":
		magImg := renderMagnitude(res, cm, opts.LogScale, opts.Normalize)
		if !opts.ShowRadialProfile {
			return render.EncodeRaster(magImg)
		}
		out := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height+profileStripHeight))
		draw.Draw(out, image.Rect(0, 0, res.Width, res.Height), magImg, image.Point{}, draw.Src)
		drawRadialProfile(out, res)
		return render.EncodeRaster(out)
	default:
		return render.EncodeRaster(renderMagnitude(res, cm, opts.LogScale, opts.Normalize))
	}
}

// renderMagnitude colorizes the magnitude spectrum, optionally compressing
// dynamic range with log(1+m) and rescaling by the spectrum maximum.
func renderMagnitude(res *Result, cm render.Colormap, logScale, normalize bool) *image.RGBA {
	vals := make([]float64, len(res.MagnitudeSpectrum))
	copy(vals, res.MagnitudeSpectrum)

	if logScale {
		for i, v := range vals {
			vals[i] = math.Log(1 + v)
		}
	}

	max := 1.0
	if normalize {
		max = 0
		for _, v := range vals {
			if v > max {
				max = v
			}
		}
		if max == 0 {
			max = 1
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			out.SetRGBA(x, y, cm(vals[y*res.Width+x]/max))
		}
	}
	return out
}

// renderPhase colorizes the phase spectrum over its [-pi, pi] range.
func renderPhase(res *Result, cm render.Colormap) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			t := (res.PhaseSpectrum[y*res.Width+x] + math.Pi) / (2 * math.Pi)
			out.SetRGBA(x, y, cm(t))
		}
	}
	return out
}

// drawRadialProfile plots the angle-averaged magnitude per radius in the
// strip below the spectrum.
func drawRadialProfile(out *image.RGBA, res *Result) {
	cx := res.Width / 2
	cy := res.Height / 2
	maxRadius := int(math.Hypot(float64(cx), float64(cy))) + 1

	sums := make([]float64, maxRadius)
	counts := make([]int, maxRadius)
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			r := int(math.Hypot(float64(x-cx), float64(y-cy)))
			if r < maxRadius {
				sums[r] += res.MagnitudeSpectrum[y*res.Width+x]
				counts[r]++
			}
		}
	}

	profile := make([]float64, maxRadius)
	maxProfile := 0.0
	for r := range profile {
		if counts[r] > 0 {
			profile[r] = math.Log(1 + sums[r]/float64(counts[r]))
		}
		if profile[r] > maxProfile {
			maxProfile = profile[r]
		}
	}
	if maxProfile == 0 {
		maxProfile = 1
	}

	// Strip background.
	stripTop := res.Height
	bg := color.RGBA{16, 16, 16, 255}
	fg := color.RGBA{240, 240, 240, 255}
	for y := stripTop; y < stripTop+profileStripHeight; y++ {
		for x := 0; x < res.Width; x++ {
			out.SetRGBA(x, y, bg)
		}
	}

	for x := 0; x < res.Width; x++ {
		r := x * maxRadius / res.Width
		h := int(profile[r] / maxProfile * float64(profileStripHeight-2))
		for dy := 0; dy < h; dy++ {
			out.SetRGBA(x, stripTop+profileStripHeight-1-dy, fg)
		}
	}
}
