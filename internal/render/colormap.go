package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colormap maps a normalized intensity in [0,1] to a color.
type Colormap func(t float64) color.RGBA

// ColormapByName returns the named colormap. Unknown names fall back to "jet",
// the default everywhere a colorized map is produced.
func ColormapByName(name string) Colormap {
	switch name {
	case "hot":
		return Hot
	case "cool":
		return Cool
	case "grayscale":
		return Grayscale
	case "hsv":
		return HSV
	default:
		return Jet
	}
}

// Jet is the classic blue-cyan-yellow-red map.
func Jet(t float64) color.RGBA {
	t = clamp01(t)
	var r, g, b float64
	switch {
	case t < 0.25:
		r, g, b = 0, 4*t, 1
	case t < 0.5:
		r, g, b = 0, 1, 1-4*(t-0.25)
	case t < 0.75:
		r, g, b = 4*(t-0.5), 1, 0
	default:
		r, g, b = 1, 1-4*(t-0.75), 0
	}
	return toRGBA(r, g, b)
}

// Hot ramps black-red-yellow-white.
func Hot(t float64) color.RGBA {
	t = clamp01(t)
	r := clamp01(t * 3)
	g := clamp01(t*3 - 1)
	b := clamp01(t*3 - 2)
	return toRGBA(r, g, b)
}

// Cool blends cyan to magenta.
func Cool(t float64) color.RGBA {
	t = clamp01(t)
	return toRGBA(t, 1-t, 1)
}

// Grayscale maps intensity straight to luminance.
func Grayscale(t float64) color.RGBA {
	t = clamp01(t)
	return toRGBA(t, t, t)
}

// HSV walks the hue circle at full saturation and value. Useful for cyclic
// quantities; AngleColor below is the variant for explicit angles.
func HSV(t float64) color.RGBA {
	c := colorful.Hsv(clamp01(t)*360, 1, 1)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// AngleColor maps an angle in degrees to a hue with fixed saturation and
// brightness. The alpha channel is left to the caller.
func AngleColor(deg, saturation, value float64) color.RGBA {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	c := colorful.Hsv(deg, saturation, value)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func toRGBA(r, g, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
