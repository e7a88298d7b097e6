package magnitude

import (
	"image"

	"github.com/spectralab/spectral-tools-mcp/internal/render"
)

// Visualize colorizes the magnitude map of a result with the named colormap
// (jet, hot or cool; unknown names fall back to jet). Zero-magnitude pixels
// render fully transparent so the map works as an overlay; all other pixels
// are opaque.
func Visualize(res *Result, colormap string) (*render.Raster, error) {
	cm := render.ColormapByName(colormap)

	out := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	max := res.MaxMagnitude
	if max == 0 {
		max = 1
	}

	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			v := res.MagnitudeMap[y*res.Width+x]
			if v == 0 {
				continue // transparent background
			}
			c := cm(v / max)
			out.SetRGBA(x, y, c)
		}
	}

	return render.EncodeRaster(out)
}
