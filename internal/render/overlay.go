package render

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// glyphs is a minimal 3x5 pixel font for digits, used to stamp hotspot
// indices onto heatmaps without pulling in a font rasterizer.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// AsRGBA returns img as an *image.RGBA, copying only when necessary.
func AsRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	return clone.AsRGBA(img)
}

// DrawLabel stamps a numeric text label at (x, y) with a filled background
// box so the label stays readable on busy maps.
func DrawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}

// DrawRing draws a one-pixel circle outline centered at (cx, cy).
func DrawRing(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	bounds := img.Bounds()
	steps := 8 * radius
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		px := cx + int(math.Round(float64(radius)*math.Cos(theta)))
		py := cy + int(math.Round(float64(radius)*math.Sin(theta)))
		if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
			img.Set(px, py, c)
		}
	}
}

// DrawArrow draws a direction vector from (x, y) with the given angle in
// radians and length in pixels, including a two-stroke arrow head.
func DrawArrow(img *image.RGBA, x, y int, angle, length float64, c color.RGBA) {
	tipX := float64(x) + length*math.Cos(angle)
	tipY := float64(y) + length*math.Sin(angle)
	drawSegment(img, float64(x), float64(y), tipX, tipY, c)

	headLen := length * 0.35
	if headLen < 2 {
		headLen = 2
	}
	for _, da := range []float64{math.Pi * 7 / 8, -math.Pi * 7 / 8} {
		hx := tipX + headLen*math.Cos(angle+da)
		hy := tipY + headLen*math.Sin(angle+da)
		drawSegment(img, tipX, tipY, hx, hy, c)
	}
}

// drawSegment rasterizes a line segment by uniform sampling. Fine for short
// overlay strokes; not a general line rasterizer.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	bounds := img.Bounds()
	steps := int(math.Ceil(math.Hypot(x1-x0, y1-y0))) * 2
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := int(math.Round(x0 + t*(x1-x0)))
		py := int(math.Round(y0 + t*(y1-y0)))
		if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
			img.Set(px, py, c)
		}
	}
}
