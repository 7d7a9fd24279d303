package skyisle

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// ColorStop is one stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// sampleStops interpolates the stops at t. Stops must be sorted by Offset.
func sampleStops(stops []ColorStop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			k := (t - a.Offset) / span
			return Color{
				R: lerp(a.Color.R, b.Color.R, k),
				G: lerp(a.Color.G, b.Color.G, k),
				B: lerp(a.Color.B, b.Color.B, k),
				A: lerp(a.Color.A, b.Color.A, k),
			}
		}
	}
	return stops[len(stops)-1].Color
}

// VerticalGradient fills a w x h raster from top to bottom.
func VerticalGradient(w, h int, top, bottom Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := color.RGBAModel.Convert(Color{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: lerp(top.A, bottom.A, t),
		}.RGBA()).(color.RGBA)
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}
	return img
}

// DiagonalGradient fills a w x h raster from the top-left to the
// bottom-right corner.
func DiagonalGradient(w, h int, stops []ColorStop) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	den := float64(w*w + h*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := (float64(x*w) + float64(y*h)) / den
			img.Set(x, y, sampleStops(stops, t).RGBA())
		}
	}
	return img
}

// RadialGlow renders a size x size radial gradient centered in the raster.
// The last stop usually fades to transparent.
func RadialGlow(size int, stops []ColorStop) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - half
			dy := float64(y) + 0.5 - half
			t := math.Sqrt(dx*dx+dy*dy) / half
			img.Set(x, y, sampleStops(stops, t).RGBA())
		}
	}
	return img
}

// FillEllipse rasterizes a filled ellipse onto dst.
func FillEllipse(dst draw.Image, cx, cy, rx, ry float64, c Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	ellipsePath(z, cx-float64(b.Min.X), cy-float64(b.Min.Y), rx, ry, false)
	z.Draw(dst, b, image.NewUniform(c.RGBA()), image.Point{})
}

// StrokeEllipse rasterizes an ellipse outline of the given width onto dst.
func StrokeEllipse(dst draw.Image, cx, cy, rx, ry, width float64, c Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	ox, oy := cx-float64(b.Min.X), cy-float64(b.Min.Y)
	hw := width / 2
	ellipsePath(z, ox, oy, rx+hw, ry+hw, false)
	if rx > hw && ry > hw {
		ellipsePath(z, ox, oy, rx-hw, ry-hw, true)
	}
	z.Draw(dst, b, image.NewUniform(c.RGBA()), image.Point{})
}

// ellipsePath adds a closed polygonal ellipse. reverse winds it the other
// way so it cuts a hole in an enclosing path.
func ellipsePath(z *vector.Rasterizer, cx, cy, rx, ry float64, reverse bool) {
	const segments = 48
	for i := 0; i <= segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		if reverse {
			a = -a
		}
		x := float32(cx + math.Cos(a)*rx)
		y := float32(cy + math.Sin(a)*ry)
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// DayBackground renders the clear-sky gradient.
func DayBackground(w, h int, cfg SkyConfig) *image.RGBA {
	return VerticalGradient(w, h, cfg.DayTop, cfg.DayBottom)
}

// NightBackground renders the night gradient scattered with stars of radius
// below cfg.StarMaxRadius.
func NightBackground(w, h int, cfg SkyConfig, rng *RNG) *image.RGBA {
	img := VerticalGradient(w, h, cfg.NightTop, cfg.NightBottom)
	for i := 0; i < cfg.Stars; i++ {
		x := rng.Unit() * float64(w)
		y := rng.Unit() * float64(h)
		r := rng.Unit() * cfg.StarMaxRadius
		FillEllipse(img, x, y, r, r, ColorWhite)
	}
	return img
}

// HSL converts hue (degrees), saturation and lightness in [0, 1] to a Color.
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{r + m, g + m, b + m, 1}
}

// WingTexture renders a butterfly wing: a diagonal gradient whose hue comes
// from the red channel of base, optionally crossed by a dark ellipse vein.
func WingTexture(base uint32, vein bool) *image.RGBA {
	const size = 256
	hue := float64(base >> 16)
	img := DiagonalGradient(size, size, []ColorStop{
		{0, HSL(hue+20, 1, 0.7)},
		{1, HSL(hue, 1, 0.5)},
	})
	if vein {
		StrokeEllipse(img, 150, 150, 50, 100, 2, Color{0, 0, 0, 0.3})
	}
	return img
}
