package skyisle

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color (no tint).
var ColorWhite = Color{1, 1, 1, 1}

// Hex builds an opaque Color from a 0xRRGGBB literal.
func Hex(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// RGBA converts the color to a non-premultiplied color.NRGBA.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// MarshalText encodes the color as #rrggbb, or #rrggbbaa when translucent.
func (c Color) MarshalText() ([]byte, error) {
	n := c.RGBA()
	if n.A == 255 {
		return fmt.Appendf(nil, "#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Appendf(nil, "#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// UnmarshalText decodes #rrggbb or #rrggbbaa.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", text, err)
	}
	if len(s) == 6 {
		*c = Hex(uint32(v))
		return nil
	}
	*c = Hex(uint32(v >> 8))
	c.A = float64(v&0xff) / 255
	return nil
}

// Scale multiplies the RGB channels by k, leaving alpha untouched.
func (c Color) Scale(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A}
}

// Vec2 is a 2D vector used for outlines, screen positions and drag deltas.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector used for positions, rotations (Euler radians), scales
// and directions throughout the API. The Y axis points up.
type Vec3 struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// V3 returns a Vec3 with the given components.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns v scaled by s.
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// MulVec returns the component-wise product of v and o.
func (v Vec3) MulVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// ClampLen returns v with its length limited to [0, max].
func (v Vec3) ClampLen(max float64) Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// Lerp interpolates from v toward o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t), lerp(v.Z, o.Z, t)}
}

// Range is a general-purpose min/max range.
// Used by the particle trail (TrailConfig) and the generators.
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Random returns a value in [Min, Max) drawn from rng.
func (r Range) Random(rng *RNG) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return rng.Float(r.Min, r.Max)
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether Min <= v <= Max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Box is an axis-aligned boundary volume. Points on a face are inside.
type Box struct {
	Min Vec3 `toml:"min"`
	Max Vec3 `toml:"max"`
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Empty reports whether any Min component exceeds its Max, leaving no
// point inside the box.
func (b Box) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Clamp returns p moved to the nearest point inside the box.
func (b Box) Clamp(p Vec3) Vec3 {
	return Vec3{
		math.Max(b.Min.X, math.Min(b.Max.X, p.X)),
		math.Max(b.Min.Y, math.Min(b.Max.Y, p.Y)),
		math.Max(b.Min.Z, math.Min(b.Max.Z, p.Z)),
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // transform-only node with no visual output
	NodeTypeMesh                   // triangle geometry with a material
	NodeTypeSprite                 // camera-facing textured quad (glows, nebulae)
	NodeTypePoints                 // particle trail rendered as billboards
	NodeTypeLight                  // point, directional or ambient light
)

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
