package skyisle

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a full-screen image effect.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
}

// BloomConfig controls the bloom post pass. Pixels brighter than
// Threshold are blurred by Radius pixels and added back scaled by
// Intensity. A zero Intensity disables the pass.
type BloomConfig struct {
	Intensity float64 `toml:"intensity"`
	Radius    int     `toml:"radius"`
	Threshold float64 `toml:"threshold"`
}

// DefaultBloomConfig returns a soft glow around the sun, moon and trail.
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{Intensity: 1.5, Radius: 16, Threshold: 0.8}
}

// --- Kage shader sources ---
// Ebitengine uses premultiplied alpha; the shader un-premultiplies before
// measuring luminance and re-premultiplies the output.

const thresholdShaderSrc = `//kage:unit pixels
package main

var Threshold float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	l := dot(c.rgb, vec3(0.2126, 0.7152, 0.0722))
	if l <= Threshold {
		return vec4(0)
	}
	k := (l - Threshold) / max(1-Threshold, 0.0001)
	k = clamp(k, 0, 1)
	return vec4(c.rgb*k*c.a, c.a*k)
}
`

// --- Lazy shader compilation (single-threaded, render thread only) ---

var thresholdShader *ebiten.Shader

func ensureThresholdShader() *ebiten.Shader {
	if thresholdShader == nil {
		s, err := ebiten.NewShader([]byte(thresholdShaderSrc))
		if err != nil {
			panic("skyisle: failed to compile threshold shader: " + err.Error())
		}
		thresholdShader = s
	}
	return thresholdShader
}

// ThresholdFilter keeps only pixels whose luminance exceeds Threshold,
// fading them in above it.
type ThresholdFilter struct {
	Threshold float64
	uniforms  map[string]any
	shaderOp  ebiten.DrawRectShaderOptions
}

// NewThresholdFilter creates a threshold filter.
func NewThresholdFilter(threshold float64) *ThresholdFilter {
	return &ThresholdFilter{Threshold: threshold, uniforms: make(map[string]any, 1)}
}

// Apply renders the bright pixels of src into dst.
func (f *ThresholdFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureThresholdShader()
	f.uniforms["Threshold"] = float32(f.Threshold)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// --- BlurFilter ---

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No Kage shader needed: bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// blurPasses returns the number of halvings for radius, minimum 1.
func blurPasses(radius int) int {
	return max(int(math.Ceil(math.Log2(float64(radius)))), 1)
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	if f.Radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	passes := blurPasses(f.Radius)
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Downscale passes: each half-size
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	// Upscale passes: draw each back up
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	drawScaled(dst, current, op)
}

// drawScaled stretches src over dst with linear filtering.
func drawScaled(dst, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sb, db := src.Bounds(), dst.Bounds()
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// --- Bloom ---

// bloomPass extracts the bright parts of a frame, blurs them and adds them
// back. Offscreen images are kept between frames and reallocated on resize.
type bloomPass struct {
	threshold *ThresholdFilter
	blur      *BlurFilter
	bright    *ebiten.Image
	glow      *ebiten.Image
	op        ebiten.DrawImageOptions
}

func newBloomPass() *bloomPass {
	return &bloomPass{
		threshold: NewThresholdFilter(0.8),
		blur:      NewBlurFilter(16),
	}
}

func (b *bloomPass) ensureTargets(w, h int) {
	if b.bright != nil && b.bright.Bounds().Dx() == w && b.bright.Bounds().Dy() == h {
		b.bright.Clear()
		b.glow.Clear()
		return
	}
	if b.bright != nil {
		b.bright.Deallocate()
		b.glow.Deallocate()
	}
	b.bright = ebiten.NewImage(w, h)
	b.glow = ebiten.NewImage(w, h)
}

// Apply adds the bloom of screen onto screen.
func (b *bloomPass) Apply(screen *ebiten.Image, cfg BloomConfig) {
	bounds := screen.Bounds()
	b.ensureTargets(bounds.Dx(), bounds.Dy())

	b.threshold.Threshold = cfg.Threshold
	b.blur.Radius = cfg.Radius
	b.threshold.Apply(screen, b.bright)
	b.blur.Apply(b.bright, b.glow)

	k := float32(cfg.Intensity)
	b.op.GeoM.Reset()
	b.op.ColorScale.Reset()
	b.op.ColorScale.Scale(k, k, k, k)
	b.op.Blend = ebiten.BlendLighter
	screen.DrawImage(b.glow, &b.op)
}
