package skyisle

import (
	"math"

	"cogentcore.org/core/base/randx"
)

// RNG is the random source threaded through every generator and updater.
// A fixed seed reproduces the same island, flight paths and trail.
type RNG struct {
	src randx.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: randx.NewSysRand(seed)}
}

// WrapRNG adapts an existing randx.Rand. A nil src uses the global stream.
func WrapRNG(src randx.Rand) *RNG {
	if src == nil {
		src = randx.NewGlobalRand()
	}
	return &RNG{src: src}
}

// Source exposes the underlying randx.Rand for distribution helpers.
func (r *RNG) Source() randx.Rand { return r.src }

// Float returns a uniform value in [min, max).
func (r *RNG) Float(min, max float64) float64 {
	return r.src.Float64()*(max-min) + min
}

// Int returns floor(Float(min, max)).
func (r *RNG) Int(min, max float64) int {
	return int(math.Floor(r.Float(min, max)))
}

// Unit returns a uniform value in [0, 1).
func (r *RNG) Unit() float64 {
	return r.src.Float64()
}

// Signed returns a uniform value in [-mag/2, mag/2).
func (r *RNG) Signed(mag float64) float64 {
	return (r.src.Float64() - 0.5) * mag
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Angle returns a uniform angle in [0, 2π).
func (r *RNG) Angle() float64 {
	return r.src.Float64() * 2 * math.Pi
}

// Pick returns a uniformly chosen element index in [0, n). n must be > 0.
func (r *RNG) Pick(n int) int {
	return r.src.Intn(n)
}

// PickWeighted chooses an index according to weights that sum to 1.
func (r *RNG) PickWeighted(weights []float64) int {
	return randx.PChoose64(weights, r.src)
}

// Gaussian returns a normally distributed value clamped to bounds.
func (r *RNG) Gaussian(mean, sigma float64, bounds Range) float64 {
	return bounds.Clamp(randx.GaussianGen(mean, sigma, r.src))
}
