package skyisle

import "math"

// FlightConfig tunes a Flyer. The zero value is not useful; start from
// DefaultFlightConfig.
type FlightConfig struct {
	MaxSpeed         float64 `toml:"max_speed"`         // velocity magnitude cap, units per second
	SteeringGain     float64 `toml:"steering_gain"`     // fraction of (target - velocity) applied as acceleration
	RetargetInterval float64 `toml:"retarget_interval"` // seconds between random target directions
	Bounds           Box     `toml:"bounds"`            // position is kept inside this volume

	// TargetSpread bounds each component of the raw random target direction
	// before normalisation: x in [-X, X], y in [-Y, Y], z in [-Z, Z].
	TargetSpread Vec3 `toml:"target_spread"`

	// Cosmetic banking. Bank angle is sin(2*Heading)*BankAmplitude where
	// Heading advances by BankRate radians per second.
	BankRate      float64 `toml:"bank_rate"`
	BankAmplitude float64 `toml:"bank_amplitude"`
}

// DefaultFlightConfig returns the unicorn's flight tuning.
func DefaultFlightConfig() FlightConfig {
	return FlightConfig{
		MaxSpeed:         2,
		SteeringGain:     0.05,
		RetargetInterval: 3,
		Bounds:           Box{Min: Vec3{-50, 5, -50}, Max: Vec3{50, 30, 50}},
		TargetSpread:     Vec3{1, 0.5, 1},
		BankRate:         0.5,
		BankAmplitude:    0.15,
	}
}

// Flyer is a steering body: a velocity and acceleration model that picks a
// new random heading every RetargetInterval seconds and bounces off the
// faces of its bounding box one axis at a time.
type Flyer struct {
	FlightConfig

	Position     Vec3
	Velocity     Vec3
	Acceleration Vec3

	RetargetTimer float64
	// Heading is a monotonically increasing angle accumulator that drives the
	// cosmetic bank. It is independent of the velocity.
	Heading float64
}

// NewFlyer creates a flyer at pos with a random initial velocity of
// magnitude cfg.MaxSpeed, mostly horizontal.
func NewFlyer(cfg FlightConfig, pos Vec3, rng *RNG) *Flyer {
	f := &Flyer{FlightConfig: cfg, Position: cfg.Bounds.Clamp(pos)}
	v := Vec3{rng.Float(-0.5, 0.5), rng.Float(-0.2, 0.2), rng.Float(-0.5, 0.5)}
	f.Velocity = v.Normalize().Mul(cfg.MaxSpeed)
	return f
}

// Retarget picks a new random target direction scaled to MaxSpeed and sets
// the steering acceleration toward it.
func (f *Flyer) Retarget(rng *RNG) {
	s := f.TargetSpread
	target := Vec3{
		rng.Float(-s.X, s.X),
		rng.Float(-s.Y, s.Y),
		rng.Float(-s.Z, s.Z),
	}.Normalize().Mul(f.MaxSpeed)
	f.Acceleration = target.Sub(f.Velocity).Mul(f.SteeringGain)
}

// Step advances the flyer by dt seconds. After Step the position lies inside
// Bounds and the speed does not exceed MaxSpeed.
func (f *Flyer) Step(dt float64, rng *RNG) {
	f.RetargetTimer += dt
	if f.RetargetTimer >= f.RetargetInterval {
		f.Retarget(rng)
		f.RetargetTimer = 0
	}

	f.Velocity = f.Velocity.Add(f.Acceleration.Mul(dt)).ClampLen(f.MaxSpeed)
	p := f.Position.Add(f.Velocity.Mul(dt))

	p.X, f.Velocity.X = reflectAxis(p.X, f.Velocity.X, f.Bounds.Min.X, f.Bounds.Max.X)
	p.Y, f.Velocity.Y = reflectAxis(p.Y, f.Velocity.Y, f.Bounds.Min.Y, f.Bounds.Max.Y)
	p.Z, f.Velocity.Z = reflectAxis(p.Z, f.Velocity.Z, f.Bounds.Min.Z, f.Bounds.Max.Z)
	f.Position = p

	f.Heading += dt * f.BankRate
}

// reflectAxis clamps x to [lo, hi] and negates v when a bound was crossed.
func reflectAxis(x, v, lo, hi float64) (float64, float64) {
	switch {
	case x < lo:
		return lo, -v
	case x > hi:
		return hi, -v
	}
	return x, v
}

// Bank returns the current cosmetic roll angle.
func (f *Flyer) Bank() float64 {
	return math.Sin(2*f.Heading) * f.BankAmplitude
}

// Apply writes the flyer state into n: position, a rotation facing the
// direction of travel, and the cosmetic bank as roll.
func (f *Flyer) Apply(n *Node) {
	n.SetPosition(f.Position)
	if f.Velocity != (Vec3{}) {
		n.LookAt(f.Position.Add(f.Velocity.Normalize()))
	}
	n.Rotation.Z = f.Bank()
}
