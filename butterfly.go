package skyisle

import (
	"fmt"
	"math"
)

// ButterflyPalette is the set of wing base colors.
var ButterflyPalette = []uint32{0xff6347, 0xffa500, 0xffff00, 0x32cd32, 0x4169e1, 0x9370db, 0xff69b4, 0x00ffff}

// SwarmConfig controls CreateButterflies.
type SwarmConfig struct {
	Count int `toml:"count"`
	// Orbit radius at spawn.
	Radius Range `toml:"radius"`
	// Orbit speed in radians per second.
	Speed Range `toml:"speed"`
	// Wing beat phase speed in radians per second.
	WingSpeed Range `toml:"wing_speed"`
	// Smoothing is the per-tick fraction of the gap to the orbit target
	// that is closed.
	Smoothing float64 `toml:"smoothing"`
	// FlightRadius is the clamp for random orbit radius changes.
	FlightRadius Range `toml:"flight_radius"`
	// TargetHeight is the band new target heights are drawn from.
	TargetHeight Range   `toml:"target_height"`
	RadiusChance float64 `toml:"radius_chance"`
	HeightChance float64 `toml:"height_chance"`
	// Bounds keeps every butterfly inside the island airspace.
	Bounds Box `toml:"bounds"`
}

// DefaultSwarmConfig returns the butterfly swarm settings.
func DefaultSwarmConfig() SwarmConfig {
	return SwarmConfig{
		Count:        25,
		Radius:       Range{Min: 10, Max: 24},
		Speed:        Range{Min: 0.3, Max: 0.9},
		WingSpeed:    Range{Min: 0.6, Max: 1.8},
		Smoothing:    0.1,
		FlightRadius: Range{Min: 1, Max: 15},
		TargetHeight: Range{Min: 8, Max: 11},
		RadiusChance: 0.005,
		HeightChance: 0.01,
		Bounds:       Box{Min: Vec3{-30, 5, -30}, Max: Vec3{30, 15, 30}},
	}
}

// Butterfly is one swarm member. All angles are radians.
type Butterfly struct {
	Node         NodeID
	Angle        float64
	Speed        float64
	HeightOffset float64
	FlightRadius float64
	WingPhase    float64
	WingSpeed    float64
	TargetHeight float64
	Oscillation  float64

	node        *Node
	left, right *Node
}

// Swarm is the butterfly flock: independent orbiters sharing a slowly
// turning wind.
type Swarm struct {
	Group       NodeID
	Butterflies []*Butterfly
	Wind        Vec3
	cfg         SwarmConfig
}

// wingOutline traces one butterfly wing.
func wingOutline() []Vec2 {
	const steps = 8
	return NewPath(Vec2{0, 0}).
		CubicTo(Vec2{0.4, 0.6}, Vec2{1.0, 1.0}, Vec2{1.2, 0.8}, steps).
		CubicTo(Vec2{0.8, 0.3}, Vec2{0.9, 0.1}, Vec2{0.8, 0}, steps).
		CubicTo(Vec2{0.7, -0.1}, Vec2{0.5, -0.2}, Vec2{0.3, -0.1}, steps).
		CubicTo(Vec2{0.1, 0}, Vec2{0, 0}, Vec2{0, 0}, steps).
		Points()
}

// CreateButterflies builds the swarm under parent. Wing textures are
// generated per butterfly and registered in the scene's texture library.
func CreateButterflies(s *Scene, parent NodeID, rng *RNG, cfg SwarmConfig) *Swarm {
	g := s.Graph()
	sw := &Swarm{
		Group: g.Add(parent, NewGroup("butterflies")),
		Wind:  Vec3{rng.Float(-0.05, 0.05), 0, rng.Float(-0.05, 0.05)},
		cfg:   cfg,
	}
	wingGeo := ExtrudeGeometry(wingOutline(), 0.03)
	bodyGeo := CylinderGeometry(0.05, 0.05, 0.5, 8, 1)
	bodyMat := Material{Color: Hex(0x3c2f2f), Opacity: 1}

	for i := 0; i < cfg.Count; i++ {
		c1 := ButterflyPalette[rng.Pick(len(ButterflyPalette))]
		c2 := ButterflyPalette[rng.Pick(len(ButterflyPalette))]

		n := NewGroup(fmt.Sprintf("butterfly-%d", i))
		g.Add(sw.Group, n)
		g.Add(n.ID, NewMesh("body", bodyGeo, bodyMat))

		leftTex := fmt.Sprintf("wing-%d-l", i)
		rightTex := fmt.Sprintf("wing-%d-r", i)
		s.Textures().Put(leftTex, WingTexture(c1, rng.Chance(0.7)))
		s.Textures().Put(rightTex, WingTexture(c2, rng.Chance(0.7)))

		left := NewMesh("wing-l", wingGeo, Material{Color: ColorWhite, Texture: leftTex, Opacity: 1, DoubleSide: true})
		left.Position = Vec3{-0.3, 0, 0}
		left.Rotation.Z = math.Pi / 8
		right := NewMesh("wing-r", wingGeo, Material{Color: ColorWhite, Texture: rightTex, Opacity: 1, DoubleSide: true})
		right.Position = Vec3{0.3, 0, 0}
		right.Rotation.Z = -math.Pi / 8
		right.Scale.X = -1
		g.Add(n.ID, left)
		g.Add(n.ID, right)

		angle := rng.Angle()
		radius := cfg.Radius.Random(rng)
		n.Position = cfg.Bounds.Clamp(Vec3{math.Cos(angle) * radius, 8 + rng.Unit()*2, math.Sin(angle) * radius})
		n.Scale = Vec3{0.8, 0.8, 0.6}

		sw.Butterflies = append(sw.Butterflies, &Butterfly{
			Node:         n.ID,
			Angle:        angle,
			Speed:        cfg.Speed.Random(rng),
			HeightOffset: rng.Unit() * 1.5,
			FlightRadius: radius + rng.Unit()*2,
			WingPhase:    rng.Angle(),
			WingSpeed:    cfg.WingSpeed.Random(rng),
			TargetHeight: cfg.TargetHeight.Random(rng),
			Oscillation:  rng.Unit()*0.5 + 0.5,
			node:         n,
			left:         left,
			right:        right,
		})
	}
	return sw
}

// Update advances the swarm. dt is the tick length and t the scene time.
func (sw *Swarm) Update(dt, t float64, rng *RNG) {
	sw.Wind.X += rng.Signed(0.01)
	sw.Wind.Z += rng.Signed(0.01)
	sw.Wind = sw.Wind.Normalize().Mul(0.08)

	for _, b := range sw.Butterflies {
		sw.updateOne(b, dt, t, rng)
	}
}

func (sw *Swarm) updateOne(b *Butterfly, dt, t float64, rng *RNG) {
	cfg := &sw.cfg
	k := cfg.Smoothing

	b.WingPhase += b.WingSpeed * dt
	flap := math.Sin(b.WingPhase) * 0.5
	b.left.Rotation.Z = flap + math.Pi/8
	b.right.Rotation.Z = -flap - math.Pi/8
	b.left.MarkDirty()
	b.right.MarkDirty()

	b.Angle += b.Speed * dt

	p := b.node.Position
	tx := math.Cos(b.Angle)*b.FlightRadius + sw.Wind.X
	tz := math.Sin(b.Angle)*b.FlightRadius + sw.Wind.Z
	p.X += (tx - p.X) * k
	p.Z += (tz - p.Z) * k
	ty := b.TargetHeight + math.Sin(t*b.Oscillation+b.HeightOffset)*0.8
	p.Y += (ty - p.Y) * k

	if rng.Chance(cfg.RadiusChance) {
		b.FlightRadius = cfg.FlightRadius.Clamp(b.FlightRadius + rng.Signed(0.5))
	}
	if rng.Chance(cfg.HeightChance) {
		b.TargetHeight = cfg.TargetHeight.Random(rng)
	}

	p = cfg.Bounds.Clamp(p)
	b.node.SetPosition(p)
	b.node.LookAt(Vec3{p.X + math.Cos(b.Angle), p.Y, p.Z + math.Sin(b.Angle)})
	b.node.Rotation.X = math.Pi / 8
	b.node.Rotation.Z = math.Cos(b.Angle*2) * 0.2
}
