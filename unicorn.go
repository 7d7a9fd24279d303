package skyisle

import (
	"fmt"
	"math"
)

// RainbowColors colors the tail and mane segments, front to back.
var RainbowColors = []uint32{0xFF0000, 0xFF4500, 0xFFFF00, 0x00FF00, 0x0000FF, 0x800080}

// UnicornConfig controls NewUnicorn.
type UnicornConfig struct {
	Flight FlightConfig `toml:"flight"`
	Trail  TrailConfig  `toml:"trail"`
	Start  Vec3         `toml:"start"`
	Scale  float64      `toml:"scale"`
	// Wing beat: peak angle in degrees, seconds per half beat, and the
	// start offset between the two wings.
	WingAmplitude float64 `toml:"wing_amplitude"`
	WingHalfBeat  float64 `toml:"wing_half_beat"`
	WingStagger   float64 `toml:"wing_stagger"`
	// TailPoint is the trail emitter in model space.
	TailPoint Vec3 `toml:"tail_point"`
}

// DefaultUnicornConfig returns the unicorn settings.
func DefaultUnicornConfig() UnicornConfig {
	return UnicornConfig{
		Flight:        DefaultFlightConfig(),
		Trail:         DefaultTrailConfig(),
		Start:         Vec3{0, 5, 0},
		Scale:         0.5,
		WingAmplitude: 30,
		WingHalfBeat:  0.5,
		WingStagger:   0.1,
		TailPoint:     Vec3{-5, 0, 0},
	}
}

// Unicorn is the flying hero: a composite model steered by a Flyer,
// flapping its wings and shedding a fairy-dust trail.
type Unicorn struct {
	// Group is moved and oriented by the flyer. Model sits inside it, turned
	// so the head (model +X) faces the group's +Z.
	Group  NodeID
	Model  NodeID
	Head   NodeID
	Dust   NodeID
	Wings  [2]NodeID
	Flyer  *Flyer
	Trail  *Trail
	cfg    UnicornConfig
	group  *Node
	yoyos  []*Yoyo
	emitAt Vec3
}

// NewUnicorn builds the unicorn under parent. The dust trail is attached to
// parent directly so its particles stay in world space.
func NewUnicorn(s *Scene, parent NodeID, rng *RNG, cfg UnicornConfig) *Unicorn {
	g := s.Graph()

	var (
		white   = Material{Color: ColorWhite, Opacity: 1}
		blue    = Material{Color: Hex(0x00BFFF), Opacity: 1}
		black   = Material{Color: Hex(0x000000), Opacity: 1}
		purple  = Material{Color: Hex(0x800080), Opacity: 1}
		sparkle = Material{Color: ColorWhite, Emissive: Hex(0x00BFFF), EmissiveIntensity: 1, Opacity: 1}
		mouth   = Material{Color: Hex(0xFF4040), Opacity: 1, DoubleSide: true, Unlit: true}
	)

	u := &Unicorn{cfg: cfg}
	u.group = NewGroup("unicorn")
	u.group.Position = cfg.Start
	u.group.SetUniformScale(cfg.Scale)
	u.Group = g.Add(parent, u.group)

	model := NewGroup("unicorn-model")
	model.Rotation.Y = -math.Pi / 2
	u.Model = g.Add(u.Group, model)

	body := NewMesh("body", SphereGeometry(4, 32, 32).ScaleBy(Vec3{1.2, 0.8, 0.8}), white)
	g.Add(u.Model, body)

	neck := NewMesh("neck", CylinderGeometry(1.2, 1.2, 4, 32, 1), white)
	neck.Position = Vec3{2, 2.5, 0}
	neck.Rotation.Z = degToRad(-30)
	g.Add(u.Model, neck)

	head := NewGroup("head")
	head.Position = Vec3{3.5, 5, 0}
	head.Rotation.Z = degToRad(-30)
	u.Head = g.Add(u.Model, head)
	g.Add(u.Head, NewMesh("skull", SphereGeometry(2, 32, 32).ScaleBy(Vec3{1.2, 1, 0.8}), white))

	eyeGeo := SphereGeometry(0.5, 16, 16)
	sparkleGeo := SphereGeometry(0.1, 8, 8)
	earGeo := ConeGeometry(0.4, 1, 32)
	for i := 0; i < 2; i++ {
		m := side(i)
		eye := NewMesh("eye", eyeGeo, black)
		eye.Position = Vec3{1, 0, m}
		g.Add(u.Head, eye)
		for j := 0; j < 3; j++ {
			a := float64(j) / 3 * 2 * math.Pi
			sp := NewMesh("sparkle", sparkleGeo, sparkle)
			sp.Position = Vec3{1 + math.Cos(a)*0.7, math.Sin(a) * 0.7, m}
			g.Add(u.Head, sp)
		}

		ear := NewMesh("ear", earGeo, white)
		ear.Position = Vec3{-0.5, 1.5, 0.8 * m}
		ear.Rotation.Z = degToRad(-30)
		g.Add(u.Head, ear)
	}

	horn := NewMesh("horn", ConeGeometry(0.8, 5, 12), blue)
	horn.Position = Vec3{0, 2, 0}
	g.Add(u.Head, horn)

	lips := NewGeometry([]Vec3{{1.2, -0.5, -0.5}, {1.3, -0.7, 0}, {1.2, -0.5, 0.5}}, []uint16{0, 1, 2})
	g.Add(u.Head, NewMesh("mouth", lips, mouth))

	legGeo := CylinderGeometry(0.8, 0.8, 2, 32, 1)
	hoofGeo := CylinderGeometry(0.9, 0.9, 0.5, 32, 1)
	for i := 0; i < 4; i++ {
		m := side(i)
		x := -2.0
		if i > 1 {
			x = 2
		}
		leg := NewMesh("leg", legGeo, white)
		leg.Position = Vec3{x, -3, 1.5 * m}
		hoof := NewMesh("hoof", hoofGeo, purple)
		hoof.Position = Vec3{x, -4.25, 1.5 * m}
		g.Add(u.Model, leg)
		g.Add(u.Model, hoof)
	}

	tail := g.Add(u.Model, NewGroup("tail"))
	mane := g.Add(u.Model, NewGroup("mane"))
	for i, c := range RainbowColors {
		mat := Material{Color: Hex(c), Opacity: 1}
		fi := float64(i)

		seg := NewMesh(fmt.Sprintf("tail-%d", i), SphereGeometry(rng.Float(0.5, 0.8), 16, 16), mat)
		seg.Position = Vec3{-5 - fi*1.2, -fi * 0.5, 0}
		g.Add(tail, seg)

		lock := NewMesh(fmt.Sprintf("mane-%d", i), SphereGeometry(rng.Float(0.5, 0.8), 16, 16), mat)
		lock.Position = Vec3{2 - fi*0.8, 3.5 + fi*0.3, 0}
		g.Add(mane, lock)
	}

	// Each wing hangs from a hinge. The hinge beats about its X axis and
	// the wing itself is turned edge-on along the body.
	wingGeo := NewGeometry(
		[]Vec3{{0, 0, 0}, {0, 3, 0}, {6, 1, 0}, {0, 0, 0}, {6, 1, 0}, {4, -2, 0}},
		[]uint16{0, 1, 2, 3, 4, 5},
	)
	wingMat := Material{Color: ColorWhite, Opacity: 1, DoubleSide: true}
	for i := 0; i < 2; i++ {
		m := side(i)
		hinge := NewGroup(fmt.Sprintf("wing-hinge-%d", i))
		hinge.Position = Vec3{0, 1, 2.5 * m}
		u.Wings[i] = g.Add(u.Model, hinge)

		wing := NewMesh("wing", wingGeo, wingMat)
		wing.Rotation.Y = degToRad(90 * m)
		g.Add(u.Wings[i], wing)

		u.yoyos = append(u.yoyos, YoyoRotationX(hinge,
			degToRad(cfg.WingAmplitude*m),
			float32(cfg.WingHalfBeat),
			float32(cfg.WingStagger*float64(i))))
	}

	u.Flyer = NewFlyer(cfg.Flight, cfg.Start, rng)
	u.Trail = NewTrail(cfg.Trail)
	u.Dust = g.Add(parent, NewPoints("fairy-dust", u.Trail, Material{
		Color:     Hex(0xFFC0CB),
		Opacity:   0.5,
		PointSize: 0.5,
		BlendMode: BlendAdd,
		Unlit:     true,
	}))

	s.Logger().Info("unicorn built", "parts", g.CountDescendants(u.Group))
	return u
}

// side returns -1 for even indices and 1 for odd ones.
func side(i int) float64 {
	if i%2 == 0 {
		return -1
	}
	return 1
}

// Update steps the flight, faces the direction of travel, beats the wings
// and feeds the trail from the tail.
func (u *Unicorn) Update(s *Scene, dt float64, rng *RNG) {
	u.Flyer.Step(dt, rng)
	u.Flyer.Apply(u.group)
	for _, y := range u.yoyos {
		y.Update(float32(dt))
	}
	u.emitAt = s.Graph().LocalToWorld(u.Model, u.cfg.TailPoint)
	u.Trail.Step(dt, u.emitAt, rng)
}

// Position returns the flyer position.
func (u *Unicorn) Position() Vec3 { return u.Flyer.Position }

// TailPosition returns the world-space emitter point used by the last
// Update.
func (u *Unicorn) TailPosition() Vec3 { return u.emitAt }

// Wing returns the hinge node of wing i (0 or 1).
func (u *Unicorn) Wing(s *Scene, i int) *Node { return s.Graph().Node(u.Wings[i]) }
