package skyisle

import "math"

// MountainConfig controls CreateMountains.
type MountainConfig struct {
	Count    int     `toml:"count"`
	Height   Range   `toml:"height"`
	Radius   Range   `toml:"radius"`
	Ring     Range   `toml:"ring"`
	Segments int     `toml:"segments"`
	BaseY    float64 `toml:"base_y"`
}

// DefaultMountainConfig returns the mountain ring layout.
func DefaultMountainConfig() MountainConfig {
	return MountainConfig{
		Count:    8,
		Height:   Range{Min: 4, Max: 8},
		Radius:   Range{Min: 0.8, Max: 2.8},
		Ring:     Range{Min: 3, Max: 6},
		Segments: 30,
		BaseY:    3.5,
	}
}

// CreateMountains places a ring of flat-shaded cones under parent, usually
// the island group. Each cone sits on BaseY.
func CreateMountains(s *Scene, parent NodeID, rng *RNG, cfg MountainConfig) NodeID {
	g := s.Graph()
	id := g.Add(parent, NewGroup("mountains"))
	mat := Material{Color: ColorWhite, Texture: TextureMountain, Opacity: 1, FlatShading: true}
	for i := 0; i < cfg.Count; i++ {
		h := cfg.Height.Random(rng)
		r := cfg.Radius.Random(rng)
		m := NewMesh("mountain", ConeGeometry(r, h, cfg.Segments), mat)
		angle := rng.Angle()
		ring := cfg.Ring.Random(rng)
		m.Position = Vec3{math.Cos(angle) * ring, h*0.5 + cfg.BaseY, math.Sin(angle) * ring}
		m.Rotation.Y = rng.Unit() * math.Pi
		g.Add(id, m)
	}
	return id
}
