package skyisle

// CloudConfig controls CreateClouds.
type CloudConfig struct {
	Count int `toml:"count"`
	// Wrap bounds: X and Z wrap from Max back to Min; Y outside the band
	// resets to ResetY.
	WrapX  Range   `toml:"wrap_x"`
	WrapZ  Range   `toml:"wrap_z"`
	BandY  Range   `toml:"band_y"`
	ResetY float64 `toml:"reset_y"`
	// Per-tick drift speed spans; each cloud draws (r-0.5)*span per axis.
	Drift Vec3 `toml:"drift"`
}

// DefaultCloudConfig returns the cloud layer settings.
func DefaultCloudConfig() CloudConfig {
	return CloudConfig{
		Count:  12,
		WrapX:  Range{Min: -50, Max: 50},
		WrapZ:  Range{Min: -50, Max: 50},
		BandY:  Range{Min: 5, Max: 25},
		ResetY: 10,
		Drift:  Vec3{0.03, 0.01, 0.02},
	}
}

// Clouds is the drifting cloud layer.
type Clouds struct {
	Group  NodeID
	cfg    CloudConfig
	nodes  []*Node
	speeds []Vec3
}

// CreateClouds scatters translucent stretched spheres above the island.
func CreateClouds(s *Scene, parent NodeID, rng *RNG, cfg CloudConfig) *Clouds {
	g := s.Graph()
	c := &Clouds{Group: g.Add(parent, NewGroup("clouds")), cfg: cfg}
	geo := SphereGeometry(2.5, 12, 12)
	mat := Material{Color: Hex(0xd6f5ff), Opacity: 0.4}
	for i := 0; i < cfg.Count; i++ {
		n := NewMesh("cloud", geo, mat)
		n.Position = Vec3{rng.Unit()*50 - 25, rng.Unit()*20 + 15, rng.Unit()*50 - 25}
		n.Scale = Vec3{1.5, 1, 1.5}
		g.Add(c.Group, n)
		c.nodes = append(c.nodes, n)
		c.speeds = append(c.speeds, Vec3{
			rng.Signed(cfg.Drift.X),
			rng.Signed(cfg.Drift.Y),
			rng.Signed(cfg.Drift.Z),
		})
	}
	return c
}

// Update drifts every cloud by one tick and applies the wrap rules.
func (c *Clouds) Update() {
	for i, n := range c.nodes {
		p := n.Position.Add(c.speeds[i])
		if p.X > c.cfg.WrapX.Max {
			p.X = c.cfg.WrapX.Min
		}
		if p.Z > c.cfg.WrapZ.Max {
			p.Z = c.cfg.WrapZ.Min
		}
		if p.Y > c.cfg.BandY.Max || p.Y < c.cfg.BandY.Min {
			p.Y = c.cfg.ResetY
		}
		n.SetPosition(p)
	}
}

// Len returns the number of clouds.
func (c *Clouds) Len() int { return len(c.nodes) }

// Position returns the position of cloud i.
func (c *Clouds) Position(i int) Vec3 { return c.nodes[i].Position }
