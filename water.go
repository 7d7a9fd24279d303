package skyisle

import "math"

// waterMaterial is the translucent double-sided surface shared by the pond
// and the waterfalls.
func waterMaterial() Material {
	return Material{Color: ColorWhite, Texture: TextureWater, Opacity: 0.9, DoubleSide: true}
}

// CreatePond lays a horizontal water disc on the grass cap.
func CreatePond(s *Scene, parent NodeID) NodeID {
	pond := NewMesh("pond", CircleGeometry(3.8, 25), waterMaterial())
	pond.Rotation.X = -math.Pi / 2
	pond.Position.Y = 7.2
	return s.Graph().Add(parent, pond)
}

// CreateWaterfalls hangs two water sheets on opposite sides of the island.
func CreateWaterfalls(s *Scene, parent NodeID) NodeID {
	g := s.Graph()
	id := g.Add(parent, NewGroup("waterfalls"))
	for i := 0; i < 2; i++ {
		x := 5.0
		if i == 1 {
			x = -5
		}
		fall := NewMesh("waterfall", PlaneGeometry(1.2, 6, 1, 1), waterMaterial())
		fall.Position = Vec3{x, -1.5, 1.5}
		fall.Rotation.Y = math.Pi / 4
		g.Add(id, fall)
	}
	return id
}

// CreateRockBorder rings the pond with small stones lying in the pond's plane.
func CreateRockBorder(s *Scene, pond NodeID, rng *RNG) NodeID {
	const (
		count  = 20
		radius = 4.0
	)
	g := s.Graph()
	border := NewGroup("rock-border")
	border.Rotation.X = -math.Pi / 2
	id := g.Add(pond, border)
	mat := Material{Color: Hex(0x9c9c9c), Opacity: 1, FlatShading: true}
	for i := 0; i < count; i++ {
		size := rng.Unit()*0.4 + 0.2
		rock := NewMesh("border-rock", SphereGeometry(size, 10, 10), mat)
		angle := float64(i) / count * 2 * math.Pi
		rock.Position = Vec3{
			math.Cos(angle)*radius + rng.Unit()*0.2 - 0.1,
			0,
			math.Sin(angle)*radius + rng.Unit()*0.2 - 0.1,
		}
		g.Add(id, rock)
	}
	return id
}

// OceanConfig controls CreateOcean.
type OceanConfig struct {
	Width      float64 `toml:"width"`
	Depth      float64 `toml:"depth"`
	SegmentsX  int     `toml:"segments_x"`
	SegmentsZ  int     `toml:"segments_z"`
	Y          float64 `toml:"y"`
	WaveHeight float64 `toml:"wave_height"`
	// TimeScale converts scene seconds into ripple phase time.
	TimeScale float64 `toml:"time_scale"`
}

// DefaultOceanConfig returns the sea plane below the island.
func DefaultOceanConfig() OceanConfig {
	return OceanConfig{
		Width:      250,
		Depth:      260,
		SegmentsX:  90,
		SegmentsZ:  64,
		Y:          -5,
		WaveHeight: 0.5,
		TimeScale:  0.5,
	}
}

// Ocean is the rippling sea plane. Update displaces the plane's local Z
// (world Y) from each vertex's distance to the center.
type Ocean struct {
	Node NodeID
	cfg  OceanConfig
	geo  *Geometry
	dist []float64
}

// CreateOcean adds the sea plane under parent.
func CreateOcean(s *Scene, parent NodeID, cfg OceanConfig) *Ocean {
	geo := PlaneGeometry(cfg.Width, cfg.Depth, cfg.SegmentsX, cfg.SegmentsZ)
	n := NewMesh("ocean", geo, Material{Color: Hex(0x1e90ff), Opacity: 0.8, DoubleSide: true})
	n.Rotation.X = -math.Pi / 2
	n.Position.Y = cfg.Y
	o := &Ocean{Node: s.Graph().Add(parent, n), cfg: cfg, geo: geo}
	o.dist = make([]float64, len(geo.Positions))
	for i, p := range geo.Positions {
		o.dist[i] = math.Hypot(p.X, p.Y)
	}
	o.Update(0)
	return o
}

// RippleHeight returns the displacement at distance d from the center at
// ripple time t.
func RippleHeight(d, t, h float64) float64 {
	return math.Sin(d*4-t*5)*h*0.5 + math.Cos(d*2+t*3)*h*0.3
}

// Update displaces every vertex for scene time elapsed.
func (o *Ocean) Update(elapsed float64) {
	t := elapsed * o.cfg.TimeScale
	for i := range o.geo.Positions {
		o.geo.Positions[i].Z = RippleHeight(o.dist[i], t, o.cfg.WaveHeight)
	}
	o.geo.Dirty = true
}

// Geometry returns the displaced plane.
func (o *Ocean) Geometry() *Geometry { return o.geo }
