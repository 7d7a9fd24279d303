package skyisle

import "math"

// Texture names used by the generators. Assets are registered under these
// names by TextureLibrary.Load; a missing asset renders the plain color.
const (
	TextureEarth    = "earth"
	TextureGrass    = "grass"
	TextureBush     = "bush"
	TextureMountain = "mountain"
	TextureWater    = "water"
	TextureNebula   = "nebula"
)

// IslandConfig controls CreateIsland.
type IslandConfig struct {
	GroundJitter float64 `toml:"ground_jitter"`
	TopJitter    float64 `toml:"top_jitter"`
	Rocks        int     `toml:"rocks"`
	Bushes       int     `toml:"bushes"`
	Trees        int     `toml:"trees"`
	// MaxConeLayers is the exclusive upper bound of pine leaf layers.
	MaxConeLayers int     `toml:"max_cone_layers"`
	Scale         Vec3    `toml:"scale"`
	Y             float64 `toml:"y"`
}

// DefaultIslandConfig returns the island layout.
func DefaultIslandConfig() IslandConfig {
	return IslandConfig{
		GroundJitter:  0.85,
		TopJitter:     0.3,
		Rocks:         30,
		Bushes:        40,
		Trees:         6,
		MaxConeLayers: 12,
		Scale:         Vec3{1.5, 1.1, 1.5},
		Y:             -5.2,
	}
}

// CreateIsland builds the floating island under parent: a jittered earth
// frustum, a jittered grass cap, loose rocks, bushes and pine trees. Counts
// below zero are treated as zero.
func CreateIsland(s *Scene, parent NodeID, rng *RNG, cfg IslandConfig) NodeID {
	g := s.Graph()
	island := NewGroup("island")
	island.Position = Vec3{0, cfg.Y, 0}
	island.Scale = cfg.Scale
	id := g.Add(parent, island)

	ground := CylinderGeometry(9, 3, 13, 12, 5)
	Jitter(ground, cfg.GroundJitter, rng)
	ground.Translate(Vec3{0, -0.5, 0})
	g.Add(id, NewMesh("earth", ground, Material{
		Color:       Hex(0xb07113),
		Texture:     TextureEarth,
		Opacity:     1,
		FlatShading: true,
	}))

	top := CylinderGeometry(8.5, 6, 7.5, 90, 2)
	Jitter(top, cfg.TopJitter, rng)
	top.Translate(Vec3{0, 3.1, 0})
	g.Add(id, NewMesh("grass", top, Material{
		Color:       Hex(0x56fc03),
		Texture:     TextureGrass,
		Opacity:     1,
		FlatShading: true,
	}))

	addRocks(g, id, rng, cfg.Rocks)
	addBushes(g, id, rng, cfg.Bushes)
	addTrees(g, id, rng, cfg.Trees, cfg.MaxConeLayers)

	children := island.NumChildren()
	if children == 0 {
		s.Logger().Warn("island built empty")
	} else {
		s.Logger().Info("island built", "children", children)
	}
	return id
}

func addRocks(g *Graph, parent NodeID, rng *RNG, count int) {
	mat := Material{Color: Hex(0x9eaeac), Opacity: 1, FlatShading: true}
	for i := 0; i < count; i++ {
		// Integer radii in [0.6, 1.5) floor to 0 or 1; 0 falls back to the
		// lower bound so every rock has volume.
		r := float64(rng.Int(0.6, 1.5))
		if r <= 0 {
			r = 0.6
		}
		rock := NewMesh("rock", IcosahedronGeometry(r), mat)
		rock.Position = Vec3{rng.Float(-5, 5.5), rng.Float(-5, 2), rng.Float(-2, 2)}
		rock.Rotation = Vec3{rng.Float(0, math.Pi), rng.Float(0, math.Pi), rng.Float(0, math.Pi)}
		rock.Scale = Vec3{rng.Float(0.8, 1.2), rng.Float(0.5, 3), 1}
		g.Add(parent, rock)
	}
}
