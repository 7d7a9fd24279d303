package skyisle

import "math"

// addBushes scatters squashed low-poly spheres on the grass cap.
func addBushes(g *Graph, parent NodeID, rng *RNG, count int) {
	mat := Material{Color: Hex(0x4c9c2e), Texture: TextureBush, Opacity: 1}
	for i := 0; i < count; i++ {
		size := rng.Float(0.4, 0.9)
		bush := NewMesh("bush", SphereGeometry(size, 6, 6), mat)
		angle := rng.Angle()
		radius := rng.Float(5, 8)
		bush.Position = Vec3{
			math.Cos(angle) * radius,
			7 + rng.Unit()*0.2,
			math.Sin(angle) * radius,
		}
		bush.Rotation.Y = rng.Unit() * math.Pi
		bush.Scale = Vec3{size * 2, size * 3, size * 2}
		g.Add(parent, bush)
	}
}

// addTrees plants pine trees: a trunk plus stacked leaf cones that narrow
// toward the top. Layers whose cone would have no height or radius are
// skipped.
func addTrees(g *Graph, parent NodeID, rng *RNG, count, maxLayers int) {
	trunkMat := Material{Color: Hex(0x8b5a2b), Opacity: 1}
	leafMat := Material{Color: Hex(0x227a1c), Texture: TextureBush, Opacity: 1}
	if maxLayers < 2 {
		maxLayers = 2
	}
	for i := 0; i < count; i++ {
		h := rng.Unit()*2 + 3
		r := 0.25 + rng.Unit()*0.1
		trunk := NewMesh("trunk", CylinderGeometry(r, r, h, 8, 1), trunkMat)
		angle := rng.Angle()
		radius := rng.Float(5, 9)
		trunk.Position = Vec3{math.Cos(angle) * radius, 7 + h/2, math.Sin(angle) * radius}

		layers := rng.Int(1, float64(maxLayers))
		for j := 0; j < layers; j++ {
			coneH := h*0.5 - float64(j)*0.6
			coneR := h*0.7 - float64(j)*0.4
			if coneH <= 0 || coneR <= 0 {
				continue
			}
			leaves := NewMesh("leaves", ConeGeometry(coneR, coneH, 9), leafMat)
			leaves.Position = Vec3{
				trunk.Position.X,
				trunk.Position.Y + h/2 + coneH/2 + float64(j)*0.4,
				trunk.Position.Z,
			}
			leaves.Rotation.Y = rng.Angle()
			g.Add(parent, leaves)
		}
		g.Add(parent, trunk)
	}
}
