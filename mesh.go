package skyisle

import "math"

// UV is a texture coordinate in [0, 1].
type UV struct {
	U, V float64
}

// Geometry is an indexed triangle mesh in local space. Positions are shared
// between triangles; face normals are derived at render time so jittered and
// displaced meshes shade correctly without a normal buffer.
type Geometry struct {
	Positions []Vec3
	// UVs is either empty or the same length as Positions.
	UVs     []UV
	Indices []uint16

	// Dirty is set whenever vertex data changes. The renderer clears it after
	// re-reading the positions.
	Dirty bool
}

// NewGeometry creates a geometry from positions and triangle indices.
func NewGeometry(positions []Vec3, indices []uint16) *Geometry {
	return &Geometry{Positions: positions, Indices: indices, Dirty: true}
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Positions) }

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int { return len(g.Indices) / 3 }

// Clone returns a deep copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		Positions: append([]Vec3(nil), g.Positions...),
		Indices:   append([]uint16(nil), g.Indices...),
		Dirty:     true,
	}
	if len(g.UVs) > 0 {
		c.UVs = append([]UV(nil), g.UVs...)
	}
	return c
}

// Translate offsets every vertex by t.
func (g *Geometry) Translate(t Vec3) *Geometry {
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].Add(t)
	}
	g.Dirty = true
	return g
}

// ScaleBy scales every vertex component-wise by s.
func (g *Geometry) ScaleBy(s Vec3) *Geometry {
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].MulVec(s)
	}
	g.Dirty = true
	return g
}

// Transform applies m to every vertex.
func (g *Geometry) Transform(m Mat4) *Geometry {
	for i := range g.Positions {
		g.Positions[i] = m.Apply(g.Positions[i])
	}
	g.Dirty = true
	return g
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty
// geometry returns the zero Box.
func (g *Geometry) Bounds() Box {
	if len(g.Positions) == 0 {
		return Box{}
	}
	b := Box{Min: g.Positions[0], Max: g.Positions[0]}
	for _, p := range g.Positions[1:] {
		b.Min = Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
		b.Max = Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
	}
	return b
}

// FaceNormal returns the unit normal of triangle tri (counter-clockwise
// winding) after transforming its vertices by m.
func (g *Geometry) FaceNormal(tri int, m Mat4) Vec3 {
	a := m.Apply(g.Positions[g.Indices[tri*3]])
	b := m.Apply(g.Positions[g.Indices[tri*3+1]])
	c := m.Apply(g.Positions[g.Indices[tri*3+2]])
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Jitter perturbs every vertex coordinate in place by an independent uniform
// offset in [-per/2, per/2) and marks the geometry dirty. per == 0 leaves the
// positions unchanged.
func Jitter(g *Geometry, per float64, rng *RNG) {
	if per != 0 {
		for i := range g.Positions {
			p := &g.Positions[i]
			p.X += rng.Signed(per)
			p.Y += rng.Signed(per)
			p.Z += rng.Signed(per)
		}
	}
	g.Dirty = true
}
