package skyisle

import "math"

// --- Lathe (cylinders, cones, spheres) ---

// latheRing is one horizontal ring of a surface of revolution. A ring with a
// zero radius collapses to a single vertex on the axis.
type latheRing struct {
	radius, y float64
}

// buildLathe revolves the profile rings (top to bottom) around the Y axis.
// Vertices are shared around each ring, so jitter never opens a seam.
// Returns the geometry plus the first vertex index of each ring.
func buildLathe(rings []latheRing, segments int) (*Geometry, []int) {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Dirty: true}
	starts := make([]int, len(rings))
	for r, ring := range rings {
		starts[r] = len(g.Positions)
		v := float64(r) / math.Max(1, float64(len(rings)-1))
		if ring.radius == 0 {
			g.Positions = append(g.Positions, Vec3{0, ring.y, 0})
			g.UVs = append(g.UVs, UV{0.5, v})
			continue
		}
		for s := 0; s < segments; s++ {
			theta := float64(s) / float64(segments) * 2 * math.Pi
			sin, cos := math.Sincos(theta)
			g.Positions = append(g.Positions, Vec3{ring.radius * sin, ring.y, ring.radius * cos})
			g.UVs = append(g.UVs, UV{float64(s) / float64(segments), v})
		}
	}

	for r := 0; r+1 < len(rings); r++ {
		top, bottom := starts[r], starts[r+1]
		topApex := rings[r].radius == 0
		bottomApex := rings[r+1].radius == 0
		for s := 0; s < segments; s++ {
			s1 := (s + 1) % segments
			switch {
			case topApex && bottomApex:
			case topApex:
				g.addTri(top, bottom+s, bottom+s1)
			case bottomApex:
				g.addTri(top+s, bottom, top+s1)
			default:
				a, b := top+s, bottom+s
				c, d := bottom+s1, top+s1
				g.addTri(a, b, d)
				g.addTri(b, c, d)
			}
		}
	}
	return g, starts
}

func (g *Geometry) addTri(a, b, c int) {
	g.Indices = append(g.Indices, uint16(a), uint16(b), uint16(c))
}

// CylinderGeometry builds a closed cylinder (or frustum) centered on the
// origin along Y. A zero radius at either end produces a cone tip instead of
// a cap.
func CylinderGeometry(radiusTop, radiusBottom, height float64, radialSegments, heightSegments int) *Geometry {
	if heightSegments < 1 {
		heightSegments = 1
	}
	half := height / 2
	rings := make([]latheRing, heightSegments+1)
	for i := range rings {
		t := float64(i) / float64(heightSegments)
		rings[i] = latheRing{radius: lerp(radiusTop, radiusBottom, t), y: half - t*height}
	}
	g, starts := buildLathe(rings, radialSegments)
	segs := max(radialSegments, 3)

	if radiusTop > 0 {
		center := len(g.Positions)
		g.Positions = append(g.Positions, Vec3{0, half, 0})
		g.UVs = append(g.UVs, UV{0.5, 0})
		ring := starts[0]
		for s := 0; s < segs; s++ {
			g.addTri(center, ring+s, ring+(s+1)%segs)
		}
	}
	if radiusBottom > 0 {
		center := len(g.Positions)
		g.Positions = append(g.Positions, Vec3{0, -half, 0})
		g.UVs = append(g.UVs, UV{0.5, 1})
		ring := starts[len(starts)-1]
		for s := 0; s < segs; s++ {
			g.addTri(center, ring+(s+1)%segs, ring+s)
		}
	}
	return g
}

// ConeGeometry builds a cone with its base centered below the origin and its
// tip at height/2.
func ConeGeometry(radius, height float64, radialSegments int) *Geometry {
	return CylinderGeometry(0, radius, height, radialSegments, 1)
}

// SphereGeometry builds a UV sphere centered on the origin.
func SphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	if heightSegments < 2 {
		heightSegments = 2
	}
	rings := make([]latheRing, heightSegments+1)
	for i := range rings {
		phi := float64(i) / float64(heightSegments) * math.Pi
		sin, cos := math.Sincos(phi)
		r := radius * sin
		if i == 0 || i == heightSegments {
			r = 0
		}
		rings[i] = latheRing{radius: r, y: radius * cos}
	}
	g, _ := buildLathe(rings, widthSegments)
	return g
}

// IcosahedronGeometry builds a regular icosahedron with the given
// circumradius.
func IcosahedronGeometry(radius float64) *Geometry {
	t := (1 + math.Sqrt(5)) / 2
	raw := []Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	pos := make([]Vec3, len(raw))
	for i, p := range raw {
		pos[i] = p.Normalize().Mul(radius)
	}
	idx := []uint16{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return NewGeometry(pos, idx)
}

// --- Flat shapes ---

// PlaneGeometry builds a subdivided rectangle in the XY plane facing +Z.
// Vertices are laid out row by row from the top edge.
func PlaneGeometry(width, height float64, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}
	cols := widthSegments + 1
	rows := heightSegments + 1
	g := &Geometry{
		Positions: make([]Vec3, 0, cols*rows),
		UVs:       make([]UV, 0, cols*rows),
		Indices:   make([]uint16, 0, widthSegments*heightSegments*6),
		Dirty:     true,
	}
	cellW := width / float64(widthSegments)
	cellH := height / float64(heightSegments)
	for r := 0; r < rows; r++ {
		y := height/2 - float64(r)*cellH
		for c := 0; c < cols; c++ {
			x := float64(c)*cellW - width/2
			g.Positions = append(g.Positions, Vec3{x, y, 0})
			g.UVs = append(g.UVs, UV{float64(c) / float64(widthSegments), float64(r) / float64(heightSegments)})
		}
	}
	for r := 0; r < heightSegments; r++ {
		for c := 0; c < widthSegments; c++ {
			a := r*cols + c
			b := (r+1)*cols + c
			cc := b + 1
			d := a + 1
			g.addTri(a, b, d)
			g.addTri(b, cc, d)
		}
	}
	return g
}

// CircleGeometry builds a filled disc in the XY plane facing +Z.
func CircleGeometry(radius float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	g := &Geometry{Dirty: true}
	g.Positions = append(g.Positions, Vec3{})
	g.UVs = append(g.UVs, UV{0.5, 0.5})
	for s := 0; s < segments; s++ {
		sin, cos := math.Sincos(float64(s) / float64(segments) * 2 * math.Pi)
		g.Positions = append(g.Positions, Vec3{radius * cos, radius * sin, 0})
		g.UVs = append(g.UVs, UV{0.5 + cos/2, 0.5 - sin/2})
	}
	for s := 0; s < segments; s++ {
		g.addTri(0, 1+s, 1+(s+1)%segments)
	}
	return g
}

// --- Paths and extrusion ---

// Path is a 2D outline built from straight and cubic Bézier segments.
type Path struct {
	points []Vec2
}

// NewPath starts a path at p.
func NewPath(p Vec2) *Path {
	return &Path{points: []Vec2{p}}
}

// LineTo appends a straight segment.
func (p *Path) LineTo(to Vec2) *Path {
	p.points = append(p.points, to)
	return p
}

// CubicTo appends a cubic Bézier from the current point through controls c1
// and c2 to end, sampled with the given number of segments.
func (p *Path) CubicTo(c1, c2, end Vec2, segments int) *Path {
	if segments < 1 {
		segments = 1
	}
	a := p.points[len(p.points)-1]
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		u2 := u * u
		t2 := t * t
		p.points = append(p.points, Vec2{
			X: u2*u*a.X + 3*u2*t*c1.X + 3*u*t2*c2.X + t2*t*end.X,
			Y: u2*u*a.Y + 3*u2*t*c1.Y + 3*u*t2*c2.Y + t2*t*end.Y,
		})
	}
	return p
}

// Points returns the sampled outline without a duplicated closing point.
func (p *Path) Points() []Vec2 {
	pts := p.points
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// ExtrudeGeometry extrudes a closed outline along +Z by depth. Faces are
// triangulated as a fan around the outline centroid, which suits star-shaped
// outlines such as wings and petals.
func ExtrudeGeometry(outline []Vec2, depth float64) *Geometry {
	n := len(outline)
	g := &Geometry{Dirty: true}
	if n < 3 {
		return g
	}
	var cx, cy float64
	lo, hi := outline[0], outline[0]
	for _, p := range outline {
		cx += p.X
		cy += p.Y
		lo = Vec2{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)}
		hi = Vec2{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)}
	}
	cx /= float64(n)
	cy /= float64(n)
	uv := func(x, y float64) UV {
		w, h := hi.X-lo.X, hi.Y-lo.Y
		if w == 0 || h == 0 {
			return UV{}
		}
		return UV{(x - lo.X) / w, 1 - (y-lo.Y)/h}
	}

	// Front ring [0, n), back ring [n, 2n), then the two centers.
	for _, z := range []float64{0, depth} {
		for _, p := range outline {
			g.Positions = append(g.Positions, Vec3{p.X, p.Y, z})
			g.UVs = append(g.UVs, uv(p.X, p.Y))
		}
	}
	front := len(g.Positions)
	g.Positions = append(g.Positions, Vec3{cx, cy, 0}, Vec3{cx, cy, depth})
	g.UVs = append(g.UVs, uv(cx, cy), uv(cx, cy))
	back := front + 1

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		g.addTri(front, j, i)
		g.addTri(back, n+i, n+j)
		g.addTri(i, j, n+i)
		g.addTri(j, n+j, n+i)
	}
	return g
}
