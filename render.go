package skyisle

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultWidth      = 1280
	defaultHeight     = 720
	defaultCommandCap = 4096

	// pointLightScale converts point light intensity into diffuse weight.
	pointLightScale = 0.35
)

// texRef identifies a triangle's texture: a library name, a raw image, or
// neither for plain color.
type texRef struct {
	name string
	img  image.Image
}

// drawTri is one screen-space triangle ready for submission. Colors are
// straight alpha; premultiplication happens at submission time.
type drawTri struct {
	pts   [3]Vec2
	uv    [3]UV
	col   Color
	depth float64
	tex   texRef
	blend BlendMode
	order int
}

// projVert is a projected vertex of the mesh currently being emitted.
type projVert struct {
	screen Vec2
	depth  float64
	world  Vec3
	ok     bool
}

// frameBuffers holds per-frame scratch memory reused across frames.
type frameBuffers struct {
	tris    []drawTri
	sortBuf []drawTri
	proj    []projVert
	lights  lightSet
	order   int

	// Submission state
	verts     []ebiten.Vertex
	inds      []uint32
	images    map[image.Image]*ebiten.Image
	drawCalls int
}

// pointLight is a point light resolved to world space.
type pointLight struct {
	pos       Vec3
	color     Color
	intensity float64
	distance  float64
}

// lightSet is the lighting environment gathered from visible light nodes.
type lightSet struct {
	ambient     Color
	points      []pointLight
	directional []pointLight // pos holds the unit direction toward the light
}

// dotImage is the soft round billboard used for trail particles.
var dotImage = RadialGlow(32, []ColorStop{
	{0, ColorWhite},
	{0.5, Color{1, 1, 1, 0.6}},
	{1, Color{}},
})

// buildFrame projects every visible node of g through cam into f.tris and
// sorts them back to front. It touches no GPU state.
func buildFrame(g *Graph, cam *OrbitCamera, f *frameBuffers) {
	g.UpdateWorld()
	f.tris = f.tris[:0]
	f.order = 0
	f.gatherLights(g)

	eye := cam.Position()
	g.Walk(g.Root(), func(n *Node) bool {
		if !n.Visible {
			return false
		}
		switch n.Type {
		case NodeTypeMesh:
			f.emitMesh(n, cam, eye)
		case NodeTypeSprite:
			f.emitSprite(n, cam)
		case NodeTypePoints:
			f.emitPoints(n, cam)
		}
		return true
	})
	f.sortTris()
}

func (f *frameBuffers) gatherLights(g *Graph) {
	ls := &f.lights
	ls.ambient = Color{}
	ls.points = ls.points[:0]
	ls.directional = ls.directional[:0]
	g.Walk(g.Root(), func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Type != NodeTypeLight || n.Light == nil {
			return true
		}
		l := n.Light
		switch l.Kind {
		case LightAmbient:
			ls.ambient.R += l.Color.R * l.Intensity
			ls.ambient.G += l.Color.G * l.Intensity
			ls.ambient.B += l.Color.B * l.Intensity
		case LightPoint:
			ls.points = append(ls.points, pointLight{
				pos:       n.world.Translation(),
				color:     l.Color,
				intensity: l.Intensity,
				distance:  l.Distance,
			})
		case LightDirectional:
			ls.directional = append(ls.directional, pointLight{
				pos:       n.world.Translation().Normalize(),
				color:     l.Color,
				intensity: l.Intensity,
			})
		}
		return true
	})
}

// shade returns the lit color of a face with normal nrm at point p.
func (ls *lightSet) shade(m *Material, nrm, p Vec3) Color {
	if m.Unlit {
		return Color{m.Color.R, m.Color.G, m.Color.B, m.Opacity}
	}
	r, g, b := ls.ambient.R, ls.ambient.G, ls.ambient.B
	for i := range ls.points {
		pl := &ls.points[i]
		d := pl.pos.Sub(p)
		dist := d.Len()
		if dist == 0 {
			continue
		}
		att := 1.0
		if pl.distance > 0 {
			att = clamp01(1 - dist/pl.distance)
		}
		k := math.Max(0, nrm.Dot(d.Mul(1/dist))) * pl.intensity * pointLightScale * att
		r += pl.color.R * k
		g += pl.color.G * k
		b += pl.color.B * k
	}
	for i := range ls.directional {
		dl := &ls.directional[i]
		k := math.Max(0, nrm.Dot(dl.pos)) * dl.intensity
		r += dl.color.R * k
		g += dl.color.G * k
		b += dl.color.B * k
	}
	e := m.EmissiveIntensity
	return Color{
		R: clamp01(m.Color.R*r + m.Emissive.R*e),
		G: clamp01(m.Color.G*g + m.Emissive.G*e),
		B: clamp01(m.Color.B*b + m.Emissive.B*e),
		A: m.Opacity,
	}
}

func (f *frameBuffers) emitMesh(n *Node, cam *OrbitCamera, eye Vec3) {
	geo := n.Geometry
	m := &n.Material
	if geo == nil || len(geo.Indices) < 3 || m.Opacity <= 0 {
		return
	}
	if cap(f.proj) < len(geo.Positions) {
		f.proj = make([]projVert, len(geo.Positions))
	}
	f.proj = f.proj[:len(geo.Positions)]
	for i, p := range geo.Positions {
		w := n.world.Apply(p)
		s, d, ok := cam.Project(w)
		f.proj[i] = projVert{screen: s, depth: d, world: w, ok: ok}
	}
	geo.Dirty = false

	hasUV := len(geo.UVs) == len(geo.Positions)
	tex := texRef{name: m.Texture}
	for t := 0; t+2 < len(geo.Indices); t += 3 {
		ia, ib, ic := geo.Indices[t], geo.Indices[t+1], geo.Indices[t+2]
		a, b, c := &f.proj[ia], &f.proj[ib], &f.proj[ic]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		center := a.world.Add(b.world).Add(c.world).Mul(1.0 / 3)
		nrm := b.world.Sub(a.world).Cross(c.world.Sub(a.world)).Normalize()
		if nrm.Dot(eye.Sub(center)) < 0 {
			nrm = nrm.Mul(-1)
		}
		tri := drawTri{
			pts:   [3]Vec2{a.screen, b.screen, c.screen},
			col:   f.lights.shade(m, nrm, center),
			depth: (a.depth + b.depth + c.depth) / 3,
			tex:   tex,
			blend: m.BlendMode,
			order: f.order,
		}
		if hasUV {
			tri.uv = [3]UV{geo.UVs[ia], geo.UVs[ib], geo.UVs[ic]}
		}
		f.order++
		f.tris = append(f.tris, tri)
	}
}

// billboard appends a camera-facing square of the given pixel size.
func (f *frameBuffers) billboard(center Vec2, depth, size float64, col Color, tex texRef, blend BlendMode) {
	h := size / 2
	tl := Vec2{center.X - h, center.Y - h}
	tr := Vec2{center.X + h, center.Y - h}
	bl := Vec2{center.X - h, center.Y + h}
	br := Vec2{center.X + h, center.Y + h}
	f.tris = append(f.tris,
		drawTri{pts: [3]Vec2{tl, tr, bl}, uv: [3]UV{{0, 0}, {1, 0}, {0, 1}}, col: col, depth: depth, tex: tex, blend: blend, order: f.order},
		drawTri{pts: [3]Vec2{tr, br, bl}, uv: [3]UV{{1, 0}, {1, 1}, {0, 1}}, col: col, depth: depth, tex: tex, blend: blend, order: f.order + 1},
	)
	f.order += 2
}

func (f *frameBuffers) emitSprite(n *Node, cam *OrbitCamera) {
	m := &n.Material
	if m.Opacity <= 0 {
		return
	}
	center, depth, ok := cam.Project(n.world.Translation())
	if !ok {
		return
	}
	w := n.world
	sx := Vec3{w[0], w[4], w[8]}.Len()
	sy := Vec3{w[1], w[5], w[9]}.Len()
	size := math.Max(sx, sy) * cam.PixelsPerUnit(depth)
	if size < 0.5 {
		return
	}
	f.billboard(center, depth, size, Color{m.Color.R, m.Color.G, m.Color.B, m.Opacity},
		texRef{name: m.Texture, img: n.Image}, m.BlendMode)
}

func (f *frameBuffers) emitPoints(n *Node, cam *OrbitCamera) {
	tr := n.Trail
	m := &n.Material
	if tr == nil || m.Opacity <= 0 {
		return
	}
	tex := texRef{name: m.Texture, img: dotImage}
	tr.Each(func(_ int, p TrailParticle) {
		if p.Opacity <= 0 || p.Scale <= 0 {
			return
		}
		center, depth, ok := cam.Project(n.world.Apply(p.Position))
		if !ok {
			return
		}
		size := m.PointSize * p.Scale * 2 * cam.PixelsPerUnit(depth)
		f.billboard(center, depth, size, Color{m.Color.R, m.Color.G, m.Color.B, p.Opacity * m.Opacity}, tex, m.BlendMode)
	})
}

// Draw renders the current scene state onto screen: the sky background,
// the projected scene, then the bloom pass.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	b := screen.Bounds()
	s.Resize(b.Dx(), b.Dy())

	s.drawBackground(screen)
	buildFrame(s.graph, s.camera, &s.frame)
	s.submitBatches(screen)

	if s.bloomCfg.Intensity > 0 {
		if s.bloom == nil {
			s.bloom = newBloomPass()
		}
		s.bloom.Apply(screen, s.bloomCfg)
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.triangles = len(s.frame.tris)
		s.stats.drawCalls = s.frame.drawCalls
		s.logDebugStats()
	}
	s.captureScreenshots(screen)
}

// drawBackground uploads the sky raster when it changed and draws it
// stretched over the screen.
func (s *Scene) drawBackground(screen *ebiten.Image) {
	if s.sky == nil {
		screen.Fill(DefaultSkyConfig().DayBottom.RGBA())
		return
	}
	src := s.sky.Background()
	if src != s.backgroundSrc {
		if s.background != nil {
			s.background.Deallocate()
		}
		s.background = ebiten.NewImageFromImage(src)
		s.backgroundSrc = src
	}
	var op ebiten.DrawImageOptions
	bw, bh := s.background.Bounds().Dx(), s.background.Bounds().Dy()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(bw), float64(sh)/float64(bh))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.background, &op)
}
