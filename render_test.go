package skyisle

import (
	"math"
	"testing"
)

// frameFor builds one frame of g through a default camera.
func frameFor(g *Graph) *frameBuffers {
	cam := NewOrbitCamera(DefaultCameraConfig())
	cam.SetViewport(defaultWidth, defaultHeight)
	f := &frameBuffers{}
	buildFrame(g, cam, f)
	return f
}

func TestBuildFrameEmitsMeshTriangles(t *testing.T) {
	g := NewGraph()
	geo := IcosahedronGeometry(1)
	g.Add(g.Root(), NewMesh("rock", geo, DefaultMaterial()))

	f := frameFor(g)
	if len(f.tris) != geo.TriangleCount() {
		t.Errorf("tris = %d, want %d", len(f.tris), geo.TriangleCount())
	}
	if geo.Dirty {
		t.Error("building a frame should clear the geometry dirty flag")
	}
}

func TestBuildFrameSkipsHiddenSubtree(t *testing.T) {
	g := NewGraph()
	parent := NewGroup("hidden")
	parent.Visible = false
	pid := g.Add(g.Root(), parent)
	g.Add(pid, NewMesh("child", IcosahedronGeometry(1), DefaultMaterial()))

	if f := frameFor(g); len(f.tris) != 0 {
		t.Errorf("tris = %d, want 0 for a hidden subtree", len(f.tris))
	}
}

func TestBuildFrameSkipsTransparentMesh(t *testing.T) {
	g := NewGraph()
	mat := DefaultMaterial()
	mat.Opacity = 0
	g.Add(g.Root(), NewMesh("ghost", IcosahedronGeometry(1), mat))

	if f := frameFor(g); len(f.tris) != 0 {
		t.Errorf("tris = %d, want 0", len(f.tris))
	}
}

func TestBuildFrameSkipsBehindCamera(t *testing.T) {
	g := NewGraph()
	n := NewMesh("behind", IcosahedronGeometry(1), DefaultMaterial())
	// The default camera sits on +Z looking toward the origin.
	n.Position = Vec3{0, 0, 500}
	g.Add(g.Root(), n)

	if f := frameFor(g); len(f.tris) != 0 {
		t.Errorf("tris = %d, want 0 behind the camera", len(f.tris))
	}
}

func TestBuildFrameSprite(t *testing.T) {
	g := NewGraph()
	glow := glowSprite("glow", []ColorStop{{0, ColorWhite}, {1, Color{}}}, 10, 1)
	g.Add(g.Root(), glow)

	f := frameFor(g)
	if len(f.tris) != 2 {
		t.Fatalf("tris = %d, want 2", len(f.tris))
	}
	if f.tris[0].blend != BlendAdd || f.tris[0].tex.img == nil {
		t.Errorf("sprite triangle = %+v", f.tris[0])
	}
}

func TestBuildFrameTrailBillboards(t *testing.T) {
	g := NewGraph()
	tr := NewTrail(DefaultTrailConfig())
	rng := NewRNG(1)
	for i := 0; i < 3; i++ {
		tr.Spawn(Vec3{float64(i), 0, 0}, rng)
	}
	g.Add(g.Root(), NewPoints("dust", tr, Material{Color: ColorWhite, Opacity: 1, PointSize: 0.5, BlendMode: BlendAdd}))

	f := frameFor(g)
	if len(f.tris) != 6 {
		t.Fatalf("tris = %d, want 6 (two per live particle)", len(f.tris))
	}
	for i := range f.tris {
		if f.tris[i].tex.img != dotImage {
			t.Fatal("trail particles should use the dot texture")
		}
	}
}

func TestBuildFrameSortedBackToFront(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 5; i++ {
		n := NewMesh("rock", IcosahedronGeometry(1), DefaultMaterial())
		n.Position = Vec3{float64(i), 0, float64(-i * 5)}
		g.Add(g.Root(), n)
	}
	f := frameFor(g)
	for i := 1; i < len(f.tris); i++ {
		if f.tris[i-1].depth < f.tris[i].depth {
			t.Fatalf("tris not sorted at %d: %f < %f", i, f.tris[i-1].depth, f.tris[i].depth)
		}
	}
}

func TestBuildFrameReusesBuffers(t *testing.T) {
	g := NewGraph()
	g.Add(g.Root(), NewMesh("rock", IcosahedronGeometry(1), DefaultMaterial()))
	cam := NewOrbitCamera(DefaultCameraConfig())
	f := &frameBuffers{}
	buildFrame(g, cam, f)
	first := len(f.tris)
	buildFrame(g, cam, f)
	if len(f.tris) != first {
		t.Errorf("second frame has %d tris, want %d", len(f.tris), first)
	}
}

// --- Lighting ---

func TestGatherLights(t *testing.T) {
	g := NewGraph()
	g.Add(g.Root(), NewLight("ambient", LightAmbient, ColorWhite, 0.5))
	sun := NewLight("sun", LightPoint, ColorWhite, 2)
	sun.Position = Vec3{0, 10, 0}
	g.Add(g.Root(), sun)
	hidden := NewLight("off", LightPoint, ColorWhite, 9)
	hidden.Visible = false
	g.Add(g.Root(), hidden)

	f := frameFor(g)
	if f.lights.ambient.R != 0.5 {
		t.Errorf("ambient = %f, want 0.5", f.lights.ambient.R)
	}
	if len(f.lights.points) != 1 {
		t.Fatalf("points = %d, want 1", len(f.lights.points))
	}
	if f.lights.points[0].pos != (Vec3{0, 10, 0}) {
		t.Errorf("point light at %v", f.lights.points[0].pos)
	}
}

func TestShadeUnlit(t *testing.T) {
	var ls lightSet
	m := Material{Color: Color{0.2, 0.4, 0.6, 1}, Opacity: 0.7, Unlit: true}
	got := ls.shade(&m, Vec3{0, 1, 0}, Vec3{})
	if got != (Color{0.2, 0.4, 0.6, 0.7}) {
		t.Errorf("shade = %+v", got)
	}
}

func TestShadeAmbientAndDirectional(t *testing.T) {
	ls := lightSet{ambient: Color{0.25, 0.25, 0.25, 0}}
	m := DefaultMaterial()

	got := ls.shade(&m, Vec3{0, 1, 0}, Vec3{})
	if math.Abs(got.R-0.25) > 1e-9 {
		t.Errorf("ambient only R = %f, want 0.25", got.R)
	}

	ls.directional = []pointLight{{pos: Vec3{0, 1, 0}, color: ColorWhite, intensity: 0.5}}
	if got := ls.shade(&m, Vec3{0, 1, 0}, Vec3{}); math.Abs(got.R-0.75) > 1e-9 {
		t.Errorf("facing light R = %f, want 0.75", got.R)
	}
	if got := ls.shade(&m, Vec3{0, -1, 0}, Vec3{}); math.Abs(got.R-0.25) > 1e-9 {
		t.Errorf("facing away R = %f, want 0.25", got.R)
	}
}

func TestShadePointLightFalloff(t *testing.T) {
	ls := lightSet{points: []pointLight{{pos: Vec3{0, 10, 0}, color: ColorWhite, intensity: 1, distance: 20}}}
	m := DefaultMaterial()
	near := ls.shade(&m, Vec3{0, 1, 0}, Vec3{0, 5, 0})
	far := ls.shade(&m, Vec3{0, 1, 0}, Vec3{0, -5, 0})
	out := ls.shade(&m, Vec3{0, 1, 0}, Vec3{0, -15, 0})
	if near.R <= far.R {
		t.Errorf("closer surface should be brighter: %f vs %f", near.R, far.R)
	}
	if out.R != 0 {
		t.Errorf("beyond the light distance R = %f, want 0", out.R)
	}
}

func TestShadeEmissiveAndClamp(t *testing.T) {
	ls := lightSet{ambient: Color{1, 1, 1, 0}}
	m := Material{Color: ColorWhite, Emissive: Color{1, 0, 0, 1}, EmissiveIntensity: 2, Opacity: 1}
	got := ls.shade(&m, Vec3{0, 1, 0}, Vec3{})
	if got.R != 1 || got.G != 1 {
		t.Errorf("shade = %+v, want clamped to 1", got)
	}
}
