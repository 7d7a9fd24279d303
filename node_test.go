package skyisle

import (
	"testing"
)

// --- Constructor defaults ---

func TestNewGroupDefaults(t *testing.T) {
	n := NewGroup("test")
	assertNodeDefaults(t, n, "test", NodeTypeGroup)
}

func TestNewMeshDefaults(t *testing.T) {
	geo := PlaneGeometry(1, 1, 1, 1)
	mat := Material{Color: Hex(0xff0000), Opacity: 0.5}
	n := NewMesh("mesh", geo, mat)
	assertNodeDefaults(t, n, "mesh", NodeTypeMesh)
	if n.Geometry != geo {
		t.Error("Geometry not set")
	}
	if n.Material != mat {
		t.Errorf("Material = %+v, want %+v", n.Material, mat)
	}
}

func TestNewMeshZeroMaterialGetsDefault(t *testing.T) {
	n := NewMesh("mesh", PlaneGeometry(1, 1, 1, 1), Material{})
	if n.Material != DefaultMaterial() {
		t.Errorf("Material = %+v, want default", n.Material)
	}
}

func TestNewLightDefaults(t *testing.T) {
	n := NewLight("sun", LightPoint, ColorWhite, 2)
	assertNodeDefaults(t, n, "sun", NodeTypeLight)
	if n.Light == nil || n.Light.Kind != LightPoint || n.Light.Intensity != 2 {
		t.Errorf("Light = %+v", n.Light)
	}
}

func TestNewPointsDefaults(t *testing.T) {
	tr := NewTrail(DefaultTrailConfig())
	n := NewPoints("dust", tr, Material{Color: ColorWhite, Opacity: 1, PointSize: 0.5})
	assertNodeDefaults(t, n, "dust", NodeTypePoints)
	if n.Trail != tr {
		t.Error("Trail not set")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if !n.ID.IsZero() {
		t.Error("ID should be zero before the node is added")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("new node should be transform-dirty")
	}
}

// --- Handles ---

func TestGraphRoot(t *testing.T) {
	g := NewGraph()
	if !g.Valid(g.Root()) {
		t.Fatal("root should be valid")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
	if g.Node(g.Root()).Name != "root" {
		t.Errorf("root name = %q", g.Node(g.Root()).Name)
	}
}

func TestGraphAdd(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	b := g.Add(a, NewGroup("b"))

	if g.Node(b).Parent() != a {
		t.Error("b's parent should be a")
	}
	if got := g.Node(a).Children(); len(got) != 1 || got[0] != b {
		t.Errorf("a.Children = %v", got)
	}
	if g.Node(a).ID != a {
		t.Error("node ID should match returned handle")
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3", g.Len())
	}
}

func TestZeroHandle(t *testing.T) {
	var id NodeID
	if !id.IsZero() {
		t.Error("zero value should be IsZero")
	}
	if id.String() != "node(nil)" {
		t.Errorf("String = %q", id.String())
	}
	g := NewGraph()
	if g.Valid(id) {
		t.Error("zero handle should not be valid")
	}
	if _, ok := g.Lookup(id); ok {
		t.Error("Lookup of zero handle should fail")
	}
}

func TestStaleHandleAfterRemove(t *testing.T) {
	g := NewGraph()
	old := g.Add(g.Root(), NewGroup("old"))
	g.Remove(old)
	if g.Valid(old) {
		t.Fatal("removed handle should be stale")
	}

	// The freed slot is reused with a new generation.
	fresh := g.Add(g.Root(), NewGroup("fresh"))
	if fresh.index != old.index {
		t.Fatalf("expected slot reuse, got index %d vs %d", fresh.index, old.index)
	}
	if fresh == old {
		t.Fatal("reused slot must carry a new generation")
	}
	if g.Valid(old) {
		t.Error("old handle must not alias the new node")
	}
	if _, ok := g.Lookup(old); ok {
		t.Error("Lookup of stale handle should fail")
	}
}

func TestNodeStaleHandlePanics(t *testing.T) {
	g := NewGraph()
	id := g.Add(g.Root(), NewGroup("x"))
	g.Remove(id)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on stale handle")
		}
	}()
	g.Node(id)
}

func TestAddNilPanics(t *testing.T) {
	g := NewGraph()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil node")
		}
	}()
	g.Add(g.Root(), nil)
}

func TestAddTwicePanics(t *testing.T) {
	g := NewGraph()
	n := NewGroup("n")
	g.Add(g.Root(), n)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when adding a node twice")
		}
	}()
	g.Add(g.Root(), n)
}

// --- Tree operations ---

func TestRemoveSubtree(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	b := g.Add(a, NewGroup("b"))
	c := g.Add(b, NewGroup("c"))

	g.Remove(a)
	for _, id := range []NodeID{a, b, c} {
		if g.Valid(id) {
			t.Errorf("%v should be removed", id)
		}
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
	if g.Node(g.Root()).NumChildren() != 0 {
		t.Error("root should have no children")
	}
}

func TestRemoveRootPanics(t *testing.T) {
	g := NewGraph()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic removing root")
		}
	}()
	g.Remove(g.Root())
}

func TestAddChildReparents(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	b := g.Add(g.Root(), NewGroup("b"))
	c := g.Add(a, NewGroup("c"))
	g.UpdateWorld()

	g.AddChild(b, c)
	if g.Node(c).Parent() != b {
		t.Error("c should be under b")
	}
	if g.Node(a).NumChildren() != 0 {
		t.Error("a should have lost c")
	}
	if !g.Node(c).transformDirty {
		t.Error("reparented node should be dirty")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	b := g.Add(a, NewGroup("b"))
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on cycle")
		}
	}()
	g.AddChild(b, a)
}

func TestAddChildSelfPanics(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding node to itself")
		}
	}()
	g.AddChild(a, a)
}

func TestWalkOrderAndPrune(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	g.Add(a, NewGroup("a1"))
	g.Add(a, NewGroup("a2"))
	b := g.Add(g.Root(), NewGroup("b"))
	g.Add(b, NewGroup("b1"))

	var names []string
	g.Walk(g.Root(), func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "b"
	})
	want := []string{"root", "a", "a1", "a2", "b"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFind(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	horn := g.Add(a, NewGroup("horn"))

	got, ok := g.Find(g.Root(), "horn")
	if !ok || got != horn {
		t.Errorf("Find = %v, %v; want %v", got, ok, horn)
	}
	if _, ok := g.Find(g.Root(), "tail"); ok {
		t.Error("Find should fail for a missing name")
	}
}

func TestCountDescendants(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), NewGroup("a"))
	g.Add(a, NewGroup("a1"))
	g.Add(a, NewGroup("a2"))
	if got := g.CountDescendants(a); got != 2 {
		t.Errorf("CountDescendants(a) = %d, want 2", got)
	}
	if got := g.CountDescendants(g.Root()); got != 3 {
		t.Errorf("CountDescendants(root) = %d, want 3", got)
	}
}
