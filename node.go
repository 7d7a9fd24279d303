package skyisle

import (
	"fmt"
	"image"
)

// NodeID is an opaque handle into a Graph. The zero value refers to no node.
// Handles to removed nodes become stale; a slot's generation is bumped on
// removal so stale handles never alias a newer node.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool { return id.gen == 0 }

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d#%d)", id.index, id.gen)
}

// LightKind selects how a light contributes to shading.
type LightKind uint8

const (
	LightAmbient     LightKind = iota // uniform contribution to every face
	LightPoint                        // positional light with distance falloff
	LightDirectional                  // parallel rays along the node's -Y to origin direction
)

// Light is attached to NodeTypeLight nodes. Position comes from the node's
// world transform.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64
	// Distance is the falloff range of a point light. Zero means unlimited.
	Distance float64
}

// Material describes how a mesh, sprite or point cloud is shaded.
type Material struct {
	Color             Color
	Emissive          Color
	EmissiveIntensity float64
	// Texture names an entry in the TextureLibrary. A missing texture renders
	// as the plain material color.
	Texture     string
	Opacity     float64
	FlatShading bool
	DoubleSide  bool
	Unlit       bool
	BlendMode   BlendMode
	// PointSize is the billboard size used by NodeTypePoints.
	PointSize float64
}

// DefaultMaterial returns an opaque white lit material.
func DefaultMaterial() Material {
	return Material{Color: ColorWhite, Opacity: 1}
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path. Nodes are owned
// by a Graph and addressed by NodeID; the parent is stored as a handle and the
// children as an ordered list of handles.
type Node struct {
	// Identity
	ID   NodeID
	Name string
	Type NodeType

	// Hierarchy
	parent   NodeID
	children []NodeID

	// Transform (local). Rotation holds Euler angles in radians applied in
	// Y, X, Z order (heading, pitch, bank).
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Computed (unexported, updated by Graph.UpdateWorld)
	world          Mat4
	transformDirty bool

	Visible bool

	Material Material

	// Mesh fields (NodeTypeMesh)
	Geometry *Geometry

	// Sprite fields (NodeTypeSprite). Width and height come from Scale.X/Y.
	Image image.Image

	// Points fields (NodeTypePoints)
	Trail *Trail

	// Light fields (NodeTypeLight)
	Light *Light

	// Metadata
	UserData any

	// OnUpdate is invoked once per tick by Scene.Tick after the registered
	// updaters, in tree order. Nil by default.
	OnUpdate func(dt float64)
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.Scale = Vec3{1, 1, 1}
	n.Visible = true
	n.transformDirty = true
	n.world = identityMat4
	if n.Material == (Material{}) {
		n.Material = DefaultMaterial()
	}
}

// NewGroup creates a transform-only node.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node rendering geo with mat.
func NewMesh(name string, geo *Geometry, mat Material) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Geometry: geo, Material: mat}
	nodeDefaults(n)
	return n
}

// NewSprite creates a camera-facing quad showing img. Size it with Scale.
func NewSprite(name string, img image.Image, mat Material) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img, Material: mat}
	nodeDefaults(n)
	return n
}

// NewPoints creates a node that renders every live particle of tr.
func NewPoints(name string, tr *Trail, mat Material) *Node {
	n := &Node{Name: name, Type: NodeTypePoints, Trail: tr, Material: mat}
	nodeDefaults(n)
	return n
}

// NewLight creates a light node.
func NewLight(name string, kind LightKind, c Color, intensity float64) *Node {
	n := &Node{
		Name:  name,
		Type:  NodeTypeLight,
		Light: &Light{Kind: kind, Color: c, Intensity: intensity},
	}
	nodeDefaults(n)
	return n
}

// Parent returns the handle of the node's parent, or the zero handle.
func (n *Node) Parent() NodeID { return n.parent }

// Children returns the child handles. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// --- Graph ---

type nodeSlot struct {
	node *Node
	gen  uint32
}

// Graph is an arena of nodes forming a tree rooted at Root. It is not safe for
// concurrent use; the frame driver owns it.
type Graph struct {
	slots []nodeSlot
	free  []uint32
	root  NodeID
	count int
}

// NewGraph creates a graph with a pre-created root group.
func NewGraph() *Graph {
	g := &Graph{}
	g.root = g.insert(NewGroup("root"))
	return g
}

// Root returns the root handle.
func (g *Graph) Root() NodeID { return g.root }

// Len returns the number of live nodes including the root.
func (g *Graph) Len() int { return g.count }

func (g *Graph) insert(n *Node) NodeID {
	if n == nil {
		panic("skyisle: cannot add nil node")
	}
	if !n.ID.IsZero() {
		panic("skyisle: node already belongs to a graph")
	}
	var idx uint32
	if k := len(g.free); k > 0 {
		idx = g.free[k-1]
		g.free = g.free[:k-1]
	} else {
		idx = uint32(len(g.slots))
		g.slots = append(g.slots, nodeSlot{})
	}
	s := &g.slots[idx]
	s.gen++
	s.node = n
	n.ID = NodeID{index: idx, gen: s.gen}
	g.count++
	return n.ID
}

// Valid reports whether id refers to a live node of this graph.
func (g *Graph) Valid(id NodeID) bool {
	if id.IsZero() || int(id.index) >= len(g.slots) {
		return false
	}
	s := g.slots[id.index]
	return s.node != nil && s.gen == id.gen
}

// Node returns the node for id. Panics on a zero or stale handle.
func (g *Graph) Node(id NodeID) *Node {
	if !g.Valid(id) {
		panic(fmt.Sprintf("skyisle: stale or invalid handle %v", id))
	}
	return g.slots[id.index].node
}

// Lookup returns the node for id and whether it is live.
func (g *Graph) Lookup(id NodeID) (*Node, bool) {
	if !g.Valid(id) {
		return nil, false
	}
	return g.slots[id.index].node, true
}

// Add inserts n into the arena and appends it to parent's children.
func (g *Graph) Add(parent NodeID, n *Node) NodeID {
	p := g.Node(parent)
	id := g.insert(n)
	n.parent = parent
	p.children = append(p.children, id)
	return id
}

// AddChild moves an existing node under parent.
// If child already has a parent, it is removed from that parent first.
// Panics if child is an ancestor of parent (cycle).
func (g *Graph) AddChild(parent, child NodeID) {
	p := g.Node(parent)
	c := g.Node(child)
	if g.isAncestor(child, parent) {
		panic("skyisle: adding child would create a cycle")
	}
	if !c.parent.IsZero() {
		g.Node(c.parent).removeChildID(child)
	}
	c.parent = parent
	p.children = append(p.children, child)
	g.markSubtreeDirty(child)
}

// Remove detaches id from its parent and destroys it with its whole subtree.
// Removing the root is not allowed.
func (g *Graph) Remove(id NodeID) {
	if id == g.root {
		panic("skyisle: cannot remove the root node")
	}
	n := g.Node(id)
	if !n.parent.IsZero() {
		if p, ok := g.Lookup(n.parent); ok {
			p.removeChildID(id)
		}
	}
	g.destroy(id)
}

func (g *Graph) destroy(id NodeID) {
	n := g.slots[id.index].node
	for _, c := range n.children {
		g.destroy(c)
	}
	n.children = nil
	n.parent = NodeID{}
	n.ID = NodeID{}
	n.Geometry = nil
	n.Image = nil
	n.Trail = nil
	n.Light = nil
	n.UserData = nil
	n.OnUpdate = nil
	g.slots[id.index].node = nil
	g.free = append(g.free, id.index)
	g.count--
}

// Walk visits id and its descendants depth-first in child order. Returning
// false from fn skips that node's children.
func (g *Graph) Walk(id NodeID, fn func(n *Node) bool) {
	n := g.Node(id)
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		g.Walk(c, fn)
	}
}

// Find returns the first descendant of id (inclusive) with the given name.
func (g *Graph) Find(id NodeID, name string) (NodeID, bool) {
	var found NodeID
	g.Walk(id, func(n *Node) bool {
		if !found.IsZero() {
			return false
		}
		if n.Name == name {
			found = n.ID
			return false
		}
		return true
	})
	return found, !found.IsZero()
}

// CountDescendants returns the number of nodes below id.
func (g *Graph) CountDescendants(id NodeID) int {
	count := -1
	g.Walk(id, func(*Node) bool {
		count++
		return true
	})
	return count
}

// isAncestor reports whether candidate is id or an ancestor of id.
func (g *Graph) isAncestor(candidate, id NodeID) bool {
	for p := id; !p.IsZero(); p = g.Node(p).parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildID removes child from n.children without clearing child.parent.
func (n *Node) removeChildID(child NodeID) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = NodeID{}
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on id and all its descendants.
func (g *Graph) markSubtreeDirty(id NodeID) {
	g.Walk(id, func(n *Node) bool {
		n.transformDirty = true
		return true
	})
}
