package skyisle

import "math"

// Mat4 is a row-major 4x4 affine matrix acting on column vectors:
//
//	| m0  m1  m2  m3  |   | x |
//	| m4  m5  m6  m7  | * | y |
//	| m8  m9  m10 m11 |   | z |
//	| 0   0   0   1   |   | 1 |
type Mat4 [16]float64

// identityMat4 is the identity matrix.
var identityMat4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Identity returns the identity matrix.
func Identity() Mat4 { return identityMat4 }

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += a[row*4+k] * b[k*4+col]
			}
			r[row*4+col] = s
		}
	}
	return r
}

// Apply transforms the point p (w = 1).
func (a Mat4) Apply(p Vec3) Vec3 {
	return Vec3{
		a[0]*p.X + a[1]*p.Y + a[2]*p.Z + a[3],
		a[4]*p.X + a[5]*p.Y + a[6]*p.Z + a[7],
		a[8]*p.X + a[9]*p.Y + a[10]*p.Z + a[11],
	}
}

// ApplyDir transforms the direction d, ignoring translation.
func (a Mat4) ApplyDir(d Vec3) Vec3 {
	return Vec3{
		a[0]*d.X + a[1]*d.Y + a[2]*d.Z,
		a[4]*d.X + a[5]*d.Y + a[6]*d.Z,
		a[8]*d.X + a[9]*d.Y + a[10]*d.Z,
	}
}

// Translation returns the translation column.
func (a Mat4) Translation() Vec3 { return Vec3{a[3], a[7], a[11]} }

func translateMat4(t Vec3) Mat4 {
	m := identityMat4
	m[3], m[7], m[11] = t.X, t.Y, t.Z
	return m
}

func scaleMat4(s Vec3) Mat4 {
	m := identityMat4
	m[0], m[5], m[10] = s.X, s.Y, s.Z
	return m
}

func rotateXMat4(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	m := identityMat4
	m[5], m[6] = c, -s
	m[9], m[10] = s, c
	return m
}

func rotateYMat4(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	m := identityMat4
	m[0], m[2] = c, s
	m[8], m[10] = -s, c
	return m
}

func rotateZMat4(rad float64) Mat4 {
	s, c := math.Sincos(rad)
	m := identityMat4
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// rotationMat4 builds the rotation for Euler angles applied in Y, X, Z order.
func rotationMat4(r Vec3) Mat4 {
	return rotateYMat4(r.Y).Mul(rotateXMat4(r.X)).Mul(rotateZMat4(r.Z))
}

// ComposeMat4 builds T * R * S from a position, Euler rotation and scale.
//
// Composition order:
//
//	Scale -> RotateZ -> RotateX -> RotateY -> Translate
func ComposeMat4(pos, rot, scale Vec3) Mat4 {
	return translateMat4(pos).Mul(rotationMat4(rot)).Mul(scaleMat4(scale))
}

// computeLocalTransform computes the local matrix from the node's transform
// properties.
func computeLocalTransform(n *Node) Mat4 {
	return ComposeMat4(n.Position, n.Rotation, n.Scale)
}

// --- Node setters ---

// SetPosition sets the local position and marks the transform dirty.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
	n.transformDirty = true
}

// SetRotation sets the local Euler rotation and marks the transform dirty.
func (n *Node) SetRotation(r Vec3) {
	n.Rotation = r
	n.transformDirty = true
}

// SetScale sets the local scale and marks the transform dirty.
func (n *Node) SetScale(s Vec3) {
	n.Scale = s
	n.transformDirty = true
}

// SetUniformScale sets all three scale components to s.
func (n *Node) SetUniformScale(s float64) {
	n.SetScale(Vec3{s, s, s})
}

// MarkDirty flags the transform for recomputation. Call it after mutating
// Position, Rotation or Scale directly.
func (n *Node) MarkDirty() { n.transformDirty = true }

// LookAt orients the node so its local +Z axis points at target, expressed
// in the node's parent space. Roll (Rotation.Z) is reset to zero. A target
// equal to the node position leaves the rotation unchanged.
func (n *Node) LookAt(target Vec3) {
	d := target.Sub(n.Position)
	l := d.Len()
	if l == 0 {
		return
	}
	d = d.Mul(1 / l)
	n.Rotation = Vec3{
		X: -math.Asin(math.Max(-1, math.Min(1, d.Y))),
		Y: math.Atan2(d.X, d.Z),
		Z: 0,
	}
	n.transformDirty = true
}

// --- World transforms ---

// UpdateWorld recomputes cached world matrices for every node whose
// transform, or an ancestor's, changed since the last call.
func (g *Graph) UpdateWorld() {
	g.updateWorldTransform(g.root, identityMat4, false)
}

func (g *Graph) updateWorldTransform(id NodeID, parent Mat4, parentRecomputed bool) {
	n := g.slots[id.index].node
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.world = parent.Mul(computeLocalTransform(n))
		n.transformDirty = false
	}
	for _, c := range n.children {
		g.updateWorldTransform(c, n.world, recompute)
	}
}

// WorldMatrix returns the current world matrix of id, computed from the
// parent chain. It does not depend on UpdateWorld having run.
func (g *Graph) WorldMatrix(id NodeID) Mat4 {
	n := g.Node(id)
	local := computeLocalTransform(n)
	if n.parent.IsZero() {
		return local
	}
	return g.WorldMatrix(n.parent).Mul(local)
}

// CachedWorld returns the world matrix computed by the last UpdateWorld.
func (g *Graph) CachedWorld(id NodeID) Mat4 {
	return g.Node(id).world
}

// LocalToWorld converts a point from id's local space to world space.
func (g *Graph) LocalToWorld(id NodeID, p Vec3) Vec3 {
	return g.WorldMatrix(id).Apply(p)
}

// WorldPosition returns the world-space origin of id.
func (g *Graph) WorldPosition(id NodeID) Vec3 {
	return g.WorldMatrix(id).Translation()
}
