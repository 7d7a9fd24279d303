package skyisle

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenRotation,
// TweenScale, TweenOpacity) and call Update(dt) each frame. The group
// auto-applies values and marks the node dirty. If the target node has been
// removed from its graph, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.ID.IsZero() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func tweenVec3(node *Node, field *Vec3, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(field.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(field.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(field.Z), float32(to.Z), duration, fn)
	g.fields[0] = &field.X
	g.fields[1] = &field.Y
	g.fields[2] = &field.Z
	return g
}

// TweenPosition animates node.Position to the given target.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVec3(node, &node.Position, to, duration, fn)
}

// TweenRotation animates node.Rotation (Euler radians) to the given target.
func TweenRotation(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVec3(node, &node.Rotation, to, duration, fn)
}

// TweenScale animates node.Scale to the given target.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVec3(node, &node.Scale, to, duration, fn)
}

// TweenOpacity animates node.Material.Opacity to the given target.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Material.Opacity), float32(to), duration, fn)
	g.fields[0] = &node.Material.Opacity
	return g
}

// Yoyo swings a single field between two values forever: from -> to -> from,
// each leg taking half seconds. An initial delay holds the field at from.
type Yoyo struct {
	field    *float64
	target   *Node
	from, to float64
	half     float32
	delay    float32
	elapsed  float32
	forward  bool
	fn       ease.TweenFunc
	tween    *gween.Tween
}

// NewYoyo creates a repeating tween on field, which belongs to target.
func NewYoyo(target *Node, field *float64, from, to float64, half, delay float32, fn ease.TweenFunc) *Yoyo {
	y := &Yoyo{
		field:   field,
		target:  target,
		from:    from,
		to:      to,
		half:    half,
		delay:   delay,
		forward: true,
		fn:      fn,
	}
	y.tween = gween.New(float32(from), float32(to), half, fn)
	*field = from
	return y
}

// YoyoRotationX flaps node.Rotation.X between 0 and amplitude, the way wings
// beat.
func YoyoRotationX(node *Node, amplitude float64, half, delay float32) *Yoyo {
	return NewYoyo(node, &node.Rotation.X, node.Rotation.X, amplitude, half, delay, ease.InOutSine)
}

// Update advances the oscillation by dt seconds. Time past the end of a leg
// carries into the next one.
func (y *Yoyo) Update(dt float32) {
	if y.target != nil && y.target.ID.IsZero() {
		return
	}
	if y.delay > 0 {
		if dt <= y.delay {
			y.delay -= dt
			return
		}
		dt -= y.delay
		y.delay = 0
	}
	if y.half <= 0 {
		return
	}
	for dt > 0 {
		rem := y.half - y.elapsed
		if dt < rem {
			val, _ := y.tween.Update(dt)
			*y.field = float64(val)
			y.elapsed += dt
			break
		}
		if y.forward {
			*y.field = y.to
			y.tween = gween.New(float32(y.to), float32(y.from), y.half, y.fn)
		} else {
			*y.field = y.from
			y.tween = gween.New(float32(y.from), float32(y.to), y.half, y.fn)
		}
		y.forward = !y.forward
		y.elapsed = 0
		dt -= rem
	}
	if y.target != nil {
		y.target.MarkDirty()
	}
}

// Forward reports whether the current leg runs from -> to.
func (y *Yoyo) Forward() bool { return y.forward }
