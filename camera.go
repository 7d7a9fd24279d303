package skyisle

import (
	"math"

	"cogentcore.org/core/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraConfig holds the orbit camera parameters. Angles are radians
// except FOV, which is the vertical field of view in degrees.
type CameraConfig struct {
	FOV  float64 `toml:"fov"`
	Near float64 `toml:"near"`
	Far  float64 `toml:"far"`

	Target   Vec3    `toml:"target"`
	Distance float64 `toml:"distance"`
	Azimuth  float64 `toml:"azimuth"`
	Polar    float64 `toml:"polar"`

	// MaxPolar keeps the camera above the horizon.
	MaxPolar    float64 `toml:"max_polar"`
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`

	// Damping is the fraction of pending rotation and zoom applied per
	// tick. 1 disables smoothing.
	Damping float64 `toml:"damping"`
	// RotateSpeed converts drag pixels into radians.
	RotateSpeed float64 `toml:"rotate_speed"`
	// ZoomSpeed is the distance factor per wheel notch.
	ZoomSpeed float64 `toml:"zoom_speed"`
}

// DefaultCameraConfig returns the camera used by NewScene.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		FOV:         75,
		Near:        0.1,
		Far:         1000,
		Target:      Vec3{0, 2, 0},
		Distance:    40,
		Azimuth:     0,
		Polar:       degToRad(70),
		MaxPolar:    math.Pi/2 - 0.05,
		MinDistance: 10,
		MaxDistance: 100,
		Damping:     0.05,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.95,
	}
}

// zoomAnim holds an active zoom-to tween.
type zoomAnim struct {
	tween *gween.Tween
	done  bool
}

// OrbitCamera circles a target point. Rotation and zoom requests are
// queued and eased in over the following ticks; Update applies them and
// keeps the camera inside its polar and distance limits.
type OrbitCamera struct {
	cfg CameraConfig

	Target   Vec3
	Distance float64
	Azimuth  float64
	Polar    float64

	pendingAzimuth float64
	pendingPolar   float64
	pendingZoom    float64 // multiplicative, 1 = none

	width, height int

	viewProj math32.Matrix4
	dirty    bool

	zoomTween *zoomAnim
}

// NewOrbitCamera creates a camera from cfg with a 1x1 viewport.
func NewOrbitCamera(cfg CameraConfig) *OrbitCamera {
	c := &OrbitCamera{
		cfg:         cfg,
		Target:      cfg.Target,
		Distance:    cfg.Distance,
		Azimuth:     cfg.Azimuth,
		Polar:       cfg.Polar,
		pendingZoom: 1,
		width:       1,
		height:      1,
		dirty:       true,
	}
	c.clamp()
	return c
}

// Config returns the camera settings.
func (c *OrbitCamera) Config() CameraConfig { return c.cfg }

// Configure replaces the settings and resets the orbit to the configured
// pose, dropping pending input and any zoom tween.
func (c *OrbitCamera) Configure(cfg CameraConfig) {
	c.cfg = cfg
	c.Target = cfg.Target
	c.Distance = cfg.Distance
	c.Azimuth = cfg.Azimuth
	c.Polar = cfg.Polar
	c.pendingAzimuth, c.pendingPolar, c.pendingZoom = 0, 0, 1
	c.zoomTween = nil
	c.dirty = true
	c.clamp()
}

// Rotate queues an orbit by the given azimuth and polar deltas in radians.
func (c *OrbitCamera) Rotate(dAzimuth, dPolar float64) {
	c.pendingAzimuth += dAzimuth
	c.pendingPolar += dPolar
}

// Drag queues an orbit from a pointer drag in pixels.
func (c *OrbitCamera) Drag(dx, dy float64) {
	c.Rotate(-dx*c.cfg.RotateSpeed, -dy*c.cfg.RotateSpeed)
}

// Zoom queues a distance change. Positive notches move closer.
func (c *OrbitCamera) Zoom(notches float64) {
	c.pendingZoom *= math.Pow(c.cfg.ZoomSpeed, notches)
}

// ZoomTo animates the distance to d over duration seconds.
func (c *OrbitCamera) ZoomTo(d float64, duration float32, easeFn ease.TweenFunc) {
	d = math.Max(c.cfg.MinDistance, math.Min(c.cfg.MaxDistance, d))
	c.zoomTween = &zoomAnim{tween: gween.New(float32(c.Distance), float32(d), duration, easeFn)}
}

// Update applies the damped share of pending input and any zoom tween.
// Called once per tick by Scene.Tick.
func (c *OrbitCamera) Update(dt float64) {
	prevA, prevP, prevD := c.Azimuth, c.Polar, c.Distance

	k := c.cfg.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	c.Azimuth += c.pendingAzimuth * k
	c.Polar += c.pendingPolar * k
	c.pendingAzimuth *= 1 - k
	c.pendingPolar *= 1 - k

	if c.pendingZoom != 1 {
		step := math.Pow(c.pendingZoom, k)
		c.Distance *= step
		c.pendingZoom /= step
		if math.Abs(c.pendingZoom-1) < 1e-6 {
			c.pendingZoom = 1
		}
	}

	if c.zoomTween != nil && !c.zoomTween.done {
		val, done := c.zoomTween.tween.Update(float32(dt))
		c.Distance = float64(val)
		c.zoomTween.done = done
		if done {
			c.zoomTween = nil
		}
	}

	c.clamp()
	if c.Azimuth != prevA || c.Polar != prevP || c.Distance != prevD {
		c.dirty = true
	}
}

// Settled reports whether no queued rotation or zoom remains.
func (c *OrbitCamera) Settled() bool {
	return math.Abs(c.pendingAzimuth) < 1e-6 && math.Abs(c.pendingPolar) < 1e-6 &&
		c.pendingZoom == 1 && c.zoomTween == nil
}

func (c *OrbitCamera) clamp() {
	c.Polar = math.Max(0.01, math.Min(c.cfg.MaxPolar, c.Polar))
	c.Distance = math.Max(c.cfg.MinDistance, math.Min(c.cfg.MaxDistance, c.Distance))
}

// Position returns the camera eye in world space. Polar is measured from
// the +Y axis.
func (c *OrbitCamera) Position() Vec3 {
	sp := math.Sin(c.Polar)
	return c.Target.Add(Vec3{
		c.Distance * sp * math.Sin(c.Azimuth),
		c.Distance * math.Cos(c.Polar),
		c.Distance * sp * math.Cos(c.Azimuth),
	})
}

// SetViewport sets the render size used for the aspect ratio and for
// mapping to pixels.
func (c *OrbitCamera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.width, c.height = w, h
	c.dirty = true
}

// Viewport returns the render size.
func (c *OrbitCamera) Viewport() (int, int) { return c.width, c.height }

// MarkDirty forces a recomputation of the view-projection matrix.
func (c *OrbitCamera) MarkDirty() { c.dirty = true }

// ViewProjection returns the combined view and projection matrix,
// recomputing it if the camera moved.
func (c *OrbitCamera) ViewProjection() *math32.Matrix4 {
	if !c.dirty {
		return &c.viewProj
	}
	c.dirty = false

	pos := toMath32(c.Position())
	target := toMath32(c.Target)
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(pos, target, math32.Vec3(0, 1, 0)))
	var cview math32.Matrix4
	cview.SetTransform(pos, lookq, math32.Vec3(1, 1, 1))
	view, err := cview.Inverse()
	if err != nil {
		return &c.viewProj
	}

	var proj math32.Matrix4
	proj.SetPerspective(float32(c.cfg.FOV), float32(c.width)/float32(c.height), float32(c.cfg.Near), float32(c.cfg.Far))
	c.viewProj.MulMatrices(&proj, view)
	return &c.viewProj
}

// Project maps a world point to screen pixels. depth is the distance
// along the view axis. ok is false for points at or behind the near plane.
func (c *OrbitCamera) Project(p Vec3) (screen Vec2, depth float64, ok bool) {
	clip := math32.Vec4(float32(p.X), float32(p.Y), float32(p.Z), 1).MulMatrix4(c.ViewProjection())
	depth = float64(clip.W)
	if depth <= c.cfg.Near {
		return Vec2{}, depth, false
	}
	ndc := clip.PerspDiv()
	screen = Vec2{
		X: (float64(ndc.X) + 1) / 2 * float64(c.width),
		Y: (1 - float64(ndc.Y)) / 2 * float64(c.height),
	}
	return screen, depth, true
}

// PixelsPerUnit returns the on-screen size of one world unit at depth.
func (c *OrbitCamera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return float64(c.height) / (2 * math.Tan(degToRad(c.cfg.FOV)/2) * depth)
}

func toMath32(v Vec3) math32.Vector3 {
	return math32.Vec3(float32(v.X), float32(v.Y), float32(v.Z))
}
