package skyisle

import (
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventStore is the interface for optional ECS integration.
// When set on a Scene, day/night transitions are forwarded to the ECS.
type EventStore interface {
	EmitSkyEvent(event SkyEvent)
}

// UpdateFunc advances one decorative system. dt is the tick length in
// seconds and elapsed the scene time after previous ticks.
type UpdateFunc func(dt, elapsed float64)

type updater struct {
	name string
	fn   UpdateFunc
}

// Scene is the top-level object that owns the node graph, the orbit camera,
// the sky controller, textures, input state and render buffers.
//
// A tick runs in a fixed order: controls (queued input, camera damping),
// then every registered updater in registration order, then per-node
// OnUpdate callbacks in tree order. Draw renders the state left by the last
// tick, then applies post effects.
type Scene struct {
	graph    *Graph
	camera   *OrbitCamera
	sky      *SkyController
	textures *TextureLibrary
	store    EventStore
	log      *slog.Logger
	debug    bool

	updaters []updater
	elapsed  float64
	ticks    uint64

	// Render state
	width, height int
	frame         frameBuffers
	bloom         *bloomPass
	bloomCfg      BloomConfig
	background    *ebiten.Image
	backgroundSrc *image.RGBA

	// Input state
	input       inputState
	toggleKey   ebiten.Key
	toggleRect  image.Rectangle
	liveInput   bool
	injectQueue []syntheticPointerEvent

	// Screenshot state
	screenshotQueue []string
	screenshotDir   string

	// Test runner
	testRunner *TestRunner

	stats debugStats
}

// NewScene creates a new scene with a pre-created root group and a default
// orbit camera.
func NewScene() *Scene {
	s := &Scene{
		graph:         NewGraph(),
		camera:        NewOrbitCamera(DefaultCameraConfig()),
		log:           slog.Default(),
		width:         defaultWidth,
		height:        defaultHeight,
		toggleKey:     ebiten.KeyT,
		screenshotDir: "screenshots",
	}
	s.textures = NewTextureLibrary(s.log)
	s.frame.tris = make([]drawTri, 0, defaultCommandCap)
	s.camera.SetViewport(s.width, s.height)
	return s
}

// Graph returns the scene's node graph.
func (s *Scene) Graph() *Graph { return s.graph }

// Root returns the root node handle.
func (s *Scene) Root() NodeID { return s.graph.Root() }

// Node is shorthand for s.Graph().Node(id).
func (s *Scene) Node(id NodeID) *Node { return s.graph.Node(id) }

// Camera returns the orbit camera.
func (s *Scene) Camera() *OrbitCamera { return s.camera }

// Textures returns the texture library.
func (s *Scene) Textures() *TextureLibrary { return s.textures }

// Sky returns the sky controller, or nil before one was attached.
func (s *Scene) Sky() *SkyController { return s.sky }

// Logger returns the scene logger.
func (s *Scene) Logger() *slog.Logger { return s.log }

// SetLogger replaces the scene logger. A nil logger restores slog.Default.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.log = l
	s.textures.log = l
}

// SetEventStore sets the optional ECS bridge.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
	if s.sky != nil {
		s.sky.store = store
	}
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// SetBloom configures the bloom post pass. A zero Intensity disables it.
func (s *Scene) SetBloom(cfg BloomConfig) { s.bloomCfg = cfg }

// Elapsed returns the scene time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Ticks returns the number of completed ticks.
func (s *Scene) Ticks() uint64 { return s.ticks }

// Size returns the current viewport size in pixels.
func (s *Scene) Size() (int, int) { return s.width, s.height }

// AddUpdater registers a per-tick system. Systems run in registration order.
func (s *Scene) AddUpdater(name string, fn UpdateFunc) {
	if fn == nil {
		panic("skyisle: nil updater " + name)
	}
	s.updaters = append(s.updaters, updater{name: name, fn: fn})
}

// Updaters returns the registered updater names in run order.
func (s *Scene) Updaters() []string {
	names := make([]string, len(s.updaters))
	for i, u := range s.updaters {
		names[i] = u.name
	}
	return names
}

// Resize updates the viewport: camera aspect and the sky raster.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == s.width && h == s.height) {
		return
	}
	s.width, s.height = w, h
	s.camera.SetViewport(w, h)
	if s.sky != nil {
		s.sky.Resize(w, h)
	}
}

// Tick advances the whole scene by dt seconds.
func (s *Scene) Tick(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.camera.Update(dt)

	for _, u := range s.updaters {
		u.fn(dt, s.elapsed)
	}
	s.graph.Walk(s.graph.Root(), func(n *Node) bool {
		if n.OnUpdate != nil {
			n.OnUpdate(dt)
		}
		return true
	})

	s.elapsed += dt
	s.ticks++

	if s.debug {
		s.stats.tickTime = time.Since(t0)
	}
}
