package skyisle

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if !s.Graph().Valid(s.Root()) {
		t.Fatal("root should be valid")
	}
	if s.Node(s.Root()).Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Node(s.Root()).Name, "root")
	}
	if s.Camera() == nil || s.Textures() == nil {
		t.Fatal("camera and textures should be created")
	}
	if s.Sky() != nil {
		t.Error("sky should be nil until attached")
	}
	if w, h := s.Size(); w != defaultWidth || h != defaultHeight {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestTickAdvancesClock(t *testing.T) {
	s := NewScene()
	s.Tick(0.5)
	s.Tick(0.25)
	if s.Elapsed() != 0.75 {
		t.Errorf("Elapsed = %f, want 0.75", s.Elapsed())
	}
	if s.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", s.Ticks())
	}
}

func TestUpdatersRunInOrder(t *testing.T) {
	s := NewScene()
	var order []string
	for _, name := range []string{"ocean", "clouds", "butterflies"} {
		s.AddUpdater(name, func(dt, elapsed float64) { order = append(order, name) })
	}
	s.Tick(1.0 / 60)

	want := []string{"ocean", "clouds", "butterflies"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	names := s.Updaters()
	if len(names) != 3 || names[0] != "ocean" {
		t.Errorf("Updaters = %v", names)
	}
}

func TestUpdaterSeesPreviousElapsed(t *testing.T) {
	s := NewScene()
	var seen []float64
	s.AddUpdater("clock", func(dt, elapsed float64) { seen = append(seen, elapsed) })
	s.Tick(1)
	s.Tick(1)
	if seen[0] != 0 || seen[1] != 1 {
		t.Errorf("elapsed seen = %v, want [0 1]", seen)
	}
}

func TestAddUpdaterNilPanics(t *testing.T) {
	s := NewScene()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil updater")
		}
	}()
	s.AddUpdater("nil", nil)
}

func TestNodeOnUpdateAfterUpdaters(t *testing.T) {
	s := NewScene()
	var order []string
	n := NewGroup("spinner")
	n.OnUpdate = func(dt float64) { order = append(order, "node") }
	s.Graph().Add(s.Root(), n)
	s.AddUpdater("system", func(dt, elapsed float64) { order = append(order, "system") })

	s.Tick(1.0 / 60)
	if len(order) != 2 || order[0] != "system" || order[1] != "node" {
		t.Errorf("order = %v, want [system node]", order)
	}
}

func TestCameraUpdatesBeforeUpdaters(t *testing.T) {
	s := NewScene()
	cfg := DefaultCameraConfig()
	cfg.Damping = 1
	s.Camera().Configure(cfg)
	s.Camera().Rotate(0.5, 0)

	var az float64
	s.AddUpdater("probe", func(dt, elapsed float64) { az = s.Camera().Azimuth })
	s.Tick(1.0 / 60)
	if az != 0.5 {
		t.Errorf("updater saw Azimuth %f, want 0.5", az)
	}
}

func TestResize(t *testing.T) {
	s := NewScene()
	s.Resize(800, 600)
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Size = %dx%d, want 800x600", w, h)
	}
	if w, h := s.Camera().Viewport(); w != 800 || h != 600 {
		t.Errorf("camera viewport = %dx%d", w, h)
	}
	s.Resize(0, 100)
	if w, _ := s.Size(); w != 800 {
		t.Error("invalid size should be ignored")
	}
}

func TestResizeRepaintsSky(t *testing.T) {
	s := NewScene()
	sky := NewSkyController(s, s.Root(), NewRNG(1), DefaultSkyConfig())
	s.Resize(320, 200)
	b := sky.Background().Bounds()
	if b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("background = %v, want 320x200", b)
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	l := slog.New(slog.NewTextHandler(&buf, nil))
	s.SetLogger(l)
	if s.Logger() != l || s.Textures().log != l {
		t.Error("logger should propagate to the texture library")
	}
	s.SetLogger(nil)
	if s.Logger() != slog.Default() {
		t.Error("nil logger should restore the default")
	}
}

type recordingStore struct {
	events []SkyEvent
}

func (r *recordingStore) EmitSkyEvent(ev SkyEvent) { r.events = append(r.events, ev) }

func TestSetEventStoreReachesSky(t *testing.T) {
	s := NewScene()
	s.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	sky := NewSkyController(s, s.Root(), NewRNG(1), DefaultSkyConfig())
	store := &recordingStore{}
	s.SetEventStore(store)

	s.Tick(1)
	sky.Toggle()
	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
	ev := store.events[0]
	if ev.Day || ev.Tick != 1 || ev.Elapsed != 1 {
		t.Errorf("event = %+v", ev)
	}
}
