package skyisle

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the primary pointer between ticks.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	// onToggle is set when the press started inside the toggle button.
	onToggle bool
}

// inputState is the scene's control state: one pointer driving the orbit
// camera plus the day/night toggle.
type inputState struct {
	pointer  pointerState
	deadZone float64
	wheel    float64
}

// SetLiveInput enables polling of the real mouse, wheel and keyboard each
// tick. Run enables it; headless scenes leave it off and use injection.
func (s *Scene) SetLiveInput(enabled bool) { s.liveInput = enabled }

// SetDragDeadZone sets the distance in pixels a pointer must move before a
// press becomes a drag. Default is 4.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.input.deadZone = pixels
}

// SetToggleKey sets the key that flips day and night. Default is T.
func (s *Scene) SetToggleKey(k ebiten.Key) { s.toggleKey = k }

// SetToggleButton sets the screen rectangle of the day/night button. An
// empty rectangle removes the button.
func (s *Scene) SetToggleButton(r image.Rectangle) { s.toggleRect = r }

// ToggleButton returns the day/night button rectangle.
func (s *Scene) ToggleButton() image.Rectangle { return s.toggleRect }

// ToggleSky flips day and night if a sky controller is attached.
func (s *Scene) ToggleSky() {
	if s.sky != nil {
		s.sky.Toggle()
	}
}

// processInput consumes one injected event or polls live input, then
// applies wheel zoom. Called first in Scene.Tick.
func (s *Scene) processInput() {
	if !s.processInjectedInput() && s.liveInput {
		s.processLiveInput()
	}
	if s.input.wheel != 0 {
		s.camera.Zoom(s.input.wheel)
		s.input.wheel = 0
	}
}

// processLiveInput polls ebiten for pointer, wheel and key state.
func (s *Scene) processLiveInput() {
	if inpututil.IsKeyJustPressed(s.toggleKey) {
		s.ToggleSky()
	}
	_, wy := ebiten.Wheel()
	s.input.wheel += wy

	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		s.processPointer(float64(tx), float64(ty), true)
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(float64(mx), float64(my), pressed)
}

// insideToggle reports whether (x, y) hits the toggle button.
func (s *Scene) insideToggle(x, y float64) bool {
	if s.toggleRect.Empty() {
		return false
	}
	return image.Pt(int(math.Floor(x)), int(math.Floor(y))).In(s.toggleRect)
}

// processPointer runs the press/drag/release state machine for the primary
// pointer. A drag orbits the camera; a click on the toggle button flips the
// sky.
func (s *Scene) processPointer(x, y float64, pressed bool) {
	ps := &s.input.pointer
	deadZone := s.input.deadZone
	if deadZone <= 0 {
		deadZone = defaultDragDeadZone
	}

	switch {
	case pressed && !ps.down:
		*ps = pointerState{
			down:     true,
			startX:   x,
			startY:   y,
			lastX:    x,
			lastY:    y,
			onToggle: s.insideToggle(x, y),
		}

	case pressed && ps.down:
		s.updateDragging(x, y, deadZone)
		if ps.dragging {
			s.camera.Drag(x-ps.lastX, y-ps.lastY)
		}
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		s.updateDragging(x, y, deadZone)
		if ps.dragging {
			s.camera.Drag(x-ps.lastX, y-ps.lastY)
		} else if ps.onToggle && s.insideToggle(x, y) {
			s.ToggleSky()
		}
		*ps = pointerState{lastX: x, lastY: y}
	}
}

// updateDragging promotes a press to a drag once the pointer leaves the
// dead zone. Presses that began on the toggle button never drag.
func (s *Scene) updateDragging(x, y, deadZone float64) {
	ps := &s.input.pointer
	if ps.dragging || ps.onToggle {
		return
	}
	dx, dy := x-ps.startX, y-ps.startY
	if dx*dx+dy*dy > deadZone*deadZone {
		ps.dragging = true
	}
}

// Dragging reports whether the primary pointer is orbiting the camera.
func (s *Scene) Dragging() bool { return s.input.pointer.dragging }
