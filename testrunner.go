package skyisle

import (
	"encoding/json"
	"fmt"
)

// Script actions.
const (
	actionScreenshot = "screenshot"
	actionClick      = "click"
	actionDrag       = "drag"
	actionWait       = "wait"
	actionToggle     = "toggle"
	actionZoom       = "zoom"
)

var knownActions = map[string]bool{
	actionScreenshot: true,
	actionClick:      true,
	actionDrag:       true,
	actionWait:       true,
	actionToggle:     true,
	actionZoom:       true,
}

// scriptStep is one scripted action. Which coordinates apply depends on
// Action: click uses X/Y, drag uses From/To, zoom uses Notches, and wait
// and drag use Frames as a tick count.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Notches float64 `json:"notches,omitempty"`
}

// TestRunner plays a scripted session against a Scene: pointer input, sky
// toggles, zooms and screenshots, one step per tick. Attach it with
// SetTestRunner; Run can exit once Done reports true.
type TestRunner struct {
	steps []scriptStep
	next  int
	idle  int // ticks left in the current wait
	done  bool
}

// LoadTestScript parses a JSON script of the form {"steps": [...]}.
// An empty script or an unknown action is an error.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the scene. Tick advances it first,
// ahead of input processing.
func (s *Scene) SetTestRunner(runner *TestRunner) { s.testRunner = runner }

// Done reports whether the last step has run and its input and wait
// ticks have been used up.
func (r *TestRunner) Done() bool { return r.done }

func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next >= len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.apply(s, st)

	if r.next >= len(r.steps) && r.idle == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) apply(s *Scene, st scriptStep) {
	switch st.Action {
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionClick:
		s.InjectClick(st.X, st.Y)
	case actionDrag:
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case actionZoom:
		s.InjectWheel(st.Notches)
	case actionToggle:
		s.ToggleSky()
	case actionWait:
		// The tick that starts the wait is the first one.
		if st.Frames > 0 {
			r.idle = st.Frames - 1
		}
	}
}
