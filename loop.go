package skyisle

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrLoopRunning is returned by Loop.Run when the loop is already running.
var ErrLoopRunning = errors.New("skyisle: loop already running")

// Loop drives a Scene without a window: each iteration ticks the scene by
// a fixed step and then calls Render. It runs until Stop is called or the
// context is cancelled.
type Loop struct {
	scene *Scene
	dt    float64

	// Render is called after every tick. Nil skips rendering.
	Render func(s *Scene)
	// Realtime paces iterations to one per dt of wall time. When false the
	// loop runs as fast as ticks complete.
	Realtime bool

	running atomic.Bool
	frames  atomic.Uint64
}

// NewLoop creates a loop ticking s at tps ticks per second.
// Non-positive tps falls back to 60.
func NewLoop(s *Scene, tps int) *Loop {
	if tps <= 0 {
		tps = 60
	}
	return &Loop{scene: s, dt: 1 / float64(tps)}
}

// Step returns the fixed tick length in seconds.
func (l *Loop) Step() float64 { return l.dt }

// Running reports whether Run is executing.
func (l *Loop) Running() bool { return l.running.Load() }

// Frames returns the number of iterations completed by Run.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Stop ends Run after the current iteration. Safe to call from Render or
// from another goroutine.
func (l *Loop) Stop() { l.running.Store(false) }

// Run ticks and renders until Stop or ctx cancellation. It returns nil
// after Stop and ctx.Err() after cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	var ticker *time.Ticker
	if l.Realtime {
		ticker = time.NewTicker(time.Duration(l.dt * float64(time.Second)))
		defer ticker.Stop()
	}

	l.scene.Logger().Debug("loop started", "step", l.dt, "realtime", l.Realtime)
	for l.running.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.scene.Tick(l.dt)
		if l.Render != nil {
			l.Render(l.scene)
		}
		l.frames.Add(1)

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}
	l.scene.Logger().Debug("loop stopped", "frames", l.frames.Load())
	return nil
}
