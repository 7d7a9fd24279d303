package skyisle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewLoopStep(t *testing.T) {
	if got := NewLoop(NewScene(), 30).Step(); got != 1.0/30 {
		t.Errorf("Step = %f, want 1/30", got)
	}
	if got := NewLoop(NewScene(), 0).Step(); got != 1.0/60 {
		t.Errorf("fallback Step = %f, want 1/60", got)
	}
}

func TestLoopStopFromRender(t *testing.T) {
	s := NewScene()
	l := NewLoop(s, 60)
	l.Render = func(s *Scene) {
		if s.Ticks() == 10 {
			l.Stop()
		}
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Ticks() != 10 || l.Frames() != 10 {
		t.Errorf("ticks=%d frames=%d, want 10", s.Ticks(), l.Frames())
	}
	if l.Running() {
		t.Error("loop should not report running after Run returns")
	}
}

func TestLoopContextCancel(t *testing.T) {
	s := NewScene()
	l := NewLoop(s, 60)
	ctx, cancel := context.WithCancel(context.Background())
	l.Render = func(s *Scene) {
		if s.Ticks() == 3 {
			cancel()
		}
	}
	err := l.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if s.Ticks() != 3 {
		t.Errorf("ticks = %d, want 3", s.Ticks())
	}
}

func TestLoopAlreadyRunning(t *testing.T) {
	s := NewScene()
	l := NewLoop(s, 60)
	var nested error
	l.Render = func(s *Scene) {
		nested = l.Run(context.Background())
		l.Stop()
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !errors.Is(nested, ErrLoopRunning) {
		t.Errorf("nested Run = %v, want ErrLoopRunning", nested)
	}
}

func TestLoopRealtimeDeadline(t *testing.T) {
	s := NewScene()
	l := NewLoop(s, 100)
	l.Realtime = true
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run = %v, want context.DeadlineExceeded", err)
	}
	// Paced at 10ms per tick, 50ms allows a handful of ticks, never hundreds.
	if s.Ticks() == 0 || s.Ticks() > 20 {
		t.Errorf("ticks = %d, want a paced count", s.Ticks())
	}
}

func TestLoopStopFromGoroutine(t *testing.T) {
	s := NewScene()
	l := NewLoop(s, 1000)
	l.Realtime = true
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	deadline := time.After(time.Second)
	for l.Frames() < 5 {
		select {
		case <-deadline:
			t.Fatal("loop did not advance")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	l.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
