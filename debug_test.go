package skyisle

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCountBatches(t *testing.T) {
	moon := texRef{name: "moon"}
	tests := []struct {
		name string
		tris []drawTri
		want int
	}{
		{"empty", nil, 0},
		{"single", []drawTri{{}}, 1},
		{"same state", []drawTri{{}, {}, {}}, 1},
		{"blend change", []drawTri{{}, {blend: BlendAdd}, {}}, 3},
		{"texture change", []drawTri{{}, {tex: moon}, {tex: moon}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countBatches(tt.tris); got != tt.want {
				t.Errorf("countBatches = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrameStats(t *testing.T) {
	s := NewScene()
	s.frame.tris = append(s.frame.tris[:0], drawTri{}, drawTri{blend: BlendAdd})
	s.frame.drawCalls = 2

	st := s.FrameStats()
	if st.Triangles != 2 || st.Batches != 2 || st.DrawCalls != 2 {
		t.Errorf("FrameStats = %+v", st)
	}
}

func TestLogDebugStatsDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(captureLogger(&buf))
	s.logDebugStats()
	if buf.Len() != 0 {
		t.Errorf("expected no output with debug off, got %q", buf.String())
	}
}

func TestLogDebugStatsEnabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(captureLogger(&buf))
	s.SetDebugMode(true)
	s.stats = debugStats{tickTime: time.Millisecond, triangles: 42, drawCalls: 3}
	s.logDebugStats()

	out := buf.String()
	for _, want := range []string{"msg=frame", "triangles=42", "drawCalls=3", "nodes=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "exceeds threshold") {
		t.Error("small graph should not warn")
	}
}

func TestLogDebugStatsWarnsOnLargeGraph(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(captureLogger(&buf))
	s.SetDebugMode(true)
	for i := 0; i < debugMaxNodes; i++ {
		s.Graph().Add(s.Root(), NewGroup("n"))
	}
	s.logDebugStats()
	if !strings.Contains(buf.String(), "exceeds threshold") {
		t.Errorf("expected threshold warning, got %s", buf.String())
	}
}

func TestTickRecordsTimeInDebugMode(t *testing.T) {
	s := NewScene()
	s.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	s.SetDebugMode(true)
	s.AddUpdater("sleep", func(dt, elapsed float64) { time.Sleep(time.Millisecond) })
	s.Tick(1.0 / 60)
	if s.stats.tickTime < time.Millisecond {
		t.Errorf("tickTime = %v, want >= 1ms", s.stats.tickTime)
	}
}
