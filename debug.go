package skyisle

import (
	"log/slog"
	"time"
)

// debugStats holds per-tick and per-frame metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime  time.Duration
	drawTime  time.Duration
	triangles int
	drawCalls int
}

// logDebugStats logs timing and draw-call stats at debug level.
func (s *Scene) logDebugStats() {
	if !s.debug {
		return
	}
	st := s.stats
	s.log.Debug("frame",
		slog.Duration("tick", st.tickTime),
		slog.Duration("draw", st.drawTime),
		slog.Int("triangles", st.triangles),
		slog.Int("drawCalls", st.drawCalls),
		slog.Int("nodes", s.graph.Len()),
	)
	if s.graph.Len() > debugMaxNodes {
		s.log.Warn("node count exceeds threshold",
			slog.Int("nodes", s.graph.Len()), slog.Int("threshold", debugMaxNodes))
	}
}

// debugMaxNodes is the node count above which debug mode warns.
const debugMaxNodes = 5000

// countBatches counts contiguous runs of triangles sharing texture and
// blend mode. This is the number of draw calls submitBatches issues when
// every named texture resolves.
func countBatches(tris []drawTri) int {
	if len(tris) == 0 {
		return 0
	}
	count := 1
	prev := tris[0]
	for i := 1; i < len(tris); i++ {
		cur := tris[i]
		if cur.tex != prev.tex || cur.blend != prev.blend {
			count++
		}
		prev = cur
	}
	return count
}

// FrameStats is a snapshot of the last built frame.
type FrameStats struct {
	Triangles int
	Batches   int
	DrawCalls int
}

// FrameStats reports the size of the last frame built by Draw.
func (s *Scene) FrameStats() FrameStats {
	return FrameStats{
		Triangles: len(s.frame.tris),
		Batches:   countBatches(s.frame.tris),
		DrawCalls: s.frame.drawCalls,
	}
}
