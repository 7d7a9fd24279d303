package skyisle

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testTri(depth float64, order int) drawTri {
	return drawTri{depth: depth, order: order, col: ColorWhite}
}

// --- Sorting ---

func TestSortTrisFarFirst(t *testing.T) {
	f := &frameBuffers{}
	f.tris = []drawTri{testTri(1, 0), testTri(5, 1), testTri(3, 2), testTri(9, 3), testTri(2, 4)}
	f.sortTris()

	want := []float64{9, 5, 3, 2, 1}
	for i, w := range want {
		if f.tris[i].depth != w {
			t.Errorf("tris[%d].depth = %f, want %f", i, f.tris[i].depth, w)
		}
	}
}

func TestSortTrisStableOnTies(t *testing.T) {
	f := &frameBuffers{}
	for i := 0; i < 9; i++ {
		f.tris = append(f.tris, testTri(float64(i%3), i))
	}
	f.sortTris()

	for i := 1; i < len(f.tris); i++ {
		a, b := f.tris[i-1], f.tris[i]
		if a.depth < b.depth {
			t.Fatalf("depth out of order at %d: %f before %f", i, a.depth, b.depth)
		}
		if a.depth == b.depth && a.order > b.order {
			t.Errorf("tie at depth %f broke emission order: %d before %d", a.depth, a.order, b.order)
		}
	}
}

func TestSortTrisOddLengths(t *testing.T) {
	for n := 0; n < 20; n++ {
		f := &frameBuffers{}
		for i := 0; i < n; i++ {
			f.tris = append(f.tris, testTri(float64((i*7)%n), i))
		}
		f.sortTris()
		if len(f.tris) != n {
			t.Fatalf("n=%d: len = %d", n, len(f.tris))
		}
		for i := 1; i < n; i++ {
			if f.tris[i-1].depth < f.tris[i].depth {
				t.Fatalf("n=%d: unsorted at %d", n, i)
			}
		}
	}
}

func TestSortTrisReusesBuffer(t *testing.T) {
	f := &frameBuffers{}
	f.tris = []drawTri{testTri(1, 0), testTri(2, 1), testTri(3, 2)}
	f.sortTris()
	buf := &f.sortBuf[0]
	f.tris = []drawTri{testTri(3, 0), testTri(1, 1), testTri(2, 2)}
	f.sortTris()
	if &f.sortBuf[0] != buf {
		t.Error("sort buffer should be reused when large enough")
	}
}

func TestMergeRun(t *testing.T) {
	src := []drawTri{testTri(8, 0), testTri(4, 1), testTri(7, 2), testTri(2, 3)}
	dst := make([]drawTri, len(src))
	mergeRun(src, dst, 0, 2, 4)
	want := []float64{8, 7, 4, 2}
	for i, w := range want {
		if dst[i].depth != w {
			t.Errorf("dst[%d].depth = %f, want %f", i, dst[i].depth, w)
		}
	}
}

func TestTriLessOrEqual(t *testing.T) {
	far, near := testTri(10, 5), testTri(1, 0)
	if !triLessOrEqual(&far, &near) {
		t.Error("far triangle should come first")
	}
	if triLessOrEqual(&near, &far) {
		t.Error("near triangle should not come first")
	}
	a, b := testTri(3, 1), testTri(3, 2)
	if !triLessOrEqual(&a, &b) || triLessOrEqual(&b, &a) {
		t.Error("ties should fall back to emission order")
	}
}

// --- Submission ---

func TestSubmitBatchesCoalescesRuns(t *testing.T) {
	s := NewScene()
	s.frame.tris = []drawTri{
		{blend: BlendNormal, col: ColorWhite},
		{blend: BlendNormal, col: ColorWhite},
		{blend: BlendAdd, col: ColorWhite},
		{blend: BlendNormal, col: ColorWhite},
	}
	target := ebiten.NewImage(16, 16)
	s.submitBatches(target)

	if s.frame.drawCalls != 3 {
		t.Errorf("drawCalls = %d, want 3", s.frame.drawCalls)
	}
	if len(s.frame.verts) != 0 || len(s.frame.inds) != 0 {
		t.Error("vertex buffers should be flushed")
	}
}

func TestSubmitBatchesEmptyFrame(t *testing.T) {
	s := NewScene()
	s.frame.tris = s.frame.tris[:0]
	s.submitBatches(ebiten.NewImage(4, 4))
	if s.frame.drawCalls != 0 {
		t.Errorf("drawCalls = %d, want 0", s.frame.drawCalls)
	}
}

func TestAppendTrianglePremultiplies(t *testing.T) {
	f := &frameBuffers{}
	d := drawTri{col: Color{1, 0.5, 0, 0.5}}
	appendTriangle(f, &d, ensureWhiteImage(), false)

	if len(f.verts) != 3 || len(f.inds) != 3 {
		t.Fatalf("verts=%d inds=%d, want 3 and 3", len(f.verts), len(f.inds))
	}
	v := f.verts[0]
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("vertex color = (%f, %f, %f, %f)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
	if v.SrcX != whiteTexel || v.SrcY != whiteTexel {
		t.Errorf("untextured triangle should sample the white texel, got (%f, %f)", v.SrcX, v.SrcY)
	}
}

func TestAppendTriangleScalesUVs(t *testing.T) {
	f := &frameBuffers{}
	src := ebiten.NewImage(64, 32)
	d := drawTri{col: ColorWhite, uv: [3]UV{{0, 0}, {1, 0}, {0.5, 1}}}
	appendTriangle(f, &d, src, true)
	if f.verts[1].SrcX != 64 || f.verts[2].SrcX != 32 || f.verts[2].SrcY != 32 {
		t.Errorf("UVs not scaled to texture size: %+v", f.verts)
	}
}

func TestResolveTextureCachesRawImages(t *testing.T) {
	s := NewScene()
	img := VerticalGradient(8, 8, ColorWhite, Color{0, 0, 0, 1})
	a := s.resolveTexture(texRef{img: img})
	b := s.resolveTexture(texRef{img: img})
	if a == nil || a != b {
		t.Error("raw images should be uploaded once")
	}
	if s.resolveTexture(texRef{}) != nil {
		t.Error("empty ref should resolve to nil")
	}
}
