package skyisle

import (
	"math"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(99), NewRNG(99)
	for i := 0; i < 100; i++ {
		if a.Unit() != b.Unit() {
			t.Fatalf("draw %d differs for the same seed", i)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(5)
	for i := 0; i < 1000; i++ {
		if v := r.Float(-5, 5.5); v < -5 || v >= 5.5 {
			t.Fatalf("Float = %v out of [-5, 5.5)", v)
		}
		if v := r.Signed(0.85); v < -0.425 || v >= 0.425 {
			t.Fatalf("Signed = %v out of [-0.425, 0.425)", v)
		}
		if v := r.Angle(); v < 0 || v >= 2*math.Pi {
			t.Fatalf("Angle = %v out of range", v)
		}
		if v := r.Int(0.6, 1.5); v != 0 && v != 1 {
			t.Fatalf("Int(0.6, 1.5) = %d, want 0 or 1", v)
		}
		if v := r.Pick(8); v < 0 || v >= 8 {
			t.Fatalf("Pick = %d", v)
		}
	}
}

func TestRNGChanceExtremes(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestRNGPickWeighted(t *testing.T) {
	r := NewRNG(2)
	for i := 0; i < 50; i++ {
		if got := r.PickWeighted([]float64{0, 1, 0}); got != 1 {
			t.Fatalf("PickWeighted = %d, want 1", got)
		}
	}
}

func TestRNGGaussianClamped(t *testing.T) {
	r := NewRNG(3)
	bounds := Range{Min: -1, Max: 1}
	for i := 0; i < 500; i++ {
		if v := r.Gaussian(0, 10, bounds); !bounds.Contains(v) {
			t.Fatalf("Gaussian = %v outside %v", v, bounds)
		}
	}
}

func TestWrapRNGNil(t *testing.T) {
	r := WrapRNG(nil)
	if r.Source() == nil {
		t.Fatal("WrapRNG(nil) should fall back to the global source")
	}
	_ = r.Unit()
}

func TestRangeRandom(t *testing.T) {
	r := NewRNG(4)
	if got := (Range{Min: 2, Max: 2}).Random(r); got != 2 {
		t.Errorf("degenerate range = %v, want 2", got)
	}
	rg := Range{Min: 0.3, Max: 0.5}
	for i := 0; i < 100; i++ {
		if v := rg.Random(r); v < 0.3 || v >= 0.5 {
			t.Fatalf("Random = %v", v)
		}
	}
}
