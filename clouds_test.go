package skyisle

import "testing"

func TestCreateClouds(t *testing.T) {
	s := quietScene()
	cfg := DefaultCloudConfig()
	c := CreateClouds(s, s.Root(), NewRNG(1), cfg)
	if c.Len() != cfg.Count {
		t.Fatalf("Len = %d, want %d", c.Len(), cfg.Count)
	}
	if n := s.Node(c.Group).NumChildren(); n != cfg.Count {
		t.Errorf("group children = %d, want %d", n, cfg.Count)
	}
	for i := 0; i < c.Len(); i++ {
		p := c.Position(i)
		if p.X < -25 || p.X >= 25 || p.Y < 15 || p.Y >= 35 {
			t.Errorf("cloud %d spawned at %v", i, p)
		}
	}
}

func TestCloudDriftBounded(t *testing.T) {
	s := quietScene()
	cfg := DefaultCloudConfig()
	c := CreateClouds(s, s.Root(), NewRNG(1), cfg)
	for i, v := range c.speeds {
		if v.X < -cfg.Drift.X/2 || v.X >= cfg.Drift.X/2 {
			t.Errorf("cloud %d x speed %f outside ±%f", i, v.X, cfg.Drift.X/2)
		}
	}
}

func TestCloudWrapX(t *testing.T) {
	s := quietScene()
	cfg := DefaultCloudConfig()
	cfg.Count = 1
	c := CreateClouds(s, s.Root(), NewRNG(1), cfg)
	c.speeds[0] = Vec3{1, 0, 0}
	c.nodes[0].Position = Vec3{49.5, 10, 0}

	c.Update()
	if got := c.Position(0).X; got != cfg.WrapX.Min {
		t.Errorf("X = %f, want wrap to %f", got, cfg.WrapX.Min)
	}
}

func TestCloudWrapZ(t *testing.T) {
	s := quietScene()
	cfg := DefaultCloudConfig()
	cfg.Count = 1
	c := CreateClouds(s, s.Root(), NewRNG(1), cfg)
	c.speeds[0] = Vec3{0, 0, 2}
	c.nodes[0].Position = Vec3{0, 10, 49}

	c.Update()
	if got := c.Position(0).Z; got != cfg.WrapZ.Min {
		t.Errorf("Z = %f, want wrap to %f", got, cfg.WrapZ.Min)
	}
}

func TestCloudHeightReset(t *testing.T) {
	s := quietScene()
	cfg := DefaultCloudConfig()
	cfg.Count = 2
	c := CreateClouds(s, s.Root(), NewRNG(1), cfg)
	c.speeds[0] = Vec3{}
	c.speeds[1] = Vec3{}
	// Initial heights above the band reset on the first tick.
	c.nodes[0].Position = Vec3{0, 30, 0}
	c.nodes[1].Position = Vec3{0, 2, 0}

	c.Update()
	for i := 0; i < 2; i++ {
		if y := c.Position(i).Y; y != cfg.ResetY {
			t.Errorf("cloud %d Y = %f, want %f", i, y, cfg.ResetY)
		}
	}
}

func TestCloudUpdateMarksDirty(t *testing.T) {
	s := quietScene()
	c := CreateClouds(s, s.Root(), NewRNG(1), DefaultCloudConfig())
	s.Graph().UpdateWorld()
	c.Update()
	if !c.nodes[0].transformDirty {
		t.Error("drifting cloud should be transform-dirty")
	}
}
