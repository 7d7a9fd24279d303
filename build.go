package skyisle

import "log/slog"

// FloatingIsland holds the handles of a scene assembled by
// BuildFloatingIsland.
type FloatingIsland struct {
	Config   SceneConfig
	RNG      *RNG
	Sky      *SkyController
	Extras   *SkyExtras
	Island   NodeID
	Pond     NodeID
	Ocean    *Ocean
	Clouds   *Clouds
	Swarm    *Swarm
	Unicorn  *Unicorn
	KeyLight NodeID
}

// BuildFloatingIsland populates s with the complete floating island scene
// and registers its animation systems. Updaters run in this order each
// tick: ocean, clouds, butterflies, unicorn, sky extras.
func BuildFloatingIsland(s *Scene, cfg SceneConfig) *FloatingIsland {
	rng := NewRNG(cfg.Seed)
	g := s.Graph()
	root := s.Root()

	s.camera.Configure(cfg.Camera)
	s.SetBloom(cfg.Bloom)

	fi := &FloatingIsland{Config: cfg, RNG: rng}
	fi.Sky = NewSkyController(s, root, rng, cfg.Sky)

	key := NewLight("key-light", LightDirectional, ColorWhite, 1)
	key.Position = Vec3{10, 10, 10}
	fi.KeyLight = g.Add(root, key)

	fi.Island = CreateIsland(s, root, rng, cfg.Island)
	CreateMountains(s, fi.Island, rng, cfg.Mountain)
	fi.Pond = CreatePond(s, fi.Island)
	CreateRockBorder(s, fi.Pond, rng)
	CreateWaterfalls(s, fi.Island)

	fi.Ocean = CreateOcean(s, root, cfg.Ocean)
	fi.Clouds = CreateClouds(s, root, rng, cfg.Cloud)
	fi.Swarm = CreateButterflies(s, root, rng, cfg.Swarm)
	fi.Unicorn = NewUnicorn(s, root, rng, cfg.Unicorn)
	fi.Extras = CreateSkyExtras(s, root, fi.Sky, rng)

	s.AddUpdater("ocean", func(_, elapsed float64) { fi.Ocean.Update(elapsed) })
	s.AddUpdater("clouds", func(_, _ float64) { fi.Clouds.Update() })
	s.AddUpdater("butterflies", func(dt, elapsed float64) { fi.Swarm.Update(dt, elapsed, rng) })
	s.AddUpdater("unicorn", func(dt, _ float64) { fi.Unicorn.Update(s, dt, rng) })
	s.AddUpdater("sky-extras", func(dt, elapsed float64) { fi.Extras.Update(dt, elapsed, rng) })

	s.Logger().Info("scene built",
		slog.Int64("seed", cfg.Seed),
		slog.Int("nodes", g.Len()),
		slog.Any("updaters", s.Updaters()),
	)
	return fi
}
