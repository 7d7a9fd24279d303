package skyisle

import (
	"image"
	"math"
)

// SkyConfig holds the day/night parameters.
type SkyConfig struct {
	DaySun       float64 `toml:"day_sun"`
	DayAmbient   float64 `toml:"day_ambient"`
	NightSun     float64 `toml:"night_sun"`
	NightAmbient float64 `toml:"night_ambient"`

	DayTop      Color `toml:"day_top"`
	DayBottom   Color `toml:"day_bottom"`
	NightTop    Color `toml:"night_top"`
	NightBottom Color `toml:"night_bottom"`

	Stars         int     `toml:"stars"`
	StarMaxRadius float64 `toml:"star_max_radius"`

	SunPosition Vec3    `toml:"sun_position"`
	BodyRadius  float64 `toml:"body_radius"`
	// LightDistance is the sun light falloff range.
	LightDistance float64 `toml:"light_distance"`

	Nebulae           int     `toml:"nebulae"`
	LightningChance   float64 `toml:"lightning_chance"`
	LightningDuration float64 `toml:"lightning_duration"`
}

// DefaultSkyConfig returns the day/night settings.
func DefaultSkyConfig() SkyConfig {
	return SkyConfig{
		DaySun:            2.5,
		DayAmbient:        0.5,
		NightSun:          1.2,
		NightAmbient:      0.2,
		DayTop:            Hex(0x87CEEB),
		DayBottom:         Hex(0x1E90FF),
		NightTop:          Hex(0x0c1445),
		NightBottom:       Hex(0x000033),
		Stars:             150,
		StarMaxRadius:     2,
		SunPosition:       Vec3{0, 30, -60},
		BodyRadius:        8,
		LightDistance:     600,
		Nebulae:           5,
		LightningChance:   0.02,
		LightningDuration: 0.1,
	}
}

// SkyEvent is published on every day/night transition.
type SkyEvent struct {
	Day     bool
	Tick    uint64
	Elapsed float64
}

// SkyController owns the sun, the moon, the two scene lights and the
// background raster, and switches them between day and night as one unit.
// Exactly one of sun and moon is visible at any time.
type SkyController struct {
	scene *Scene
	cfg   SkyConfig
	rng   *RNG
	store EventStore
	day   bool

	Group    NodeID
	Sun      NodeID
	Moon     NodeID
	SunLight NodeID
	Ambient  NodeID

	background    *image.RGBA
	width, height int
}

// NewSkyController builds the sky under parent, attaches it to the scene
// and starts in day mode.
func NewSkyController(s *Scene, parent NodeID, rng *RNG, cfg SkyConfig) *SkyController {
	g := s.Graph()
	sc := &SkyController{scene: s, cfg: cfg, rng: rng, store: s.store, day: true}
	sc.width, sc.height = s.Size()
	sc.Group = g.Add(parent, NewGroup("sky"))

	body := SphereGeometry(cfg.BodyRadius, 32, 32)

	sun := NewMesh("sun", body, Material{
		Color:             Hex(0xFDB813),
		Emissive:          Hex(0xffa500),
		EmissiveIntensity: 2,
		Opacity:           1,
	})
	sun.Position = cfg.SunPosition
	sc.Sun = g.Add(sc.Group, sun)
	g.Add(sc.Sun, glowSprite("sun-glow", []ColorStop{
		{0, Hex(0xffdd44)},
		{0.3, Hex(0xffbb33)},
		{1, Color{}},
	}, 30, 0.9))

	moon := NewMesh("moon", body, Material{
		Color:             ColorWhite,
		Emissive:          Hex(0xaaaaff),
		EmissiveIntensity: 1.5,
		Opacity:           1,
	})
	moon.Position = cfg.SunPosition
	moon.Visible = false
	sc.Moon = g.Add(sc.Group, moon)
	g.Add(sc.Moon, glowSprite("moon-glow", []ColorStop{
		{0, Hex(0xffffe0)},
		{0.5, Hex(0xaaaaff)},
		{1, Color{}},
	}, 20, 0.7))

	light := NewLight("sun-light", LightPoint, Hex(0xffddaa), cfg.DaySun)
	light.Light.Distance = cfg.LightDistance
	light.Position = cfg.SunPosition
	sc.SunLight = g.Add(sc.Group, light)
	sc.Ambient = g.Add(sc.Group, NewLight("ambient", LightAmbient, Hex(0xfff0e0), cfg.DayAmbient))

	sc.apply()
	s.sky = sc
	return sc
}

// glowSprite builds an additive halo of the given world size.
func glowSprite(name string, stops []ColorStop, size, opacity float64) *Node {
	n := NewSprite(name, RadialGlow(256, stops), Material{
		Color:     ColorWhite,
		Opacity:   opacity,
		Unlit:     true,
		BlendMode: BlendAdd,
	})
	n.Scale = Vec3{size, size, 1}
	return n
}

// Toggle flips between day and night.
func (sc *SkyController) Toggle() {
	sc.day = !sc.day
	sc.apply()
	sc.publish()
}

// SetDay switches to the given mode. Setting the current mode is a no-op.
func (sc *SkyController) SetDay(day bool) {
	if sc.day == day {
		return
	}
	sc.Toggle()
}

// IsDay reports whether the sky is in day mode.
func (sc *SkyController) IsDay() bool { return sc.day }

// Config returns the sky settings.
func (sc *SkyController) Config() SkyConfig { return sc.cfg }

// Background returns the current background raster. It is replaced, not
// mutated, on every change.
func (sc *SkyController) Background() *image.RGBA { return sc.background }

// Resize regenerates the background raster for a new viewport.
func (sc *SkyController) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	sc.width, sc.height = w, h
	sc.paint()
}

// SunIntensity returns the current sun light intensity.
func (sc *SkyController) SunIntensity() float64 {
	return sc.scene.Graph().Node(sc.SunLight).Light.Intensity
}

// AmbientIntensity returns the current ambient light intensity.
func (sc *SkyController) AmbientIntensity() float64 {
	return sc.scene.Graph().Node(sc.Ambient).Light.Intensity
}

func (sc *SkyController) apply() {
	g := sc.scene.Graph()
	sun, ambient := sc.cfg.DaySun, sc.cfg.DayAmbient
	if !sc.day {
		sun, ambient = sc.cfg.NightSun, sc.cfg.NightAmbient
	}
	g.Node(sc.Sun).Visible = sc.day
	g.Node(sc.Moon).Visible = !sc.day
	g.Node(sc.SunLight).Light.Intensity = sun
	g.Node(sc.Ambient).Light.Intensity = ambient
	sc.paint()
}

func (sc *SkyController) paint() {
	if sc.day {
		sc.background = DayBackground(sc.width, sc.height, sc.cfg)
	} else {
		sc.background = NightBackground(sc.width, sc.height, sc.cfg, sc.rng)
	}
}

func (sc *SkyController) publish() {
	ev := SkyEvent{Day: sc.day, Tick: sc.scene.Ticks(), Elapsed: sc.scene.Elapsed()}
	mode := "night"
	if sc.day {
		mode = "day"
	}
	sc.scene.Logger().Info("sky toggled", "mode", mode, "tick", ev.Tick)
	if sc.store != nil {
		sc.store.EmitSkyEvent(ev)
	}
}

// SkyExtras are the night-time decorations: swirling nebulae, a shooting
// star and lightning flashes. They are hidden during the day.
type SkyExtras struct {
	sky       *SkyController
	cfg       SkyConfig
	group     *Node
	nebulae   []*Node
	star      *Node
	lightning *Node
	flash     float64
}

// CreateSkyExtras builds the night decorations under parent.
func CreateSkyExtras(s *Scene, parent NodeID, sky *SkyController, rng *RNG) *SkyExtras {
	g := s.Graph()
	cfg := sky.Config()
	x := &SkyExtras{sky: sky, cfg: cfg, group: NewGroup("sky-extras")}
	g.Add(parent, x.group)

	fallback := RadialGlow(128, []ColorStop{
		{0, Color{0.8, 0.5, 1, 0.8}},
		{0.5, Color{0.4, 0.2, 0.8, 0.4}},
		{1, Color{}},
	})
	for i := 0; i < cfg.Nebulae; i++ {
		n := NewSprite("nebula", fallback, Material{
			Color:     ColorWhite,
			Texture:   TextureNebula,
			Opacity:   0.5,
			Unlit:     true,
			BlendMode: BlendAdd,
		})
		n.Position = Vec3{rng.Float(-50, 50), rng.Float(30, 50), rng.Float(-100, -80)}
		n.Scale = Vec3{rng.Float(40, 60), rng.Float(40, 60), 1}
		g.Add(x.group.ID, n)
		x.nebulae = append(x.nebulae, n)
	}

	x.star = NewMesh("shooting-star", PlaneGeometry(0.5, 0.5, 1, 1), Material{
		Color:      ColorWhite,
		Opacity:    0.8,
		Unlit:      true,
		DoubleSide: true,
	})
	g.Add(x.group.ID, x.star)
	x.resetStar(rng)

	x.lightning = NewMesh("lightning", PlaneGeometry(20, 100, 1, 1), Material{
		Color:      ColorWhite,
		Opacity:    0,
		Unlit:      true,
		DoubleSide: true,
	})
	x.lightning.Position = Vec3{0, 50, -80}
	g.Add(x.group.ID, x.lightning)

	x.group.Visible = !sky.IsDay()
	return x
}

func (x *SkyExtras) resetStar(rng *RNG) {
	x.star.SetPosition(Vec3{rng.Float(-50, 50), rng.Float(30, 70), rng.Float(-100, -80)})
	x.star.Material.Opacity = 0.8
}

// Update advances the decorations. Motion is per tick; the lightning
// flash is timed in seconds.
func (x *SkyExtras) Update(dt, elapsed float64, rng *RNG) {
	x.group.Visible = !x.sky.IsDay()

	sx := math.Sin(elapsed*0.1) * 0.02
	sy := math.Cos(elapsed*0.1) * 0.02
	for _, n := range x.nebulae {
		n.SetPosition(n.Position.Add(Vec3{sx, sy, 0}))
	}

	p := x.star.Position
	p.Y -= 0.5
	p.X -= 0.2
	x.star.SetPosition(p)
	x.star.Material.Opacity -= 0.01
	if p.Y < -30 || x.star.Material.Opacity <= 0 {
		x.resetStar(rng)
	}

	if x.flash > 0 {
		x.flash -= dt
		if x.flash <= 0 {
			x.flash = 0
			x.lightning.Material.Opacity = 0
		}
	} else if rng.Chance(x.cfg.LightningChance) {
		x.flash = x.cfg.LightningDuration
		x.lightning.Material.Opacity = 0.8
	}
}

// Flashing reports whether a lightning flash is showing.
func (x *SkyExtras) Flashing() bool { return x.flash > 0 }

// StarOpacity returns the shooting star opacity.
func (x *SkyExtras) StarOpacity() float64 { return x.star.Material.Opacity }

// StarPosition returns the shooting star position.
func (x *SkyExtras) StarPosition() Vec3 { return x.star.Position }
