package skyisle

// TrailConfig controls how trail particles are spawned and fade.
type TrailConfig struct {
	// Capacity is the ring size. Spawning into a full ring overwrites the
	// oldest slot, live or not.
	Capacity int `toml:"capacity"`
	// Lifetime is the initial lifetime in seconds of every particle.
	Lifetime float64 `toml:"lifetime"`
	// SpawnChance is the probability of spawning one particle per Step.
	SpawnChance float64 `toml:"spawn_chance"`
	// Scale is the range of scale factors at birth.
	Scale Range `toml:"scale"`
	// Drift is the constant velocity applied to live particles.
	Drift Vec3 `toml:"drift"`
	// ParkY is the height inert particles are moved to, far below the scene.
	ParkY float64 `toml:"park_y"`
}

// DefaultTrailConfig returns the fairy-dust settings.
func DefaultTrailConfig() TrailConfig {
	return TrailConfig{
		Capacity:    100,
		Lifetime:    2,
		SpawnChance: 0.5,
		Scale:       Range{Min: 0.3, Max: 0.5},
		Drift:       Vec3{0, -0.1, 0},
		ParkY:       -100,
	}
}

// TrailParticle is a read-only snapshot of one ring slot.
type TrailParticle struct {
	Position Vec3
	Lifetime float64
	Opacity  float64
	Scale    float64
}

// Trail is a fixed-capacity ring buffer of fading particles. State is kept
// in parallel arrays indexed by slot; the cursor always points at the next
// slot to be written.
type Trail struct {
	config     TrailConfig
	positions  []Vec3
	lifetimes  []float64
	opacities  []float64
	scales     []float64
	baseScales []float64
	spawnLives []float64
	next       int
}

// NewTrail creates a trail with every slot parked.
func NewTrail(cfg TrailConfig) *Trail {
	n := cfg.Capacity
	if n <= 0 {
		n = 100
		cfg.Capacity = n
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 1
	}
	t := &Trail{
		config:     cfg,
		positions:  make([]Vec3, n),
		lifetimes:  make([]float64, n),
		opacities:  make([]float64, n),
		scales:     make([]float64, n),
		baseScales: make([]float64, n),
		spawnLives: make([]float64, n),
	}
	for i := range t.positions {
		t.park(i)
	}
	return t
}

// Config returns a pointer to the trail's config for live tuning. Capacity
// changes have no effect after construction.
func (t *Trail) Config() *TrailConfig { return &t.config }

// Len returns the ring capacity.
func (t *Trail) Len() int { return len(t.positions) }

// Next returns the slot the next Spawn will write.
func (t *Trail) Next() int { return t.next }

// Particle returns a snapshot of slot i.
func (t *Trail) Particle(i int) TrailParticle {
	return TrailParticle{
		Position: t.positions[i],
		Lifetime: t.lifetimes[i],
		Opacity:  t.opacities[i],
		Scale:    t.scales[i],
	}
}

// Live reports whether slot i holds a particle with remaining lifetime.
func (t *Trail) Live(i int) bool { return t.lifetimes[i] > 0 }

// LiveCount returns the number of live particles.
func (t *Trail) LiveCount() int {
	n := 0
	for _, l := range t.lifetimes {
		if l > 0 {
			n++
		}
	}
	return n
}

// Each calls fn for every live particle in slot order.
func (t *Trail) Each(fn func(i int, p TrailParticle)) {
	for i, l := range t.lifetimes {
		if l > 0 {
			fn(i, t.Particle(i))
		}
	}
}

// Spawn writes a fresh particle at pos into slot Next and advances the
// cursor modulo the capacity. A non-positive Lifetime parks the slot.
func (t *Trail) Spawn(pos Vec3, rng *RNG) {
	i := t.next
	t.next = (t.next + 1) % len(t.positions)
	life := t.config.Lifetime
	if life <= 0 {
		t.park(i)
		return
	}
	s := t.config.Scale.Random(rng)
	t.positions[i] = pos
	t.lifetimes[i] = life
	t.spawnLives[i] = life
	t.opacities[i] = 1
	t.scales[i] = s
	t.baseScales[i] = s
}

// Update ages every live particle by dt. Opacity and scale fall linearly with
// the fraction of the particle's own spawn lifetime that remains; a particle whose lifetime reaches zero is
// parked with zero opacity and scale until its slot is reused.
func (t *Trail) Update(dt float64) {
	drift := t.config.Drift.Mul(dt)
	for i, l := range t.lifetimes {
		if l <= 0 {
			continue
		}
		l -= dt
		t.lifetimes[i] = l
		if l <= 0 {
			t.park(i)
			continue
		}
		frac := l / t.spawnLives[i]
		t.opacities[i] = frac
		t.scales[i] = frac * t.baseScales[i]
		t.positions[i] = t.positions[i].Add(drift)
	}
}

// Step maybe spawns one particle at emitter, then updates.
func (t *Trail) Step(dt float64, emitter Vec3, rng *RNG) {
	if rng.Chance(t.config.SpawnChance) {
		t.Spawn(emitter, rng)
	}
	t.Update(dt)
}

// Reset parks every particle and rewinds the cursor.
func (t *Trail) Reset() {
	for i := range t.positions {
		t.park(i)
	}
	t.next = 0
}

func (t *Trail) park(i int) {
	t.positions[i].Y = t.config.ParkY
	t.lifetimes[i] = 0
	t.opacities[i] = 0
	t.scales[i] = 0
}
