package game

import "math/rand"

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, tables, player, tuning: applied first
	simOptShip                       // place hulls, applied after the systems exist
)

// SimOption is a builder function applied to a BattleSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*BattleSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic harness
	}}
}

// WithWaveTable replaces the embedded stock wave table.
func WithWaveTable(wt *WaveTable) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.waves = wt
	}}
}

// WithWaveNumber starts the battle at a later wave.
func WithWaveNumber(n int) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.WaveNumber = n
	}}
}

// WithOmen applies a tide omen overlay to every wave config.
func WithOmen(o TideOmen) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.omen = &o
	}}
}

// WithPressure installs a non-default pressure profile (clamped as usual).
func WithPressure(p PressureProfile) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		*b.pressure = p.clamped()
	}}
}

// WithVerboseLog enables per-tick verbose logging.
func WithVerboseLog(v bool) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.Log = NewSimLog(v)
	}}
}

// WithAutoWaves makes the sim roster wave 1 itself and advance waves as the
// sea clears. Without it, ships are placed only via WithShip/WithBossShip.
func WithAutoWaves() SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.autoWaves = true
	}}
}

// WithPlayerAt places the player vessel.
func WithPlayerAt(x, z float64) SimOption {
	return SimOption{simOptInfra, func(b *BattleSim) {
		b.Player.Pos = Vec3{X: x, Z: z}
	}}
}

// WithShip places one enemy hull of the given class at (x,z) using the
// current wave's multipliers.
func WithShip(class string, x, z float64) SimOption {
	return SimOption{simOptShip, func(b *BattleSim) {
		s := NewShip(b.nextID, SpawnEntry{Class: class}, b.currentWave, Vec3{X: x, Z: z})
		b.nextID++
		b.Ships = append(b.Ships, s)
	}}
}

// WithBossShip places a boss hull with explicit hit points.
func WithBossShip(class string, x, z, hp float64) SimOption {
	return SimOption{simOptShip, func(b *BattleSim) {
		wave := b.currentWave
		wave.BossHP = hp
		s := NewShip(b.nextID, SpawnEntry{Class: class, Boss: true}, wave, Vec3{X: x, Z: z})
		b.nextID++
		b.Ships = append(b.Ships, s)
	}}
}
