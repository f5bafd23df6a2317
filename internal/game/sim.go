package game

import (
	"fmt"
	"math"
	"math/rand"
)

// Player defaults.
const (
	playerMaxHP      = 200.0
	playerHullRadius = 3.0
	playerBarrels    = 4
	spawnRingMin     = 120.0 // ships enter the fight from this ring
	spawnRingMax     = 180.0
	bossEnrageFrac   = 0.4 // boss enrages below this HP fraction

	// Escort-shot accuracy by firer quality.
	escortAccuracyNormal = 0.6
	escortAccuracyBoss   = 0.85
)

// PlayerState is the host-owned player vessel. The physics/input layer
// drives Pos/Heading/Speed; the sim owns the health pool and applies the
// damage events the combat core returns.
type PlayerState struct {
	Pos     Vec3
	Heading float64
	Speed   float64

	HP    float64
	MaxHP float64

	HullRadius  float64
	DodgeChance float64 // upgrade-supplied, 0 for a stock hull
	Barrels     int
	DamageMult  float64 // upgrade-supplied broadside damage multiplier
}

// BattleSim is the frame-stepped battle host: it owns the player, the enemy
// roster, both combat components and the per-frame ordering between them.
// Everything runs synchronously inside Step.
type BattleSim struct {
	Player PlayerState
	Ships  []*Ship

	Projectiles *ProjectileSystem
	AI          *AIController

	WaveNumber int
	Gold       int
	Tick       int

	Log *SimLog

	pressure    *PressureProfile
	waves       *WaveTable
	omen        *TideOmen
	currentWave WaveConfig
	autoWaves   bool
	rng         *rand.Rand
	nextID      int
}

// NewBattleSim builds a sim from options. Infrastructure options (seed,
// tables, player) are applied before ship options, mirroring construction
// order in the real game: world first, then hulls.
func NewBattleSim(opts ...SimOption) *BattleSim {
	pressure := DefaultPressure()
	b := &BattleSim{
		Player: PlayerState{
			HP:         playerMaxHP,
			MaxHP:      playerMaxHP,
			HullRadius: playerHullRadius,
			Barrels:    playerBarrels,
			DamageMult: 1.0,
		},
		Log:        NewSimLog(false),
		pressure:   &pressure,
		waves:      DefaultWaveTable(),
		WaveNumber: 1,
	}
	for _, opt := range opts {
		if opt.kind == simOptInfra {
			opt.fn(b)
		}
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- simulation, not crypto
	}
	b.Projectiles = NewProjectileSystem(b.rng, b.pressure)
	b.AI = NewAIController(b.rng, b.pressure)
	b.currentWave = b.waveConfig(b.WaveNumber)

	shipOpts := 0
	for _, opt := range opts {
		if opt.kind == simOptShip {
			opt.fn(b)
			shipOpts++
		}
	}
	if shipOpts == 0 && b.autoWaves {
		b.SpawnWave()
	}
	return b
}

// SetPressureProfile swaps the shared tuning overlay. The profile is clamped
// at this boundary; both combat components see the new values immediately.
func (b *BattleSim) SetPressureProfile(p PressureProfile) {
	*b.pressure = p.clamped()
}

// Pressure returns the active (clamped) profile.
func (b *BattleSim) Pressure() PressureProfile {
	return *b.pressure
}

func (b *BattleSim) waveConfig(n int) WaveConfig {
	w := b.waves.Wave(n)
	if b.omen != nil {
		w = ApplyOmen(w, *b.omen)
	}
	return w
}

// SpawnWave rosters and places the current wave on a ring around the player.
func (b *BattleSim) SpawnWave() {
	wave := b.waveConfig(b.WaveNumber)
	b.currentWave = wave
	b.Projectiles.SetSpreadModifiers(weatherSpreadBonus(wave.Weather), 1.0)

	roster := b.AI.SpawnList(wave, b.WaveNumber)
	for _, entry := range roster {
		angle := b.rng.Float64() * 2 * math.Pi
		radius := spawnRingMin + b.rng.Float64()*(spawnRingMax-spawnRingMin)
		pos := b.Player.Pos.Add(headingVec(angle).Scale(radius))
		s := NewShip(b.nextID, entry, wave, pos)
		b.nextID++
		b.Ships = append(b.Ships, s)
		b.Log.Add(b.Tick, s.label(), "spawn", "ship",
			fmt.Sprintf("%s id=%d hp=%.0f", s.Class, s.ID, s.HP), s.HP)
	}
	AssignFormationGroups(b.Ships)
	b.Log.Add(b.Tick, "--", "wave", "start",
		fmt.Sprintf("wave=%d ships=%d weather=%s", b.WaveNumber, len(roster), wave.Weather),
		float64(b.WaveNumber))
}

// FireBroadside requests a player broadside. The projectile system enforces
// the per-side cooldown; a gated request is silently a no-op.
func (b *BattleSim) FireBroadside(side Side) {
	b.Projectiles.SpawnBroadside(b.Player.Pos, b.Player.Heading, side,
		b.Player.DamageMult, b.Player.Speed, b.Player.Barrels)
}

// Step advances the battle one frame. Ordering matters and mirrors the
// contract between the AI and the projectile system: steer, move, shoot,
// integrate, resolve, then cull.
func (b *BattleSim) Step(dt float64) {
	b.Tick++

	b.AI.UpdateFormation(b.Ships)

	playerVel := headingVec(b.Player.Heading).Scale(b.Player.Speed)
	for _, s := range b.Ships {
		b.AI.UpdateAI(s, b.Player.Pos, b.Player.Heading, dt, b.Ships)
		b.AI.UpdateGhostPhase(s, dt)
		if s.Alive() {
			s.Pos = s.Pos.Add(headingVec(s.Heading).Scale(s.Speed * dt))
		}

		if b.AI.ShouldFire(s, b.Player.Pos) {
			acc := escortAccuracyNormal
			if s.Boss {
				acc = escortAccuracyBoss
			}
			b.Projectiles.FireEscortShot(s.Pos, s.Heading, b.Player.Pos, playerVel, acc)
			s.fireTimer = b.AI.FireCooldown(s)
			b.Log.AddVerbose(b.Tick, s.label(), "fire", "escort_shot",
				fmt.Sprintf("id=%d", s.ID), 0)
		}

		if ev := b.AI.CheckFireShipExplosion(s, b.Player.Pos); ev != nil {
			b.applyPlayerDamage(ev.Damage)
			b.Log.Add(b.Tick, s.label(), "hit", "fire_ship_blast",
				fmt.Sprintf("id=%d dmg=%.1f", s.ID, ev.Damage), ev.Damage)
			// The blast also scorches nearby enemy hulls.
			for _, splash := range b.Projectiles.CheckFireShipAoE(s.Pos, fireShipBlast, b.Ships) {
				b.applyShipDamage(splash)
			}
		}
	}

	b.Projectiles.Update(dt)

	ghostMiss := b.AI.GhostMissMap(b.Ships)
	for _, hit := range b.Projectiles.CheckHits(b.Ships, ghostMiss) {
		b.applyShipDamage(hit)
	}

	if ev := b.Projectiles.CheckPlayerHit(b.Player.Pos, b.Player.HullRadius, b.Player.DodgeChance); ev != nil {
		b.applyPlayerDamage(ev.Damage)
	}

	b.cullShips()

	if b.autoWaves && len(b.Ships) == 0 && b.Player.HP > 0 {
		b.WaveNumber++
		b.SpawnWave()
	}
}

func (b *BattleSim) applyPlayerDamage(dmg float64) {
	b.Player.HP -= dmg * b.currentWave.DamageMult
	if b.Player.HP < 0 {
		b.Player.HP = 0
	}
}

func (b *BattleSim) applyShipDamage(hit HitResult) {
	s := findShip(b.Ships, hit.TargetID)
	if s == nil || !s.Alive() {
		return
	}
	s.HP -= hit.Damage
	if s.Boss && !s.Enraged && s.HP < s.MaxHP*bossEnrageFrac {
		s.Enraged = true
		b.Log.Add(b.Tick, s.label(), "hit", "enrage", fmt.Sprintf("id=%d", s.ID), s.HP)
	}
	if s.HP <= 0 {
		s.HP = 0
		// A fire ship killed by gunfire still goes up; the explosion check
		// latches Sinking itself, so chained detonations terminate.
		if ev := b.AI.CheckFireShipExplosion(s, b.Player.Pos); ev != nil {
			b.applyPlayerDamage(ev.Damage)
			b.Log.Add(b.Tick, s.label(), "hit", "fire_ship_blast",
				fmt.Sprintf("id=%d dmg=%.1f", s.ID, ev.Damage), ev.Damage)
			for _, splash := range b.Projectiles.CheckFireShipAoE(s.Pos, fireShipBlast, b.Ships) {
				b.applyShipDamage(splash)
			}
		}
		s.Sinking = true
		b.Gold += s.Value
		b.Log.Add(b.Tick, s.label(), "sink", "ship",
			fmt.Sprintf("%s id=%d gold=%d", s.Class, s.ID, s.Value), float64(s.Value))
	}
}

// cullShips removes sunk hulls and far-drifted non-boss ships in place.
func (b *BattleSim) cullShips() {
	kept := b.Ships[:0]
	for _, s := range b.Ships {
		if s.Sinking || s.HP <= 0 {
			continue
		}
		if b.AI.ShouldDespawn(s, b.Player.Pos) {
			b.Log.Add(b.Tick, s.label(), "despawn", "range",
				fmt.Sprintf("id=%d", s.ID), 0)
			continue
		}
		kept = append(kept, s)
	}
	b.Ships = kept
}

// AliveCount returns the number of ships still fighting.
func (b *BattleSim) AliveCount() int {
	n := 0
	for _, s := range b.Ships {
		if s.Alive() {
			n++
		}
	}
	return n
}
