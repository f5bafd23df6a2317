package game

import "math/rand"

// --- Ballistics constants ---

const (
	poolSize         = 100  // fixed projectile pool capacity
	projectileSpeed  = 55.0 // escort-shot muzzle speed, units/s
	gravity          = 9.8  // units/s² pulling shots back to the water
	maxProjectileAge = 6.0  // seconds before a shot fizzles
	deathAltitude    = -0.5 // below the waterline, shot is gone
	projectileRadius = 0.4  // added to target hit radii on impact checks

	baseShotDamage = 10.0 // cannonball damage before multipliers

	// Broadside geometry and timing.
	broadsideCooldownBase = 2.0  // seconds per side before it can fire again
	barrelStagger         = 0.07 // seconds between barrels in one broadside
	barrelSpacing         = 1.6  // gap between muzzles along the hull
	hullHalfWidth         = 1.1  // muzzle offset out from the centreline
	muzzleHeight          = 1.2  // muzzle altitude above the waterline
	lateralMuzzleSpeed    = 40.0 // broadside component, units/s
	forwardCarryFrac      = 0.35 // fraction of the firer's way carried by the shot
	broadsideArcLift      = 7.0  // upward component so volleys arc
	baseSpread            = 2.2  // per-axis velocity jitter, units/s

	// Chain (area) ammunition: every Nth player shot while armed.
	chainShotEvery = 4
	areaRadius     = 10.0
	areaDamageFrac = 0.5

	// Grapeshot split on a near miss.
	splitDetectRadius = 7.0 // beyond the hit radius but inside this
	splitCount        = 3
	splitDamageFrac   = 0.35
	splitSpeed        = 40.0
	splitJitter       = 0.12 // radians of per-pellet scatter

	// Escort predictive aim.
	escortMaxDeviation = 0.35 // radians of cone at zero accuracy
)

// Side selects which broadside battery fires.
type Side int

const (
	SidePort Side = iota
	SideStarboard
)

func (s Side) String() string {
	if s == SidePort {
		return "port"
	}
	return "starboard"
}

// Projectile is one pool slot. Slots are owned exclusively by the pool; no
// reference to a slot survives across frames.
type Projectile struct {
	pos Vec3
	vel Vec3
	age float64

	active     bool
	fromPlayer bool
	damageMult float64
	aoe        bool // chain ammunition: damages neighbours on impact
	split      bool // grapeshot pellet: must never re-split
}

// QueuedShot is a broadside barrel that has not fired yet. When its delay
// reaches zero it becomes a pool projectile.
type QueuedShot struct {
	pos        Vec3
	vel        Vec3
	delay      float64
	damageMult float64
	fromPlayer bool
	aoe        bool
}

// HitResult is a damage event handed back to the host, which owns all health
// pools. TargetID is -1 when the player is the target.
type HitResult struct {
	TargetID  int
	Damage    float64
	HitPos    Vec3
	AoE       bool // secondary splash event from a chain-shot impact
	ChainShot bool // primary impact of a chain-ammunition shot
}

// ProjectileSystem owns the fixed projectile pool, the broadside queue, and
// per-side cooldowns. All methods run synchronously within the calling frame.
type ProjectileSystem struct {
	pool   [poolSize]Projectile
	queued []QueuedShot

	portCooldown      float64
	starboardCooldown float64

	// Special-ammo overlay: running player shot counter for chain rounds.
	chainAmmo   bool
	shotCounter int

	// Collaborator-supplied spread modifiers.
	weatherSpread float64 // additive, widens the cone in foul weather
	accuracyMult  float64 // multiplicative, <1 after accuracy upgrades

	pressure *PressureProfile
	rng      *rand.Rand
}

// NewProjectileSystem creates an empty pool. pressure may be nil, in which
// case a private neutral profile is used.
func NewProjectileSystem(rng *rand.Rand, pressure *PressureProfile) *ProjectileSystem {
	if pressure == nil {
		p := DefaultPressure()
		pressure = &p
	}
	return &ProjectileSystem{
		pressure:     pressure,
		rng:          rng,
		accuracyMult: 1.0,
	}
}

// SetChainAmmo arms or disarms the chain-shot overlay. While armed, every
// chainShotEvery-th player shot carries area damage.
func (ps *ProjectileSystem) SetChainAmmo(on bool) {
	ps.chainAmmo = on
}

// SetSpreadModifiers folds in the weather spread bonus and the upgrade
// accuracy multiplier. Out-of-range inputs are clamped, not rejected.
func (ps *ProjectileSystem) SetSpreadModifiers(weatherBonus, accuracyMult float64) {
	if weatherBonus < 0 {
		weatherBonus = 0
	}
	ps.weatherSpread = weatherBonus
	ps.accuracyMult = clamp(accuracyMult, 0.1, 2.0)
}

// ActiveCount returns the number of live projectiles, for telemetry.
func (ps *ProjectileSystem) ActiveCount() int {
	n := 0
	for i := range ps.pool {
		if ps.pool[i].active {
			n++
		}
	}
	return n
}

// QueuedCount returns the number of broadside barrels awaiting release.
func (ps *ProjectileSystem) QueuedCount() int {
	return len(ps.queued)
}

// spawn places p into the pool. It never fails: the first inactive slot is
// used, otherwise the oldest active projectile is evicted and reused.
func (ps *ProjectileSystem) spawn(p Projectile) {
	p.active = true
	oldest := 0
	oldestAge := -1.0
	for i := range ps.pool {
		if !ps.pool[i].active {
			ps.pool[i] = p
			return
		}
		if ps.pool[i].age > oldestAge {
			oldestAge = ps.pool[i].age
			oldest = i
		}
	}
	ps.pool[oldest] = p
}

// CannonPositions returns the world-space muzzle points for one broadside,
// for muzzle-flash VFX. The same line is used when the volley actually fires.
func (ps *ProjectileSystem) CannonPositions(origin Vec3, heading float64, side Side, barrels int) []Vec3 {
	fwd := headingVec(heading)
	beam := starboardVec(heading)
	if side == SidePort {
		beam = beam.Scale(-1)
	}
	out := make([]Vec3, 0, barrels)
	for i := 0; i < barrels; i++ {
		along := (float64(i) - float64(barrels-1)/2.0) * barrelSpacing
		muzzle := origin.
			Add(fwd.Scale(along)).
			Add(beam.Scale(hullHalfWidth))
		muzzle.Y += muzzleHeight
		out = append(out, muzzle)
	}
	return out
}

// SpawnBroadside enqueues one full player broadside on the given side. Each
// barrel gets an independent release delay so the volley ripples down the
// hull instead of firing as a single instant. A no-op while the side's
// cooldown is still running.
func (ps *ProjectileSystem) SpawnBroadside(origin Vec3, heading float64, side Side, damageMult, originSpeed float64, barrels int) {
	cd := &ps.portCooldown
	if side == SideStarboard {
		cd = &ps.starboardCooldown
	}
	if *cd > 0 {
		return
	}
	*cd = broadsideCooldownBase * ps.pressure.FireCooldown

	fwd := headingVec(heading)
	beam := starboardVec(heading)
	if side == SidePort {
		beam = beam.Scale(-1)
	}
	spread := (baseSpread + ps.weatherSpread) * ps.accuracyMult
	muzzles := ps.CannonPositions(origin, heading, side, barrels)

	for i, muzzle := range muzzles {
		vel := beam.Scale(lateralMuzzleSpeed).
			Add(fwd.Scale(originSpeed * forwardCarryFrac))
		vel.Y += broadsideArcLift
		vel.X += (ps.rng.Float64()*2 - 1) * spread
		vel.Y += (ps.rng.Float64()*2 - 1) * spread * 0.5
		vel.Z += (ps.rng.Float64()*2 - 1) * spread

		aoe := false
		if ps.chainAmmo {
			ps.shotCounter++
			aoe = ps.shotCounter%chainShotEvery == 0
		}
		ps.queued = append(ps.queued, QueuedShot{
			pos:        muzzle,
			vel:        vel,
			delay:      float64(i) * barrelStagger,
			damageMult: damageMult,
			fromPlayer: true,
			aoe:        aoe,
		})
	}
}

// FireEscortShot spawns one enemy cannonball immediately, aimed at the lead
// point of a moving target. This is the uniform predictive-aim routine every
// armed behavior uses: straight-line time of flight at fixed muzzle speed,
// an accuracy-driven angular deviation, and a vertical solve so the shot
// arcs down near the predicted impact point.
func (ps *ProjectileSystem) FireEscortShot(origin Vec3, heading float64, targetPos, targetVel Vec3, accuracy float64) {
	accuracy = clamp01(accuracy)

	dist := DistXZ(origin, targetPos)
	tof := dist / projectileSpeed
	if tof < 0.1 {
		tof = 0.1
	}
	aim := targetPos.Add(targetVel.Scale(tof))

	bearing := HeadingTo(origin.X, origin.Z, aim.X, aim.Z)
	bearing += (ps.rng.Float64()*2 - 1) * escortMaxDeviation * (1 - accuracy)

	muzzle := origin
	muzzle.Y += muzzleHeight

	vel := headingVec(bearing).Scale(projectileSpeed)
	// Solve muzzle.Y + vy·t − ½gt² = aim.Y for vy at the flight time.
	vel.Y = (aim.Y-muzzle.Y)/tof + 0.5*gravity*tof

	ps.spawn(Projectile{
		pos:        muzzle,
		vel:        vel,
		damageMult: 1.0,
		fromPlayer: false,
	})
}

// Update advances cooldowns, releases due broadside barrels, and integrates
// every active projectile under gravity. Shots die of old age or by falling
// below the waterline.
func (ps *ProjectileSystem) Update(dt float64) {
	if ps.portCooldown > 0 {
		ps.portCooldown -= dt
	}
	if ps.starboardCooldown > 0 {
		ps.starboardCooldown -= dt
	}

	// Release due barrels, compacting the queue in place.
	kept := ps.queued[:0]
	for i := range ps.queued {
		q := &ps.queued[i]
		q.delay -= dt
		if q.delay <= 0 {
			ps.spawn(Projectile{
				pos:        q.pos,
				vel:        q.vel,
				damageMult: q.damageMult,
				fromPlayer: q.fromPlayer,
				aoe:        q.aoe,
			})
		} else {
			kept = append(kept, *q)
		}
	}
	ps.queued = kept

	for i := range ps.pool {
		p := &ps.pool[i]
		if !p.active {
			continue
		}
		p.vel.Y -= gravity * dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.age += dt
		if p.age > maxProjectileAge || p.pos.Y < deathAltitude {
			p.active = false
		}
	}
}

// activeProjectiles appends pointers to all live slots, for rendering.
func (ps *ProjectileSystem) activeProjectiles(out []*Projectile) []*Projectile {
	for i := range ps.pool {
		if ps.pool[i].active {
			out = append(out, &ps.pool[i])
		}
	}
	return out
}
