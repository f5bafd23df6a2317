package game

import (
	"math"
	"math/rand"
)

// --- AI tuning constants ---
// Distances are world units, times are seconds. Anything marked (profile)
// is further scaled by the pressure profile at the point of use.

const (
	baseTurnRate    = 0.9 // rad/s (profile)
	beelineTurnRate = 1.6 // rad/s, fire ships track hard (profile)

	// Flee behavior.
	fleeUrgencyRange = 60.0 // panic distance (profile FleeUrgency)
	fleeCalmFactor   = 1.5  // beyond urgency×this, merchants just wander
	fleeSpeedMult    = 1.5  // panic speed over base
	zigzagPeriodMin  = 1.2
	zigzagPeriodMax  = 2.4
	zigzagMaxOffset  = 0.7 // radians at point-blank, shrinking with distance
	wanderPeriod     = 3.0
	wanderMaxTurn    = 0.5 // radians of wander heading drift per period

	// Circle-strafe behavior.
	circleChaseRange = 80.0 // beyond this, close in (profile EngagementRange)
	circleStandoff   = 35.0 // preferred orbit distance
	standoffBand     = 6.0  // dead band around the stand-off ring
	orbitCorrection  = 0.6  // radians of in/out bias when off the ring
	chaseSpeedMult   = 1.2
	enragedOrbitMult = 1.6

	// Beeline (fire ship) behavior.
	beelineChargeMult = 1.8
	selfDestructRange = 8.0 // contact trigger (profile ExplosionRange)
	fireShipDamage    = 35.0
	fireShipBlast     = 14.0 // blast radius for falloff

	// Phase (ghost ship) behavior.
	phaseBandNear    = 30.0
	phaseBandFar     = 55.0
	phaseEscapeMult  = 1.7
	phaseTogglePer   = 2.5  // seconds between phase flips (profile PhaseInterval)
	fleeUntilInitial = 25.0 // seconds of engagement before the ghost runs
	ghostMissChance  = 0.65 // shot miss probability while phased

	// Formation behavior.
	formationEngageRange = 110.0 // leader's wider chase envelope (profile)
	formationStandoff    = 45.0
	followerSpacing      = 10.0 // line-abreast gap per pair index
	followerCatchupDist  = 20.0 // out-of-station distance giving max speed-up
	followerCatchupMax   = 0.6  // proportional speed correction ceiling

	// Firing envelopes and arcs.
	fireRangeNormal = 65.0 // (profile FireRange)
	fireRangeBoss   = 90.0
	arcTolCircle    = 0.35 // radians around the ±90° beam (profile BroadsideArc)
	arcTolFormation = 0.60
	despawnRange    = 400.0
	speedLerpRate   = 2.0 // 1/s, how fast ships reach their target speed
)

// AIController drives every enemy ship, one UpdateAI call per ship per
// frame, plus one UpdateFormation call per frame for the whole roster.
type AIController struct {
	pressure *PressureProfile
	rng      *rand.Rand
}

// NewAIController creates a controller sharing the given pressure profile.
// pressure may be nil for a private neutral profile.
func NewAIController(rng *rand.Rand, pressure *PressureProfile) *AIController {
	if pressure == nil {
		p := DefaultPressure()
		pressure = &p
	}
	return &AIController{pressure: pressure, rng: rng}
}

// UpdateAI runs one frame of the ship's steering state machine. It mutates
// heading, speed, and the behavior timers; it never touches hit points.
func (c *AIController) UpdateAI(s *Ship, playerPos Vec3, playerHeading, dt float64, all []*Ship) {
	if !s.Alive() {
		return
	}
	if s.fireTimer > 0 {
		s.fireTimer -= dt
	}

	switch s.Behavior {
	case BehaviorFlee:
		c.updateFlee(s, playerPos, dt)
	case BehaviorCircle:
		c.updateCircle(s, playerPos, dt)
	case BehaviorBeeline:
		c.updateBeeline(s, playerPos, dt)
	case BehaviorPhase:
		c.updatePhase(s, playerPos, dt)
	case BehaviorFormation:
		c.updateFormationMember(s, playerPos, dt, all)
	}
}

// approachSpeed eases the ship's speed toward target.
func approachSpeed(s *Ship, target, dt float64) {
	f := dt * speedLerpRate
	if f > 1 {
		f = 1
	}
	s.Speed += (target - s.Speed) * f
}

func (c *AIController) turn(s *Ship, target, rate, dt float64) {
	s.Heading = turnToward(s.Heading, target, rate*c.pressure.TurnRate*dt)
}

func (c *AIController) updateFlee(s *Ship, playerPos Vec3, dt float64) {
	urgency := fleeUrgencyRange * c.pressure.FleeUrgency
	d := DistXZ(s.Pos, playerPos)

	if d > urgency*fleeCalmFactor {
		// Out of danger: gentle wander at cruising speed.
		s.wanderTimer -= dt
		if s.wanderTimer <= 0 {
			s.wanderTimer = wanderPeriod
			s.wanderHeading = normalizeAngle(s.Heading + (c.rng.Float64()*2-1)*wanderMaxTurn)
		}
		c.turn(s, s.wanderHeading, baseTurnRate, dt)
		approachSpeed(s, s.BaseSpeed*c.pressure.Speed, dt)
		return
	}

	// Panic: run dead away, zigzagging harder the closer the threat.
	away := HeadingTo(playerPos.X, playerPos.Z, s.Pos.X, s.Pos.Z)
	s.zigzagTimer -= dt
	if s.zigzagTimer <= 0 {
		s.zigzagTimer = zigzagPeriodMin + c.rng.Float64()*(zigzagPeriodMax-zigzagPeriodMin)
		s.zigzagDir = -s.zigzagDir
		if s.zigzagDir == 0 {
			s.zigzagDir = 1
		}
	}
	amp := zigzagMaxOffset * clamp01(1-d/urgency)
	c.turn(s, away+s.zigzagDir*amp, baseTurnRate, dt)
	approachSpeed(s, s.BaseSpeed*fleeSpeedMult*c.pressure.Speed, dt)
}

// orbitDir is deterministic by id parity so a given corsair always circles
// the same way.
func orbitDir(id int) float64 {
	if id%2 == 0 {
		return 1
	}
	return -1
}

func (c *AIController) orbitSteer(s *Ship, playerPos Vec3, standoff, dt float64) {
	d := DistXZ(s.Pos, playerPos)
	toPlayer := HeadingTo(s.Pos.X, s.Pos.Z, playerPos.X, playerPos.Z)
	perp := toPlayer + orbitDir(s.ID)*math.Pi/2

	switch {
	case d > standoff+standoffBand:
		c.turn(s, perp+orbitCorrection*sign(normalizeAngle(toPlayer-perp)), baseTurnRate, dt)
	case d < standoff-standoffBand:
		away := toPlayer + math.Pi
		c.turn(s, perp+orbitCorrection*sign(normalizeAngle(away-perp)), baseTurnRate, dt)
	default:
		c.turn(s, perp, baseTurnRate, dt)
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func (c *AIController) updateCircle(s *Ship, playerPos Vec3, dt float64) {
	d := DistXZ(s.Pos, playerPos)
	if d > circleChaseRange*c.pressure.EngagementRange {
		c.turn(s, HeadingTo(s.Pos.X, s.Pos.Z, playerPos.X, playerPos.Z), baseTurnRate, dt)
		approachSpeed(s, s.BaseSpeed*chaseSpeedMult*c.pressure.Speed, dt)
		return
	}
	c.orbitSteer(s, playerPos, circleStandoff, dt)
	mult := 1.0
	if s.Boss && s.Enraged {
		mult = enragedOrbitMult
	}
	approachSpeed(s, s.BaseSpeed*mult*c.pressure.Speed, dt)
}

func (c *AIController) updateBeeline(s *Ship, playerPos Vec3, dt float64) {
	c.turn(s, HeadingTo(s.Pos.X, s.Pos.Z, playerPos.X, playerPos.Z), beelineTurnRate, dt)
	approachSpeed(s, s.BaseSpeed*beelineChargeMult*c.pressure.Speed, dt)
}

func (c *AIController) updatePhase(s *Ship, playerPos Vec3, dt float64) {
	if s.fleeUntil > 0 {
		// Hold a comfortable firing band: in, out, or orbit.
		d := DistXZ(s.Pos, playerPos)
		switch {
		case d > phaseBandFar:
			c.turn(s, HeadingTo(s.Pos.X, s.Pos.Z, playerPos.X, playerPos.Z), baseTurnRate, dt)
		case d < phaseBandNear:
			c.turn(s, HeadingTo(playerPos.X, playerPos.Z, s.Pos.X, s.Pos.Z), baseTurnRate, dt)
		default:
			c.orbitSteer(s, playerPos, (phaseBandNear+phaseBandFar)/2, dt)
		}
		approachSpeed(s, s.BaseSpeed*c.pressure.Speed, dt)
		return
	}
	// Done haunting: run for open water and never re-engage.
	away := HeadingTo(playerPos.X, playerPos.Z, s.Pos.X, s.Pos.Z)
	c.turn(s, away, baseTurnRate, dt)
	approachSpeed(s, s.BaseSpeed*phaseEscapeMult*c.pressure.Speed, dt)
}

func (c *AIController) updateFormationMember(s *Ship, playerPos Vec3, dt float64, all []*Ship) {
	if s.FormationLeaderID == s.ID || s.FormationLeaderID < 0 {
		// Leader (or not yet grouped): circle-strafe with a wider envelope.
		d := DistXZ(s.Pos, playerPos)
		if d > formationEngageRange*c.pressure.EngagementRange {
			c.turn(s, HeadingTo(s.Pos.X, s.Pos.Z, playerPos.X, playerPos.Z), baseTurnRate, dt)
			approachSpeed(s, s.BaseSpeed*chaseSpeedMult*c.pressure.Speed, dt)
			return
		}
		c.orbitSteer(s, playerPos, formationStandoff, dt)
		approachSpeed(s, s.BaseSpeed*c.pressure.Speed, dt)
		return
	}

	leader := findShip(all, s.FormationLeaderID)
	if leader == nil || !leader.Alive() {
		// Leaderless this frame; UpdateFormation will re-derive groups.
		// Sail on current heading rather than referencing a dead hull.
		approachSpeed(s, s.BaseSpeed*c.pressure.Speed, dt)
		return
	}

	// Line abreast: alternating sides, spacing growing per pair index.
	slot := followerSlot(leader, s.FormationIndex)
	c.turn(s, HeadingTo(s.Pos.X, s.Pos.Z, slot.X, slot.Z), baseTurnRate, dt)

	// Match the leader's speed with a proportional catch-up correction.
	off := DistXZ(s.Pos, slot)
	target := leader.Speed * (1 + followerCatchupMax*clamp01(off/followerCatchupDist))
	approachSpeed(s, target, dt)
}

// followerSlot returns the world-space station for a follower index: slot 1
// sits one spacing to port of the leader, slot 2 one spacing to starboard,
// slot 3 two spacings to port, and so on.
func followerSlot(leader *Ship, index int) Vec3 {
	pair := float64((index + 1) / 2)
	side := pair * followerSpacing
	if index%2 == 1 {
		side = -side
	}
	return leader.Pos.Add(starboardVec(leader.Heading).Scale(side))
}

func findShip(all []*Ship, id int) *Ship {
	for _, s := range all {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// UpdateGhostPhase drives the ghost ship's intangibility toggle and the
// engagement clock. The flee-until timer counts down unconditionally while
// the ship lives; once it expires, updatePhase switches to the escape leg.
func (c *AIController) UpdateGhostPhase(s *Ship, dt float64) {
	if s.Behavior != BehaviorPhase || !s.Alive() {
		return
	}
	if s.fleeUntil > 0 {
		s.fleeUntil -= dt
	}
	s.phaseTimer -= dt
	if s.phaseTimer <= 0 {
		s.phaseTimer = phaseTogglePer * c.pressure.PhaseInterval
		s.Phased = !s.Phased
	}
}

// CheckFireShipExplosion returns the player-directed blast event when a fire
// ship reaches contact range or dies, whichever comes first. The ship is
// marked sinking so the blast triggers exactly once; splash damage to other
// hulls is the host's job via CheckFireShipAoE.
func (c *AIController) CheckFireShipExplosion(s *Ship, playerPos Vec3) *HitResult {
	if s.Behavior != BehaviorBeeline || s.Sinking {
		return nil
	}
	d := DistXZ(s.Pos, playerPos)
	if d > selfDestructRange*c.pressure.ExplosionRange && s.HP > 0 {
		return nil
	}
	s.Sinking = true
	s.HP = 0
	dmg := fireShipDamage * (1 - clamp01(d/fireShipBlast))
	return &HitResult{
		TargetID: -1,
		Damage:   dmg,
		HitPos:   s.Pos,
	}
}

// ShouldFire gates an enemy broadside for this frame. Beeline hulls never
// fire cannon; a phased ghost cannot fire while intangible; circle and
// formation hulls must additionally present a broadside: the bearing to the
// player has to sit within tolerance of exactly 90° off the bow, either side.
func (c *AIController) ShouldFire(s *Ship, playerPos Vec3) bool {
	if !s.Armed || !s.Alive() || s.Surrendered {
		return false
	}
	if s.fireTimer > 0 {
		return false
	}
	if s.Behavior == BehaviorBeeline {
		return false
	}
	if s.Behavior == BehaviorPhase && s.Phased {
		return false
	}

	rng := fireRangeNormal
	if s.Boss {
		rng = fireRangeBoss
	}
	if DistXZ(s.Pos, playerPos) > rng*c.pressure.FireRange {
		return false
	}

	switch s.Behavior {
	case BehaviorCircle, BehaviorFormation:
		tol := arcTolCircle
		if s.Behavior == BehaviorFormation {
			tol = arcTolFormation
		}
		tol *= c.pressure.BroadsideArc
		bearing := HeadingTo(s.Pos.X, s.Pos.Z, playerPos.X, playerPos.Z)
		off := math.Abs(normalizeAngle(bearing - s.Heading))
		if math.Abs(off-math.Pi/2) > tol {
			return false
		}
	}
	return true
}

// FireCooldown returns the next randomized fire delay for the ship. Boss and
// enrage status dominate, then behavior category; everything is scaled by
// the profile's cooldown multiplier.
func (c *AIController) FireCooldown(s *Ship) float64 {
	var base, jitter float64
	switch {
	case s.Boss && s.Enraged:
		base, jitter = 1.2, 0.6
	case s.Boss:
		base, jitter = 2.0, 1.0
	default:
		switch s.Behavior {
		case BehaviorCircle:
			base, jitter = 3.0, 2.0
		case BehaviorFormation:
			base, jitter = 3.5, 2.5
		case BehaviorPhase:
			base, jitter = 4.0, 2.0
		default:
			base, jitter = 4.0, 2.0
		}
	}
	return (base + c.rng.Float64()*jitter) * c.pressure.FireCooldown
}

// ShouldDespawn reports whether a ship has drifted far enough from the
// player to drop from simulation. Bosses and sinking hulls never despawn.
func (c *AIController) ShouldDespawn(s *Ship, playerPos Vec3) bool {
	if s.Boss || s.Sinking {
		return false
	}
	return DistXZ(s.Pos, playerPos) > despawnRange
}

// GhostMissMap collects the miss probability for every currently-phased
// ghost ship, for CheckHits to consult.
func (c *AIController) GhostMissMap(all []*Ship) map[int]float64 {
	var m map[int]float64
	for _, s := range all {
		if s.Behavior == BehaviorPhase && s.Phased && s.Alive() {
			if m == nil {
				m = make(map[int]float64)
			}
			m[s.ID] = ghostMissChance
		}
	}
	return m
}
