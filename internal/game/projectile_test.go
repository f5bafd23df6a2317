package game

import (
	"math"
	"math/rand"
	"testing"
)

func newTestPool(seed int64) *ProjectileSystem {
	return NewProjectileSystem(rand.New(rand.NewSource(seed)), nil)
}

func testWave() WaveConfig {
	w := WaveConfig{TotalShips: 4}
	applyWaveDefaults(&w)
	return w
}

func newTestShip(id int, class string, x, z float64) *Ship {
	return NewShip(id, SpawnEntry{Class: class}, testWave(), Vec3{X: x, Z: z})
}

func TestPoolBound_NeverExceedsCapacity(t *testing.T) {
	ps := newTestPool(1)
	for i := 0; i < poolSize*3; i++ {
		ps.FireEscortShot(Vec3{}, 0, Vec3{X: 60}, Vec3{}, 1.0)
	}
	if got := ps.ActiveCount(); got != poolSize {
		t.Fatalf("pool should sit exactly at capacity after saturation, got %d", got)
	}
}

func TestPoolEviction_StealsOldestActive(t *testing.T) {
	ps := newTestPool(1)
	for i := 0; i < poolSize; i++ {
		ps.spawn(Projectile{pos: Vec3{X: float64(i)}, age: float64(poolSize - i)})
	}
	// Slot 0 has the highest age; the next spawn must reuse it.
	ps.spawn(Projectile{pos: Vec3{X: -99}})
	if ps.pool[0].pos.X != -99 {
		t.Fatalf("expected oldest slot evicted, slot 0 holds X=%.0f", ps.pool[0].pos.X)
	}
	if got := ps.ActiveCount(); got != poolSize {
		t.Fatalf("eviction must not change active count, got %d", got)
	}
}

func TestBroadside_CooldownGatesSecondVolley(t *testing.T) {
	ps := newTestPool(1)
	ps.SpawnBroadside(Vec3{}, 0, SidePort, 1.0, 5.0, 4)
	if got := ps.QueuedCount(); got != 4 {
		t.Fatalf("expected 4 queued barrels, got %d", got)
	}
	// Same side, cooldown still hot: no-op.
	ps.SpawnBroadside(Vec3{}, 0, SidePort, 1.0, 5.0, 4)
	if got := ps.QueuedCount(); got != 4 {
		t.Fatalf("gated volley must be a no-op, got %d queued", got)
	}
	// The other battery has its own cooldown.
	ps.SpawnBroadside(Vec3{}, 0, SideStarboard, 1.0, 5.0, 4)
	if got := ps.QueuedCount(); got != 8 {
		t.Fatalf("starboard battery should fire independently, got %d queued", got)
	}
}

func TestBroadside_BarrelsRippleOverTime(t *testing.T) {
	ps := newTestPool(1)
	ps.SpawnBroadside(Vec3{}, 0, SidePort, 1.0, 0, 4)

	ps.Update(0.001) // releases barrel 0 (zero delay)
	if a, q := ps.ActiveCount(), ps.QueuedCount(); a != 1 || q != 3 {
		t.Fatalf("after first tick want 1 active / 3 queued, got %d/%d", a, q)
	}
	ps.Update(barrelStagger)
	if a, q := ps.ActiveCount(), ps.QueuedCount(); a != 2 || q != 2 {
		t.Fatalf("after one stagger want 2 active / 2 queued, got %d/%d", a, q)
	}
	ps.Update(barrelStagger * 3)
	if a, q := ps.ActiveCount(), ps.QueuedCount(); a != 4 || q != 0 {
		t.Fatalf("full ripple should be out, got %d/%d", a, q)
	}
}

func TestBroadside_CooldownScaledByPressure(t *testing.T) {
	p := DefaultPressure()
	p.FireCooldown = 2.0
	ps := NewProjectileSystem(rand.New(rand.NewSource(1)), &p)
	ps.SpawnBroadside(Vec3{}, 0, SidePort, 1.0, 0, 1)
	if ps.portCooldown != broadsideCooldownBase*2.0 {
		t.Fatalf("cooldown should scale with profile, got %.2f", ps.portCooldown)
	}
}

func TestChainAmmo_MarksEveryNthShot(t *testing.T) {
	ps := newTestPool(1)
	ps.SetChainAmmo(true)
	ps.SpawnBroadside(Vec3{}, 0, SidePort, 1.0, 0, chainShotEvery*2)
	marked := 0
	for _, q := range ps.queued {
		if q.aoe {
			marked++
		}
	}
	if marked != 2 {
		t.Fatalf("expected 2 chain rounds in %d barrels, got %d", chainShotEvery*2, marked)
	}
	if !ps.queued[chainShotEvery-1].aoe {
		t.Fatal("the Nth shot itself should carry the chain round")
	}
}

func TestUpdate_ProjectilesDieOfAgeAndAltitude(t *testing.T) {
	ps := newTestPool(1)
	ps.spawn(Projectile{pos: Vec3{Y: 50}, age: maxProjectileAge - 0.01})
	ps.spawn(Projectile{pos: Vec3{Y: deathAltitude + 0.01}, vel: Vec3{Y: -10}})
	ps.spawn(Projectile{pos: Vec3{Y: 50}})

	ps.Update(0.05)
	if got := ps.ActiveCount(); got != 1 {
		t.Fatalf("aged-out and drowned shots must deactivate, got %d active", got)
	}
}

func TestEscortShot_LandsNearPredictedLeadPoint(t *testing.T) {
	ps := newTestPool(7)
	origin := Vec3{}
	targetPos := Vec3{X: 60}
	targetVel := Vec3{Z: 5}

	// Full accuracy: zero angular deviation, fully deterministic aim.
	ps.FireEscortShot(origin, 0, targetPos, targetVel, 1.0)

	tof := DistXZ(origin, targetPos) / projectileSpeed
	steps := 2000
	dt := tof / float64(steps)
	for i := 0; i < steps; i++ {
		ps.Update(dt)
	}

	var shot *Projectile
	for i := range ps.pool {
		if ps.pool[i].active {
			shot = &ps.pool[i]
		}
	}
	if shot == nil {
		t.Fatal("shot should still be in flight at the predicted impact time")
	}
	impact := targetPos.Add(targetVel.Scale(tof))
	if d := Dist(shot.pos, impact); d > 1.0 {
		t.Fatalf("shot should land near the lead point, off by %.2f", d)
	}
}

func TestEscortShot_LowAccuracyWidensCone(t *testing.T) {
	// With accuracy 0 the bearing deviation is drawn from ±escortMaxDeviation;
	// across many shots at least one must leave the tight cone a perfect
	// shot would hold.
	ps := newTestPool(3)
	deviated := false
	for i := 0; i < 50; i++ {
		ps.FireEscortShot(Vec3{}, 0, Vec3{X: 60}, Vec3{}, 0.0)
	}
	for i := range ps.pool {
		p := &ps.pool[i]
		if !p.active {
			continue
		}
		if math.Abs(math.Atan2(p.vel.Z, p.vel.X)) > 0.05 {
			deviated = true
		}
	}
	if !deviated {
		t.Fatal("zero accuracy should produce visible angular deviation")
	}
}

func TestCannonPositions_SymmetricMuzzleLine(t *testing.T) {
	ps := newTestPool(1)
	muzzles := ps.CannonPositions(Vec3{}, 0, SideStarboard, 4)
	if len(muzzles) != 4 {
		t.Fatalf("want 4 muzzles, got %d", len(muzzles))
	}
	// Heading east: muzzles differ along X, symmetric about the origin.
	if muzzles[0].X != -muzzles[3].X || muzzles[1].X != -muzzles[2].X {
		t.Fatalf("muzzle line not symmetric: %+v", muzzles)
	}
	for _, m := range muzzles {
		if m.Z <= 0 {
			t.Fatal("starboard muzzles should sit on +Z for an eastbound firer")
		}
		if m.Y != muzzleHeight {
			t.Fatalf("muzzle height should be %.1f, got %.1f", muzzleHeight, m.Y)
		}
	}
}
