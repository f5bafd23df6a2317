package game

import (
	"testing"
)

func TestCheckHits_FirstQualifyingTargetWins(t *testing.T) {
	ps := newTestPool(1)
	// Both hulls overlap the shot; the farther one is first in the list and
	// must win. Resolution is list order, not distance.
	far := newTestShip(10, "corsair", 2.0, 0)
	near := newTestShip(11, "corsair", 0.5, 0)
	ps.spawn(Projectile{damageMult: 1, fromPlayer: true})

	hits := ps.CheckHits([]*Ship{far, near}, nil)
	if len(hits) != 1 {
		t.Fatalf("want exactly one damage event, got %d", len(hits))
	}
	if hits[0].TargetID != far.ID {
		t.Fatalf("first qualifying target in list order must win, hit id=%d", hits[0].TargetID)
	}
	if hits[0].Damage != baseShotDamage {
		t.Fatalf("unexpected damage %.1f", hits[0].Damage)
	}
	if ps.ActiveCount() != 0 {
		t.Fatal("resolved projectile must deactivate")
	}
}

func TestCheckHits_DeadTargetsAreSkipped(t *testing.T) {
	ps := newTestPool(1)
	dead := newTestShip(10, "corsair", 0.5, 0)
	dead.HP = 0
	live := newTestShip(11, "corsair", 1.5, 0)
	ps.spawn(Projectile{damageMult: 1, fromPlayer: true})

	hits := ps.CheckHits([]*Ship{dead, live}, nil)
	if len(hits) != 1 || hits[0].TargetID != live.ID {
		t.Fatalf("dead hulls must not soak shots: %+v", hits)
	}
}

func TestCheckHits_GhostMissPassesThrough(t *testing.T) {
	ps := newTestPool(1)
	ghost := newTestShip(10, "ghost_ship", 0.5, 0)
	ps.spawn(Projectile{damageMult: 1, fromPlayer: true, split: true})

	hits := ps.CheckHits([]*Ship{ghost}, map[int]float64{ghost.ID: 1.0})
	if len(hits) != 0 {
		t.Fatalf("certain miss must produce no events, got %d", len(hits))
	}
	if ps.ActiveCount() != 1 {
		t.Fatal("shot should pass through a phased hull and keep flying")
	}
}

func TestCheckHits_AreaFalloffMonotonic(t *testing.T) {
	ps := newTestPool(1)
	primary := newTestShip(1, "corsair", 0, 0)
	nearSecondary := newTestShip(2, "corsair", 4, 0)
	farSecondary := newTestShip(3, "corsair", 8, 0)
	outside := newTestShip(4, "corsair", areaRadius+1, 0)
	ps.spawn(Projectile{damageMult: 1, fromPlayer: true, aoe: true})

	hits := ps.CheckHits([]*Ship{primary, nearSecondary, farSecondary, outside}, nil)
	if len(hits) != 3 {
		t.Fatalf("want primary + 2 splash events, got %d", len(hits))
	}
	if !hits[0].ChainShot || hits[0].AoE {
		t.Fatal("primary event should be the chain-shot impact, not splash")
	}
	var nearDmg, farDmg float64
	for _, h := range hits[1:] {
		if !h.AoE {
			t.Fatal("secondary events must be flagged AoE")
		}
		switch h.TargetID {
		case nearSecondary.ID:
			nearDmg = h.Damage
		case farSecondary.ID:
			farDmg = h.Damage
		case outside.ID:
			t.Fatal("target outside the area radius must take nothing")
		}
	}
	if nearDmg <= farDmg || farDmg <= 0 {
		t.Fatalf("splash damage must fall off with distance: near=%.2f far=%.2f", nearDmg, farDmg)
	}
	if nearDmg >= baseShotDamage*areaDamageFrac {
		t.Fatalf("splash should never reach the full area fraction at range, got %.2f", nearDmg)
	}
}

func TestGrapeshot_SplitConservation(t *testing.T) {
	ps := newTestPool(1)
	ship := newTestShip(1, "corsair", 5, 0) // inside detect, outside hit radius
	ps.spawn(Projectile{damageMult: 1, fromPlayer: true})

	hits := ps.CheckHits([]*Ship{ship}, nil)
	if len(hits) != 0 {
		t.Fatal("a near miss must not deal direct damage")
	}
	if got := ps.ActiveCount(); got != splitCount {
		t.Fatalf("one parent should become exactly %d pellets, got %d active", splitCount, got)
	}
	for i := range ps.pool {
		p := &ps.pool[i]
		if !p.active {
			continue
		}
		if !p.split {
			t.Fatal("every pellet must be flagged non-re-splittable")
		}
		if p.damageMult != splitDamageFrac {
			t.Fatalf("pellet damage should be reduced, got mult %.2f", p.damageMult)
		}
	}

	// A second scan at the same stand-off must not split the pellets again.
	ps.CheckHits([]*Ship{ship}, nil)
	if got := ps.ActiveCount(); got > splitCount {
		t.Fatalf("pellets re-split: %d active", got)
	}
}

func TestGrapeshot_EnemyShotsNeverSplit(t *testing.T) {
	ps := newTestPool(1)
	ship := newTestShip(1, "corsair", 5, 0)
	ps.spawn(Projectile{damageMult: 1, fromPlayer: false})

	ps.CheckHits([]*Ship{ship}, nil)
	if got := ps.ActiveCount(); got != 1 {
		t.Fatalf("enemy shot must fly on unsplit, got %d active", got)
	}
}

func TestCheckPlayerHit_DodgeConsumesShot(t *testing.T) {
	ps := newTestPool(1)
	ps.spawn(Projectile{damageMult: 1, fromPlayer: false})

	ev := ps.CheckPlayerHit(Vec3{}, playerHullRadius, 1.0)
	if ev != nil {
		t.Fatalf("certain dodge must return no damage event, got %+v", ev)
	}
	if ps.ActiveCount() != 0 {
		t.Fatal("dodged shot must still be consumed")
	}
}

func TestCheckPlayerHit_EnemyShotLands(t *testing.T) {
	ps := newTestPool(1)
	ps.spawn(Projectile{damageMult: 1.5, fromPlayer: false})
	ps.spawn(Projectile{damageMult: 1, fromPlayer: true}) // own shot, ignored

	ev := ps.CheckPlayerHit(Vec3{}, playerHullRadius, 0)
	if ev == nil {
		t.Fatal("enemy shot inside the hull radius must land")
	}
	if ev.TargetID != -1 {
		t.Fatalf("player events carry TargetID -1, got %d", ev.TargetID)
	}
	if ev.Damage != baseShotDamage*1.5 {
		t.Fatalf("unexpected damage %.1f", ev.Damage)
	}
	if ps.ActiveCount() != 1 {
		t.Fatal("the player's own shot must remain in flight")
	}
}

func TestFireShipAoE_LinearFalloff(t *testing.T) {
	ps := newTestPool(1)
	at2 := newTestShip(1, "corsair", 2, 0)
	at10 := newTestShip(2, "corsair", 10, 0)
	outside := newTestShip(3, "corsair", fireShipBlast+2, 0)

	hits := ps.CheckFireShipAoE(Vec3{}, fireShipBlast, []*Ship{at2, at10, outside})
	if len(hits) != 2 {
		t.Fatalf("want 2 events inside the blast, got %d", len(hits))
	}
	if hits[0].Damage <= hits[1].Damage {
		t.Fatalf("closer hull must take more: %.1f vs %.1f", hits[0].Damage, hits[1].Damage)
	}
	want := fireShipDamage * (1 - 2.0/fireShipBlast)
	if diff := hits[0].Damage - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("falloff mismatch: got %.3f want %.3f", hits[0].Damage, want)
	}
}
