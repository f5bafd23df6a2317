package game

import "testing"

func TestDefaultPressure_Neutral(t *testing.T) {
	p := DefaultPressure()
	for name, v := range map[string]float64{
		"Speed":           p.Speed,
		"TurnRate":        p.TurnRate,
		"FireCooldown":    p.FireCooldown,
		"FireRange":       p.FireRange,
		"BroadsideArc":    p.BroadsideArc,
		"EngagementRange": p.EngagementRange,
		"FleeUrgency":     p.FleeUrgency,
		"ExplosionRange":  p.ExplosionRange,
		"PhaseInterval":   p.PhaseInterval,
	} {
		if v != 1.0 {
			t.Fatalf("%s should default to 1.0, got %v", name, v)
		}
	}
}

func TestClamped_FloorsEveryField(t *testing.T) {
	p := PressureProfile{Speed: -3, FireCooldown: 0, TurnRate: 0.01}
	c := p.clamped()
	if c.Speed != pressureFloor || c.FireCooldown != pressureFloor || c.TurnRate != pressureFloor {
		t.Fatalf("zero and negative multipliers must clamp to the floor: %+v", c)
	}
	if c.FireRange != pressureFloor {
		t.Fatal("unset fields clamp too; profiles are replaced wholesale")
	}
}

func TestClamped_LeavesSaneValuesAlone(t *testing.T) {
	p := DefaultPressure()
	p.Speed = 2.5
	c := p.clamped()
	if c.Speed != 2.5 || c.TurnRate != 1.0 {
		t.Fatalf("in-range values pass through: %+v", c)
	}
}

func TestSetPressureProfile_SharedByBothComponents(t *testing.T) {
	b := NewBattleSim(WithSeed(1))
	p := DefaultPressure()
	p.FireCooldown = 2.0
	p.Speed = 0 // hostile input, must be floored
	b.SetPressureProfile(p)

	if got := b.Pressure().FireCooldown; got != 2.0 {
		t.Fatalf("profile not applied, FireCooldown=%v", got)
	}
	if got := b.Pressure().Speed; got != pressureFloor {
		t.Fatalf("boundary clamp failed, Speed=%v", got)
	}
	if b.Projectiles.pressure.FireCooldown != 2.0 {
		t.Fatal("projectile system should see the swap through the shared profile")
	}
	if b.AI.pressure.FireCooldown != 2.0 {
		t.Fatal("AI controller should see the swap through the shared profile")
	}
}
