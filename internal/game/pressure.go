package game

// PressureProfile is a bundle of ratio multipliers that retunes AI and firing
// timings uniformly without touching the underlying steering or ballistics.
// All fields default to 1.0. The profile is replaced wholesale via
// BattleSim.SetPressureProfile, never partially mutated, and is shared by
// pointer between the projectile system and the AI controller for the
// duration of a wave.
type PressureProfile struct {
	Speed           float64 // enemy speed targets
	TurnRate        float64 // enemy turn rates
	FireCooldown    float64 // broadside + enemy cannon cooldowns
	FireRange       float64 // enemy cannon range envelopes
	BroadsideArc    float64 // firing-arc tolerance width
	EngagementRange float64 // chase/orbit engagement envelopes
	FleeUrgency     float64 // merchant panic distance
	ExplosionRange  float64 // fire ship self-destruct trigger range
	PhaseInterval   float64 // ghost ship phase toggle period
}

// DefaultPressure returns the neutral all-1.0 profile.
func DefaultPressure() PressureProfile {
	return PressureProfile{
		Speed:           1.0,
		TurnRate:        1.0,
		FireCooldown:    1.0,
		FireRange:       1.0,
		BroadsideArc:    1.0,
		EngagementRange: 1.0,
		FleeUrgency:     1.0,
		ExplosionRange:  1.0,
		PhaseInterval:   1.0,
	}
}

// pressureFloor is the minimum any multiplier may take. Zero or negative
// tunables are clamped here, at the profile boundary, so the simulation hot
// path never has to validate them.
const pressureFloor = 0.05

func (p PressureProfile) clamped() PressureProfile {
	f := func(v float64) float64 {
		if v < pressureFloor {
			return pressureFloor
		}
		return v
	}
	return PressureProfile{
		Speed:           f(p.Speed),
		TurnRate:        f(p.TurnRate),
		FireCooldown:    f(p.FireCooldown),
		FireRange:       f(p.FireRange),
		BroadsideArc:    f(p.BroadsideArc),
		EngagementRange: f(p.EngagementRange),
		FleeUrgency:     f(p.FleeUrgency),
		ExplosionRange:  f(p.ExplosionRange),
		PhaseInterval:   f(p.PhaseInterval),
	}
}
