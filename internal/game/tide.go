package game

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TideOmen is the week's global modifier bundle. Every player sees the same
// omen for a given ISO week: the pick is a digest of the week key, not a
// random draw, so it needs no storage or coordination.
type TideOmen struct {
	ID   string
	Name string

	ArmedPercentBonus float64
	SpeedMult         float64 // 0 = unset
	GoldMult          float64
	DamageMult        float64
	HealthMult        float64
	VisionMult        float64
	GhostChance       float64
	ForceWeather      string
}

var tideOmens = []TideOmen{
	{ID: "red_tide", Name: "Red Tide", ArmedPercentBonus: 0.10, SpeedMult: 1.05},
	{ID: "dead_calm", Name: "Dead Calm", SpeedMult: 0.85, GoldMult: 1.15},
	{ID: "storm_season", Name: "Storm Season", ForceWeather: "stormy", DamageMult: 1.10},
	{ID: "ghost_moon", Name: "Ghost Moon", ForceWeather: "night", GhostChance: 0.20},
	{ID: "golden_current", Name: "Golden Current", GoldMult: 1.25, HealthMult: 0.90},
	{ID: "fog_bank", Name: "Fog Bank", ForceWeather: "foggy", VisionMult: 0.70},
	{ID: "fair_winds", Name: "Fair Winds", SpeedMult: 1.10, HealthMult: 1.05},
}

const tideSalt = "booty-hunt-tide"

// WeekKey formats t as an ISO-8601 year-week key, e.g. "2026-W35".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// OmenForWeek deterministically picks the omen for a week key.
func OmenForWeek(weekKey string) TideOmen {
	h := sha256.New()
	h.Write([]byte(weekKey))
	h.Write([]byte(tideSalt))
	sum := h.Sum(nil)
	return tideOmens[int(sum[0])%len(tideOmens)]
}

// CurrentOmen returns the omen for the week containing t.
func CurrentOmen(t time.Time) TideOmen {
	return OmenForWeek(WeekKey(t))
}

// ApplyOmen overlays an omen onto a wave config and returns the adjusted
// copy. Zero-valued multipliers in the omen mean "unchanged".
func ApplyOmen(w WaveConfig, o TideOmen) WaveConfig {
	w.ArmedPercent = clamp01(w.ArmedPercent + o.ArmedPercentBonus)
	if o.SpeedMult > 0 {
		w.SpeedMult *= o.SpeedMult
	}
	if o.GoldMult > 0 {
		w.GoldMult *= o.GoldMult
	}
	if o.DamageMult > 0 {
		w.DamageMult *= o.DamageMult
	}
	if o.HealthMult > 0 {
		w.HealthMult *= o.HealthMult
	}
	if o.VisionMult > 0 {
		w.VisionMult *= o.VisionMult
	}
	if o.GhostChance > 0 && o.GhostChance > w.GhostChance {
		w.GhostChance = o.GhostChance
	}
	if o.ForceWeather != "" {
		w.Weather = o.ForceWeather
	}
	return w
}
