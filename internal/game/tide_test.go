package game

import (
	"testing"
	"time"
)

func TestWeekKey_ISOFormat(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026.
	got := WeekKey(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	if got != "2026-W01" {
		t.Fatalf("want 2026-W01, got %s", got)
	}
	// 2023-01-01 is a Sunday and belongs to ISO week 52 of 2022.
	got = WeekKey(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if got != "2022-W52" {
		t.Fatalf("year boundary should follow ISO weeks, got %s", got)
	}
}

func TestOmenForWeek_Deterministic(t *testing.T) {
	a := OmenForWeek("2026-W35")
	b := OmenForWeek("2026-W35")
	if a.ID != b.ID {
		t.Fatalf("same week must yield the same omen: %s vs %s", a.ID, b.ID)
	}
	if a.ID == "" || a.Name == "" {
		t.Fatalf("omen should be a populated table entry: %+v", a)
	}
}

func TestOmenForWeek_CoversTheTable(t *testing.T) {
	seen := make(map[string]bool)
	for week := 1; week <= 52; week++ {
		o := OmenForWeek(WeekKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7)))
		seen[o.ID] = true
	}
	if len(seen) < 3 {
		t.Fatalf("a year of weeks should spread across the omen table, saw %d", len(seen))
	}
}

func TestCurrentOmen_SameWeekSameOmen(t *testing.T) {
	mon := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // Monday
	sun := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	if CurrentOmen(mon).ID != CurrentOmen(sun).ID {
		t.Fatal("every day of one ISO week shares the omen")
	}
}

func TestApplyOmen_OverlaysOnlySetFields(t *testing.T) {
	w := testWave()
	w.ArmedPercent = 0.5
	w.SpeedMult = 1
	w.GoldMult = 1
	w.GhostChance = 0.1
	w.Weather = "clear"

	o := TideOmen{
		ArmedPercentBonus: 0.1,
		SpeedMult:         1.05,
		GhostChance:       0.2,
		ForceWeather:      "night",
	}
	out := ApplyOmen(w, o)

	if out.ArmedPercent != 0.6 {
		t.Fatalf("armed bonus should add, got %.2f", out.ArmedPercent)
	}
	if out.SpeedMult != 1.05 {
		t.Fatalf("speed should multiply, got %.2f", out.SpeedMult)
	}
	if out.GoldMult != 1 || out.HealthMult != 1 || out.DamageMult != 1 {
		t.Fatal("unset omen fields must leave the wave untouched")
	}
	if out.GhostChance != 0.2 {
		t.Fatalf("ghost chance takes the higher value, got %.2f", out.GhostChance)
	}
	if out.Weather != "night" {
		t.Fatalf("forced weather should override, got %s", out.Weather)
	}
}

func TestApplyOmen_ArmedPercentClamped(t *testing.T) {
	w := testWave()
	w.ArmedPercent = 0.95
	out := ApplyOmen(w, TideOmen{ArmedPercentBonus: 0.10})
	if out.ArmedPercent != 1 {
		t.Fatalf("armed percent must clamp at 1, got %.2f", out.ArmedPercent)
	}
}

func TestApplyOmen_GhostChanceNeverLowered(t *testing.T) {
	w := testWave()
	w.GhostChance = 0.5
	out := ApplyOmen(w, TideOmen{GhostChance: 0.2})
	if out.GhostChance != 0.5 {
		t.Fatalf("a weaker omen must not lower the wave's ghost chance, got %.2f", out.GhostChance)
	}
}
