package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour
// reports (~10s at 60TPS).
const reportWindowTicks = 600

// BattleReport is a full snapshot of the battle at one tick.
type BattleReport struct {
	Tick       int
	WaveNumber int

	// Behavior distribution over live hulls.
	Behaviors map[Behavior]int

	Alive         int
	Phased        int
	Formations    int // distinct formation groups
	BossAlive     bool
	BossEnraged   bool
	PlayerHP      float64
	Gold          int
	ActiveShots   int
	QueuedBarrels int
}

// BattleReporter collects periodic snapshots and summarizes sliding windows.
type BattleReporter struct {
	history     []BattleReport
	windowTicks int
}

// NewBattleReporter creates a reporter with the given window size.
func NewBattleReporter(windowTicks int) *BattleReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &BattleReporter{windowTicks: windowTicks}
}

// Collect takes one snapshot of the sim.
func (r *BattleReporter) Collect(b *BattleSim) {
	rep := BattleReport{
		Tick:          b.Tick,
		WaveNumber:    b.WaveNumber,
		Behaviors:     make(map[Behavior]int),
		PlayerHP:      b.Player.HP,
		Gold:          b.Gold,
		ActiveShots:   b.Projectiles.ActiveCount(),
		QueuedBarrels: b.Projectiles.QueuedCount(),
	}
	leaders := make(map[int]bool)
	for _, s := range b.Ships {
		if !s.Alive() {
			continue
		}
		rep.Alive++
		rep.Behaviors[s.Behavior]++
		if s.Phased {
			rep.Phased++
		}
		if s.Behavior == BehaviorFormation && s.FormationLeaderID >= 0 {
			leaders[s.FormationLeaderID] = true
		}
		if s.Boss {
			rep.BossAlive = true
			rep.BossEnraged = s.Enraged
		}
	}
	rep.Formations = len(leaders)
	r.history = append(r.history, rep)
}

// Latest returns the most recent snapshot, or nil before the first Collect.
func (r *BattleReporter) Latest() *BattleReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all snapshots.
func (r *BattleReporter) History() []BattleReport {
	return r.history
}

// WindowReport summarizes the last window of snapshots.
type WindowReport struct {
	FromTick, ToTick int
	Samples          int

	MaxActiveShots int
	AvgActiveShots float64
	MinAlive       int
	MaxAlive       int
	WavesSeen      int
	EndPlayerHP    float64
	EndGold        int
}

// WindowSummary reduces the trailing window into a WindowReport.
func (r *BattleReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	last := r.history[len(r.history)-1]
	from := last.Tick - r.windowTicks
	wr := &WindowReport{
		FromTick:    last.Tick,
		ToTick:      last.Tick,
		MinAlive:    last.Alive,
		EndPlayerHP: last.PlayerHP,
		EndGold:     last.Gold,
	}
	waves := make(map[int]bool)
	sum := 0
	for _, rep := range r.history {
		if rep.Tick < from {
			continue
		}
		if rep.Tick < wr.FromTick {
			wr.FromTick = rep.Tick
		}
		wr.Samples++
		sum += rep.ActiveShots
		if rep.ActiveShots > wr.MaxActiveShots {
			wr.MaxActiveShots = rep.ActiveShots
		}
		if rep.Alive < wr.MinAlive {
			wr.MinAlive = rep.Alive
		}
		if rep.Alive > wr.MaxAlive {
			wr.MaxAlive = rep.Alive
		}
		waves[rep.WaveNumber] = true
	}
	if wr.Samples > 0 {
		wr.AvgActiveShots = float64(sum) / float64(wr.Samples)
	}
	wr.WavesSeen = len(waves)
	return wr
}

// Format renders the window report for CLI output.
func (wr *WindowReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "window [T=%d..T=%d] samples=%d\n", wr.FromTick, wr.ToTick, wr.Samples)
	fmt.Fprintf(&sb, "  shots: max=%d avg=%.1f\n", wr.MaxActiveShots, wr.AvgActiveShots)
	fmt.Fprintf(&sb, "  alive: min=%d max=%d  waves=%d\n", wr.MinAlive, wr.MaxAlive, wr.WavesSeen)
	fmt.Fprintf(&sb, "  player hp=%.0f  gold=%d\n", wr.EndPlayerHP, wr.EndGold)
	return sb.String()
}
