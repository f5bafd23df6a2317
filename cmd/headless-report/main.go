package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/seafarer-games/booty-hunt/internal/game"
)

const tickRate = 60.0

type runStats struct {
	runIndex int
	seed     int64

	ticksSurvived int
	wavesCleared  int
	gold          int
	finalHP       float64
	shipsSunk     int
	maxActive     int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var wavesPath string
	var omenWeek string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless battle runs")
	flag.IntVar(&ticks, "ticks", 7200, "ticks per run (60/s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&wavesPath, "waves", "", "wave table YAML (default: embedded stock table)")
	flag.StringVar(&omenWeek, "omen-week", "", "ISO week key for the tide omen, e.g. 2026-W35 (empty = current week)")
	flag.BoolVar(&verbose, "v", false, "verbose event logging")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}

	var wt *game.WaveTable
	if wavesPath != "" {
		var err error
		wt, err = game.LoadWaveTable(wavesPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}
	week := omenWeek
	if week == "" {
		week = game.WeekKey(time.Now().UTC())
	}
	omen := game.OmenForWeek(week)
	fmt.Printf("tide omen for %s: %s\n\n", week, omen.Name)

	var all []runStats
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOne(i+1, seed, ticks, wt, omen, verbose)
		all = append(all, stats)
		fmt.Printf("run %d seed=%d: survived=%d ticks, waves cleared=%d, sunk=%d, gold=%d, hp=%.0f, max shots=%d\n",
			stats.runIndex, stats.seed, stats.ticksSurvived, stats.wavesCleared,
			stats.shipsSunk, stats.gold, stats.finalHP, stats.maxActive)
	}

	fmt.Println()
	printAggregate(all)
}

func runOne(index int, seed int64, ticks int, wt *game.WaveTable, omen game.TideOmen, verbose bool) runStats {
	opts := []game.SimOption{
		game.WithSeed(seed),
		game.WithAutoWaves(),
		game.WithOmen(omen),
		game.WithVerboseLog(verbose),
	}
	if wt != nil {
		opts = append(opts, game.WithWaveTable(wt))
	}
	sim := game.NewBattleSim(opts...)
	reporter := game.NewBattleReporter(600)

	dt := 1.0 / tickRate
	stats := runStats{runIndex: index, seed: seed}
	startWave := sim.WaveNumber

	for t := 0; t < ticks; t++ {
		autopilot(sim, dt)
		sim.Step(dt)
		reporter.Collect(sim)
		stats.ticksSurvived = t + 1
		if sim.Player.HP <= 0 {
			break
		}
	}

	stats.wavesCleared = sim.WaveNumber - startWave
	stats.gold = sim.Gold
	stats.finalHP = sim.Player.HP
	stats.shipsSunk = sim.Log.CountCategory("sink", "ship")
	for _, rep := range reporter.History() {
		if rep.ActiveShots > stats.maxActive {
			stats.maxActive = rep.ActiveShots
		}
	}
	if wr := reporter.WindowSummary(); wr != nil && verbose {
		fmt.Print(wr.Format())
	}
	return stats
}

// autopilot sails a simple gun line: close to broadside range on the nearest
// hull, then turn across it and fire whichever battery bears.
func autopilot(sim *game.BattleSim, dt float64) {
	p := &sim.Player
	var nearest *game.Ship
	best := math.MaxFloat64
	for _, s := range sim.Ships {
		if !s.Alive() {
			continue
		}
		d := game.DistXZ(p.Pos, s.Pos)
		if d < best {
			best = d
			nearest = s
		}
	}
	if nearest == nil {
		p.Speed = 0
		return
	}

	bearing := game.HeadingTo(p.Pos.X, p.Pos.Z, nearest.Pos.X, nearest.Pos.Z)
	const gunRange = 35.0
	if best > gunRange {
		p.Heading = steer(p.Heading, bearing, 1.0*dt)
		p.Speed = 11
	} else {
		// Present a broadside: hold the target abeam.
		p.Heading = steer(p.Heading, bearing+math.Pi/2, 1.0*dt)
		p.Speed = 7
		if side, ok := chooseBroadside(p.Heading, bearing); ok {
			sim.FireBroadside(side)
		}
	}
	p.Pos.X += math.Cos(p.Heading) * p.Speed * dt
	p.Pos.Z += math.Sin(p.Heading) * p.Speed * dt
}

// chooseBroadside picks the battery facing the bearing, if the target sits
// close enough to either beam to be worth the powder.
func chooseBroadside(heading, bearing float64) (game.Side, bool) {
	off := angleDiff(bearing, heading)
	const tol = 0.5
	if math.Abs(off-math.Pi/2) < tol {
		return game.SideStarboard, true
	}
	if math.Abs(off+math.Pi/2) < tol {
		return game.SidePort, true
	}
	return game.SidePort, false
}

func steer(heading, target, maxStep float64) float64 {
	diff := angleDiff(target, heading)
	if math.Abs(diff) <= maxStep {
		return target
	}
	if diff > 0 {
		return heading + maxStep
	}
	return heading - maxStep
}

func angleDiff(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	var ticks, waves, gold, sunk int
	survived := 0
	for _, s := range all {
		ticks += s.ticksSurvived
		waves += s.wavesCleared
		gold += s.gold
		sunk += s.shipsSunk
		if s.finalHP > 0 {
			survived++
		}
	}
	n := float64(len(all))
	fmt.Printf("aggregate over %d runs:\n", len(all))
	fmt.Printf("  survived full run: %d/%d\n", survived, len(all))
	fmt.Printf("  avg ticks=%.0f waves=%.1f sunk=%.1f gold=%.0f\n",
		float64(ticks)/n, float64(waves)/n, float64(sunk)/n, float64(gold)/n)
}
