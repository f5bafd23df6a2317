package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/seafarer-games/booty-hunt/internal/game"
)

func main() {
	var seed int64
	var wavesPath string
	var noOmen bool

	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "RNG seed")
	flag.StringVar(&wavesPath, "waves", "", "wave table YAML (default: embedded stock table)")
	flag.BoolVar(&noOmen, "no-omen", false, "disable the weekly tide omen")
	flag.Parse()

	opts := []game.SimOption{game.WithSeed(seed)}
	if wavesPath != "" {
		wt, err := game.LoadWaveTable(wavesPath)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, game.WithWaveTable(wt))
	}
	if !noOmen {
		omen := game.CurrentOmen(time.Now().UTC())
		log.Printf("tide omen this week: %s", omen.Name)
		opts = append(opts, game.WithOmen(omen))
	}

	ebiten.SetWindowTitle("Booty Hunt")
	ebiten.SetWindowSize(1280, 800)
	if err := ebiten.RunGame(game.NewGame(opts...)); err != nil {
		log.Fatal(err)
	}
}
