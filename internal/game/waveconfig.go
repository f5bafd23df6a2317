package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WaveConfig is one wave's tuning record, supplied by the progression layer.
type WaveConfig struct {
	TotalShips   int      `yaml:"totalShips"`
	ArmedPercent float64  `yaml:"armedPercent"` // 0..1 chance a slot draws armed
	EnemyTypes   []string `yaml:"enemyTypes"`   // empty = full catalogue
	BossName     string   `yaml:"bossName"`     // empty = no boss this wave
	BossHP       float64  `yaml:"bossHp"`       // used verbatim, never scaled
	SpeedMult    float64  `yaml:"speedMult"`
	HealthMult   float64  `yaml:"healthMult"`
	GoldMult     float64  `yaml:"goldMult"`
	DamageMult   float64  `yaml:"damageMult"` // scales enemy shot damage
	VisionMult   float64  `yaml:"visionMult"` // consumed by the presentation layer (fog)
	GhostChance  float64  `yaml:"ghostChance"` // chance an armed draw is upgraded to a ghost
	Weather      string   `yaml:"weather"`     // clear, stormy, foggy, night
}

// WaveTable is an ordered list of wave configs loaded from YAML.
type WaveTable struct {
	Waves []WaveConfig `yaml:"waves"`
}

//go:embed waves.yaml
var defaultWavesYAML []byte

// DefaultWaveTable returns the embedded stock campaign table.
func DefaultWaveTable() *WaveTable {
	wt, err := parseWaveTable(defaultWavesYAML)
	if err != nil {
		// The embedded table ships with the binary; a parse failure here is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded wave table: %v", err))
	}
	return wt
}

// LoadWaveTable reads and validates a wave table from a YAML file.
func LoadWaveTable(path string) (*WaveTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wave table %s: %w", path, err)
	}
	wt, err := parseWaveTable(data)
	if err != nil {
		return nil, fmt.Errorf("wave table %s: %w", path, err)
	}
	return wt, nil
}

func parseWaveTable(data []byte) (*WaveTable, error) {
	var wt WaveTable
	if err := yaml.Unmarshal(data, &wt); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(wt.Waves) == 0 {
		return nil, fmt.Errorf("no waves defined")
	}
	for i := range wt.Waves {
		applyWaveDefaults(&wt.Waves[i])
	}
	return &wt, nil
}

// applyWaveDefaults fills missing optional fields so older table files keep
// loading. Unknown enemy class names are tolerated here; the roster builder
// skips them and falls back to the catalogue if nothing survives.
func applyWaveDefaults(w *WaveConfig) {
	if w.TotalShips <= 0 {
		w.TotalShips = 4
	}
	w.ArmedPercent = clamp01(w.ArmedPercent)
	if w.SpeedMult <= 0 {
		w.SpeedMult = 1
	}
	if w.HealthMult <= 0 {
		w.HealthMult = 1
	}
	if w.GoldMult <= 0 {
		w.GoldMult = 1
	}
	if w.DamageMult <= 0 {
		w.DamageMult = 1
	}
	if w.VisionMult <= 0 {
		w.VisionMult = 1
	}
	w.GhostChance = clamp01(w.GhostChance)
	if w.Weather == "" {
		w.Weather = "clear"
	}
}

// Wave returns the config for a 1-based wave number. Past the end of the
// table the last wave repeats.
func (wt *WaveTable) Wave(n int) WaveConfig {
	if n < 1 {
		n = 1
	}
	if n > len(wt.Waves) {
		n = len(wt.Waves)
	}
	return wt.Waves[n-1]
}

// weatherSpreadBonus maps a wave's weather to the broadside spread penalty
// the weather collaborator feeds into the projectile system.
func weatherSpreadBonus(weather string) float64 {
	switch weather {
	case "stormy":
		return 1.6
	case "foggy":
		return 0.8
	case "night":
		return 0.5
	default:
		return 0
	}
}
