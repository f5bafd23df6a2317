package game

import "sort"

// Behavior selects which steering state machine drives a ship. It is fixed
// at spawn and never changes for the life of the entity.
type Behavior int

const (
	BehaviorFlee      Behavior = iota // unarmed merchant: run and zigzag
	BehaviorCircle                    // corsair: orbit at stand-off range
	BehaviorBeeline                   // fire ship: charge and self-destruct
	BehaviorPhase                     // ghost ship: hold the band, then run
	BehaviorFormation                 // navy squadron: line abreast on a leader
)

func (b Behavior) String() string {
	switch b {
	case BehaviorFlee:
		return "flee"
	case BehaviorCircle:
		return "circle"
	case BehaviorBeeline:
		return "beeline"
	case BehaviorPhase:
		return "phase"
	case BehaviorFormation:
		return "formation"
	default:
		return "unknown"
	}
}

// shipClassDef is the per-category stat block spawn props are derived from.
type shipClassDef struct {
	behavior  Behavior
	armed     bool
	speed     float64 // base units/s before wave multipliers
	hp        float64
	hitRadius float64
	scale     float64
	value     int // gold on sink
}

// shipClasses is the full catalogue of spawnable hulls. Wave configs pick a
// subset; an empty wave list falls back to all of these.
var shipClasses = map[string]shipClassDef{
	"merchant_sloop":   {behavior: BehaviorFlee, armed: false, speed: 7.0, hp: 30, hitRadius: 2.2, scale: 0.8, value: 25},
	"merchant_galleon": {behavior: BehaviorFlee, armed: false, speed: 5.0, hp: 70, hitRadius: 3.2, scale: 1.2, value: 60},
	"corsair":          {behavior: BehaviorCircle, armed: true, speed: 8.0, hp: 55, hitRadius: 2.6, scale: 1.0, value: 40},
	"fire_ship":        {behavior: BehaviorBeeline, armed: true, speed: 9.5, hp: 25, hitRadius: 2.0, scale: 0.8, value: 30},
	"ghost_ship":       {behavior: BehaviorPhase, armed: true, speed: 7.5, hp: 45, hitRadius: 2.6, scale: 1.0, value: 55},
	"navy_frigate":     {behavior: BehaviorFormation, armed: true, speed: 7.0, hp: 80, hitRadius: 3.0, scale: 1.1, value: 50},
}

// shipClassNames returns the catalogue keys in stable (sorted) order so
// roster draws are reproducible for a fixed seed.
func shipClassNames() []string {
	names := make([]string, 0, len(shipClasses))
	for n := range shipClasses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ship is one enemy vessel. Heading/speed and the behavior timers are
// mutated in place by the AI controller each frame; hit points are mutated
// only by the host when it applies damage events.
type Ship struct {
	ID    int
	Class string

	Behavior Behavior
	Armed    bool

	Pos       Vec3
	Heading   float64
	Speed     float64
	BaseSpeed float64

	HP    float64
	MaxHP float64

	HitRadius float64
	Scale     float64
	Value     int // gold awarded on sink

	Boss    bool
	Enraged bool

	Sinking     bool
	Surrendered bool

	// Flee state.
	zigzagTimer   float64
	zigzagDir     float64 // +1 or -1
	wanderTimer   float64
	wanderHeading float64

	// Firing state.
	fireTimer float64

	// Phase (ghost) state.
	phaseTimer float64
	Phased     bool
	fleeUntil  float64

	// Formation state. LeaderID == ID marks a leader; -1 means ungrouped.
	FormationIndex    int
	FormationLeaderID int
}

// Alive reports whether the ship is still part of the fight.
func (s *Ship) Alive() bool {
	return s.HP > 0 && !s.Sinking
}

// IsFormationLeader reports whether the ship currently leads its group.
func (s *Ship) IsFormationLeader() bool {
	return s.Behavior == BehaviorFormation && s.FormationLeaderID == s.ID
}

func (s *Ship) label() string {
	if s.Boss {
		return "BOSS"
	}
	return s.Behavior.String()
}
