package game

// SpawnEntry is one slot in a wave roster: a class name plus the boss flag.
type SpawnEntry struct {
	Class string
	Boss  bool
}

// bossScale enlarges boss hulls relative to their base class.
const bossScale = 1.6

// SpawnList builds the roster for a wave. Non-boss slots draw armed vs
// unarmed by the wave's armed percentage, then uniformly within that pool.
// A single corrective pass guarantees formation hulls never sail alone: if
// exactly one formation-type slot was drawn and another non-boss slot
// exists, that slot is converted to the same formation class. The boss, if
// the wave defines one, is appended last.
func (c *AIController) SpawnList(wave WaveConfig, waveNumber int) []SpawnEntry {
	types := wave.EnemyTypes
	if len(types) == 0 {
		// Malformed config: use the full catalogue rather than an empty sea.
		types = shipClassNames()
	}

	var armed, unarmed []string
	for _, name := range types {
		def, ok := shipClasses[name]
		if !ok {
			continue
		}
		if def.armed {
			armed = append(armed, name)
		} else {
			unarmed = append(unarmed, name)
		}
	}
	if len(armed) == 0 && len(unarmed) == 0 {
		// Nothing recognizable in the wave list either.
		for _, name := range shipClassNames() {
			if shipClasses[name].armed {
				armed = append(armed, name)
			} else {
				unarmed = append(unarmed, name)
			}
		}
	}

	list := make([]SpawnEntry, 0, wave.TotalShips+1)
	for i := 0; i < wave.TotalShips; i++ {
		pool := unarmed
		if (c.rng.Float64() < wave.ArmedPercent && len(armed) > 0) || len(unarmed) == 0 {
			pool = armed
		}
		class := pool[c.rng.Intn(len(pool))]
		if wave.GhostChance > 0 && shipClasses[class].armed && class != "ghost_ship" {
			if c.rng.Float64() < wave.GhostChance {
				class = "ghost_ship"
			}
		}
		list = append(list, SpawnEntry{Class: class})
	}

	c.fixLoneFormation(list)

	if wave.BossName != "" {
		class := wave.BossName
		if _, ok := shipClasses[class]; !ok {
			class = "corsair"
		}
		list = append(list, SpawnEntry{Class: class, Boss: true})
	}
	return list
}

// fixLoneFormation converts one non-formation slot when exactly one
// formation hull was drawn. Formation behavior is designed to operate in
// pairs and trios, never alone. This is a roster invariant, not an edge
// case.
func (c *AIController) fixLoneFormation(list []SpawnEntry) {
	count := 0
	formationClass := ""
	for _, e := range list {
		if shipClasses[e.Class].behavior == BehaviorFormation {
			count++
			formationClass = e.Class
		}
	}
	if count != 1 {
		return
	}
	for i := range list {
		if shipClasses[list[i].Class].behavior != BehaviorFormation {
			list[i].Class = formationClass
			return
		}
	}
}

// NewShip realizes a roster entry into a live ship. Stats come from the
// class definition scaled by the wave multipliers; boss hit points are taken
// verbatim from the wave config, not scaled.
func NewShip(id int, entry SpawnEntry, wave WaveConfig, pos Vec3) *Ship {
	def := shipClasses[entry.Class]

	hp := def.hp * wave.HealthMult
	scale := def.scale
	hitRadius := def.hitRadius
	if entry.Boss {
		if wave.BossHP > 0 {
			hp = wave.BossHP
		}
		scale *= bossScale
		hitRadius *= bossScale
	}

	speed := def.speed * wave.SpeedMult
	s := &Ship{
		ID:                id,
		Class:             entry.Class,
		Behavior:          def.behavior,
		Armed:             def.armed,
		Pos:               pos,
		Heading:           HeadingTo(pos.X, pos.Z, 0, 0),
		Speed:             speed,
		BaseSpeed:         speed,
		HP:                hp,
		MaxHP:             hp,
		HitRadius:         hitRadius,
		Scale:             scale,
		Value:             int(float64(def.value) * wave.GoldMult),
		Boss:              entry.Boss,
		zigzagDir:         1,
		phaseTimer:        phaseTogglePer,
		fleeUntil:         fleeUntilInitial,
		FormationLeaderID: -1,
	}
	return s
}
