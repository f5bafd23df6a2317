package game

// CheckHits resolves every active player projectile against the supplied
// target list and returns the frame's damage events. Resolution is first
// qualifying target in list order, not nearest; callers and tests must not
// assume a closest-match tie-break. Enemy shots are ignored here: they can
// only strike the player, via CheckPlayerHit, never each other's hulls (an
// escort shot spawns inside its own firer's hit radius).
//
// ghostMiss maps ship ID → miss probability for currently-phased ghost
// ships; a successful miss roll lets the shot pass through that hull and
// keep flying.
func (ps *ProjectileSystem) CheckHits(targets []*Ship, ghostMiss map[int]float64) []HitResult {
	var results []HitResult

	for i := range ps.pool {
		p := &ps.pool[i]
		if !p.active || !p.fromPlayer {
			continue
		}

		for _, t := range targets {
			if !t.Alive() {
				continue
			}
			if Dist(p.pos, t.Pos) > t.HitRadius+projectileRadius {
				continue
			}
			if prob, ok := ghostMiss[t.ID]; ok && ps.rng.Float64() < prob {
				continue // passed clean through the phased hull
			}

			dmg := baseShotDamage * p.damageMult
			results = append(results, HitResult{
				TargetID:  t.ID,
				Damage:    dmg,
				HitPos:    p.pos,
				ChainShot: p.aoe,
			})
			if p.aoe {
				results = append(results, ps.areaSecondaries(p.pos, dmg, t, targets)...)
			}
			p.active = false
			break
		}

		if p.active && !p.split {
			ps.trySplit(p, targets)
		}
	}
	return results
}

// areaSecondaries emits one splash event per other target inside the chain
// blast radius, with linear falloff to zero at the edge.
func (ps *ProjectileSystem) areaSecondaries(impact Vec3, primaryDamage float64, hit *Ship, targets []*Ship) []HitResult {
	var out []HitResult
	for _, t := range targets {
		if t == hit || !t.Alive() {
			continue
		}
		d := Dist(impact, t.Pos)
		if d >= areaRadius {
			continue
		}
		dmg := primaryDamage * areaDamageFrac * (1 - d/areaRadius)
		if dmg <= 0 {
			continue
		}
		out = append(out, HitResult{
			TargetID: t.ID,
			Damage:   dmg,
			HitPos:   t.Pos,
			AoE:      true,
		})
	}
	return out
}

// trySplit converts a player shot that is narrowly missing a hull into a
// spray of grapeshot pellets re-aimed at that hull. The parent is consumed;
// pellets carry reduced damage and are flagged so they never split again.
func (ps *ProjectileSystem) trySplit(p *Projectile, targets []*Ship) {
	for _, t := range targets {
		if !t.Alive() {
			continue
		}
		d := Dist(p.pos, t.Pos)
		if d <= t.HitRadius+projectileRadius || d > splitDetectRadius {
			continue
		}

		p.active = false
		bearing := HeadingTo(p.pos.X, p.pos.Z, t.Pos.X, t.Pos.Z)
		origin := p.pos
		dm := p.damageMult * splitDamageFrac
		for i := 0; i < splitCount; i++ {
			b := bearing + (ps.rng.Float64()*2-1)*splitJitter
			vel := headingVec(b).Scale(splitSpeed)
			// Flat-ish trajectory; the pellets are already close.
			vel.Y = (t.Pos.Y - origin.Y) / (d / splitSpeed)
			ps.spawn(Projectile{
				pos:        origin,
				vel:        vel,
				damageMult: dm,
				fromPlayer: true,
				split:      true,
			})
		}
		return
	}
}

// CheckPlayerHit finds the first enemy shot inside the player's hull radius.
// A successful dodge roll consumes the shot with no damage and returns nil.
// TargetID is -1 in the returned event.
func (ps *ProjectileSystem) CheckPlayerHit(playerPos Vec3, playerRadius, dodgeChance float64) *HitResult {
	dodgeChance = clamp01(dodgeChance)
	for i := range ps.pool {
		p := &ps.pool[i]
		if !p.active || p.fromPlayer {
			continue
		}
		if Dist(p.pos, playerPos) > playerRadius+projectileRadius {
			continue
		}
		p.active = false
		if dodgeChance > 0 && ps.rng.Float64() < dodgeChance {
			return nil
		}
		return &HitResult{
			TargetID: -1,
			Damage:   baseShotDamage * p.damageMult,
			HitPos:   p.pos,
		}
	}
	return nil
}

// CheckFireShipAoE is independent of the projectile pool: given an explosion
// centre and radius it returns one falloff-scaled damage event per target
// inside the blast, full damage at the centre down to zero at the edge.
func (ps *ProjectileSystem) CheckFireShipAoE(center Vec3, radius float64, targets []*Ship) []HitResult {
	if radius <= 0 {
		return nil
	}
	var out []HitResult
	for _, t := range targets {
		if !t.Alive() {
			continue
		}
		d := Dist(center, t.Pos)
		if d >= radius {
			continue
		}
		out = append(out, HitResult{
			TargetID: t.ID,
			Damage:   fireShipDamage * (1 - d/radius),
			HitPos:   t.Pos,
		})
	}
	return out
}
