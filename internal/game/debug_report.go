package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// BattleDebugReport renders a paste-ready text report: the roster with full
// behavior state, projectile pool stats, and the tail of the event log.
// Bound to a key in the viewer and copied to the clipboard for bug reports.
func (b *BattleSim) BattleDebugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 300
	}
	fromTick := b.Tick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Booty Hunt battle report ---\n")
	fmt.Fprintf(&sb, "tick=%d wave=%d gold=%d player_hp=%.0f/%.0f\n",
		b.Tick, b.WaveNumber, b.Gold, b.Player.HP, b.Player.MaxHP)
	fmt.Fprintf(&sb, "pool: active=%d queued=%d\n\n",
		b.Projectiles.ActiveCount(), b.Projectiles.QueuedCount())

	fmt.Fprintf(&sb, "== roster ==\n")
	for _, s := range b.Ships {
		fmt.Fprintf(&sb, "id=%-3d %-16s %-9s hp=%5.1f/%-5.1f spd=%4.1f hdg=%+5.2f",
			s.ID, s.Class, s.Behavior, s.HP, s.MaxHP, s.Speed, s.Heading)
		if s.Behavior == BehaviorFormation {
			fmt.Fprintf(&sb, " leader=%d idx=%d", s.FormationLeaderID, s.FormationIndex)
		}
		if s.Behavior == BehaviorPhase {
			fmt.Fprintf(&sb, " phased=%v flee_in=%.1f", s.Phased, s.fleeUntil)
		}
		if s.Boss {
			fmt.Fprintf(&sb, " BOSS enraged=%v", s.Enraged)
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "\n== events [T=%d..T=%d] ==\n", fromTick, b.Tick)
	sb.WriteString(b.Log.FormatRange(fromTick, b.Tick))
	return sb.String()
}

// CopyDebugReport writes the report to the system clipboard.
func (b *BattleSim) CopyDebugReport(lastTicks int) error {
	return clipboard.WriteAll(b.BattleDebugReport(lastTicks))
}
