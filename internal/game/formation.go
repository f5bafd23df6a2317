package game

import "sort"

// UpdateFormation recomputes group membership for every live formation ship.
// This is the self-healing pass: followers whose recorded leader is missing,
// dead, or no longer a formation hull re-derive a leader (a lone survivor
// leads itself; self-leadership is the valid terminal state); members are
// then grouped by leader id and re-indexed so the leader is always index 0
// and followers keep stable stations frame to frame. After this pass no
// group references a dead entity.
//
// The whole structure is rebuilt from scratch each call rather than patched
// incrementally; O(members) work, and formation groups are 2-3 hulls.
func (c *AIController) UpdateFormation(all []*Ship) {
	byID := make(map[int]*Ship, len(all))
	for _, s := range all {
		if s.Alive() {
			byID[s.ID] = s
		}
	}

	// Promotion pass: repair dangling leader references. Survivors of a
	// dead leader re-form as one group under their lowest-id member rather
	// than scattering into singletons; a lone orphan leads itself.
	orphans := make(map[int][]*Ship)
	for _, s := range all {
		if s.Behavior != BehaviorFormation || !s.Alive() {
			continue
		}
		if s.FormationLeaderID < 0 {
			s.FormationLeaderID = s.ID
			continue
		}
		leader, ok := byID[s.FormationLeaderID]
		if !ok || leader.Behavior != BehaviorFormation {
			orphans[s.FormationLeaderID] = append(orphans[s.FormationLeaderID], s)
		}
	}
	for _, members := range orphans {
		newLeader := members[0].ID
		for _, m := range members[1:] {
			if m.ID < newLeader {
				newLeader = m.ID
			}
		}
		for _, m := range members {
			m.FormationLeaderID = newLeader
		}
	}

	// Group and re-index: leader first, followers ordered by id.
	groups := make(map[int][]*Ship)
	for _, s := range all {
		if s.Behavior != BehaviorFormation || !s.Alive() {
			continue
		}
		groups[s.FormationLeaderID] = append(groups[s.FormationLeaderID], s)
	}
	for leaderID, members := range groups {
		sort.Slice(members, func(i, j int) bool {
			if (members[i].ID == leaderID) != (members[j].ID == leaderID) {
				return members[i].ID == leaderID
			}
			return members[i].ID < members[j].ID
		})
		for idx, m := range members {
			m.FormationIndex = idx
		}
	}
}

// formationGroupSize is how many hulls sail together when a wave spawns
// several formation ships at once.
const formationGroupSize = 3

// AssignFormationGroups performs the initial grouping after a wave spawns:
// formation ships are chunked into groups of up to formationGroupSize in id
// order, the lowest id in each chunk leading. Later healing is entirely
// UpdateFormation's job.
func AssignFormationGroups(all []*Ship) {
	var members []*Ship
	for _, s := range all {
		if s.Behavior == BehaviorFormation && s.Alive() {
			members = append(members, s)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	for start := 0; start < len(members); start += formationGroupSize {
		end := start + formationGroupSize
		if end > len(members) {
			end = len(members)
		}
		leader := members[start]
		for idx, m := range members[start:end] {
			m.FormationLeaderID = leader.ID
			m.FormationIndex = idx
		}
	}
}
