package asado

import "sort"

// ApplyEvent folds one attendance event into a player's standing: one
// point for showing up, one for hosting, one for grill duty. LastSeenAt
// tracks the latest date the player was actually present, not the latest
// event replayed. Shared by the incremental writer and the rebuild.
func ApplyEvent(st AsadoStanding, a Asado, playerID string) AsadoStanding {
	present := false
	for _, id := range a.PresentPlayerIDs {
		if id == playerID {
			present = true
			break
		}
	}
	isHost := a.HostPlayerID == playerID
	isAsador := a.AsadorPlayerID == playerID

	if present {
		st.Points++
		st.Attended++
		if a.Date.After(st.LastSeenAt) {
			st.LastSeenAt = a.Date
		}
	}
	if isHost {
		st.Points++
		st.Hosted++
	}
	if isAsador {
		st.Points++
		st.Asador++
	}
	return st
}

// FoldEvents replays attendance events chronologically (ties broken by
// id) and returns the standing of every impacted player.
func FoldEvents(events []Asado) map[string]AsadoStanding {
	ordered := make([]Asado, len(events))
	copy(ordered, events)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	standings := make(map[string]AsadoStanding)
	for _, a := range ordered {
		for _, pid := range impactedIDs(a) {
			standings[pid] = ApplyEvent(standings[pid], a, pid)
		}
	}
	return standings
}

// impactedIDs is the union of present players, host and asador,
// deduplicated. Host and asador are validated to be present on write,
// but old records are folded defensively anyway.
func impactedIDs(a Asado) []string {
	seen := make(map[string]struct{}, len(a.PresentPlayerIDs)+2)
	out := make([]string, 0, len(a.PresentPlayerIDs)+2)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range a.PresentPlayerIDs {
		add(id)
	}
	add(a.HostPlayerID)
	add(a.AsadorPlayerID)
	return out
}
