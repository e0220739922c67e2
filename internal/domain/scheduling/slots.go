package scheduling

import "fmt"

// SlotGrid describes the daily booking grid for a psychologist. Slots
// start on the hour and repeat every SlotMinutes; a slot is offered only
// when the whole session fits before EndHour.
type SlotGrid struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// DefaultGrid matches the clinic's working day: sessions of 50 minutes
// between 08:00 and 18:00.
func DefaultGrid() SlotGrid {
	return SlotGrid{StartHour: 8, EndHour: 18, SlotMinutes: DefaultDurationMinutes}
}

// Labels returns every bookable slot label (HH:MM) in ascending order.
// The grid is deterministic: the same configuration always yields the
// same labels.
func (g SlotGrid) Labels() []string {
	labels := []string{}
	if g.SlotMinutes <= 0 || g.StartHour < 0 || g.EndHour <= g.StartHour {
		return labels
	}
	end := g.EndHour * 60
	for m := g.StartHour * 60; m+g.SlotMinutes <= end; m += g.SlotMinutes {
		labels = append(labels, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return labels
}

// Contains reports whether the label is a slot offered by the grid
func (g SlotGrid) Contains(label string) bool {
	for _, l := range g.Labels() {
		if l == label {
			return true
		}
	}
	return false
}

// Available filters the grid against already-taken slot labels
func (g SlotGrid) Available(taken []string) []string {
	occupied := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		occupied[t] = struct{}{}
	}
	free := []string{}
	for _, label := range g.Labels() {
		if _, ok := occupied[label]; !ok {
			free = append(free, label)
		}
	}
	return free
}
