package world

import "strings"

// Exit is a directed, labeled edge to another location.
// The target may point at a location that does not exist; that is only
// detected when the exit is traversed.
type Exit struct {
	Direction string `json:"direction"`
	Target    string `json:"target"`
}

// Location is a navigable node in the world's location graph.
// Exits keep document order. Duplicate directions are allowed; lookups
// take the first match.
type Location struct {
	ID             string          `json:"id"` // Also the key in the world's location table.
	Title          string          `json:"title,omitempty"`
	Description    string          `json:"description,omitempty"`
	ImagePath      string          `json:"image,omitempty"` // Relative path, rendered by the presentation layer.
	FirstVisitText string          `json:"first_visit_text,omitempty"`
	Visited        bool            `json:"visited,omitempty"`
	Exits          []Exit          `json:"exits,omitempty"`
	Items          []string        `json:"items,omitempty"`
	FlagsRequired  map[string]bool `json:"flags_required,omitempty"` // Flag → value needed to enter.
	FlagsSet       map[string]bool `json:"flags_set,omitempty"`      // Flag → value granted on entry.
}

// FindExit returns the first exit whose direction matches, comparing
// case-insensitively. First-match, not best-match: with duplicate
// directions the earlier entry wins.
func (l *Location) FindExit(direction string) (Exit, bool) {
	for _, e := range l.Exits {
		if strings.EqualFold(e.Direction, direction) {
			return e, true
		}
	}
	return Exit{}, false
}

// Directions lists exit directions in stored order.
func (l *Location) Directions() []string {
	dirs := make([]string, 0, len(l.Exits))
	for _, e := range l.Exits {
		dirs = append(dirs, e.Direction)
	}
	return dirs
}
