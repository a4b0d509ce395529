package world

// Player is the live player state. Exactly one exists per running game.
// Inventory is an ordered set of item ids: order is preserved, and
// AddItem refuses duplicates. Documents may still load duplicates
// as-authored; de-duplication happens at add time, not parse time.
type Player struct {
	Inventory       []string        `json:"inventory,omitempty"`
	CurrentLocation string          `json:"current_location,omitempty"`
	Flags           map[string]bool `json:"flags,omitempty"`
}
