// Package world holds the in-memory game definition and its pure
// state-transition logic: movement, inventory mutation, flag evaluation
// and location-access gating. It knows nothing about rendering or
// transport; callers own the single World instance and its lifetime.
package world

import (
	"fmt"
	"strings"
)

// DefaultInventoryCapacity bounds the player inventory. Unlike the
// rest of the model the inventory keeps a bound, but overflow is an
// explicit ErrInventoryFull rather than silent truncation.
const DefaultInventoryCapacity = 64

// GameMeta is display-only metadata, immutable after load.
type GameMeta struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// World aggregates the deserialized game definition and live player
// state. It is not safe for concurrent use; exactly one caller mutates
// it at a time.
type World struct {
	Meta          GameMeta             `json:"meta"`
	StartLocation string               `json:"start_location"`
	Locations     map[string]*Location `json:"locations"`
	Items         map[string]*ItemDef  `json:"inventory_items,omitempty"`
	GameFlags     map[string]bool      `json:"game_flags,omitempty"` // World-scoped flags, distinct from player flags.
	Player        Player               `json:"player"`

	// InventoryCapacity is the maximum number of held items.
	// Zero means DefaultInventoryCapacity.
	InventoryCapacity int `json:"-"`
}

// Validate checks the minimal playability constraints the parser
// deliberately leaves alone: a non-empty location table and a
// resolvable start location.
func (w *World) Validate() error {
	if len(w.Locations) == 0 {
		return ErrNoLocations
	}
	if _, ok := w.Locations[w.StartLocation]; !ok {
		return fmt.Errorf("%w: %q", ErrNoStartLocation, w.StartLocation)
	}
	return nil
}

// LocationByID looks up a location by id.
func (w *World) LocationByID(id string) (*Location, bool) {
	loc, ok := w.Locations[id]
	return loc, ok
}

// CurrentLocation resolves the player's current location.
func (w *World) CurrentLocation() (*Location, bool) {
	return w.LocationByID(w.Player.CurrentLocation)
}

// MovePlayer moves the player through the first exit of the current
// location whose direction matches case-insensitively. It returns the
// destination and whether this arrival was the destination's first.
//
// Location requirements are NOT checked here: gating is an explicit
// pre-move check via CheckLocationRequirements, performed by callers
// that want it. On failure the world is unmodified.
func (w *World) MovePlayer(direction string) (*Location, bool, error) {
	current, ok := w.CurrentLocation()
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrNoCurrentLocation, w.Player.CurrentLocation)
	}

	exit, ok := current.FindExit(direction)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrNoSuchExit, direction)
	}

	target, ok := w.LocationByID(exit.Target)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q leads to %q", ErrDanglingExit, exit.Direction, exit.Target)
	}

	w.Player.CurrentLocation = target.ID
	first := !target.Visited
	target.Visited = true
	return target, first, nil
}

// MarkVisited flips a location's visited flag and reports whether it
// changed. Visited never flips back.
func (w *World) MarkVisited(id string) (bool, error) {
	loc, ok := w.LocationByID(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrLocationNotFound, id)
	}
	first := !loc.Visited
	loc.Visited = true
	return first, nil
}

// HasItem reports whether the player holds the item.
func (w *World) HasItem(itemID string) bool {
	for _, id := range w.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

func (w *World) inventoryCapacity() int {
	if w.InventoryCapacity > 0 {
		return w.InventoryCapacity
	}
	return DefaultInventoryCapacity
}

// AddItem appends an item id to the inventory. Duplicates and overflow
// fail without mutating state.
func (w *World) AddItem(itemID string) error {
	if len(w.Player.Inventory) >= w.inventoryCapacity() {
		return fmt.Errorf("%w: capacity %d", ErrInventoryFull, w.inventoryCapacity())
	}
	if w.HasItem(itemID) {
		return fmt.Errorf("%w: %q", ErrDuplicateItem, itemID)
	}
	w.Player.Inventory = append(w.Player.Inventory, itemID)
	return nil
}

// RemoveItem removes an item id from the inventory, preserving the
// order of the remaining items.
func (w *World) RemoveItem(itemID string) error {
	for i, id := range w.Player.Inventory {
		if id == itemID {
			w.Player.Inventory = append(w.Player.Inventory[:i], w.Player.Inventory[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotHeld, itemID)
}

// GetFlag reads a flag: player scope first, then game scope, defaulting
// to false. It never creates an entry.
func (w *World) GetFlag(name string) bool {
	if v, ok := w.Player.Flags[name]; ok {
		return v
	}
	if v, ok := w.GameFlags[name]; ok {
		return v
	}
	return false
}

// SetFlag writes a flag, preserving the scope of an existing entry.
// Player scope is checked first, mirroring GetFlag, so a flag's scope
// is fixed at first write and never migrates. Unknown flags are
// created in player scope.
func (w *World) SetFlag(name string, value bool) {
	if _, ok := w.Player.Flags[name]; ok {
		w.Player.Flags[name] = value
		return
	}
	if _, ok := w.GameFlags[name]; ok {
		w.GameFlags[name] = value
		return
	}
	if w.Player.Flags == nil {
		w.Player.Flags = make(map[string]bool)
	}
	w.Player.Flags[name] = value
}

// CheckLocationRequirements reports whether every required flag on the
// location matches its current value. Locations without requirements
// are always accessible. Advisory: MovePlayer does not call this.
func (w *World) CheckLocationRequirements(loc *Location) bool {
	if loc == nil {
		return true
	}
	for name, want := range loc.FlagsRequired {
		if w.GetFlag(name) != want {
			return false
		}
	}
	return true
}

// ApplyEntryFlags applies a location's flags_set grants. Like gating,
// this is an explicit call made by the session layer on arrival.
func (w *World) ApplyEntryFlags(loc *Location) {
	if loc == nil {
		return
	}
	for name, value := range loc.FlagsSet {
		w.SetFlag(name, value)
	}
}

// UseItem uses a held, useable item: its use gates must pass, its
// use grants are applied, and its use text is returned.
func (w *World) UseItem(itemID string) (string, error) {
	def, ok := w.Items[itemID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrItemNotFound, itemID)
	}
	if !w.HasItem(itemID) {
		return "", fmt.Errorf("%w: %q", ErrItemNotHeld, itemID)
	}
	if !def.Useable {
		return "", fmt.Errorf("%w: %q", ErrItemNotUseable, itemID)
	}
	for name, want := range def.UseFlagsRequired {
		if w.GetFlag(name) != want {
			return "", fmt.Errorf("%w: %q", ErrUseRequirementsNotMet, itemID)
		}
	}
	for name, value := range def.UseFlagsSet {
		w.SetFlag(name, value)
	}
	return def.UseText, nil
}

// DescribeLocation renders the current location for display.
func (w *World) DescribeLocation() string {
	loc, ok := w.CurrentLocation()
	if !ok {
		return "You are in an unknown location."
	}
	var b strings.Builder
	if loc.Title != "" {
		b.WriteString(loc.Title)
		b.WriteString("\n")
	}
	b.WriteString(loc.Description)
	if len(loc.Exits) > 0 {
		b.WriteString("\nExits: ")
		b.WriteString(strings.Join(loc.Directions(), ", "))
	}
	return b.String()
}

// DescribeInventory renders the player inventory for display, using
// catalog names when the item has a definition.
func (w *World) DescribeInventory() string {
	if len(w.Player.Inventory) == 0 {
		return "Your inventory is empty."
	}
	names := make([]string, 0, len(w.Player.Inventory))
	for _, id := range w.Player.Inventory {
		if def, ok := w.Items[id]; ok {
			names = append(names, def.DisplayName())
			continue
		}
		names = append(names, id)
	}
	return "You have:\n- " + strings.Join(names, "\n- ")
}
