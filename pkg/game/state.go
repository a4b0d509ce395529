package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// State is the serializable snapshot of one running session: everything
// that diverges from the world document as the game is played. The
// static definition is not duplicated here; restoring a session means
// re-parsing the document and applying the snapshot on top.
type State struct {
	ID          uuid.UUID       `json:"id"` // Unique ID per session.
	WorldFile   string          `json:"world_file"`
	Location    string          `json:"current_location,omitempty"`
	Inventory   []string        `json:"inventory,omitempty"`
	PlayerFlags map[string]bool `json:"player_flags,omitempty"`
	GameFlags   map[string]bool `json:"game_flags,omitempty"`
	Visited     []string        `json:"visited,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewState starts a session for a freshly parsed world. The start
// location is marked visited here so its first_visit_text fires exactly
// once, on game start rather than on a later return.
func NewState(worldFile string, w *world.World) *State {
	// The start may not resolve in a broken document; that surfaces
	// later as a move failure, not here.
	_, _ = w.MarkVisited(w.Player.CurrentLocation)
	now := time.Now().UTC()
	s := &State{
		ID:        uuid.New(),
		WorldFile: worldFile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Capture(w)
	return s
}

// Capture copies the world's live state into the snapshot.
func (s *State) Capture(w *world.World) {
	s.Location = w.Player.CurrentLocation
	s.Inventory = append([]string(nil), w.Player.Inventory...)

	s.PlayerFlags = copyFlags(w.Player.Flags)
	s.GameFlags = copyFlags(w.GameFlags)

	s.Visited = s.Visited[:0]
	for id, loc := range w.Locations {
		if loc.Visited {
			s.Visited = append(s.Visited, id)
		}
	}
	sort.Strings(s.Visited)

	s.UpdatedAt = time.Now().UTC()
}

// Restore applies the snapshot onto a freshly parsed world. Visited ids
// that no longer exist in the document are dropped silently, so edited
// worlds stay loadable mid-session.
func (s *State) Restore(w *world.World) error {
	if s.WorldFile == "" {
		return fmt.Errorf("session has no world file")
	}

	if s.Location != "" {
		w.Player.CurrentLocation = s.Location
	}
	w.Player.Inventory = append([]string(nil), s.Inventory...)
	w.Player.Flags = copyFlags(s.PlayerFlags)

	for name, value := range s.GameFlags {
		if _, ok := w.GameFlags[name]; ok {
			w.GameFlags[name] = value
		}
	}

	for _, id := range s.Visited {
		if loc, ok := w.LocationByID(id); ok {
			loc.Visited = true
		}
	}
	return nil
}

func copyFlags(src map[string]bool) map[string]bool {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
