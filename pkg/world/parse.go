package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// exitList is the wire form of a location's exits: a direction → target
// object decoded token-by-token so document order survives. Duplicate
// keys in the source become duplicate exits instead of last-wins, which
// keeps the first-match traversal contract reproducible.
type exitList []Exit

func (e *exitList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("exits must be an object")
	}

	var out exitList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		dir, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("exit direction must be a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		// Non-string targets are skipped, matching the loader's
		// best-effort tolerance elsewhere.
		var target string
		if err := json.Unmarshal(raw, &target); err != nil {
			continue
		}
		out = append(out, Exit{Direction: dir, Target: target})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = out
	return nil
}

func (e exitList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ex := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ex.Direction)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ex.Target)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Wire types for the interchange document. Location and item ids are
// object keys, not fields inside the values.

type docLocation struct {
	Title          string          `json:"title,omitempty"`
	Description    string          `json:"description,omitempty"`
	Image          string          `json:"image,omitempty"`
	FirstVisitText string          `json:"first_visit_text,omitempty"`
	Visited        bool            `json:"visited,omitempty"`
	Exits          exitList        `json:"exits,omitempty"`
	Items          []string        `json:"items,omitempty"`
	FlagsRequired  map[string]bool `json:"flags_required,omitempty"`
	FlagsSet       map[string]bool `json:"flags_set,omitempty"`
}

type docItem struct {
	Name             string          `json:"name,omitempty"`
	Description      string          `json:"description,omitempty"`
	Takeable         bool            `json:"takeable,omitempty"`
	Useable          bool            `json:"useable,omitempty"`
	UseText          string          `json:"use_text,omitempty"`
	UseFlagsRequired map[string]bool `json:"use_flags_required,omitempty"`
	UseFlagsSet      map[string]bool `json:"use_flags_set,omitempty"`
}

type docPlayer struct {
	CurrentLocation string          `json:"current_location,omitempty"`
	Inventory       []string        `json:"inventory,omitempty"`
	Flags           map[string]bool `json:"flags,omitempty"`
}

type document struct {
	Meta           *GameMeta              `json:"meta,omitempty"`
	StartLocation  string                 `json:"start_location,omitempty"`
	Locations      map[string]docLocation `json:"locations,omitempty"`
	InventoryItems map[string]docItem     `json:"inventory_items,omitempty"`
	GameFlags      map[string]bool        `json:"game_flags,omitempty"`
	Player         *docPlayer             `json:"player,omitempty"`
}

// Parse converts one interchange document into a World. Absent optional
// fields default to empty; the only load-time failure is a document
// that is not structurally valid. No cross-reference validation happens
// here: exits may point at absent locations, and an empty location
// table is structurally legal. See (*World).Validate.
func Parse(data []byte) (*World, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	w := &World{
		StartLocation: doc.StartLocation,
		Locations:     make(map[string]*Location, len(doc.Locations)),
		Items:         make(map[string]*ItemDef, len(doc.InventoryItems)),
		GameFlags:     make(map[string]bool, len(doc.GameFlags)),
	}
	if doc.Meta != nil {
		w.Meta = *doc.Meta
	}

	for id, dl := range doc.Locations {
		w.Locations[id] = &Location{
			ID:             id,
			Title:          dl.Title,
			Description:    dl.Description,
			ImagePath:      dl.Image,
			FirstVisitText: dl.FirstVisitText,
			Visited:        dl.Visited,
			Exits:          []Exit(dl.Exits),
			Items:          dl.Items,
			FlagsRequired:  dl.FlagsRequired,
			FlagsSet:       dl.FlagsSet,
		}
	}

	for id, di := range doc.InventoryItems {
		w.Items[id] = &ItemDef{
			ID:               id,
			Name:             di.Name,
			Description:      di.Description,
			Takeable:         di.Takeable,
			Useable:          di.Useable,
			UseText:          di.UseText,
			UseFlagsRequired: di.UseFlagsRequired,
			UseFlagsSet:      di.UseFlagsSet,
		}
	}

	for name, value := range doc.GameFlags {
		w.GameFlags[name] = value
	}

	w.Player.CurrentLocation = doc.StartLocation
	if doc.Player != nil {
		if doc.Player.CurrentLocation != "" {
			w.Player.CurrentLocation = doc.Player.CurrentLocation
		}
		// Duplicates in the source are preserved as authored; AddItem
		// de-duplicates at add time.
		w.Player.Inventory = doc.Player.Inventory
		if len(doc.Player.Flags) > 0 {
			w.Player.Flags = make(map[string]bool, len(doc.Player.Flags))
			for name, value := range doc.Player.Flags {
				w.Player.Flags[name] = value
			}
		}
	}

	return w, nil
}

// ParseStrict is Parse with unknown document fields rejected. The
// validator uses it to catch typoed keys the tolerant loader would
// silently drop.
func ParseStrict(data []byte) (*World, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Parse(data)
}

// Load reads and parses a world document from disk.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world document: %w", err)
	}
	return Parse(data)
}

// Document re-emits the world as an interchange document, preserving
// every location id, exit mapping (in order) and flag value, so that
// parse → serialize → parse round-trips.
func (w *World) Document() ([]byte, error) {
	doc := document{
		StartLocation:  w.StartLocation,
		Locations:      make(map[string]docLocation, len(w.Locations)),
		InventoryItems: make(map[string]docItem, len(w.Items)),
	}
	if w.Meta != (GameMeta{}) {
		meta := w.Meta
		doc.Meta = &meta
	}
	if len(w.GameFlags) > 0 {
		doc.GameFlags = w.GameFlags
	}

	for id, loc := range w.Locations {
		doc.Locations[id] = docLocation{
			Title:          loc.Title,
			Description:    loc.Description,
			Image:          loc.ImagePath,
			FirstVisitText: loc.FirstVisitText,
			Visited:        loc.Visited,
			Exits:          exitList(loc.Exits),
			Items:          loc.Items,
			FlagsRequired:  loc.FlagsRequired,
			FlagsSet:       loc.FlagsSet,
		}
	}

	for id, def := range w.Items {
		doc.InventoryItems[id] = docItem{
			Name:             def.Name,
			Description:      def.Description,
			Takeable:         def.Takeable,
			Useable:          def.Useable,
			UseText:          def.UseText,
			UseFlagsRequired: def.UseFlagsRequired,
			UseFlagsSet:      def.UseFlagsSet,
		}
	}

	doc.Player = &docPlayer{
		CurrentLocation: w.Player.CurrentLocation,
		Inventory:       w.Player.Inventory,
		Flags:           w.Player.Flags,
	}

	return json.MarshalIndent(doc, "", "  ")
}
