package world

// ItemDef is a reusable item template from the world's catalog.
// Possession does not consume it; player inventories reference item ids.
type ItemDef struct {
	ID               string          `json:"id"` // Also the key in the world's item table.
	Name             string          `json:"name,omitempty"`
	Description      string          `json:"description,omitempty"`
	Takeable         bool            `json:"takeable,omitempty"`
	Useable          bool            `json:"useable,omitempty"`
	UseText          string          `json:"use_text,omitempty"`
	UseFlagsRequired map[string]bool `json:"use_flags_required,omitempty"` // Flag → value needed to use.
	UseFlagsSet      map[string]bool `json:"use_flags_set,omitempty"`      // Flag → value granted on use.
}

// DisplayName returns the item's name, falling back to its id for
// catalog entries authored without one.
func (d *ItemDef) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
