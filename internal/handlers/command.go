package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// CommandRequest carries one completed input line.
type CommandRequest struct {
	Input string `json:"input"`
}

// LocationView is the read-only display data for the player's location.
type LocationView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Exits       []string `json:"exits,omitempty"`
	Items       []string `json:"items,omitempty"`
}

// CommandResponse is the outcome of one interpreted line plus the
// resulting location view for the presentation layer to render.
type CommandResponse struct {
	Outcome  game.Outcome  `json:"outcome"`
	Location *LocationView `json:"location,omitempty"`
}

// handleCommand runs one interpreter line against a session: load the
// snapshot, re-parse the world, restore, gate, dispatch, capture, save.
// Gating is the explicit pre-move check the engine itself does not do.
func (h *GameHandler) handleCommand(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	st, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "uuid", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game")
		return
	}
	if st == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game not found")
		return
	}

	wld, err := h.storage.GetWorld(r.Context(), st.WorldFile)
	if err != nil {
		h.logger.Error("Failed to load world for session", "error", err, "uuid", id, "world_file", st.WorldFile)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load world")
		return
	}
	if h.inventoryCapacity > 0 {
		wld.InventoryCapacity = h.inventoryCapacity
	}
	if err := st.Restore(wld); err != nil {
		h.logger.Error("Failed to restore session", "error", err, "uuid", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to restore game")
		return
	}

	line := strings.TrimSpace(req.Input)

	var outcome game.Outcome
	if _, blocked := game.GateMove(wld, line); blocked {
		outcome = game.Blocked(game.MoveDirection(line))
	} else {
		outcome = game.Handle(wld, line)
	}

	if outcome.Type == game.OutcomeMoved {
		if loc, ok := wld.CurrentLocation(); ok {
			wld.ApplyEntryFlags(loc)
		}
	}

	if outcome.Terminated() {
		if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
			h.logger.Error("Failed to delete terminated session", "error", err, "uuid", id)
		}
	} else {
		st.Capture(wld)
		if err := h.storage.SaveGameState(r.Context(), id, st); err != nil {
			h.logger.Error("Failed to save session", "error", err, "uuid", id)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to save game")
			return
		}
	}

	resp := CommandResponse{Outcome: outcome}
	if loc, ok := wld.CurrentLocation(); ok {
		resp.Location = NewLocationView(loc)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode command response", "error", err)
	}
}

// NewLocationView builds the display view of a location.
func NewLocationView(loc *world.Location) *LocationView {
	return &LocationView{
		ID:          loc.ID,
		Title:       loc.Title,
		Description: loc.Description,
		Image:       loc.ImagePath,
		Exits:       loc.Directions(),
		Items:       loc.Items,
	}
}
