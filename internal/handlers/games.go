package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

// CreateGameRequest starts a session from a world document.
type CreateGameRequest struct {
	WorldFile string `json:"world_file"`
}

type GameHandler struct {
	logger  *slog.Logger
	storage storage.Storage

	// inventoryCapacity overrides the engine default when positive.
	inventoryCapacity int
}

func NewGameHandler(logger *slog.Logger, storage storage.Storage, inventoryCapacity int) *GameHandler {
	return &GameHandler{
		logger:            logger,
		storage:           storage,
		inventoryCapacity: inventoryCapacity,
	}
}

// ServeHTTP handles session lifecycle and command requests.
// Routes:
// POST   /v1/games              - Create a session from a world file
// GET    /v1/games/{id}         - Read a session by ID
// DELETE /v1/games/{id}         - Delete a session by ID
// POST   /v1/games/{id}/command - Run one input line against a session
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	parts := strings.SplitN(path, "/", 2)

	var gameID uuid.UUID
	var err error

	if parts[0] != "" {
		gameID, err = uuid.Parse(parts[0])
		if err != nil {
			h.logger.Warn("Invalid game ID", "id", parts[0], "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid game ID format")
			return
		}
	}

	if len(parts) == 2 {
		if parts[1] != "command" {
			writeError(w, h.logger, http.StatusNotFound, "Not found")
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.handleCommand(w, r, gameID)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)

	case http.MethodGet:
		if gameID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Game ID is required for GET requests")
			return
		}
		h.handleRead(w, r, gameID)

	case http.MethodDelete:
		if gameID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Game ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, gameID)

	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WorldFile == "" {
		writeError(w, h.logger, http.StatusBadRequest, "world_file is required")
		return
	}

	wld, err := h.storage.GetWorld(r.Context(), req.WorldFile)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, h.logger, http.StatusNotFound, "World not found")
			return
		}
		h.logger.Error("Failed to load world", "error", err, "world_file", req.WorldFile)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load world")
		return
	}

	if err := wld.Validate(); err != nil {
		writeError(w, h.logger, http.StatusUnprocessableEntity, "World is not playable: "+err.Error())
		return
	}
	if h.inventoryCapacity > 0 {
		wld.InventoryCapacity = h.inventoryCapacity
	}

	st := game.NewState(req.WorldFile, wld)
	if err := h.storage.SaveGameState(r.Context(), st.ID, st); err != nil {
		h.logger.Error("Failed to save new session", "error", err, "uuid", st.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save game")
		return
	}

	h.logger.Info("Session created", "uuid", st.ID, "world_file", req.WorldFile)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(st); err != nil {
		h.logger.Error("Failed to encode session", "error", err)
	}
}

func (h *GameHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
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

	if err := json.NewEncoder(w).Encode(st); err != nil {
		h.logger.Error("Failed to encode session", "error", err)
	}
}

func (h *GameHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "error", err, "uuid", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
