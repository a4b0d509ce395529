package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/storage"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// WorldSummary is the read-only view of a parsed world document.
type WorldSummary struct {
	Meta          world.GameMeta `json:"meta"`
	StartLocation string         `json:"start_location"`
	LocationCount int            `json:"location_count"`
	ItemCount     int            `json:"item_count"`
	Playable      bool           `json:"playable"`
}

type WorldHandler struct {
	logger  *slog.Logger
	storage storage.Storage
}

func NewWorldHandler(logger *slog.Logger, storage storage.Storage) *WorldHandler {
	return &WorldHandler{
		logger:  logger,
		storage: storage,
	}
}

// ServeHTTP handles world document requests.
// Routes:
// GET /v1/worlds         - List available world documents
// GET /v1/worlds/{file}  - Summary of one parsed world document
func (h *WorldHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filename := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/worlds"), "/")
	if filename == "" {
		h.handleList(w, r)
		return
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid filename")
		return
	}
	h.handleGet(w, r, filename)
}

func (h *WorldHandler) handleList(w http.ResponseWriter, r *http.Request) {
	worlds, err := h.storage.ListWorlds(r.Context())
	if err != nil {
		h.logger.Error("Failed to list worlds", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list worlds")
		return
	}

	if err := json.NewEncoder(w).Encode(worlds); err != nil {
		h.logger.Error("Failed to encode world list", "error", err)
	}
}

func (h *WorldHandler) handleGet(w http.ResponseWriter, r *http.Request, filename string) {
	wld, err := h.storage.GetWorld(r.Context(), filename)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, h.logger, http.StatusNotFound, "World not found")
			return
		}
		h.logger.Error("Failed to get world", "error", err, "filename", filename)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve world")
		return
	}

	summary := WorldSummary{
		Meta:          wld.Meta,
		StartLocation: wld.StartLocation,
		LocationCount: len(wld.Locations),
		ItemCount:     len(wld.Items),
		Playable:      wld.Validate() == nil,
	}
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.logger.Error("Failed to encode world summary", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}
