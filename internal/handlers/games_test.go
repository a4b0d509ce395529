package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

const gamesTestDoc = `{
	"meta": {"title": "Gatehouse"},
	"start_location": "start",
	"locations": {
		"start": {
			"title": "Gatehouse",
			"description": "A cold stone gatehouse.",
			"exits": {"north": "room2"}
		},
		"room2": {
			"title": "Courtyard",
			"first_visit_text": "Pigeons scatter as you enter."
		}
	}
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func setupGameHandler(t *testing.T) (*GameHandler, *storage.MockStorage) {
	t.Helper()
	mock := storage.NewMockStorage()
	mock.AddWorld("gatehouse.json", []byte(gamesTestDoc))
	return NewGameHandler(testLogger(), mock, 0), mock
}

func TestGameHandler_Create(t *testing.T) {
	h, mock := setupGameHandler(t)

	st := createGameFor(t, h, "gatehouse.json")
	assert.Equal(t, "gatehouse.json", st.WorldFile)
	assert.Equal(t, "start", st.Location)
	assert.Contains(t, st.Visited, "start", "start must be visited on game start")

	saved, err := mock.LoadGameState(t.Context(), st.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
}

func TestGameHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing world_file", `{}`, http.StatusBadRequest},
		{"unknown world", `{"world_file": "missing.json"}`, http.StatusNotFound},
		{"invalid body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupGameHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/v1/games", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestGameHandler_CreateUnplayableWorld(t *testing.T) {
	mock := storage.NewMockStorage()
	mock.AddWorld("empty.json", []byte(`{}`))
	h := NewGameHandler(testLogger(), mock, 0)

	body := []byte(`{"world_file": "empty.json"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/games", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGameHandler_ReadAndDelete(t *testing.T) {
	h, _ := setupGameHandler(t)
	st := createGameFor(t, h, "gatehouse.json")

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+st.ID.String(), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var loaded game.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loaded))
	assert.Equal(t, st.ID, loaded.ID)

	req = httptest.NewRequest(http.MethodDelete, "/v1/games/"+st.ID.String(), nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/games/"+st.ID.String(), nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameHandler_InvalidID(t *testing.T) {
	h, _ := setupGameHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/games/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameHandler_ReadUnknownID(t *testing.T) {
	h, _ := setupGameHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
