package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

const commandTestDoc = `{
	"meta": {"title": "Keep"},
	"start_location": "hall",
	"locations": {
		"hall": {
			"title": "Great Hall",
			"description": "Banners hang from the rafters.",
			"exits": {"north": "stairs", "east": "vault"}
		},
		"stairs": {
			"title": "Spiral Stairs",
			"first_visit_text": "Your footsteps echo upward.",
			"exits": {"south": "hall"}
		},
		"vault": {
			"title": "Vault",
			"flags_required": {"vault_open": true}
		}
	}
}`

func setupCommandHandler(t *testing.T) (*GameHandler, *storage.MockStorage) {
	t.Helper()
	mock := storage.NewMockStorage()
	mock.AddWorld("keep.json", []byte(commandTestDoc))
	return NewGameHandler(testLogger(), mock, 0), mock
}

func postCommand(t *testing.T, h *GameHandler, id, input string) (*httptest.ResponseRecorder, *CommandResponse) {
	t.Helper()
	body, err := json.Marshal(CommandRequest{Input: input})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/games/"+id+"/command", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		return rr, nil
	}
	var resp CommandResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, &resp
}

func TestCommandHandler_Move(t *testing.T) {
	h, mock := setupCommandHandler(t)
	st := createGameFor(t, h, "keep.json")

	rr, resp := postCommand(t, h, st.ID.String(), "go north")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, game.OutcomeMoved, resp.Outcome.Type)
	assert.Contains(t, resp.Outcome.Message, "You go north.")
	assert.Contains(t, resp.Outcome.Message, "Your footsteps echo upward.")
	require.NotNil(t, resp.Location)
	assert.Equal(t, "stairs", resp.Location.ID)

	saved, err := mock.LoadGameState(t.Context(), st.ID)
	require.NoError(t, err)
	require.NotNil(t, saved, "session must persist after a move")
	assert.Equal(t, "stairs", saved.Location)
	assert.Contains(t, saved.Visited, "stairs")

	// First-visit text fires only once.
	_, resp = postCommand(t, h, st.ID.String(), "go south")
	require.Equal(t, game.OutcomeMoved, resp.Outcome.Type)
	_, resp = postCommand(t, h, st.ID.String(), "go north")
	assert.NotContains(t, resp.Outcome.Message, "Your footsteps echo upward.")
}

func TestCommandHandler_GatedMove(t *testing.T) {
	h, mock := setupCommandHandler(t)
	st := createGameFor(t, h, "keep.json")

	_, resp := postCommand(t, h, st.ID.String(), "go east")
	assert.Equal(t, game.OutcomeMoveFailed, resp.Outcome.Type)
	assert.Equal(t, game.ReasonBlocked, resp.Outcome.Reason)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "hall", resp.Location.ID, "blocked move must not change location")

	saved, err := mock.LoadGameState(t.Context(), st.ID)
	require.NoError(t, err)
	assert.Equal(t, "hall", saved.Location)

	// Once the gating flag is set the same exit works.
	if saved.PlayerFlags == nil {
		saved.PlayerFlags = map[string]bool{}
	}
	saved.PlayerFlags["vault_open"] = true
	require.NoError(t, mock.SaveGameState(t.Context(), st.ID, saved))

	_, resp = postCommand(t, h, st.ID.String(), "go east")
	assert.Equal(t, game.OutcomeMoved, resp.Outcome.Type)
	assert.Equal(t, "vault", resp.Location.ID)
}

func TestCommandHandler_NoSuchExit(t *testing.T) {
	h, _ := setupCommandHandler(t)
	st := createGameFor(t, h, "keep.json")

	_, resp := postCommand(t, h, st.ID.String(), "go west")
	assert.Equal(t, game.OutcomeMoveFailed, resp.Outcome.Type)
	assert.Equal(t, game.ReasonNoSuchExit, resp.Outcome.Reason)
}

func TestCommandHandler_QuitDeletesSession(t *testing.T) {
	h, mock := setupCommandHandler(t)
	st := createGameFor(t, h, "keep.json")

	_, resp := postCommand(t, h, st.ID.String(), "quit")
	assert.Equal(t, game.OutcomeTerminated, resp.Outcome.Type)

	saved, err := mock.LoadGameState(t.Context(), st.ID)
	require.NoError(t, err)
	assert.Nil(t, saved, "terminated session must be deleted")
}

func TestCommandHandler_Errors(t *testing.T) {
	h, _ := setupCommandHandler(t)

	t.Run("unknown session", func(t *testing.T) {
		rr, _ := postCommand(t, h, "00000000-0000-0000-0000-000000000000", "look")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		st := createGameFor(t, h, "keep.json")
		req := httptest.NewRequest(http.MethodGet, "/v1/games/"+st.ID.String()+"/command", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func createGameFor(t *testing.T, h *GameHandler, worldFile string) *game.State {
	t.Helper()
	body, err := json.Marshal(CreateGameRequest{WorldFile: worldFile})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/games", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

	var st game.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	return &st
}
