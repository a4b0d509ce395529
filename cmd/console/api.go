package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/game"
)

// CreateGameRequest matches the API request structure.
type CreateGameRequest struct {
	WorldFile string `json:"world_file"`
}

// CommandRequest carries one input line to the interpreter.
type CommandRequest struct {
	Input string `json:"input"`
}

// LocationView mirrors the API's display data for the current location.
type LocationView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Exits       []string `json:"exits,omitempty"`
	Items       []string `json:"items,omitempty"`
}

// CommandResponse is the interpreter outcome plus the resulting location.
type CommandResponse struct {
	Outcome  game.Outcome  `json:"outcome"`
	Location *LocationView `json:"location,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listWorlds(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/worlds")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var worldMap map[string]string
	if err := json.Unmarshal(body, &worldMap); err != nil {
		return nil, nil, err
	}

	var titles []string
	for title := range worldMap {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles, worldMap, nil
}

func createGame(client *http.Client, baseURL string, worldFile string) (*game.State, error) {
	req := CreateGameRequest{
		WorldFile: worldFile,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/games",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to create game: %s", errorResp.Error)
	}

	var created game.State
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse game response: %w", err)
	}
	return &created, nil
}

func sendCommand(client *http.Client, baseURL string, gameID uuid.UUID, input string) (*CommandResponse, error) {
	req := CommandRequest{
		Input: input,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/games/%s/command", baseURL, gameID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("command failed: %s", errorResp.Error)
	}

	var cmdResp CommandResponse
	if err := json.Unmarshal(body, &cmdResp); err != nil {
		return nil, fmt.Errorf("failed to parse command response: %w", err)
	}
	return &cmdResp, nil
}
