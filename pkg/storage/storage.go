package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Storage defines a unified interface for all storage operations:
// session persistence (Redis-backed) and world document loading
// (filesystem-backed).
//
// GetWorld returns a freshly parsed World on every call. Worlds are
// mutable and single-owner, so implementations must never hand the
// same instance to two callers.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveGameState saves a session snapshot under its id.
	SaveGameState(ctx context.Context, id uuid.UUID, st *game.State) error

	// LoadGameState retrieves a session by id.
	// Returns nil if the session doesn't exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*game.State, error)

	// DeleteGameState removes a session by id.
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// ListWorlds maps world titles to filenames.
	ListWorlds(ctx context.Context) (map[string]string, error)

	// GetWorld parses the named world document into a fresh World.
	GetWorld(ctx context.Context, filename string) (*world.World, error)
}
