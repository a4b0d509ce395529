package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// World document operations (filesystem-backed)

// ListWorlds walks the worlds directory and maps world titles to
// filenames. Documents that fail to read or parse are skipped with a
// warning so one broken file does not hide the rest.
func (r *RedisStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	worldsDir := filepath.Join(r.dataDir, "worlds")
	worlds := make(map[string]string)

	err := filepath.WalkDir(worldsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read world document", "path", path, "error", err)
			return nil
		}

		w, err := world.Parse(data)
		if err != nil {
			r.logger.Warn("Failed to parse world document", "path", path, "error", err)
			return nil
		}

		filename := filepath.Base(path)
		title := w.Meta.Title
		if title == "" {
			title = filename
		}
		worlds[title] = filename
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk worlds directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

// GetWorld parses the named world document into a fresh World.
func (r *RedisStorage) GetWorld(ctx context.Context, filename string) (*world.World, error) {
	path := filepath.Join(r.dataDir, "worlds", filename)
	r.logger.Debug("Loading world", "filename", filename, "full_path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("world not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read world document: %w", err)
	}

	w, err := world.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse world %s: %w", filename, err)
	}
	return w, nil
}
