// Package session persists the last rendered dashboard state between runs,
// so the widgets show last-known values before the first poll lands.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the display state worth carrying across a restart. It is a
// warm-start cache, not a source of truth; the first poll cycle replaces
// all of it.
type Snapshot struct {
	Username   string      `msgpack:"username"`
	Balance    string      `msgpack:"balance"`
	TimeString string      `msgpack:"time_string"`
	Headlines  []string    `msgpack:"headlines"`
	Quotes     []QuoteCell `msgpack:"quotes"`
	SavedAt    time.Time   `msgpack:"saved_at"`
}

// QuoteCell is one stock widget's rendered state.
type QuoteCell struct {
	Symbol     string `msgpack:"symbol"`
	Name       string `msgpack:"name"`
	Price      string `msgpack:"price"`
	ChangeText string `msgpack:"change_text"`
	ChangeDir  int    `msgpack:"change_dir"`
}

// Save writes the snapshot, creating parent directories as needed.
func Save(path string, snap Snapshot) error {
	if path == "" {
		return nil
	}
	snap.SavedAt = time.Now()
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot for the given identity. A missing file or a
// snapshot saved under a different identity yields a zero snapshot and no
// error; a corrupt file is an error the caller may ignore.
func Load(path, username string) (Snapshot, error) {
	if path == "" {
		return Snapshot{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to read session snapshot: %w", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	if snap.Username != username {
		return Snapshot{}, nil
	}
	return snap, nil
}
