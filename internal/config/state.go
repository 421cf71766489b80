package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ActiveDocument is the document the last open call showed.
type ActiveDocument struct {
	Scheme   string    `json:"scheme"`
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

// State represents what yokogaki remembers between invocations
type State struct {
	Version string          `json:"version"`
	Active  *ActiveDocument `json:"active,omitempty"`
}

// LoadState loads the current state from disk
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Version: "1"}, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &state, nil
}

// SaveState writes state next to path and renames it into place so a
// crash never leaves a truncated file behind.
func SaveState(path string, state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	success = true
	return nil
}

// SetActive records path as the active document.
func (s *State) SetActive(scheme, path string, at time.Time) {
	s.Active = &ActiveDocument{Scheme: scheme, Path: path, OpenedAt: at}
}

// ClearActive forgets the active document.
func (s *State) ClearActive() {
	s.Active = nil
}
