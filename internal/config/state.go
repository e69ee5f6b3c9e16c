package config

import (
	"encoding/json"
	"os"

	"github.com/marloe/standup/internal/storage"
)

// State is the small persisted UI state (cursor restoration across runs).
type State struct {
	LastProject string `json:"last_project"`
}

// LoadState reads state.json; a missing or corrupt file degrades to the
// zero state.
func LoadState() State {
	var st State
	data, err := os.ReadFile(StatePath())
	if err != nil {
		return State{}
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// SaveState persists the state atomically.
func SaveState(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(StatePath(), data)
}
