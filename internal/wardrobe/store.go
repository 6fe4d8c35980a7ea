package wardrobe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the store's file inside its directory.
const FileName = "wardrobe.yaml"

// Store persists State as YAML.
type Store struct {
	path string
}

// NewStore creates a store writing dir/wardrobe.yaml.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// PatternPath is where an uploaded pattern texture is kept.
func (s *Store) PatternPath(id string) string {
	return filepath.Join(filepath.Dir(s.path), "patterns", id+".png")
}

// Exists reports whether a saved wardrobe is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes state to disk. The brush selection is not persisted.
func (s *Store) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding wardrobe: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

// Load reads state from disk, merged over NewState. A missing file yields
// the initial state.
func (s *Store) Load() (*State, error) {
	state := NewState()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	if state.Parts == nil {
		state.Parts = make(map[string]PartState)
	}
	return state, nil
}
