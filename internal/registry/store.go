package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the full set of commands
type Store interface {
	// Load returns the stored commands, or nil when nothing has been stored yet
	Load() ([]Command, error)

	// Save replaces the stored commands with commands
	Save(commands []Command) error
}

// FileStore keeps commands as a JSON array in a single file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the store file
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the store file. A missing file yields no commands.
func (s *FileStore) Load() ([]Command, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read command store: %w", err)
	}

	var commands []Command
	if err := json.Unmarshal(data, &commands); err != nil {
		return nil, fmt.Errorf("failed to decode command store %s: %w", s.path, err)
	}
	return commands, nil
}

// Save overwrites the store file with commands. The file is written next to
// its final location and renamed into place.
func (s *FileStore) Save(commands []Command) error {
	if commands == nil {
		commands = []Command{}
	}

	data, err := json.MarshalIndent(commands, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode commands: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".commands-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write command store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write command store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace command store: %w", err)
	}
	return nil
}
