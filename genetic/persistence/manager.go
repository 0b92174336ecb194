package persistence

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manager handles save/load of population snapshots under a base directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a named snapshot
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks if a snapshot file exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save writes a snapshot to disk
func (m *Manager) Save(name string, dto PopulationDTO) error {
	return SaveFile(m.FilePath(name), dto)
}

// Load reads a snapshot from disk
func (m *Manager) Load(name string) (PopulationDTO, error) {
	return LoadFile(m.FilePath(name))
}

// SaveFile encodes dto as TOML at path, creating parent directories
func SaveFile(path string, dto PopulationDTO) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("persistence: create directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(dto); err != nil {
		return fmt.Errorf("persistence: encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	return nil
}

// LoadFile decodes a TOML snapshot from path
func LoadFile(path string) (PopulationDTO, error) {
	var dto PopulationDTO

	if _, err := toml.DecodeFile(path, &dto); err != nil {
		return dto, fmt.Errorf("persistence: load %s: %w", path, err)
	}
	return dto, nil
}
