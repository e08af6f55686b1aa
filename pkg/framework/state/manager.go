// Package state saves and loads parameter values as YAML presets.
package state

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/justyntemme/swmx/pkg/framework/param"
)

// Format identifies preset files.
const Format = "swmx-preset"

var (
	ErrInvalidFormat = errors.New("invalid preset format")
	ErrNewerVersion  = errors.New("preset version is newer than supported")
)

// Preset is the on-disk form of a saved state.
type Preset struct {
	Format         string         `yaml:"format"`
	Version        uint32         `yaml:"version"`
	Plugin         string         `yaml:"plugin,omitempty"`
	Specifications map[string]int `yaml:"specifications,omitempty"`
	Values         map[string]int `yaml:"values"`
}

// Manager handles plugin state saving and loading
type Manager struct {
	version  uint32
	plugin   string
	specs    map[string]int
	registry *param.Registry
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  1,
		registry: registry,
	}
}

// Describe records the plugin ID and construction specifications written
// with every preset.
func (m *Manager) Describe(plugin string, specs map[string]int) {
	m.plugin = plugin
	m.specs = specs
}

// Snapshot captures the current parameter values.
func (m *Manager) Snapshot() *Preset {
	return &Preset{
		Format:         Format,
		Version:        m.version,
		Plugin:         m.plugin,
		Specifications: m.specs,
		Values:         m.registry.Values(),
	}
}

// Save writes the current state to w.
func (m *Manager) Save(w io.Writer) error {
	data, err := yaml.Marshal(m.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}

// SaveFile writes the current state to path, creating parent directories.
func (m *Manager) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a preset from r and applies its values. Keys the registry does
// not know are ignored so older builds can read newer presets.
func (m *Manager) Load(r io.Reader) (*Preset, error) {
	p, err := Read(r)
	if err != nil {
		return nil, err
	}
	if p.Version > m.version {
		return nil, fmt.Errorf("%w: %d > %d", ErrNewerVersion, p.Version, m.version)
	}
	for key, v := range p.Values {
		if prm := m.registry.Lookup(key); prm != nil {
			prm.SetValue(v)
		}
	}
	return p, nil
}

// LoadFile loads the preset at path.
func (m *Manager) LoadFile(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()
	return m.Load(f)
}

// Read decodes and checks a preset without applying it.
func Read(r io.Reader) (*Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset: %w", err)
	}
	if p.Format != Format {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, p.Format)
	}
	return &p, nil
}
