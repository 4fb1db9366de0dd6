package depot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mbeek/railyard/rail/consist"
	"github.com/mbeek/railyard/rail/fleet"
)

var (
	ErrYardNotFound = errors.New("yard fixture not found")
	ErrInvalidYard  = errors.New("invalid yard fixture")
)

// Manager handles yard fixture loading and caching.
type Manager struct {
	fixtureDir  string
	defaultYard *consist.YardConfig
	yards       map[string]*consist.YardConfig
	mu          sync.RWMutex
}

// NewManager creates a new fixture manager over the given directory.
func NewManager(fixtureDir string) (*Manager, error) {
	if _, err := os.Stat(fixtureDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("fixture directory does not exist: %s", fixtureDir)
	}

	m := &Manager{
		fixtureDir: fixtureDir,
		yards:      make(map[string]*consist.YardConfig),
	}

	if err := m.loadDefaultYard(); err != nil {
		return nil, fmt.Errorf("failed to load default yard: %w", err)
	}
	return m, nil
}

// LoadYard loads a yard fixture by name, using the cache when possible.
func (m *Manager) LoadYard(name string) (*consist.YardConfig, error) {
	m.mu.RLock()
	if cfg, exists := m.yards[name]; exists {
		m.mu.RUnlock()
		return cfg, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if cfg, exists := m.yards[name]; exists {
		return cfg, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.fixtureDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrYardNotFound
		}
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var cfg consist.YardConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := consist.ValidateYardConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYard, err)
	}

	m.yards[name] = &cfg
	return &cfg, nil
}

// ListYards returns information about all available yard fixtures.
func (m *Manager) ListYards() ([]*fleet.FixtureInfo, error) {
	entries, err := os.ReadDir(m.fixtureDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}

	var fixtures []*fleet.FixtureInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")

		cfg, err := m.LoadYard(name)
		if err != nil {
			// Skip invalid fixtures.
			continue
		}

		fixtures = append(fixtures, &fleet.FixtureInfo{
			Filename:    entry.Name(),
			FixtureID:   name,
			Name:        cfg.Name,
			Description: cfg.Description,
			Trains:      len(cfg.Trains),
			Wagons:      len(cfg.Wagons),
		})
	}
	return fixtures, nil
}

// GetDefault returns the default yard fixture.
func (m *Manager) GetDefault() *consist.YardConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultYard
}

// SetDefault sets the default yard fixture by name.
func (m *Manager) SetDefault(name string) error {
	cfg, err := m.LoadYard(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultYard = cfg
	return nil
}

// RefreshCache drops all cached fixtures and reloads the default.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.yards = make(map[string]*consist.YardConfig)
	m.mu.Unlock()

	return m.loadDefaultYard()
}

// SaveYard validates and writes a yard fixture to disk.
func (m *Manager) SaveYard(name string, cfg *consist.YardConfig) error {
	if err := consist.ValidateYardConfig(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYard, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fixture: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.fixtureDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write fixture file: %w", err)
	}

	m.mu.Lock()
	m.yards[name] = cfg
	m.mu.Unlock()
	return nil
}

// loadDefaultYard prefers the "classic" fixture, then the first valid
// fixture in the directory, then the compiled-in minimal yard.
func (m *Manager) loadDefaultYard() error {
	cfg, err := m.LoadYard("classic")
	if err != nil {
		fixtures, listErr := m.ListYards()
		if listErr != nil || len(fixtures) == 0 {
			m.setDefault(minimalYard())
			return nil
		}
		cfg, err = m.LoadYard(fixtures[0].FixtureID)
		if err != nil {
			m.setDefault(minimalYard())
			return nil
		}
	}
	m.setDefault(cfg)
	return nil
}

func (m *Manager) setDefault(cfg *consist.YardConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultYard = cfg
}

// minimalYard is the compiled-in fallback fixture: one passenger train,
// one freight train and a few pooled wagons.
func minimalYard() *consist.YardConfig {
	return &consist.YardConfig{
		Name:        "Minimal Yard",
		Description: "Compiled-in default yard",
		Trains: []consist.TrainSpec{
			{Name: "local", EngineID: 1, MaxWagons: 4, Origin: "Amsterdam", Destination: "Haarlem", WagonIDs: []int{1, 2}},
			{Name: "goods", EngineID: 2, MaxWagons: 4, Origin: "Rotterdam", Destination: "Utrecht", WagonIDs: []int{10}},
		},
		Wagons: []consist.WagonSpec{
			{ID: 1, Kind: "passenger", Seats: 48},
			{ID: 2, Kind: "passenger", Seats: 48},
			{ID: 10, Kind: "freight", MaxWeight: 2500},
			{ID: 11, Kind: "freight", MaxWeight: 3000},
			{ID: 12, Kind: "passenger", Seats: 32},
		},
	}
}
