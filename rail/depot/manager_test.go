package depot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mbeek/railyard/rail/consist"
)

func fixtureJSON(t *testing.T, name string) *consist.YardConfig {
	t.Helper()
	return &consist.YardConfig{
		Name:        name,
		Description: "Fixture for depot tests",
		Trains: []consist.TrainSpec{
			{Name: "shuttle", EngineID: 1, MaxWagons: 3, Origin: "Utrecht", Destination: "Leiden", WagonIDs: []int{1}},
		},
		Wagons: []consist.WagonSpec{
			{ID: 1, Kind: "passenger", Seats: 40},
			{ID: 2, Kind: "freight", MaxWeight: 1000},
		},
	}
}

func writeFixture(t *testing.T, dir, filename string, cfg *consist.YardConfig) {
	t.Helper()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

func TestNewManager_MissingDir(t *testing.T) {
	if _, err := NewManager(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing fixture directory")
	}
}

func TestLoadYard(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "harbor.json", fixtureJSON(t, "Harbor Yard"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg, err := m.LoadYard("harbor")
	if err != nil {
		t.Fatalf("LoadYard failed: %v", err)
	}
	if cfg.Name != "Harbor Yard" {
		t.Errorf("Expected Harbor Yard, got %q", cfg.Name)
	}

	// Second load must come from the cache (same pointer).
	again, err := m.LoadYard("harbor")
	if err != nil {
		t.Fatalf("LoadYard failed: %v", err)
	}
	if again != cfg {
		t.Error("Expected cached fixture on second load")
	}
}

func TestLoadYard_NotFound(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.LoadYard("missing"); !errors.Is(err, ErrYardNotFound) {
		t.Errorf("Expected ErrYardNotFound, got %v", err)
	}
}

func TestLoadYard_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := fixtureJSON(t, "Bad Yard")
	bad.Trains = nil
	writeFixture(t, dir, "bad.json", bad)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.LoadYard("bad"); !errors.Is(err, ErrInvalidYard) {
		t.Errorf("Expected ErrInvalidYard, got %v", err)
	}
}

func TestLoadYard_CorruptJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "corrupt.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if _, err := m.LoadYard("corrupt"); err == nil {
		t.Error("Expected error for corrupt JSON")
	}
}

func TestListYards(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "harbor.json", fixtureJSON(t, "Harbor Yard"))
	writeFixture(t, dir, "central.json", fixtureJSON(t, "Central Yard"))
	// Invalid fixtures and non-JSON files are skipped.
	bad := fixtureJSON(t, "Bad Yard")
	bad.Description = ""
	writeFixture(t, dir, "bad.json", bad)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	fixtures, err := m.ListYards()
	if err != nil {
		t.Fatalf("ListYards failed: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("Expected 2 fixtures, got %d", len(fixtures))
	}
	for _, fi := range fixtures {
		if fi.Trains != 1 || fi.Wagons != 2 {
			t.Errorf("Fixture %s: expected 1 train and 2 wagons, got %d/%d", fi.FixtureID, fi.Trains, fi.Wagons)
		}
	}
}

func TestGetDefault_Classic(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "classic.json", fixtureJSON(t, "Classic Yard"))
	writeFixture(t, dir, "other.json", fixtureJSON(t, "Other Yard"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if got := m.GetDefault().Name; got != "Classic Yard" {
		t.Errorf("Expected classic fixture as default, got %q", got)
	}
}

func TestGetDefault_Fallback(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := m.GetDefault()
	if def == nil {
		t.Fatal("Expected a compiled-in default yard")
	}
	if err := consist.ValidateYardConfig(def); err != nil {
		t.Errorf("Compiled-in default must validate: %v", err)
	}
	if _, err := consist.BuildYard(def); err != nil {
		t.Errorf("Compiled-in default must build: %v", err)
	}
}

func TestSetDefault(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "harbor.json", fixtureJSON(t, "Harbor Yard"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.SetDefault("harbor"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if m.GetDefault().Name != "Harbor Yard" {
		t.Errorf("Expected Harbor Yard as default, got %q", m.GetDefault().Name)
	}
	if err := m.SetDefault("missing"); err == nil {
		t.Error("Expected error for unknown fixture")
	}
}

func TestSaveYard(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := m.SaveYard("saved", fixtureJSON(t, "Saved Yard")); err != nil {
		t.Fatalf("SaveYard failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected file on disk: %v", err)
	}

	cfg, err := m.LoadYard("saved")
	if err != nil {
		t.Fatalf("LoadYard failed: %v", err)
	}
	if cfg.Name != "Saved Yard" {
		t.Errorf("Expected Saved Yard, got %q", cfg.Name)
	}
}

func TestSaveYard_Invalid(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	bad := fixtureJSON(t, "")
	if err := m.SaveYard("bad", bad); !errors.Is(err, ErrInvalidYard) {
		t.Errorf("Expected ErrInvalidYard, got %v", err)
	}
}

func TestRefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "harbor.json", fixtureJSON(t, "Harbor Yard"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	first, _ := m.LoadYard("harbor")

	if err := m.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	second, err := m.LoadYard("harbor")
	if err != nil {
		t.Fatalf("LoadYard failed: %v", err)
	}
	if first == second {
		t.Error("Expected a fresh fixture after cache refresh")
	}
}
