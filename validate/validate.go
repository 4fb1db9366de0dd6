// Command validate provides a small CLI that validates yard fixture JSON
// files in the ../fixtures directory. It checks:
//   - JSON structure and required fields
//   - Unique train names, engine ids and wagon ids
//   - Wagon kinds and their per-kind fields (seats, max_weight)
//   - Wagon references: every assigned wagon id must exist exactly once
//   - Composition: each train's wagons share one kind and fit the engine
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixture mirrors the JSON schema for a yard fixture.
type Fixture struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Trains      []Train `json:"trains"`
	Wagons      []Wagon `json:"wagons"`
}

// Train is one train entry in a fixture.
type Train struct {
	Name        string `json:"name"`
	EngineID    int    `json:"engine_id"`
	MaxWagons   int    `json:"max_wagons"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	WagonIDs    []int  `json:"wagon_ids"`
}

// Wagon is one wagon entry in a fixture.
type Wagon struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	Seats     int    `json:"seats,omitempty"`
	MaxWeight int    `json:"max_weight,omitempty"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateFixture loads and validates a single fixture JSON file. It
// performs structural checks, id uniqueness, wagon reference resolution,
// and composition analysis for every train.
func validateFixture(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if fixture.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Fixture name is empty")
	}
	if len(fixture.Trains) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have at least 1 train")
	}

	// Validate wagons and index them by id
	wagons := map[int]Wagon{}
	passengerCount := 0
	freightCount := 0
	for i, w := range fixture.Wagons {
		if _, dup := wagons[w.ID]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate wagon id %d at index %d", w.ID, i))
			continue
		}
		wagons[w.ID] = w

		switch w.Kind {
		case "passenger":
			passengerCount++
			if w.Seats < 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Wagon %d: seats must not be negative, got %d", w.ID, w.Seats))
			}
		case "freight":
			freightCount++
			if w.MaxWeight < 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Wagon %d: max_weight must not be negative, got %d", w.ID, w.MaxWeight))
			}
		default:
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Wagon %d: invalid kind %q", w.ID, w.Kind))
		}
	}

	// Validate trains
	trainNames := map[string]bool{}
	engineIDs := map[int]bool{}
	assigned := map[int]string{}
	for _, t := range fixture.Trains {
		if t.Name == "" {
			result.Valid = false
			result.Errors = append(result.Errors, "Train with empty name")
		}
		if trainNames[t.Name] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate train name %q", t.Name))
		}
		trainNames[t.Name] = true

		if engineIDs[t.EngineID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Engine id %d used by more than one train", t.EngineID))
		}
		engineIDs[t.EngineID] = true

		if t.MaxWagons < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Train %q: max_wagons must not be negative, got %d", t.Name, t.MaxWagons))
		}

		for _, id := range t.WagonIDs {
			if _, ok := wagons[id]; !ok {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Train %q references unknown wagon %d", t.Name, id))
				continue
			}
			if other, taken := assigned[id]; taken {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Wagon %d assigned to both %q and %q", id, other, t.Name))
				continue
			}
			assigned[id] = t.Name
		}
	}

	// Composition validation - each train must be homogeneous and fit
	// its engine's capacity
	if result.Valid {
		composition := validateComposition(fixture, wagons)
		result.Errors = append(result.Errors, composition.Errors...)
		if !composition.Valid {
			result.Valid = false
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", fixture.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Trains: %d", len(fixture.Trains)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Wagons: %d (%d passenger, %d freight)", len(fixture.Wagons), passengerCount, freightCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Pooled wagons: %d", len(fixture.Wagons)-len(assigned)))
	}

	return result
}

// validateComposition checks every train's assigned wagons: the sequence
// must fit behind the engine and all wagons must share one kind. It
// returns an aggregated ValidationResult.
func validateComposition(fixture Fixture, wagons map[int]Wagon) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	for _, t := range fixture.Trains {
		if len(t.WagonIDs) > t.MaxWagons {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Train %q: %d wagons assigned but engine pulls at most %d", t.Name, len(t.WagonIDs), t.MaxWagons))
		}

		kind := ""
		for _, id := range t.WagonIDs {
			w := wagons[id]
			if kind == "" {
				kind = w.Kind
			} else if w.Kind != kind {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Train %q mixes %s and %s wagons", t.Name, kind, w.Kind))
				break
			}
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Composition: all %d trains homogeneous and within capacity", len(fixture.Trains)))
	}
	return result
}

// main scans ../fixtures (or the directory given as the first argument)
// for *.json files and validates each one, printing a concise report and
// exiting with non-zero status if any are invalid.
func main() {
	fixtureDir := "../fixtures"
	if len(os.Args) > 1 {
		fixtureDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding fixture files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateFixture(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All fixtures are valid!")
	} else {
		fmt.Println("❌ Some fixtures have errors")
		os.Exit(1)
	}
}
