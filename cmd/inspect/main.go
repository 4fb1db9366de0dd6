// Command inspect prints quick, human-readable heuristics about yard
// fixture files. It summarizes per-train composition, capacity slack,
// seat and weight totals, and highlights pooled wagons that no train in
// the yard could currently accept.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// InspectFixture is a light struct for reading fixture files used by
// inspection.
type InspectFixture struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Trains      []InspectTrain `json:"trains"`
	Wagons      []InspectWagon `json:"wagons"`
}

// InspectTrain is one train entry in a fixture.
type InspectTrain struct {
	Name      string `json:"name"`
	EngineID  int    `json:"engine_id"`
	MaxWagons int    `json:"max_wagons"`
	WagonIDs  []int  `json:"wagon_ids"`
}

// InspectWagon is one wagon entry in a fixture.
type InspectWagon struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	Seats     int    `json:"seats"`
	MaxWeight int    `json:"max_weight"`
}

func main() {
	dir := flag.String("fixtures", "fixtures", "directory containing yard fixture files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No fixture files found in %s\n", *dir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Inspecting %s ===\n", filepath.Base(file))
		inspectFixture(file)
	}
}

func inspectFixture(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var fixture InspectFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", fixture.Name)
	fmt.Printf("Trains: %d\n", len(fixture.Trains))
	fmt.Printf("Wagons: %d\n", len(fixture.Wagons))

	wagons := map[int]InspectWagon{}
	for _, w := range fixture.Wagons {
		wagons[w.ID] = w
	}

	assigned := map[int]bool{}
	for _, t := range fixture.Trains {
		kind, seats, weight := summarizeTrain(t, wagons)
		for _, id := range t.WagonIDs {
			assigned[id] = true
		}

		slack := t.MaxWagons - len(t.WagonIDs)
		fmt.Printf("\nTrain %q (engine %d):\n", t.Name, t.EngineID)
		fmt.Printf("  Wagons: %d/%d", len(t.WagonIDs), t.MaxWagons)
		if slack == 0 {
			fmt.Printf(" ⚠️  at full capacity")
		}
		fmt.Println()
		if kind != "" {
			fmt.Printf("  Kind: %s\n", kind)
		}
		if seats > 0 {
			fmt.Printf("  Total seats: %d\n", seats)
		}
		if weight > 0 {
			fmt.Printf("  Total max weight: %d\n", weight)
		}
	}

	// Pooled wagons and whether any train could take them
	pooled := 0
	stranded := 0
	for _, w := range fixture.Wagons {
		if assigned[w.ID] {
			continue
		}
		pooled++
		if !fitsAnyTrain(w, fixture.Trains, wagons) {
			stranded++
			fmt.Printf("\n⚠️  Pool wagon %d (%s) fits no train in this yard\n", w.ID, w.Kind)
		}
	}

	fmt.Printf("\nPooled wagons: %d\n", pooled)
	if stranded == 0 {
		fmt.Printf("✅ Every pooled wagon has at least one train that could take it\n")
	}
}

// summarizeTrain resolves a train's wagon ids and returns the shared
// kind (empty when the train has no wagons) and its seat and weight
// totals.
func summarizeTrain(t InspectTrain, wagons map[int]InspectWagon) (kind string, seats, weight int) {
	for _, id := range t.WagonIDs {
		w, ok := wagons[id]
		if !ok {
			continue
		}
		if kind == "" {
			kind = w.Kind
		}
		seats += w.Seats
		weight += w.MaxWeight
	}
	return kind, seats, weight
}

// fitsAnyTrain reports whether at least one train has headroom for the
// wagon and a matching kind. A train without wagons accepts any kind.
func fitsAnyTrain(w InspectWagon, trains []InspectTrain, wagons map[int]InspectWagon) bool {
	for _, t := range trains {
		if len(t.WagonIDs) >= t.MaxWagons {
			continue
		}
		kind, _, _ := summarizeTrain(t, wagons)
		if kind == "" || kind == w.Kind {
			return true
		}
	}
	return false
}
