package consist

import (
	"fmt"
)

// Limits for yard fixture validation.
const (
	MaxYardTrains     = 20
	MaxYardWagons     = 200
	MaxEngineCapacity = 100
)

// WagonSpec describes one wagon in a yard fixture.
type WagonSpec struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	Seats     int    `json:"seats,omitempty"`
	MaxWeight int    `json:"max_weight,omitempty"`
}

// TrainSpec describes one train in a yard fixture, including the wagons
// initially attached to it in order.
type TrainSpec struct {
	Name        string `json:"name"`
	EngineID    int    `json:"engine_id"`
	MaxWagons   int    `json:"max_wagons"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	WagonIDs    []int  `json:"wagon_ids,omitempty"`
}

// YardConfig is the JSON schema of a yard fixture: a set of wagons and
// the trains they may initially be attached to. Wagons not referenced by
// any train start in the yard's unassigned pool.
type YardConfig struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Trains      []TrainSpec `json:"trains"`
	Wagons      []WagonSpec `json:"wagons"`
}

// ValidateYardConfig validates a yard fixture for structural correctness:
// required fields, unique ids, resolvable wagon references, and initial
// compositions that respect capacity and homogeneity.
func ValidateYardConfig(cfg *YardConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("yard validation: name is required")
	}
	if cfg.Description == "" {
		return fmt.Errorf("yard validation: description is required")
	}
	if len(cfg.Trains) == 0 {
		return fmt.Errorf("yard validation: at least one train is required")
	}
	if len(cfg.Trains) > MaxYardTrains {
		return fmt.Errorf("yard validation: at most %d trains allowed, got %d", MaxYardTrains, len(cfg.Trains))
	}
	if len(cfg.Wagons) > MaxYardWagons {
		return fmt.Errorf("yard validation: at most %d wagons allowed, got %d", MaxYardWagons, len(cfg.Wagons))
	}

	wagons := make(map[int]WagonSpec, len(cfg.Wagons))
	for i, ws := range cfg.Wagons {
		if ws.ID <= 0 {
			return fmt.Errorf("yard validation: wagon %d: id must be positive, got %d", i+1, ws.ID)
		}
		if _, exists := wagons[ws.ID]; exists {
			return fmt.Errorf("yard validation: duplicate wagon id %d", ws.ID)
		}
		switch WagonKind(ws.Kind) {
		case Passenger:
			if ws.Seats <= 0 {
				return fmt.Errorf("yard validation: wagon %d: passenger wagon needs positive seats", ws.ID)
			}
			if ws.MaxWeight != 0 {
				return fmt.Errorf("yard validation: wagon %d: passenger wagon must not set max_weight", ws.ID)
			}
		case Freight:
			if ws.MaxWeight <= 0 {
				return fmt.Errorf("yard validation: wagon %d: freight wagon needs positive max_weight", ws.ID)
			}
			if ws.Seats != 0 {
				return fmt.Errorf("yard validation: wagon %d: freight wagon must not set seats", ws.ID)
			}
		default:
			return fmt.Errorf("yard validation: wagon %d: kind must be %q or %q, got %q", ws.ID, Passenger, Freight, ws.Kind)
		}
		wagons[ws.ID] = ws
	}

	names := make(map[string]bool, len(cfg.Trains))
	engines := make(map[int]bool, len(cfg.Trains))
	assigned := make(map[int]string, len(cfg.Wagons))
	for i, ts := range cfg.Trains {
		if ts.Name == "" {
			return fmt.Errorf("yard validation: train %d: name is required", i+1)
		}
		if names[ts.Name] {
			return fmt.Errorf("yard validation: duplicate train name %q", ts.Name)
		}
		names[ts.Name] = true

		if ts.EngineID <= 0 {
			return fmt.Errorf("yard validation: train %q: engine_id must be positive, got %d", ts.Name, ts.EngineID)
		}
		if engines[ts.EngineID] {
			return fmt.Errorf("yard validation: duplicate engine id %d", ts.EngineID)
		}
		engines[ts.EngineID] = true

		if ts.MaxWagons < 0 || ts.MaxWagons > MaxEngineCapacity {
			return fmt.Errorf("yard validation: train %q: max_wagons must be between 0 and %d, got %d", ts.Name, MaxEngineCapacity, ts.MaxWagons)
		}
		if ts.Origin == "" || ts.Destination == "" {
			return fmt.Errorf("yard validation: train %q: origin and destination are required", ts.Name)
		}

		if len(ts.WagonIDs) > ts.MaxWagons {
			return fmt.Errorf("yard validation: train %q: %d wagons exceed engine capacity %d", ts.Name, len(ts.WagonIDs), ts.MaxWagons)
		}
		kind := WagonKind("")
		for _, id := range ts.WagonIDs {
			ws, ok := wagons[id]
			if !ok {
				return fmt.Errorf("yard validation: train %q: unknown wagon id %d", ts.Name, id)
			}
			if owner, taken := assigned[id]; taken {
				return fmt.Errorf("yard validation: wagon %d assigned to both %q and %q", id, owner, ts.Name)
			}
			assigned[id] = ts.Name
			if kind == "" {
				kind = WagonKind(ws.Kind)
			} else if WagonKind(ws.Kind) != kind {
				return fmt.Errorf("yard validation: train %q mixes %s and %s wagons", ts.Name, kind, ws.Kind)
			}
		}
	}

	return nil
}

// Yard is a materialized yard fixture: named trains plus a pool of
// wagons not attached to any train. The yard tracks every wagon it was
// built with so wagons can be looked up after they move between trains.
type Yard struct {
	Name string

	trains map[string]*Train
	order  []string
	pool   map[int]*Wagon
	wagons map[int]*Wagon
}

// BuildYard materializes a validated yard fixture into live trains and
// wagons.
func BuildYard(cfg *YardConfig) (*Yard, error) {
	if err := ValidateYardConfig(cfg); err != nil {
		return nil, err
	}

	y := &Yard{
		Name:   cfg.Name,
		trains: make(map[string]*Train, len(cfg.Trains)),
		pool:   make(map[int]*Wagon, len(cfg.Wagons)),
		wagons: make(map[int]*Wagon, len(cfg.Wagons)),
	}

	for _, ws := range cfg.Wagons {
		var w *Wagon
		if WagonKind(ws.Kind) == Passenger {
			w = NewPassengerWagon(ws.ID, ws.Seats)
		} else {
			w = NewFreightWagon(ws.ID, ws.MaxWeight)
		}
		y.pool[ws.ID] = w
		y.wagons[ws.ID] = w
	}

	for _, ts := range cfg.Trains {
		train := NewTrain(NewLocomotive(ts.EngineID, ts.MaxWagons), ts.Origin, ts.Destination)
		for _, id := range ts.WagonIDs {
			w := y.pool[id]
			if !train.AttachToRear(w) {
				return nil, fmt.Errorf("yard %q: train %q rejected wagon %d", cfg.Name, ts.Name, id)
			}
			delete(y.pool, id)
		}
		y.trains[ts.Name] = train
		y.order = append(y.order, ts.Name)
	}

	return y, nil
}

// Train returns the named train, or nil when the yard has no such train.
func (y *Yard) Train(name string) *Train {
	return y.trains[name]
}

// TrainNames returns the yard's train names in fixture order.
func (y *Yard) TrainNames() []string {
	names := make([]string, len(y.order))
	copy(names, y.order)
	return names
}

// Trains returns the yard's trains in fixture order.
func (y *Yard) Trains() []*Train {
	trains := make([]*Train, 0, len(y.order))
	for _, name := range y.order {
		trains = append(trains, y.trains[name])
	}
	return trains
}

// PoolWagon returns the unassigned wagon with the given id, or nil.
func (y *Yard) PoolWagon(id int) *Wagon {
	return y.pool[id]
}

// PoolIDs returns the ids of all unassigned wagons, in no particular
// order.
func (y *Yard) PoolIDs() []int {
	ids := make([]int, 0, len(y.pool))
	for id := range y.pool {
		ids = append(ids, id)
	}
	return ids
}

// TakeFromPool removes and returns the unassigned wagon with the given
// id, or nil when the pool has no such wagon.
func (y *Yard) TakeFromPool(id int) *Wagon {
	w := y.pool[id]
	if w != nil {
		delete(y.pool, id)
	}
	return w
}

// ReturnToPool puts a standalone wagon back into the unassigned pool.
// Wagons still linked into a sequence are refused.
func (y *Yard) ReturnToPool(w *Wagon) error {
	if w.HasNext() || w.HasPrevious() {
		return fmt.Errorf("%w: %v is still coupled", ErrInvalidTopology, w)
	}
	y.pool[w.ID()] = w
	return nil
}

// Wagon returns the wagon with the given id regardless of whether it is
// pooled or attached to a train, or nil for unknown ids.
func (y *Yard) Wagon(id int) *Wagon {
	return y.wagons[id]
}
