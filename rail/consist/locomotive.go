package consist

import "fmt"

// Locomotive is the engine at the front of a train. It is immutable after
// construction and compared by identity.
type Locomotive struct {
	id        int
	maxWagons int
}

// NewLocomotive creates a locomotive with the given id and pulling capacity.
func NewLocomotive(id, maxWagons int) *Locomotive {
	return &Locomotive{id: id, maxWagons: maxWagons}
}

// ID returns the locomotive's identifier.
func (l *Locomotive) ID() int {
	return l.id
}

// MaxWagons returns the number of wagons this locomotive can pull,
// clamped to zero for locomotives constructed with a negative capacity.
func (l *Locomotive) MaxWagons() int {
	if l.maxWagons < 0 {
		return 0
	}
	return l.maxWagons
}

func (l *Locomotive) String() string {
	return fmt.Sprintf("[Loc-%d]", l.id)
}
