package consist

import (
	"fmt"
	"strings"
)

// Train is a consist: one locomotive pulling at most one sequence of
// wagons. The train anchors the head of the sequence but does not own
// the wagons; they may be detached and attached to other trains.
//
// Representation invariants:
//
//	t.firstWagon == nil || t.firstWagon.prev == nil
//	t.engine != nil
//
// All mutators are all-or-nothing: when a policy check (capacity, type
// homogeneity, membership, position) rejects the operation they return
// false and leave both the train and the argument sequence unchanged.
//
// A Train is not safe for concurrent use. Operations like MoveOneWagon
// and SplitAtPosition touch two trains at once, so callers that need
// concurrency must synchronize externally per train with a consistent
// lock order.
type Train struct {
	origin      string
	destination string
	engine      *Locomotive
	firstWagon  *Wagon

	// strictDuplicates widens the duplicate-membership check in CanAttach
	// from the incoming head's id to every id in the incoming sequence.
	strictDuplicates bool
}

// NewTrain creates a train with the given engine and route and no wagons.
func NewTrain(engine *Locomotive, origin, destination string) *Train {
	return &Train{
		engine:      engine,
		origin:      origin,
		destination: destination,
	}
}

// Origin returns the train's origin station.
func (t *Train) Origin() string {
	return t.origin
}

// Destination returns the train's destination station.
func (t *Train) Destination() string {
	return t.destination
}

// Engine returns the train's locomotive.
func (t *Train) Engine() *Locomotive {
	return t.engine
}

// FirstWagon returns the head of the train's wagon sequence, or nil.
func (t *Train) FirstWagon() *Wagon {
	return t.firstWagon
}

// SetFirstWagon replaces the train's whole wagon sequence by the given
// one. The argument must be nil or a true sequence head (no predecessor).
func (t *Train) SetFirstWagon(w *Wagon) {
	t.firstWagon = w
}

// SetStrictDuplicateCheck selects between the default head-only
// duplicate-membership check and a full scan of the incoming sequence.
func (t *Train) SetStrictDuplicateCheck(strict bool) {
	t.strictDuplicates = strict
}

// HasWagons reports whether any wagons are attached to the train.
func (t *Train) HasWagons() bool {
	return t.firstWagon != nil
}

// IsPassengerTrain reports whether the train currently pulls passenger
// wagons. False for an empty train.
func (t *Train) IsPassengerTrain() bool {
	return t.firstWagon != nil && t.firstWagon.Kind() == Passenger
}

// IsFreightTrain reports whether the train currently pulls freight
// wagons. False for an empty train.
func (t *Train) IsFreightTrain() bool {
	return t.firstWagon != nil && t.firstWagon.Kind() == Freight
}

// NumberOfWagons returns the number of wagons attached to the train.
func (t *Train) NumberOfWagons() int {
	if !t.HasWagons() {
		return 0
	}
	return t.firstWagon.SequenceLength()
}

// LastWagon returns the last wagon attached to the train, or nil.
func (t *Train) LastWagon() *Wagon {
	if !t.HasWagons() {
		return nil
	}
	return t.firstWagon.LastInSequence()
}

// TotalSeats returns the total seat count of a passenger train,
// 0 for a freight or empty train.
func (t *Train) TotalSeats() int {
	if !t.IsPassengerTrain() {
		return 0
	}
	total := 0
	for w := t.firstWagon; w != nil; w = w.Next() {
		total += w.Seats()
	}
	return total
}

// TotalMaxWeight returns the total maximum cargo weight of a freight
// train, 0 for a passenger or empty train.
func (t *Train) TotalMaxWeight() int {
	if !t.IsFreightTrain() {
		return 0
	}
	total := 0
	for w := t.firstWagon; w != nil; w = w.Next() {
		total += w.MaxWeight()
	}
	return total
}

// WagonAtPosition returns the wagon at the given 1-indexed position, or
// nil when the position is out of range for this train.
func (t *Train) WagonAtPosition(position int) *Wagon {
	if !t.HasWagons() || position < 1 || position > t.NumberOfWagons() {
		return nil
	}
	w := t.firstWagon
	for pos := 1; pos < position; pos++ {
		w = w.Next()
	}
	return w
}

// WagonByID returns the wagon with the given id by a linear scan from
// the head, or nil when no such wagon is attached.
func (t *Train) WagonByID(id int) *Wagon {
	for w := t.firstWagon; w != nil; w = w.Next() {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

// CanAttach reports whether the sequence headed by w could be attached
// to this train: the engine must have headroom for the whole sequence,
// no attached wagon may share the incoming head's id, and on a non-empty
// train the incoming variant must match the current one. Predecessors in
// front of w are ignored; they do not count towards the sequence.
func (t *Train) CanAttach(w *Wagon) bool {
	if w == nil {
		return false
	}
	return t.canAttachSequence(w, w.SequenceLength())
}

// canAttachSequence is CanAttach with an explicit sequence length, so
// MoveOneWagon can validate a single wagon that is still linked into a
// longer sequence.
func (t *Train) canAttachSequence(w *Wagon, sequenceLen int) bool {
	if sequenceLen > t.engine.MaxWagons()-t.NumberOfWagons() {
		return false
	}
	if t.hasDuplicateOf(w, sequenceLen) {
		return false
	}
	if !t.HasWagons() {
		return true
	}
	return w.Kind() == t.firstWagon.Kind()
}

// hasDuplicateOf implements the duplicate-membership guard. The default
// check inspects only the incoming head's id; the strict variant walks
// the first sequenceLen wagons of the incoming sequence.
func (t *Train) hasDuplicateOf(head *Wagon, sequenceLen int) bool {
	if !t.strictDuplicates {
		return t.WagonByID(head.ID()) != nil
	}
	w := head
	for i := 0; i < sequenceLen && w != nil; i++ {
		if t.WagonByID(w.ID()) != nil {
			return true
		}
		w = w.Next()
	}
	return false
}

// AttachToRear attaches the sequence headed by w to the rear of the
// train. The head is detached from any predecessor first; wagons in
// front of it are not taken along. Returns whether the attachment
// happened.
func (t *Train) AttachToRear(w *Wagon) bool {
	if !t.CanAttach(w) {
		return false
	}

	w.DetachFront()

	if !t.HasWagons() {
		t.firstWagon = w
		return true
	}
	// Cannot conflict: the last wagon has no tail and w has no front.
	_ = t.LastWagon().AttachTail(w)
	return true
}

// InsertAtFront inserts the sequence headed by w before the train's
// current first wagon and re-anchors the train at w. Returns whether the
// insertion happened.
func (t *Train) InsertAtFront(w *Wagon) bool {
	if !t.CanAttach(w) {
		return false
	}

	w.DetachFront()

	if t.HasWagons() {
		_ = w.LastInSequence().AttachTail(t.firstWagon)
	}
	t.firstWagon = w
	return true
}

// InsertAtPosition inserts the sequence headed by w at the given
// 1-indexed position; position NumberOfWagons()+1 appends at the end.
// The wagon currently at that position and all its successors are
// reattached behind the inserted sequence. Returns whether the insertion
// happened.
func (t *Train) InsertAtPosition(position int, w *Wagon) bool {
	if !t.CanAttach(w) {
		return false
	}
	if position < 1 || (t.HasWagons() && position > t.NumberOfWagons()+1) {
		return false
	}

	w.DetachFront()

	if !t.HasWagons() || position == 1 {
		displaced := t.firstWagon
		t.firstWagon = w
		if displaced != nil {
			_ = w.LastInSequence().AttachTail(displaced)
		}
		return true
	}

	positionWagon := t.WagonAtPosition(position)
	if positionWagon == nil {
		// Position just past the last wagon: append.
		return t.AttachToRear(w)
	}

	// position > 1, so the wagon at the position has a predecessor.
	front := positionWagon.Previous()
	positionWagon.DetachFront()
	_ = front.AttachTail(w)
	_ = positionWagon.ReAttachTo(w.LastInSequence())
	return true
}

// MoveOneWagon removes the wagon with the given id from this train and
// attaches it, alone, to the rear of toTrain. The destination's policy
// is checked against the single wagon only. Returns whether the move
// happened; no change is made when the wagon is missing or rejected.
//
// toTrain must be a different train; moving a wagon onto its own train
// is caller misuse and is not separately detected.
func (t *Train) MoveOneWagon(wagonID int, toTrain *Train) bool {
	w := t.WagonByID(wagonID)
	if w == nil {
		return false
	}
	if !toTrain.canAttachSequence(w, 1) {
		return false
	}

	if t.firstWagon == w {
		t.firstWagon = w.Next()
	}
	w.RemoveFromSequence()
	return toTrain.AttachToRear(w)
}

// SplitAtPosition cuts this train before the wagon at the given
// 1-indexed position and attaches that wagon and all its successors to
// the rear of toTrain. Returns whether the split happened; no change is
// made when the position is invalid or the destination rejects the
// sub-sequence.
//
// toTrain must be a different train; splitting onto the same train is
// caller misuse and is not separately detected.
func (t *Train) SplitAtPosition(position int, toTrain *Train) bool {
	positionWagon := t.WagonAtPosition(position)
	if positionWagon == nil {
		return false
	}
	if !toTrain.CanAttach(positionWagon) {
		return false
	}

	if t.firstWagon == positionWagon {
		t.firstWagon = nil
	}
	positionWagon.DetachFront()
	return toTrain.AttachToRear(positionWagon)
}

// Reverse reverses the order of the train's wagons in place. No change
// for an empty train.
func (t *Train) Reverse() {
	if t.HasWagons() {
		t.firstWagon = t.firstWagon.ReverseSequence()
	}
}

func (t *Train) String() string {
	var b strings.Builder
	b.WriteString(t.engine.String())
	for w := t.firstWagon; w != nil; w = w.Next() {
		b.WriteString(" ")
		b.WriteString(w.String())
	}
	fmt.Fprintf(&b, " with %d wagons from %s to %s", t.NumberOfWagons(), t.origin, t.destination)
	return b.String()
}
