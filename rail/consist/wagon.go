package consist

import (
	"errors"
	"fmt"
)

// ErrInvalidTopology reports a structural conflict in the doubly-linked
// wagon sequence, such as attaching a tail to a wagon that already has one.
// It indicates misuse of the link primitives; the Train-level operations
// never trigger it.
var ErrInvalidTopology = errors.New("invalid wagon topology")

// WagonKind distinguishes the two concrete wagon variants.
type WagonKind string

const (
	Passenger WagonKind = "passenger"
	Freight   WagonKind = "freight"
)

// Wagon is a node in a doubly-linked sequence of wagons. A wagon is an
// independent entity linked to its neighbors by mutual references; trains
// anchor a sequence but never own the wagons in it.
//
// Representation invariants, restored after every exported operation:
//
//	w.next == nil || w.next.prev == w
//	w.prev == nil || w.prev.next == w
//	no wagon is reachable from itself via repeated next
type Wagon struct {
	id   int
	kind WagonKind

	// Variant payload. Seats is meaningful for passenger wagons,
	// maxWeight for freight wagons.
	seats     int
	maxWeight int

	next *Wagon
	prev *Wagon
}

// NewPassengerWagon creates a standalone passenger wagon with the given
// id and seat count.
func NewPassengerWagon(id, seats int) *Wagon {
	return &Wagon{id: id, kind: Passenger, seats: seats}
}

// NewFreightWagon creates a standalone freight wagon with the given id
// and maximum cargo weight.
func NewFreightWagon(id, maxWeight int) *Wagon {
	return &Wagon{id: id, kind: Freight, maxWeight: maxWeight}
}

// ID returns the wagon's identifier.
func (w *Wagon) ID() int {
	return w.id
}

// Kind returns the wagon's variant (passenger or freight).
func (w *Wagon) Kind() WagonKind {
	return w.kind
}

// Seats returns the seat count of a passenger wagon, 0 for freight wagons.
func (w *Wagon) Seats() int {
	return w.seats
}

// MaxWeight returns the maximum cargo weight of a freight wagon,
// 0 for passenger wagons.
func (w *Wagon) MaxWeight() int {
	return w.maxWeight
}

// Next returns the wagon attached at this wagon's tail, or nil.
func (w *Wagon) Next() *Wagon {
	return w.next
}

// Previous returns the wagon attached in front of this wagon, or nil.
func (w *Wagon) Previous() *Wagon {
	return w.prev
}

// HasNext reports whether a wagon is attached at this wagon's tail.
func (w *Wagon) HasNext() bool {
	return w.next != nil
}

// HasPrevious reports whether a wagon is attached in front of this wagon.
func (w *Wagon) HasPrevious() bool {
	return w.prev != nil
}

// LastInSequence returns the last wagon of the sequence starting at w;
// w itself when nothing is attached behind it.
func (w *Wagon) LastInSequence() *Wagon {
	last := w
	for last.HasNext() {
		last = last.next
	}
	return last
}

// SequenceLength returns the number of wagons from w to the end of its
// tail, including w itself.
func (w *Wagon) SequenceLength() int {
	length := 0
	for current := w; current != nil; current = current.next {
		length++
	}
	return length
}

// AttachTail connects tail (and its successors) behind w. It fails with
// ErrInvalidTopology when w already has a successor or tail already has a
// predecessor; no links are changed on failure.
func (w *Wagon) AttachTail(tail *Wagon) error {
	if w.HasNext() {
		return fmt.Errorf("%w: %v has already been attached to %v", ErrInvalidTopology, w, w.next)
	}
	if tail.HasPrevious() {
		return fmt.Errorf("%w: %v is already pulling %v", ErrInvalidTopology, tail.prev, tail)
	}

	w.next = tail
	tail.prev = w
	return nil
}

// DetachTail disconnects the immediate successor of w on both ends and
// returns it as a valid standalone head, or nil when w has no successor.
// Only the single link between w and its successor is cut; the successor
// keeps its own tail.
func (w *Wagon) DetachTail() *Wagon {
	tail := w.next
	if tail == nil {
		return nil
	}
	w.next = nil
	tail.prev = nil
	return tail
}

// DetachFront disconnects w from its immediate predecessor on both ends
// and returns that predecessor, or nil when w has none. Afterwards w is a
// valid head of its remaining tail.
func (w *Wagon) DetachFront() *Wagon {
	front := w.prev
	if front == nil {
		return nil
	}
	front.next = nil
	w.prev = nil
	return front
}

// ReAttachTo moves w and everything attached behind it to become the new
// tail of front. Front's current tail and w's current predecessor are
// detached first, so the attachment itself cannot conflict.
func (w *Wagon) ReAttachTo(front *Wagon) error {
	front.DetachTail()
	w.DetachFront()
	return front.AttachTail(w)
}

// RemoveFromSequence excises exactly this wagon from wherever it sits.
// Its predecessor, if any, is reconnected directly to its successor, if
// any; w ends up with no links on either side.
func (w *Wagon) RemoveFromSequence() {
	front := w.prev
	tail := w.next
	w.prev = nil
	w.next = nil

	if front != nil {
		front.next = tail
	}
	if tail != nil {
		tail.prev = front
	}
}

// ReverseSequence reverses w and all its successors in place and returns
// the new head of the reversed sub-sequence. The wagon previously in
// front of w, if any, ends up pulling the former last wagon. A sequence
// of one wagon is returned unchanged.
func (w *Wagon) ReverseSequence() *Wagon {
	front := w.DetachFront()

	head := w
	rest := w.DetachTail()
	for rest != nil {
		next := rest.DetachTail()
		// Cannot conflict: both ends were just detached.
		_ = rest.AttachTail(head)
		head = rest
		rest = next
	}

	if front != nil {
		_ = front.AttachTail(head)
	}
	return head
}

func (w *Wagon) String() string {
	return fmt.Sprintf("[Wagon-%d]", w.id)
}
