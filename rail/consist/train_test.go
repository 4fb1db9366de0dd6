package consist

import (
	"strings"
	"testing"
)

// freightTrain builds a train with the given capacity pulling freight
// wagons with the given ids, each rated 1000kg.
func freightTrain(t *testing.T, capacity int, wagonIDs ...int) *Train {
	t.Helper()
	train := NewTrain(NewLocomotive(1, capacity), "Amsterdam", "Berlin")
	for _, id := range wagonIDs {
		if !train.AttachToRear(NewFreightWagon(id, 1000)) {
			t.Fatalf("Failed to attach wagon %d while building test train", id)
		}
	}
	return train
}

// trainIDs collects the train's wagon ids in order.
func trainIDs(train *Train) []int {
	return ids(train.FirstWagon())
}

func TestEmptyTrain(t *testing.T) {
	train := NewTrain(NewLocomotive(1, 5), "Amsterdam", "Berlin")

	if train.HasWagons() {
		t.Error("New train must have no wagons")
	}
	if train.IsPassengerTrain() || train.IsFreightTrain() {
		t.Error("Empty train is neither passenger nor freight")
	}
	if train.NumberOfWagons() != 0 {
		t.Errorf("Expected 0 wagons, got %d", train.NumberOfWagons())
	}
	if train.LastWagon() != nil {
		t.Error("Empty train has no last wagon")
	}
	if train.TotalSeats() != 0 || train.TotalMaxWeight() != 0 {
		t.Error("Empty train totals must be 0")
	}

	// Reverse is a no-op on an empty train.
	train.Reverse()
	if train.HasWagons() {
		t.Error("Reverse must not create wagons")
	}
}

func TestTrainKind(t *testing.T) {
	passenger := NewTrain(NewLocomotive(1, 5), "Amsterdam", "Berlin")
	passenger.AttachToRear(NewPassengerWagon(1, 50))
	if !passenger.IsPassengerTrain() || passenger.IsFreightTrain() {
		t.Error("Train pulling a passenger wagon must be a passenger train")
	}

	freight := freightTrain(t, 5, 10)
	if !freight.IsFreightTrain() || freight.IsPassengerTrain() {
		t.Error("Train pulling a freight wagon must be a freight train")
	}
}

func TestTotals(t *testing.T) {
	train := NewTrain(NewLocomotive(1, 5), "Amsterdam", "Berlin")
	train.AttachToRear(NewPassengerWagon(1, 50))
	train.AttachToRear(NewPassengerWagon(2, 40))

	if train.TotalSeats() != 90 {
		t.Errorf("Expected 90 seats, got %d", train.TotalSeats())
	}
	if train.TotalMaxWeight() != 0 {
		t.Errorf("Passenger train must report 0 max weight, got %d", train.TotalMaxWeight())
	}

	freight := freightTrain(t, 5, 10, 20)
	if freight.TotalMaxWeight() != 2000 {
		t.Errorf("Expected 2000kg, got %d", freight.TotalMaxWeight())
	}
	if freight.TotalSeats() != 0 {
		t.Errorf("Freight train must report 0 seats, got %d", freight.TotalSeats())
	}
}

func TestWagonAtPosition(t *testing.T) {
	train := freightTrain(t, 10, 1, 2, 3)

	for pos, want := range map[int]int{1: 1, 2: 2, 3: 3} {
		got := train.WagonAtPosition(pos)
		if got == nil || got.ID() != want {
			t.Errorf("Position %d: expected wagon %d, got %v", pos, want, got)
		}
	}
	for _, pos := range []int{0, -1, 4} {
		if train.WagonAtPosition(pos) != nil {
			t.Errorf("Position %d must be out of range", pos)
		}
	}
}

func TestWagonByID(t *testing.T) {
	train := freightTrain(t, 10, 1, 2, 3)

	if w := train.WagonByID(2); w == nil || w.ID() != 2 {
		t.Errorf("Expected wagon 2, got %v", w)
	}
	if w := train.WagonByID(3); w == nil || w.ID() != 3 {
		t.Errorf("Expected the last wagon to be findable, got %v", w)
	}
	if train.WagonByID(99) != nil {
		t.Error("Expected nil for unknown id")
	}
}

func TestCanAttach_Capacity(t *testing.T) {
	train := freightTrain(t, 3, 10, 20)

	// Exactly-equal headroom succeeds.
	if !train.CanAttach(NewFreightWagon(30, 500)) {
		t.Error("Expected attach with exact headroom to be allowed")
	}

	// A two-wagon sequence exceeds the remaining headroom of one.
	over := chain(t, 30, 40)
	if train.CanAttach(over) {
		t.Error("Expected sequence exceeding headroom to be rejected")
	}
}

func TestCanAttach_TypeMismatch(t *testing.T) {
	train := freightTrain(t, 5, 10, 20)

	if train.CanAttach(NewPassengerWagon(30, 50)) {
		t.Error("Expected passenger wagon to be rejected by freight train")
	}
}

func TestCanAttach_Duplicate(t *testing.T) {
	train := freightTrain(t, 5, 10, 20)

	if train.CanAttach(NewFreightWagon(20, 500)) {
		t.Error("Expected duplicate head id to be rejected")
	}

	// The default check only inspects the head id: a duplicate further
	// down the incoming sequence slips through.
	incoming := chain(t, 30, 20)
	if !train.CanAttach(incoming) {
		t.Error("Default check must only inspect the incoming head id")
	}

	// The strict variant scans the whole incoming sequence.
	train.SetStrictDuplicateCheck(true)
	if train.CanAttach(incoming) {
		t.Error("Strict check must reject duplicates anywhere in the sequence")
	}
}

func TestCanAttach_NilAndEmpty(t *testing.T) {
	train := NewTrain(NewLocomotive(1, 2), "Amsterdam", "Berlin")

	if train.CanAttach(nil) {
		t.Error("Expected nil wagon to be rejected")
	}
	// An empty train accepts either kind, capacity permitting.
	if !train.CanAttach(NewPassengerWagon(1, 50)) {
		t.Error("Empty train must accept a passenger wagon")
	}
	if !train.CanAttach(NewFreightWagon(2, 500)) {
		t.Error("Empty train must accept a freight wagon")
	}
	if train.CanAttach(chain(t, 1, 2, 3)) {
		t.Error("Empty train must still enforce capacity")
	}
}

func TestAttachToRear(t *testing.T) {
	train := freightTrain(t, 5, 1, 2)
	before := train.NumberOfWagons()

	if !train.AttachToRear(chain(t, 3, 4)) {
		t.Fatal("Expected attach to succeed")
	}
	if train.NumberOfWagons() != before+2 {
		t.Errorf("Expected %d wagons, got %d", before+2, train.NumberOfWagons())
	}
	if !equalIDs(trainIDs(train), []int{1, 2, 3, 4}) {
		t.Errorf("Expected [1 2 3 4], got %v", trainIDs(train))
	}
}

func TestAttachToRear_Rejected(t *testing.T) {
	train := freightTrain(t, 2, 1, 2)
	extra := NewFreightWagon(3, 500)

	if train.AttachToRear(extra) {
		t.Fatal("Expected attach beyond capacity to fail")
	}
	if train.NumberOfWagons() != 2 {
		t.Errorf("Wagon count must be unchanged on rejection, got %d", train.NumberOfWagons())
	}
	if extra.HasPrevious() || extra.HasNext() {
		t.Error("Rejected wagon must be left unchanged")
	}
}

func TestAttachToRear_DetachesPredecessor(t *testing.T) {
	donor := chain(t, 1, 2, 3)
	train := NewTrain(NewLocomotive(1, 5), "Amsterdam", "Berlin")

	// Attaching wagon 2 takes [2 3] and leaves wagon 1 behind.
	if !train.AttachToRear(donor.Next()) {
		t.Fatal("Expected attach to succeed")
	}
	if !equalIDs(trainIDs(train), []int{2, 3}) {
		t.Errorf("Expected [2 3], got %v", trainIDs(train))
	}
	if donor.HasNext() {
		t.Error("Predecessor before the head must be dropped")
	}
}

func TestScenario_FreightAttach(t *testing.T) {
	// Locomotive(1, maxWagons 3), two freight wagons 2000kg + 3000kg.
	train := NewTrain(NewLocomotive(1, 3), "Rotterdam", "Hamburg")
	train.AttachToRear(NewFreightWagon(10, 2000))
	train.AttachToRear(NewFreightWagon(20, 3000))

	third := NewFreightWagon(30, 1500)
	if !train.CanAttach(third) {
		t.Error("Expected a third freight wagon to be accepted")
	}
	if train.AttachToRear(NewPassengerWagon(40, 50)) {
		t.Error("Expected passenger wagon to be rejected by freight train")
	}
	if !train.AttachToRear(third) {
		t.Fatal("Expected attach of wagon 30 to succeed")
	}
	if train.TotalMaxWeight() != 5000+1500 {
		t.Errorf("Expected total max weight 6500, got %d", train.TotalMaxWeight())
	}
}

func TestInsertAtFront(t *testing.T) {
	train := freightTrain(t, 10, 3, 4)

	if !train.InsertAtFront(chain(t, 1, 2)) {
		t.Fatal("Expected insert at front to succeed")
	}
	if !equalIDs(trainIDs(train), []int{1, 2, 3, 4}) {
		t.Errorf("Expected [1 2 3 4], got %v", trainIDs(train))
	}
	if train.FirstWagon().HasPrevious() {
		t.Error("Train must anchor at a true head")
	}
}

func TestInsertAtFront_EmptyTrain(t *testing.T) {
	train := NewTrain(NewLocomotive(1, 5), "Amsterdam", "Berlin")

	if !train.InsertAtFront(chain(t, 1, 2)) {
		t.Fatal("Expected insert into empty train to succeed")
	}
	if !equalIDs(trainIDs(train), []int{1, 2}) {
		t.Errorf("Expected [1 2], got %v", trainIDs(train))
	}
}

func TestInsertAtPosition(t *testing.T) {
	train := freightTrain(t, 10, 1, 2, 3, 4)

	if !train.InsertAtPosition(2, NewFreightWagon(5, 500)) {
		t.Fatal("Expected insert at position 2 to succeed")
	}
	if !equalIDs(trainIDs(train), []int{1, 5, 2, 3, 4}) {
		t.Errorf("Expected [1 5 2 3 4], got %v", trainIDs(train))
	}
}

func TestInsertAtPosition_Sequence(t *testing.T) {
	train := freightTrain(t, 10, 1, 4)

	if !train.InsertAtPosition(2, chain(t, 2, 3)) {
		t.Fatal("Expected insert of a sequence to succeed")
	}
	if !equalIDs(trainIDs(train), []int{1, 2, 3, 4}) {
		t.Errorf("Expected [1 2 3 4], got %v", trainIDs(train))
	}
}

func TestInsertAtPosition_Front(t *testing.T) {
	train := freightTrain(t, 10, 2, 3)

	if !train.InsertAtPosition(1, NewFreightWagon(1, 500)) {
		t.Fatal("Expected insert at position 1 to succeed")
	}
	if !equalIDs(trainIDs(train), []int{1, 2, 3}) {
		t.Errorf("Expected [1 2 3], got %v", trainIDs(train))
	}
}

func TestInsertAtPosition_Append(t *testing.T) {
	train := freightTrain(t, 10, 1, 2)

	// Position numberOfWagons+1 appends at the end.
	if !train.InsertAtPosition(3, NewFreightWagon(3, 500)) {
		t.Fatal("Expected insert at position 3 to succeed")
	}
	if !equalIDs(trainIDs(train), []int{1, 2, 3}) {
		t.Errorf("Expected [1 2 3], got %v", trainIDs(train))
	}
}

func TestInsertAtPosition_OutOfRange(t *testing.T) {
	train := freightTrain(t, 10, 1, 2)

	for _, pos := range []int{0, -1, 4} {
		w := NewFreightWagon(9, 500)
		if train.InsertAtPosition(pos, w) {
			t.Errorf("Expected insert at position %d to fail", pos)
		}
		if !equalIDs(trainIDs(train), []int{1, 2}) {
			t.Errorf("Train changed on rejected insert: %v", trainIDs(train))
		}
	}
}

func TestMoveOneWagon(t *testing.T) {
	source := freightTrain(t, 10, 1, 2, 3, 4)
	dest := freightTrain(t, 10, 10)

	if !source.MoveOneWagon(3, dest) {
		t.Fatal("Expected move to succeed")
	}
	if !equalIDs(trainIDs(source), []int{1, 2, 4}) {
		t.Errorf("Expected source [1 2 4], got %v", trainIDs(source))
	}
	if !equalIDs(trainIDs(dest), []int{10, 3}) {
		t.Errorf("Expected destination [10 3], got %v", trainIDs(dest))
	}
	checkLinks(t, source.FirstWagon())
	checkLinks(t, dest.FirstWagon())
}

func TestMoveOneWagon_Head(t *testing.T) {
	source := freightTrain(t, 10, 1, 2, 3)
	dest := freightTrain(t, 10, 10)

	if !source.MoveOneWagon(1, dest) {
		t.Fatal("Expected move to succeed")
	}
	if !equalIDs(trainIDs(source), []int{2, 3}) {
		t.Errorf("Expected source [2 3], got %v", trainIDs(source))
	}
	if source.FirstWagon().HasPrevious() {
		t.Error("New source head must have no predecessor")
	}
}

func TestMoveOneWagon_SingleWagonCheck(t *testing.T) {
	source := freightTrain(t, 10, 1, 2, 3)
	// Destination with headroom for exactly one wagon.
	dest := freightTrain(t, 2, 10)

	// Wagon 1 heads a three-wagon sequence, but only the single wagon
	// moves, so the destination's headroom of one must suffice.
	if !source.MoveOneWagon(1, dest) {
		t.Fatal("Expected single-wagon move to succeed")
	}
	if !equalIDs(trainIDs(dest), []int{10, 1}) {
		t.Errorf("Expected destination [10 1], got %v", trainIDs(dest))
	}
}

func TestMoveOneWagon_Rejected(t *testing.T) {
	source := freightTrain(t, 10, 1, 2)
	full := freightTrain(t, 1, 10)

	if source.MoveOneWagon(1, full) {
		t.Error("Expected move to a full train to fail")
	}
	if source.MoveOneWagon(99, freightTrain(t, 10)) {
		t.Error("Expected move of unknown wagon to fail")
	}
	if !equalIDs(trainIDs(source), []int{1, 2}) {
		t.Errorf("Source changed on rejected move: %v", trainIDs(source))
	}
}

func TestSplitAtPosition(t *testing.T) {
	source := freightTrain(t, 10, 1, 2, 3, 4)
	dest := freightTrain(t, 10, 10)

	if !source.SplitAtPosition(3, dest) {
		t.Fatal("Expected split to succeed")
	}
	if !equalIDs(trainIDs(source), []int{1, 2}) {
		t.Errorf("Expected source [1 2], got %v", trainIDs(source))
	}
	if !equalIDs(trainIDs(dest), []int{10, 3, 4}) {
		t.Errorf("Expected destination [10 3 4], got %v", trainIDs(dest))
	}
}

func TestSplitAtPosition_Head(t *testing.T) {
	source := freightTrain(t, 10, 1, 2)
	dest := freightTrain(t, 10)

	if !source.SplitAtPosition(1, dest) {
		t.Fatal("Expected split at head to succeed")
	}
	if source.HasWagons() {
		t.Error("Source must be empty after splitting at the head")
	}
	if !equalIDs(trainIDs(dest), []int{1, 2}) {
		t.Errorf("Expected destination [1 2], got %v", trainIDs(dest))
	}
}

func TestSplitAtPosition_Rejected(t *testing.T) {
	source := freightTrain(t, 10, 1, 2, 3)
	small := freightTrain(t, 1)

	// A two-wagon tail exceeds the destination's capacity of one.
	if source.SplitAtPosition(2, small) {
		t.Error("Expected split exceeding destination capacity to fail")
	}
	if source.SplitAtPosition(9, freightTrain(t, 10)) {
		t.Error("Expected split at invalid position to fail")
	}
	if !equalIDs(trainIDs(source), []int{1, 2, 3}) {
		t.Errorf("Source changed on rejected split: %v", trainIDs(source))
	}
}

func TestSplitRoundTrip(t *testing.T) {
	source := freightTrain(t, 10, 1, 2, 3, 4)
	other := freightTrain(t, 10)

	// Move the tail [3 4] away and back; the original order must be
	// reproduced.
	if !source.SplitAtPosition(3, other) {
		t.Fatal("Expected split to succeed")
	}
	if !source.AttachToRear(other.FirstWagon()) {
		t.Fatal("Expected re-attachment to succeed")
	}
	other.SetFirstWagon(nil)

	if !equalIDs(trainIDs(source), []int{1, 2, 3, 4}) {
		t.Errorf("Expected round-trip to restore [1 2 3 4], got %v", trainIDs(source))
	}
	checkLinks(t, source.FirstWagon())
}

func TestReverse(t *testing.T) {
	train := freightTrain(t, 10, 1, 2, 3)

	train.Reverse()

	if !equalIDs(trainIDs(train), []int{3, 2, 1}) {
		t.Errorf("Expected [3 2 1], got %v", trainIDs(train))
	}
	if train.FirstWagon().HasPrevious() {
		t.Error("Train must anchor at a true head after reverse")
	}

	train.Reverse()
	if !equalIDs(trainIDs(train), []int{1, 2, 3}) {
		t.Errorf("Expected original order restored, got %v", trainIDs(train))
	}
}

func TestLocomotiveCapacityClamp(t *testing.T) {
	loc := NewLocomotive(1, -3)
	if loc.MaxWagons() != 0 {
		t.Errorf("Expected negative capacity clamped to 0, got %d", loc.MaxWagons())
	}

	train := NewTrain(loc, "Amsterdam", "Berlin")
	if train.CanAttach(NewFreightWagon(1, 500)) {
		t.Error("Train with zero capacity must reject every wagon")
	}
}

func TestTrainString(t *testing.T) {
	train := freightTrain(t, 5, 1, 2)

	s := train.String()
	for _, part := range []string{"[Loc-1]", "[Wagon-1]", "[Wagon-2]", "with 2 wagons from Amsterdam to Berlin"} {
		if !strings.Contains(s, part) {
			t.Errorf("Expected rendering to contain %q, got %q", part, s)
		}
	}
}
