package fleet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mbeek/railyard/rail/consist"
)

// ErrTrainNotFound reports that a yard has no train with the requested
// name. Missing wagons and invalid positions are ordinary policy
// rejections and surface through ShuntResult instead.
var ErrTrainNotFound = errors.New("train not found")

// yardServiceImpl implements the Service interface.
type yardServiceImpl struct {
	sessions SessionManager
	fixtures FixtureManager
	mu       sync.RWMutex
}

// NewService creates a new yard-operations service instance.
func NewService(sessions SessionManager, fixtures FixtureManager) Service {
	return &yardServiceImpl{
		sessions: sessions,
		fixtures: fixtures,
	}
}

// CreateYard materializes the named fixture into a new yard session.
// An empty fixture name selects the default yard.
func (s *yardServiceImpl) CreateYard(ctx context.Context, fixtureName string) (*YardInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg *consist.YardConfig
	if fixtureName != "" {
		loaded, err := s.fixtures.LoadYard(fixtureName)
		if err != nil {
			// Provide a helpful error message with available options.
			if available, listErr := s.fixtures.ListYards(); listErr == nil && len(available) > 0 {
				var ids []string
				for _, fi := range available {
					ids = append(ids, fi.FixtureID)
				}
				return nil, fmt.Errorf("fixture %q not found, available fixtures: %v", fixtureName, ids)
			}
			return nil, fmt.Errorf("failed to load fixture %s: %w", fixtureName, err)
		}
		cfg = loaded
	} else {
		cfg = s.fixtures.GetDefault()
	}

	session, err := s.sessions.Create("", cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create yard session: %w", err)
	}
	return s.yardInfo(session), nil
}

// GetYard returns the current state of a yard session.
func (s *yardServiceImpl) GetYard(ctx context.Context, yardID string) (*YardInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(yardID)
	if err != nil {
		return nil, err
	}
	return s.yardInfo(session), nil
}

// ListYards returns the state of every active yard session.
func (s *yardServiceImpl) ListYards(ctx context.Context) ([]*YardInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	infos := make([]*YardInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, s.yardInfo(session))
	}
	return infos, nil
}

// DeleteYard removes a yard session.
func (s *yardServiceImpl) DeleteYard(ctx context.Context, yardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(yardID)
}

// Attach couples the pooled wagon to the named train. Position 0 attaches
// at the rear; positions 1 through NumberOfWagons+1 insert at that spot.
func (s *yardServiceImpl) Attach(ctx context.Context, yardID, trainName string, wagonID, position int) (*ShuntResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, train, err := s.resolveTrain(yardID, trainName)
	if err != nil {
		return nil, err
	}

	before := train.NumberOfWagons()
	wagon := session.Yard.TakeFromPool(wagonID)
	if wagon == nil {
		return s.rejected(trainName, before, train, fmt.Sprintf("wagon %d is not in the yard pool", wagonID)), nil
	}

	var applied bool
	if position == 0 {
		applied = train.AttachToRear(wagon)
	} else {
		applied = train.InsertAtPosition(position, wagon)
	}
	if !applied {
		// The wagon was only reserved, never coupled; put it back.
		if err := session.Yard.ReturnToPool(wagon); err != nil {
			return nil, err
		}
		return s.rejected(trainName, before, train, attachRejection(train, wagon, wagon.SequenceLength(), position)), nil
	}

	return &ShuntResult{
		Applied:      true,
		Train:        trainName,
		WagonsBefore: before,
		WagonsAfter:  train.NumberOfWagons(),
		Rendered:     train.String(),
	}, nil
}

// MoveWagon moves one wagon from one train to the rear of another.
func (s *yardServiceImpl) MoveWagon(ctx context.Context, yardID, fromTrain, toTrain string, wagonID int) (*ShuntResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, from, err := s.resolveTrain(yardID, fromTrain)
	if err != nil {
		return nil, err
	}
	to := session.Yard.Train(toTrain)
	if to == nil {
		return nil, fmt.Errorf("%w: %q in yard %s", ErrTrainNotFound, toTrain, yardID)
	}
	if to == from {
		return nil, fmt.Errorf("cannot move wagon %d: source and destination are both %q", wagonID, fromTrain)
	}

	before := from.NumberOfWagons()
	wagon := from.WagonByID(wagonID)
	if wagon == nil {
		return s.rejectedPair(fromTrain, toTrain, before, from, fmt.Sprintf("wagon %d is not on train %q", wagonID, fromTrain)), nil
	}

	if !from.MoveOneWagon(wagonID, to) {
		return s.rejectedPair(fromTrain, toTrain, before, from, attachRejection(to, wagon, 1, 0)), nil
	}

	return &ShuntResult{
		Applied:      true,
		Train:        fromTrain,
		OtherTrain:   toTrain,
		WagonsBefore: before,
		WagonsAfter:  from.NumberOfWagons(),
		Rendered:     from.String(),
	}, nil
}

// Split cuts the source train before the given 1-indexed position and
// attaches the tail sub-sequence to the rear of the destination train.
func (s *yardServiceImpl) Split(ctx context.Context, yardID, fromTrain, toTrain string, position int) (*ShuntResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, from, err := s.resolveTrain(yardID, fromTrain)
	if err != nil {
		return nil, err
	}
	to := session.Yard.Train(toTrain)
	if to == nil {
		return nil, fmt.Errorf("%w: %q in yard %s", ErrTrainNotFound, toTrain, yardID)
	}
	if to == from {
		return nil, fmt.Errorf("cannot split: source and destination are both %q", fromTrain)
	}

	before := from.NumberOfWagons()
	positionWagon := from.WagonAtPosition(position)
	if positionWagon == nil {
		return s.rejectedPair(fromTrain, toTrain, before, from, fmt.Sprintf("position %d is out of range for train %q", position, fromTrain)), nil
	}

	if !from.SplitAtPosition(position, to) {
		return s.rejectedPair(fromTrain, toTrain, before, from, attachRejection(to, positionWagon, positionWagon.SequenceLength(), 0)), nil
	}

	return &ShuntResult{
		Applied:      true,
		Train:        fromTrain,
		OtherTrain:   toTrain,
		WagonsBefore: before,
		WagonsAfter:  from.NumberOfWagons(),
		Rendered:     from.String(),
	}, nil
}

// ReverseTrain reverses the wagon order of the named train. Reversing an
// empty train applies trivially.
func (s *yardServiceImpl) ReverseTrain(ctx context.Context, yardID, trainName string) (*ShuntResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, train, err := s.resolveTrain(yardID, trainName)
	if err != nil {
		return nil, err
	}

	before := train.NumberOfWagons()
	train.Reverse()

	return &ShuntResult{
		Applied:      true,
		Train:        trainName,
		WagonsBefore: before,
		WagonsAfter:  train.NumberOfWagons(),
		Rendered:     train.String(),
	}, nil
}

// DescribeTrain returns the composition of the named train.
func (s *yardServiceImpl) DescribeTrain(ctx context.Context, yardID, trainName string) (*TrainInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, train, err := s.resolveTrain(yardID, trainName)
	if err != nil {
		return nil, err
	}
	return trainInfo(trainName, train), nil
}

// ListTrains returns the composition of every train in the yard, in
// fixture order.
func (s *yardServiceImpl) ListTrains(ctx context.Context, yardID string) ([]*TrainInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(yardID)
	if err != nil {
		return nil, err
	}

	names := session.Yard.TrainNames()
	infos := make([]*TrainInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, trainInfo(name, session.Yard.Train(name)))
	}
	return infos, nil
}

// ListFixtures returns information about all available yard fixtures.
func (s *yardServiceImpl) ListFixtures(ctx context.Context) ([]*FixtureInfo, error) {
	return s.fixtures.ListYards()
}

// resolveTrain looks up a yard session and one of its trains, updating
// the session's last-access time.
func (s *yardServiceImpl) resolveTrain(yardID, trainName string) (*YardSession, *consist.Train, error) {
	session, err := s.sessions.Get(yardID)
	if err != nil {
		return nil, nil, err
	}
	train := session.Yard.Train(trainName)
	if train == nil {
		return nil, nil, fmt.Errorf("%w: %q in yard %s", ErrTrainNotFound, trainName, yardID)
	}
	if err := s.sessions.UpdateLastAccessed(session.ID); err != nil {
		return nil, nil, err
	}
	return session, train, nil
}

func (s *yardServiceImpl) rejected(trainName string, before int, train *consist.Train, reason string) *ShuntResult {
	return &ShuntResult{
		Applied:      false,
		Reason:       reason,
		Train:        trainName,
		WagonsBefore: before,
		WagonsAfter:  train.NumberOfWagons(),
		Rendered:     train.String(),
	}
}

func (s *yardServiceImpl) rejectedPair(trainName, otherTrain string, before int, train *consist.Train, reason string) *ShuntResult {
	result := s.rejected(trainName, before, train, reason)
	result.OtherTrain = otherTrain
	return result
}

// attachRejection explains why a train refused a sequence of the given
// length headed by w. The probes mirror the policy gate's checks in
// order.
func attachRejection(t *consist.Train, w *consist.Wagon, sequenceLen, position int) string {
	headroom := t.Engine().MaxWagons() - t.NumberOfWagons()
	if sequenceLen > headroom {
		return fmt.Sprintf("engine %v can pull %d more wagons, sequence has %d", t.Engine(), headroom, sequenceLen)
	}
	if t.WagonByID(w.ID()) != nil {
		return fmt.Sprintf("wagon %d is already attached to the train", w.ID())
	}
	if t.HasWagons() && w.Kind() != t.FirstWagon().Kind() {
		return fmt.Sprintf("%s wagon does not match %s train", w.Kind(), t.FirstWagon().Kind())
	}
	return fmt.Sprintf("position %d is out of range", position)
}

// yardInfo assembles the YardInfo DTO for a session.
func (s *yardServiceImpl) yardInfo(session *YardSession) *YardInfo {
	names := session.Yard.TrainNames()
	trains := make([]*TrainInfo, 0, len(names))
	for _, name := range names {
		trains = append(trains, trainInfo(name, session.Yard.Train(name)))
	}
	return &YardInfo{
		ID:             session.ID,
		FixtureName:    session.Fixture.Name,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Trains:         trains,
		PoolWagonIDs:   session.Yard.PoolIDs(),
	}
}

// trainInfo assembles the TrainInfo DTO for a train.
func trainInfo(name string, t *consist.Train) *TrainInfo {
	info := &TrainInfo{
		Name:           name,
		EngineID:       t.Engine().ID(),
		MaxWagons:      t.Engine().MaxWagons(),
		Origin:         t.Origin(),
		Destination:    t.Destination(),
		NumberOfWagons: t.NumberOfWagons(),
		TotalSeats:     t.TotalSeats(),
		TotalMaxWeight: t.TotalMaxWeight(),
		Rendered:       t.String(),
	}
	if t.HasWagons() {
		info.Kind = string(t.FirstWagon().Kind())
	}
	for w := t.FirstWagon(); w != nil; w = w.Next() {
		info.WagonIDs = append(info.WagonIDs, w.ID())
	}
	return info
}
