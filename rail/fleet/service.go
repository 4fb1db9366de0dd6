package fleet

import (
	"context"
	"time"

	"github.com/mbeek/railyard/rail/consist"
)

// Service defines all yard-operation use cases.
type Service interface {
	// Session management
	CreateYard(ctx context.Context, fixtureName string) (*YardInfo, error)
	GetYard(ctx context.Context, yardID string) (*YardInfo, error)
	ListYards(ctx context.Context) ([]*YardInfo, error)
	DeleteYard(ctx context.Context, yardID string) error

	// Shunting operations
	Attach(ctx context.Context, yardID, trainName string, wagonID, position int) (*ShuntResult, error)
	MoveWagon(ctx context.Context, yardID, fromTrain, toTrain string, wagonID int) (*ShuntResult, error)
	Split(ctx context.Context, yardID, fromTrain, toTrain string, position int) (*ShuntResult, error)
	ReverseTrain(ctx context.Context, yardID, trainName string) (*ShuntResult, error)

	// Queries
	DescribeTrain(ctx context.Context, yardID, trainName string) (*TrainInfo, error)
	ListTrains(ctx context.Context, yardID string) ([]*TrainInfo, error)

	// Fixtures
	ListFixtures(ctx context.Context) ([]*FixtureInfo, error)
}

// SessionManager defines yard session storage operations.
type SessionManager interface {
	Create(id string, cfg *consist.YardConfig) (*YardSession, error)
	Get(id string) (*YardSession, error)
	GetOrCreate(id string, cfg *consist.YardConfig) (*YardSession, error)
	List() []*YardSession
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// FixtureManager handles yard fixture loading.
type FixtureManager interface {
	LoadYard(name string) (*consist.YardConfig, error)
	ListYards() ([]*FixtureInfo, error)
	GetDefault() *consist.YardConfig
	SaveYard(name string, cfg *consist.YardConfig) error
}

// YardSession is a live yard materialized from a fixture.
type YardSession struct {
	ID             string
	Yard           *consist.Yard
	Fixture        *consist.YardConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
