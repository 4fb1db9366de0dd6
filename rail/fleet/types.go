package fleet

import (
	"time"
)

// YardInfo provides information about a yard session.
type YardInfo struct {
	ID             string       `json:"id"`
	FixtureName    string       `json:"fixture_name"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Trains         []*TrainInfo `json:"trains"`
	PoolWagonIDs   []int        `json:"pool_wagon_ids"`
}

// TrainInfo describes a train's composition at a point in time.
type TrainInfo struct {
	Name           string `json:"name"`
	EngineID       int    `json:"engine_id"`
	MaxWagons      int    `json:"max_wagons"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Kind           string `json:"kind,omitempty"` // empty for a train without wagons
	WagonIDs       []int  `json:"wagon_ids"`
	NumberOfWagons int    `json:"number_of_wagons"`
	TotalSeats     int    `json:"total_seats"`
	TotalMaxWeight int    `json:"total_max_weight"`
	Rendered       string `json:"rendered"`
}

// ShuntResult contains the outcome of a shunting operation. Applied is
// false for policy rejections (capacity, homogeneity, membership,
// position), with Reason explaining the refusal; the yard is unchanged
// in that case.
type ShuntResult struct {
	Applied      bool   `json:"applied"`
	Reason       string `json:"reason,omitempty"`
	Train        string `json:"train"`
	OtherTrain   string `json:"other_train,omitempty"`
	WagonsBefore int    `json:"wagons_before"`
	WagonsAfter  int    `json:"wagons_after"`
	Rendered     string `json:"rendered"`
}

// FixtureInfo provides information about a yard fixture.
type FixtureInfo struct {
	Filename    string `json:"filename"`
	FixtureID   string `json:"fixture_id"` // the identifier to use for yard creation
	Name        string `json:"name"`       // display name
	Description string `json:"description"`
	Trains      int    `json:"trains"`
	Wagons      int    `json:"wagons"`
}
