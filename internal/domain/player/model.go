package player

import (
	"fmt"
	"time"
)

// Position represents NFL roster position categories used in fantasy scoring.
type Position string

const (
	PositionQuarterback Position = "QB"
	PositionRunningBack Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd    Position = "TE"
	PositionKicker      Position = "K"
	PositionDefense     Position = "DST"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// Player is an identity row resolved across imports. Uniquely identified by
// (name, position); the team field tracks the latest sighting.
type Player struct {
	ID         string
	Name       string
	Position   Position
	Team       string
	Status     string
	ExternalID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Record is a mapped player row from a source table, prior to upsert.
type Record struct {
	Name       string
	Position   Position
	Team       string
	Status     string
	ExternalID *int64
}

func (r Record) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if r.Position == "" {
		return fmt.Errorf("player position is required")
	}
	return nil
}

// CompositeKey is the "name_position" lookup key used for projection linking.
func CompositeKey(name string, position Position) string {
	return name + "_" + string(position)
}
