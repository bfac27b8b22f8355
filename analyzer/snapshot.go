package analyzer

import (
	"fmt"
	"math"
)

// Snapshot is one discrete, timestamped observation of the entire tracked
// world state, delivered atomically per tick by the transport layer.
type Snapshot struct {
	Players    []PlayerState     `json:"players"`
	Bullets    []BulletState     `json:"bullets"`
	Scoreboard map[uint32]uint32 `json:"scoreboard"`
}

// PlayerState is one player's observed state within a snapshot.
type PlayerState struct {
	ID    uint32  `json:"id"`
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Angle float32 `json:"angle"`
}

// BulletState is one live bullet's observed state within a snapshot.
type BulletState struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Angle   float32 `json:"angle"`
	OwnerID uint32  `json:"owner_id"`
}

// validate rejects malformed snapshots before any state is touched, keeping
// ingestion atomic per tick.
func (s *Snapshot) validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	}
	for _, p := range s.Players {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Angle) {
			return fmt.Errorf("%w: player %d has non-finite state", ErrMalformedSnapshot, p.ID)
		}
		if _, ok := s.Scoreboard[p.ID]; !ok {
			return fmt.Errorf("%w: player %d missing from scoreboard", ErrMalformedSnapshot, p.ID)
		}
	}
	for i, b := range s.Bullets {
		if !finite(b.X) || !finite(b.Y) || !finite(b.Angle) {
			return fmt.Errorf("%w: bullet %d has non-finite state", ErrMalformedSnapshot, i)
		}
	}
	return nil
}

func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}
