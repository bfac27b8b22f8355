// Package analyzer maintains smoothed per-player histories from a stream of
// discrete world snapshots and answers predictive queries against them:
// bearings, projected scores, and bullet-collision forecasts.
//
// The analyzer is single-threaded by contract. PushState is the only
// mutating operation and must be serialized by the owner (one goroutine,
// one snapshot at a time); every other method is a pure read against the
// current state and may be called freely between pushes. There is no
// internal locking.
package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/haongo138/spacebot/config"
	"github.com/haongo138/spacebot/geom"
)

var (
	// ErrNotFound is returned when a query names an untracked player id.
	ErrNotFound = errors.New("analyzer: player not found")

	// ErrMalformedSnapshot is returned by PushState when a snapshot fails
	// validation. No state changes in that case.
	ErrMalformedSnapshot = errors.New("analyzer: malformed snapshot")

	// ErrStaleSnapshot is returned when a snapshot's timestamp precedes the
	// previously ingested one.
	ErrStaleSnapshot = errors.New("analyzer: snapshot older than current state")
)

// Analyzer owns the per-player map and the current bullet list. Queries
// return borrowed views; callers must not retain them across PushState.
type Analyzer struct {
	cfg         *config.Config
	players     map[uint32]*Player
	bullets     []Bullet
	ownPlayerID uint32
	lastPush    time.Time
	tick        uint64
}

// New creates an analyzer with the given configuration.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		players: make(map[uint32]*Player),
	}
}

// PushState ingests one snapshot observed at the given time. Players already
// tracked are updated in place, players seen for the first time are created,
// and players absent from the snapshot are left untouched. The bullet list
// is replaced wholesale. The snapshot is validated up front so a rejected
// push leaves the analyzer exactly as it was.
func (a *Analyzer) PushState(s *Snapshot, at time.Time) error {
	if err := s.validate(); err != nil {
		return err
	}
	if a.tick > 0 && at.Before(a.lastPush) {
		return fmt.Errorf("%w: %v < %v", ErrStaleSnapshot, at, a.lastPush)
	}

	for _, state := range s.Players {
		score := s.Scoreboard[state.ID]
		if p, ok := a.players[state.ID]; ok {
			p.observe(state, score, at)
			continue
		}
		a.players[state.ID] = newPlayer(state, score, at, a.cfg)
		slog.Debug("tracking new player", "id", state.ID, "score", score)
	}

	a.bullets = a.bullets[:0]
	for _, state := range s.Bullets {
		a.bullets = append(a.bullets, newBullet(state, a.cfg.Game.BulletSpeed))
	}

	a.lastPush = at
	a.tick++
	return nil
}

// Player returns the tracked player with the given id.
func (a *Analyzer) Player(id uint32) (*Player, error) {
	p, ok := a.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return p, nil
}

// SetOwnPlayerID selects which tracked player is "self" for prediction
// queries.
func (a *Analyzer) SetOwnPlayerID(id uint32) {
	a.ownPlayerID = id
}

// OwnPlayer returns the player previously selected with SetOwnPlayerID.
func (a *Analyzer) OwnPlayer() (*Player, error) {
	return a.Player(a.ownPlayerID)
}

// AngleTo returns the bearing from the own player's latest position to the
// target's latest position.
func (a *Analyzer) AngleTo(target uint32) (geom.Radian, error) {
	own, err := a.OwnPlayer()
	if err != nil {
		return 0, err
	}
	other, err := a.Player(target)
	if err != nil {
		return 0, err
	}
	return own.Position.AngleTo(other.Position), nil
}

// ProjectedScore extrapolates the given player's recent scoring rate
// forward by horizon from now.
func (a *Analyzer) ProjectedScore(id uint32, now time.Time, horizon time.Duration) (uint32, error) {
	p, err := a.Player(id)
	if err != nil {
		return 0, err
	}
	return p.Scores.Project(now, horizon)
}

// Bullets returns a borrowed view of the bullets from the latest snapshot.
func (a *Analyzer) Bullets() []Bullet {
	return a.bullets
}

// ForEachPlayer calls fn for every tracked player.
func (a *Analyzer) ForEachPlayer(fn func(*Player)) {
	for _, p := range a.players {
		fn(p)
	}
}

// PlayerCount returns the number of tracked players.
func (a *Analyzer) PlayerCount() int {
	return len(a.players)
}

// Tick returns the number of snapshots ingested so far.
func (a *Analyzer) Tick() uint64 {
	return a.tick
}

// LastPush returns the timestamp of the most recently ingested snapshot.
func (a *Analyzer) LastPush() time.Time {
	return a.lastPush
}

// Reset discards all tracked players and bullets. This is the only point at
// which players are destroyed.
func (a *Analyzer) Reset() {
	a.players = make(map[uint32]*Player)
	a.bullets = nil
	a.lastPush = time.Time{}
	a.tick = 0
}
