package analyzer

import (
	"time"

	"github.com/haongo138/spacebot/config"
	"github.com/haongo138/spacebot/geom"
	"github.com/haongo138/spacebot/history"
)

// Player is the tracked state of a single player: the latest observation
// plus the smoothed histories derived queries run against. A Player
// exclusively owns its Trajectory and ScoreHistory.
type Player struct {
	ID       uint32
	Angle    geom.Radian
	Position geom.Point

	Trajectory *history.Trajectory
	Scores     *history.ScoreHistory

	lastSeen time.Time
}

// newPlayer creates a player from its first observation. Histories start
// with exactly one sample.
func newPlayer(state PlayerState, score uint32, at time.Time, cfg *config.Config) *Player {
	p := &Player{
		ID:         state.ID,
		Trajectory: history.NewTrajectory(cfg.Estimator.TrajectorySamples),
		Scores:     history.NewScoreHistory(cfg.Estimator.ScoreSamples, cfg.ScoreLookback()),
	}
	p.observe(state, score, at)
	return p
}

// observe records one snapshot's worth of state for this player.
func (p *Player) observe(state PlayerState, score uint32, at time.Time) {
	p.Angle = geom.Radian(state.Angle)
	p.Position = geom.Point{X: float64(state.X), Y: float64(state.Y)}
	p.Trajectory.Push(p.Position, at)
	p.Scores.Push(score, at)
	p.lastSeen = at
}

// LastSeen returns the timestamp of the most recent snapshot that contained
// this player. Players absent from newer snapshots are kept (the analyzer
// never evicts them); staleness decisions belong to the caller.
func (p *Player) LastSeen() time.Time {
	return p.lastSeen
}
