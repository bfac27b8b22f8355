// Package telemetry observes the analyzer and records per-tick session
// statistics. It is strictly read-only over the estimator: it queries, logs,
// and writes CSV, and never mutates analyzer state.
package telemetry

import (
	"log/slog"
	"time"

	"github.com/haongo138/spacebot/analyzer"
	"github.com/haongo138/spacebot/config"
)

// noImpact marks a tick with no predicted collision inside the horizon.
const noImpact = -1.0

// TickStats holds one tick's worth of estimator observations.
type TickStats struct {
	Tick           uint64  `csv:"tick"`
	TimeSec        float64 `csv:"time_sec"` // seconds since session start
	Players        int     `csv:"players"`
	Bullets        int     `csv:"bullets"`
	OwnScore       uint32  `csv:"own_score"`
	ProjectedScore uint32  `csv:"projected_score"`
	Threats        int     `csv:"threats"`
	FirstImpactSec float64 `csv:"first_impact_sec"` // -1 when no threat
}

// LogValue implements slog.LogValuer for structured logging.
func (s TickStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", s.Tick),
		slog.Float64("time_sec", s.TimeSec),
		slog.Int("players", s.Players),
		slog.Int("bullets", s.Bullets),
		slog.Uint64("own_score", uint64(s.OwnScore)),
		slog.Uint64("projected_score", uint64(s.ProjectedScore)),
		slog.Int("threats", s.Threats),
		slog.Float64("first_impact_sec", s.FirstImpactSec),
	)
}

// Observe builds one tick's stats from read-only analyzer queries. Queries
// that depend on an own player simply report zeros until one is selected
// and tracked.
func Observe(a *analyzer.Analyzer, cfg *config.Config, start, now time.Time) TickStats {
	stats := TickStats{
		Tick:           a.Tick(),
		TimeSec:        now.Sub(start).Seconds(),
		Players:        a.PlayerCount(),
		Bullets:        len(a.Bullets()),
		FirstImpactSec: noImpact,
	}

	own, err := a.OwnPlayer()
	if err != nil {
		return stats
	}
	if score, err := own.Scores.LastScore(); err == nil {
		stats.OwnScore = score
	}
	if projected, err := own.Scores.Project(now, cfg.ForecastHorizon()); err == nil {
		stats.ProjectedScore = projected
	}
	if collisions, err := a.BulletsToCollide(cfg.ForecastHorizon()); err == nil {
		stats.Threats = len(collisions)
		if len(collisions) > 0 {
			stats.FirstImpactSec = collisions[0].Time.Seconds()
		}
	}
	return stats
}
