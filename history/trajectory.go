// Package history holds bounded time series for tracked entities: position
// samples (Trajectory) and score samples (ScoreHistory), plus the derived
// statistics the estimator queries. Retention is a fixed sample count
// enforced on every push; the oldest sample is evicted once the buffer is
// full, so memory stays bounded for long sessions.
package history

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/haongo138/spacebot/geom"
)

// ErrEmpty is returned when a statistic is requested on a history with no
// samples. Callers must push at least one sample first.
var ErrEmpty = errors.New("history: no samples")

// PositionSample is one timestamped position observation.
type PositionSample struct {
	Position geom.Point
	Time     time.Time
}

// Trajectory is a time series of position samples for a single entity.
// Timestamps must be non-decreasing across pushes.
type Trajectory struct {
	samples []PositionSample
	head    int // next write index
	count   int
}

// NewTrajectory creates a trajectory retaining at most maxSamples samples.
func NewTrajectory(maxSamples int) *Trajectory {
	if maxSamples < 2 {
		maxSamples = 2
	}
	return &Trajectory{samples: make([]PositionSample, maxSamples)}
}

// Push appends a sample, evicting the oldest one if the buffer is full.
func (t *Trajectory) Push(position geom.Point, at time.Time) {
	t.samples[t.head] = PositionSample{Position: position, Time: at}
	t.head = (t.head + 1) % len(t.samples)
	if t.count < len(t.samples) {
		t.count++
	}
}

// Len returns the number of retained samples.
func (t *Trajectory) Len() int {
	return t.count
}

// at returns the i-th retained sample in chronological order, i in [0, Len).
func (t *Trajectory) at(i int) PositionSample {
	idx := (t.head - t.count + i + len(t.samples)) % len(t.samples)
	return t.samples[idx]
}

// LastPosition returns the most recent sample.
func (t *Trajectory) LastPosition() (geom.Point, error) {
	if t.count == 0 {
		return geom.Point{}, ErrEmpty
	}
	return t.at(t.count - 1).Position, nil
}

// LastVelocity returns the finite difference between the two most recent
// samples. With fewer than two samples there is no velocity signal yet and
// the zero vector is returned.
func (t *Trajectory) LastVelocity() (geom.Vec, error) {
	if t.count < 2 {
		return geom.Vec{}, nil
	}
	prev, last := t.at(t.count-2), t.at(t.count-1)
	v, err := prev.Position.VelocityTo(last.Position, last.Time.Sub(prev.Time))
	if err != nil {
		return geom.Vec{}, err
	}
	return v, nil
}

// AveAbsVelocity averages the per-step absolute velocity across the whole
// retained history. It is a magnitude-only activity signal, not a
// directional estimate. Zero for fewer than two samples.
func (t *Trajectory) AveAbsVelocity() (geom.Vec, error) {
	if t.count < 2 {
		return geom.Vec{}, nil
	}
	xs := make([]float64, 0, t.count-1)
	ys := make([]float64, 0, t.count-1)
	for i := 1; i < t.count; i++ {
		prev, next := t.at(i-1), t.at(i)
		v, err := prev.Position.VelocityTo(next.Position, next.Time.Sub(prev.Time))
		if err != nil {
			return geom.Vec{}, err
		}
		abs := v.Abs()
		xs = append(xs, abs.X)
		ys = append(ys, abs.Y)
	}
	return geom.Vec{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
	}, nil
}

// SpeedStats holds aggregate speed statistics over the retained history.
type SpeedStats struct {
	Mean float64
	Min  float64
	Max  float64
}

// SpeedStats computes mean, min, and max per-step speed across the retained
// history. Zero stats for fewer than two samples.
func (t *Trajectory) SpeedStats() (SpeedStats, error) {
	if t.count < 2 {
		return SpeedStats{}, nil
	}
	speeds := make([]float64, 0, t.count-1)
	for i := 1; i < t.count; i++ {
		prev, next := t.at(i-1), t.at(i)
		v, err := prev.Position.VelocityTo(next.Position, next.Time.Sub(prev.Time))
		if err != nil {
			return SpeedStats{}, err
		}
		speeds = append(speeds, v.Norm())
	}
	return SpeedStats{
		Mean: stat.Mean(speeds, nil),
		Min:  floats.Min(speeds),
		Max:  floats.Max(speeds),
	}, nil
}
