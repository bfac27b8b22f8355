package history

import "time"

// ScoreSample is one timestamped scoreboard observation.
type ScoreSample struct {
	Score uint32
	Time  time.Time
}

// ScoreHistory is a time series of score samples for a single entity.
// Timestamps must be non-decreasing across pushes.
type ScoreHistory struct {
	samples  []ScoreSample
	head     int
	count    int
	lookback time.Duration
}

// NewScoreHistory creates a score history retaining at most maxSamples
// samples. The lookback window sizes the recent-rate estimate used by
// Project.
func NewScoreHistory(maxSamples int, lookback time.Duration) *ScoreHistory {
	if maxSamples < 2 {
		maxSamples = 2
	}
	if lookback <= 0 {
		lookback = 10 * time.Second
	}
	return &ScoreHistory{
		samples:  make([]ScoreSample, maxSamples),
		lookback: lookback,
	}
}

// Push appends a sample, evicting the oldest one if the buffer is full.
func (h *ScoreHistory) Push(score uint32, at time.Time) {
	h.samples[h.head] = ScoreSample{Score: score, Time: at}
	h.head = (h.head + 1) % len(h.samples)
	if h.count < len(h.samples) {
		h.count++
	}
}

// Len returns the number of retained samples.
func (h *ScoreHistory) Len() int {
	return h.count
}

func (h *ScoreHistory) at(i int) ScoreSample {
	idx := (h.head - h.count + i + len(h.samples)) % len(h.samples)
	return h.samples[idx]
}

// LastScore returns the most recent sample.
func (h *ScoreHistory) LastScore() (uint32, error) {
	if h.count == 0 {
		return 0, ErrEmpty
	}
	return h.at(h.count - 1).Score, nil
}

// ScoreSince returns the score gained since the latest sample at or before
// the given time. When no sample qualifies the baseline is zero, so the
// delta equals the last score.
func (h *ScoreHistory) ScoreSince(since time.Time) (uint32, error) {
	last, err := h.LastScore()
	if err != nil {
		return 0, err
	}
	var baseline uint32
	for i := h.count - 1; i >= 0; i-- {
		if s := h.at(i); !s.Time.After(since) {
			baseline = s.Score
			break
		}
	}
	if baseline > last {
		// Scoreboard went backwards inside the window (server-side reset).
		return 0, nil
	}
	return last - baseline, nil
}

// Project linearly extrapolates the scoring rate observed over the lookback
// window forward by horizon:
//
//	projected = lastScore + recentDelta * (horizon / lookback)
//
// This is a rate-based forecast, not a fitted regression. The caller
// supplies the current time so projections stay reproducible offline.
func (h *ScoreHistory) Project(now time.Time, horizon time.Duration) (uint32, error) {
	last, err := h.LastScore()
	if err != nil {
		return 0, err
	}
	recent, err := h.ScoreSince(now.Add(-h.lookback))
	if err != nil {
		return 0, err
	}
	gain := float64(recent) * (horizon.Seconds() / h.lookback.Seconds())
	if gain < 0 {
		gain = 0
	}
	return last + uint32(gain), nil
}
