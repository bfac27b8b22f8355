package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/segmentio/ksuid"

	"github.com/haongo138/spacebot/analyzer"
	"github.com/haongo138/spacebot/config"
)

// Recorder writes per-tick stats to a session CSV and periodically mirrors
// them to slog. Returns nil from NewRecorder when output is disabled; all
// methods are safe on a nil receiver.
type Recorder struct {
	cfg       *config.Config
	sessionID ksuid.KSUID
	start     time.Time

	file          *os.File
	headerWritten bool
}

// NewRecorder creates a recorder writing to cfg.Telemetry.OutputDir.
// Returns nil if the output dir is empty (output disabled).
func NewRecorder(cfg *config.Config, start time.Time) (*Recorder, error) {
	if cfg.Telemetry.OutputDir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(cfg.Telemetry.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	id := ksuid.New()
	path := filepath.Join(cfg.Telemetry.OutputDir, fmt.Sprintf("session-%s.csv", id))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating session csv: %w", err)
	}

	return &Recorder{
		cfg:       cfg,
		sessionID: id,
		start:     start,
		file:      f,
	}, nil
}

// SessionID returns the id stamped on this session's output.
func (r *Recorder) SessionID() ksuid.KSUID {
	if r == nil {
		return ksuid.Nil
	}
	return r.sessionID
}

// Record observes the analyzer at the given time, writes the stats record,
// and emits a periodic slog line. The returned stats are also handed back
// for callers that want them.
func (r *Recorder) Record(a *analyzer.Analyzer, cfg *config.Config, now time.Time) (TickStats, error) {
	start := now
	if r != nil {
		start = r.start
	}
	stats := Observe(a, cfg, start, now)

	if r == nil {
		return stats, nil
	}
	if err := r.write(stats); err != nil {
		return stats, err
	}
	if every := r.cfg.Telemetry.LogEvery; every > 0 && stats.Tick%uint64(every) == 0 {
		slog.Info("session stats", "session", r.sessionID.String(), "stats", stats)
	}
	return stats, nil
}

// write appends one stats record, emitting the CSV header on first use.
func (r *Recorder) write(stats TickStats) error {
	records := []TickStats{stats}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WriteConfig saves the session's effective configuration next to the CSV.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	path := filepath.Join(r.cfg.Telemetry.OutputDir, fmt.Sprintf("config-%s.yaml", r.sessionID))
	return cfg.WriteYAML(path)
}

// Close flushes and closes the session CSV.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}
