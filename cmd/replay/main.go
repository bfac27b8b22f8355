// Command replay feeds a recorded snapshot journal through the estimator and
// reports what it would have predicted at each tick. No network involved;
// this is the offline harness for tuning forecast parameters.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/haongo138/spacebot/analyzer"
	"github.com/haongo138/spacebot/config"
	"github.com/haongo138/spacebot/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	journalPath := flag.String("journal", "", "Snapshot journal to replay (JSON lines)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs (overrides config)")
	ownID := flag.Uint("player", 0, "Own player id for prediction queries")
	horizonSec := flag.Float64("horizon", 0, "Forecast horizon in seconds (0 = use config)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *journalPath == "" {
		slog.Error("missing required -journal flag")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}
	if *horizonSec > 0 {
		cfg.Estimator.ForecastHorizonSec = *horizonSec
	}

	entries, err := telemetry.ReadJournal(*journalPath)
	if err != nil {
		slog.Error("failed to read journal", "error", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		slog.Error("journal is empty", "path", *journalPath)
		os.Exit(1)
	}

	a := analyzer.New(cfg)
	a.SetOwnPlayerID(uint32(*ownID))

	recorder, err := telemetry.NewRecorder(cfg, entries[0].Time())
	if err != nil {
		slog.Error("failed to create recorder", "error", err)
		os.Exit(1)
	}
	defer recorder.Close()

	if err := recorder.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("replaying journal",
		"path", *journalPath,
		"entries", len(entries),
		"player", *ownID,
		"horizon_sec", cfg.Estimator.ForecastHorizonSec,
		"session", recorder.SessionID().String(),
	)

	var totalThreats int
	var firstImpact time.Duration = -1
	for _, entry := range entries {
		if err := a.PushState(entry.Snapshot, entry.Time()); err != nil {
			slog.Error("rejected snapshot", "tick", a.Tick(), "error", err)
			os.Exit(1)
		}
		stats, err := recorder.Record(a, cfg, entry.Time())
		if err != nil {
			slog.Error("failed to record stats", "tick", a.Tick(), "error", err)
			os.Exit(1)
		}
		totalThreats += stats.Threats
		if firstImpact < 0 && stats.FirstImpactSec >= 0 {
			firstImpact = time.Duration(stats.FirstImpactSec * float64(time.Second))
		}
	}

	slog.Info("replay complete",
		"ticks", a.Tick(),
		"players", a.PlayerCount(),
		"total_threats", totalThreats,
		"earliest_impact", firstImpact,
	)
}
