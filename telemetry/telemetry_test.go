package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haongo138/spacebot/analyzer"
	"github.com/haongo138/spacebot/config"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

func testSnapshot(score uint32, bullets []analyzer.BulletState) *analyzer.Snapshot {
	return &analyzer.Snapshot{
		Players:    []analyzer.PlayerState{{ID: 1}},
		Bullets:    bullets,
		Scoreboard: map[uint32]uint32{1: score},
	}
}

func TestObserveWithoutOwnPlayer(t *testing.T) {
	cfg := testConfig(t)
	a := analyzer.New(cfg)

	if err := a.PushState(testSnapshot(3, nil), t0); err != nil {
		t.Fatalf("PushState: %v", err)
	}

	// Own player id 0 is untracked; score and threat fields stay zeroed.
	stats := Observe(a, cfg, t0, t0.Add(time.Second))
	if stats.Tick != 1 || stats.Players != 1 {
		t.Errorf("stats = %+v, want tick 1, players 1", stats)
	}
	if stats.TimeSec != 1 {
		t.Errorf("TimeSec = %v, want 1", stats.TimeSec)
	}
	if stats.OwnScore != 0 || stats.Threats != 0 {
		t.Errorf("stats = %+v, want zero own-player fields", stats)
	}
	if stats.FirstImpactSec != noImpact {
		t.Errorf("FirstImpactSec = %v, want %v", stats.FirstImpactSec, noImpact)
	}
}

func TestObserveWithThreat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game.BulletSpeed = 50
	cfg.Game.HitRadius = 1
	a := analyzer.New(cfg)
	a.SetOwnPlayerID(1)

	bullets := []analyzer.BulletState{{X: -100, Y: 0, Angle: 0, OwnerID: 2}}
	if err := a.PushState(testSnapshot(7, bullets), t0); err != nil {
		t.Fatalf("PushState: %v", err)
	}

	stats := Observe(a, cfg, t0, t0)
	if stats.OwnScore != 7 {
		t.Errorf("OwnScore = %d, want 7", stats.OwnScore)
	}
	if stats.Bullets != 1 || stats.Threats != 1 {
		t.Errorf("stats = %+v, want 1 bullet, 1 threat", stats)
	}
	if stats.FirstImpactSec <= 0 || stats.FirstImpactSec > 2 {
		t.Errorf("FirstImpactSec = %v, want in (0, 2]", stats.FirstImpactSec)
	}
}

func TestRecorderDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.OutputDir = ""

	r, err := NewRecorder(cfg, t0)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if r != nil {
		t.Fatal("recorder should be nil when output is disabled")
	}

	// All methods are nil-safe.
	a := analyzer.New(cfg)
	if _, err := r.Record(a, cfg, t0); err != nil {
		t.Errorf("Record on nil recorder: %v", err)
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Errorf("WriteConfig on nil recorder: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil recorder: %v", err)
	}
}

func TestRecorderWritesCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.OutputDir = t.TempDir()
	cfg.Telemetry.LogEvery = 0

	r, err := NewRecorder(cfg, t0)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	defer r.Close()

	a := analyzer.New(cfg)
	for i := 0; i < 3; i++ {
		at := t0.Add(time.Duration(i) * time.Second)
		if err := a.PushState(testSnapshot(uint32(i), nil), at); err != nil {
			t.Fatalf("PushState: %v", err)
		}
		if _, err := r.Record(a, cfg, at); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	path := filepath.Join(cfg.Telemetry.OutputDir, "session-"+r.SessionID().String()+".csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading session csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv lines = %d, want header + 3 records", len(lines))
	}
	if !strings.Contains(lines[0], "tick") || !strings.Contains(lines[0], "first_impact_sec") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestRecorderWriteConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.OutputDir = t.TempDir()

	r, err := NewRecorder(cfg, t0)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	defer r.Close()

	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	path := filepath.Join(cfg.Telemetry.OutputDir, "config-"+r.SessionID().String()+".yaml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")

	w, err := NewJournalWriter(path)
	if err != nil {
		t.Fatalf("NewJournalWriter: %v", err)
	}
	snapshots := []*analyzer.Snapshot{
		testSnapshot(0, nil),
		testSnapshot(5, []analyzer.BulletState{{X: 1, Y: 2, Angle: 0.5, OwnerID: 1}}),
	}
	for i, s := range snapshots {
		if err := w.Append(s, t0.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := ReadJournal(path)
	if err != nil {
		t.Fatalf("ReadJournal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].Time().Equal(t0) {
		t.Errorf("entry 0 time = %v, want %v", entries[0].Time(), t0)
	}
	if got := entries[1].Snapshot.Scoreboard[1]; got != 5 {
		t.Errorf("entry 1 score = %d, want 5", got)
	}
	if len(entries[1].Snapshot.Bullets) != 1 {
		t.Errorf("entry 1 bullets = %d, want 1", len(entries[1].Snapshot.Bullets))
	}

	// Replaying the journal reproduces the analyzer state.
	cfg := testConfig(t)
	a := analyzer.New(cfg)
	for _, e := range entries {
		if err := a.PushState(e.Snapshot, e.Time()); err != nil {
			t.Fatalf("PushState: %v", err)
		}
	}
	if a.Tick() != 2 || a.PlayerCount() != 1 {
		t.Errorf("tick = %d, players = %d, want 2 and 1", a.Tick(), a.PlayerCount())
	}
}

func TestReadJournalMissingFile(t *testing.T) {
	if _, err := ReadJournal(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing journal")
	}
}
