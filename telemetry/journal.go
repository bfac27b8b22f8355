package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/haongo138/spacebot/analyzer"
)

// JournalEntry is one recorded snapshot with its arrival time.
type JournalEntry struct {
	TimeMs   int64              `json:"time_ms"` // unix milliseconds
	Snapshot *analyzer.Snapshot `json:"snapshot"`
}

// Time returns the entry's arrival time.
func (e JournalEntry) Time() time.Time {
	return time.UnixMilli(e.TimeMs)
}

// JournalWriter appends snapshots to a JSON-lines file so a session can be
// replayed through the analyzer offline.
type JournalWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewJournalWriter creates (or truncates) the journal at path.
func NewJournalWriter(path string) (*JournalWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating journal: %w", err)
	}
	return &JournalWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Append records one snapshot observed at the given time.
func (w *JournalWriter) Append(s *analyzer.Snapshot, at time.Time) error {
	entry := JournalEntry{TimeMs: at.UnixMilli(), Snapshot: s}
	if err := w.enc.Encode(&entry); err != nil {
		return fmt.Errorf("appending journal entry: %w", err)
	}
	return nil
}

// Close closes the journal file.
func (w *JournalWriter) Close() error {
	return w.file.Close()
}

// ReadJournal loads all entries from a JSON-lines journal.
func ReadJournal(path string) ([]JournalEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	var entries []JournalEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry JournalEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("parsing journal entry %d: %w", len(entries), err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return entries, nil
}
