// /internal/storage/storage_test.go
package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catfm.datastore.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestTrackHistoryRoundtrip(t *testing.T) {
	s, _ := newTestStorage(t)

	if err := s.AppendTrackToHistory("g1", "night walk", "jazz"); err != nil {
		t.Fatalf("AppendTrackToHistory failed: %v", err)
	}
	if err := s.AppendTrackToHistory("g1", "first track", "lo fi beats"); err != nil {
		t.Fatalf("AppendTrackToHistory failed: %v", err)
	}

	history, err := s.FetchTrackHistory("g1")
	if err != nil {
		t.Fatalf("FetchTrackHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if history[0].Name != "night walk" || history[0].Album != "jazz" {
		t.Errorf("unexpected first record: %+v", history[0])
	}
	if history[1].Name != "first track" {
		t.Errorf("unexpected second record: %+v", history[1])
	}

	// Guilds do not share history.
	other, err := s.FetchTrackHistory("g2")
	if err != nil {
		t.Fatalf("FetchTrackHistory failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected empty history for untouched guild, got %d", len(other))
	}
}

func TestTrackHistoryIsCapped(t *testing.T) {
	s, _ := newTestStorage(t)

	for i := 0; i < tracksHistoryLimit+5; i++ {
		name := fmt.Sprintf("track %02d", i)
		if err := s.AppendTrackToHistory("g1", name, "album"); err != nil {
			t.Fatalf("AppendTrackToHistory failed: %v", err)
		}
	}

	history, err := s.FetchTrackHistory("g1")
	if err != nil {
		t.Fatalf("FetchTrackHistory failed: %v", err)
	}
	if len(history) != tracksHistoryLimit {
		t.Fatalf("expected history capped at %d, got %d", tracksHistoryLimit, len(history))
	}
	// Oldest entries fall off first.
	if history[0].Name != "track 05" {
		t.Errorf("unexpected oldest record after cap: %+v", history[0])
	}
}

func TestCommandHistoryRoundtrip(t *testing.T) {
	s, _ := newTestStorage(t)

	rec := CommandHistoryRecord{
		ChannelID: "c1",
		UserID:    "u1",
		Username:  "someone",
		Command:   "join",
		Datetime:  time.Now(),
	}
	if err := s.AppendCommandToHistory("g1", rec); err != nil {
		t.Fatalf("AppendCommandToHistory failed: %v", err)
	}

	history, err := s.FetchCommandHistory("g1")
	if err != nil {
		t.Fatalf("FetchCommandHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
	if history[0].Command != "join" || history[0].UserID != "u1" {
		t.Errorf("unexpected record: %+v", history[0])
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catfm.datastore.json")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.AppendTrackToHistory("g1", "night walk", "jazz"); err != nil {
		t.Fatalf("AppendTrackToHistory failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	history, err := reopened.FetchTrackHistory("g1")
	if err != nil {
		t.Fatalf("FetchTrackHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].Name != "night walk" {
		t.Fatalf("history lost across reopen: %+v", history)
	}
}
