// /internal/library/library_test.go
package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildScansTwoLevels(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lo_fi_beats", "first_track.mp3"))
	writeFile(t, filepath.Join(root, "lo_fi_beats", "second.ogg"))
	writeFile(t, filepath.Join(root, "jazz", "night_walk.webm"))

	idx, err := Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if idx.Len() != 3 {
		t.Fatalf("expected 3 tracks, got %d", idx.Len())
	}

	track, found := idx.Lookup("first track")
	if !found {
		t.Fatalf("expected track %q in index, names: %v", "first track", idx.Names())
	}
	if track.Album != "lo fi beats" {
		t.Errorf("expected album %q, got %q", "lo fi beats", track.Album)
	}
	if track.Path != filepath.Join(root, "lo_fi_beats", "first_track.mp3") {
		t.Errorf("unexpected track path: %s", track.Path)
	}

	if _, found := idx.Lookup("night walk"); !found {
		t.Errorf("expected track %q in index", "night walk")
	}
}

func TestBuildSkipsUnusableEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "album", "song.mp3"))
	writeFile(t, filepath.Join(root, "readme.txt"))
	if err := os.MkdirAll(filepath.Join(root, "album", "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	idx, err := Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if idx.Len() != 1 {
		t.Fatalf("expected 1 track, got %d", idx.Len())
	}

	skipped := idx.Skipped()
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped entries, got %d: %v", len(skipped), skipped)
	}
	var sawStray, sawNested bool
	for _, s := range skipped {
		if strings.HasSuffix(s.Path, "readme.txt") {
			sawStray = true
		}
		if strings.HasSuffix(s.Path, "nested") {
			sawNested = true
		}
	}
	if !sawStray || !sawNested {
		t.Errorf("missing expected skip diagnostics: %v", skipped)
	}
}

func TestBuildNameCollisionLastWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "album_a", "same_name.mp3"))
	writeFile(t, filepath.Join(root, "album_b", "same_name.mp3"))

	idx, err := Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if idx.Len() != 1 {
		t.Fatalf("expected 1 track after collision, got %d", idx.Len())
	}
	if _, found := idx.Lookup("same name"); !found {
		t.Fatal("collided name missing from index")
	}

	var sawDuplicate bool
	for _, s := range idx.Skipped() {
		if strings.Contains(s.Reason, "duplicate") {
			sawDuplicate = true
		}
	}
	if !sawDuplicate {
		t.Errorf("expected a duplicate diagnostic, got %v", idx.Skipped())
	}
}

func TestBuildMissingRoot(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected error for missing songs folder")
	}
}

func TestRebuildSwapsSnapshot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "album", "one.mp3"))

	lib := New(root)
	if lib.Snapshot().Len() != 0 {
		t.Fatal("fresh library should start empty")
	}

	if err := lib.Rebuild(); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if lib.Snapshot().Len() != 1 {
		t.Fatalf("expected 1 track, got %d", lib.Snapshot().Len())
	}

	before := lib.Snapshot()
	writeFile(t, filepath.Join(root, "album", "two.mp3"))
	if err := lib.Rebuild(); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	if before.Len() != 1 {
		t.Errorf("old snapshot mutated, len %d", before.Len())
	}
	if lib.Snapshot().Len() != 2 {
		t.Errorf("expected 2 tracks after rebuild, got %d", lib.Snapshot().Len())
	}
}
