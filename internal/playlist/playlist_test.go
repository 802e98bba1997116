// /internal/playlist/playlist_test.go
package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"catfm/internal/library"
)

func newTestLibrary(t *testing.T, trackCount int) *library.Library {
	t.Helper()
	root := t.TempDir()
	album := filepath.Join(root, "album")
	if err := os.MkdirAll(album, 0755); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < trackCount; i++ {
		path := filepath.Join(album, fmt.Sprintf("track_%02d.mp3", i))
		if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	lib := library.New(root)
	if err := lib.Rebuild(); err != nil {
		t.Fatal(err)
	}
	return lib
}

func TestGenerateIsPermutation(t *testing.T) {
	lib := newTestLibrary(t, 5)
	p := Generate(lib)

	if p.Len() != 5 {
		t.Fatalf("expected 5 names, got %d", p.Len())
	}

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		name, err := p.Consume()
		if err != nil {
			t.Fatalf("Consume %d failed: %v", i, err)
		}
		if seen[name] {
			t.Fatalf("track %q repeated before exhaustion", name)
		}
		seen[name] = true
		if _, found := lib.Snapshot().Lookup(name); !found {
			t.Fatalf("consumed name %q not in library", name)
		}
	}

	if _, err := p.Consume(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestTwoTrackCycle(t *testing.T) {
	lib := newTestLibrary(t, 2)
	p := Generate(lib)

	first, err := p.Consume()
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Consume()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("two-track playlist repeated %q", first)
	}
	if _, err := p.Consume(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}

	// A refill yields both tracks again.
	p = Generate(lib)
	if p.Len() != 2 {
		t.Fatalf("refill expected 2 names, got %d", p.Len())
	}
}

func TestGenerateRebuildsEmptySnapshot(t *testing.T) {
	root := t.TempDir()
	album := filepath.Join(root, "album")
	if err := os.MkdirAll(album, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(album, "only.mp3"), []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	// No Rebuild: the snapshot starts empty and Generate must rescan.
	lib := library.New(root)
	p := Generate(lib)
	if p.Len() != 1 {
		t.Fatalf("expected rescan to find 1 track, got %d", p.Len())
	}
}

func TestGenerateEmptyLibrary(t *testing.T) {
	lib := newTestLibrary(t, 0)
	p := Generate(lib)
	if p.Len() != 0 {
		t.Fatalf("expected empty playlist, got %d", p.Len())
	}
	if _, err := p.Consume(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestNilPlaylist(t *testing.T) {
	var p *Playlist
	if p.Len() != 0 {
		t.Error("nil playlist should have zero length")
	}
	if _, err := p.Consume(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}
