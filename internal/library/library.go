// /internal/library/library.go
package library

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Track is one playable file. Name is the display name derived from the
// filename, unique within an index snapshot.
type Track struct {
	Name  string
	Album string
	Path  string
}

// SkippedEntry records a path the scanner could not use. Non-fatal.
type SkippedEntry struct {
	Path   string
	Reason string
}

// Index is a completed, immutable scan of the songs tree.
type Index struct {
	tracks  map[string]Track
	skipped []SkippedEntry
}

// Lookup returns the track for a normalized name.
func (i *Index) Lookup(name string) (Track, bool) {
	t, ok := i.tracks[name]
	return t, ok
}

// Names returns all track names in the snapshot.
func (i *Index) Names() []string {
	return lo.Keys(i.tracks)
}

func (i *Index) Len() int { return len(i.tracks) }

// Skipped returns the scan diagnostics collected while building the index.
func (i *Index) Skipped() []SkippedEntry { return i.skipped }

// Build scans exactly two levels under root: album folders, then track files
// directly inside them. Unusable entries are skipped and recorded, never
// fatal. Build fails only if root itself cannot be read.
func Build(root string) (*Index, error) {
	albums, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read songs folder %s: %w", root, err)
	}

	idx := &Index{tracks: make(map[string]Track)}

	for _, album := range albums {
		albumPath := filepath.Join(root, album.Name())
		if !album.IsDir() {
			idx.skip(albumPath, "not a folder")
			continue
		}

		files, err := os.ReadDir(albumPath)
		if err != nil {
			idx.skip(albumPath, fmt.Sprintf("unreadable: %v", err))
			continue
		}

		albumName := cleanName(album.Name())
		for _, file := range files {
			trackPath := filepath.Join(albumPath, file.Name())
			if file.IsDir() {
				idx.skip(trackPath, "not a file")
				continue
			}
			if !readable(trackPath) {
				idx.skip(trackPath, "unreadable")
				continue
			}

			name := cleanName(file.Name())
			if prev, ok := idx.tracks[name]; ok {
				// Last write wins on name collisions.
				idx.skip(prev.Path, fmt.Sprintf("duplicate track name %q, replaced", name))
			}
			idx.tracks[name] = Track{Name: name, Album: albumName, Path: trackPath}
		}
	}

	for _, s := range idx.skipped {
		log.Printf("[WARN] Library scan skipped %s: %s", s.Path, s.Reason)
	}
	log.Printf("[INFO] Library scan of %s found %d track(s)", root, len(idx.tracks))

	return idx, nil
}

func (i *Index) skip(path, reason string) {
	i.skipped = append(i.skipped, SkippedEntry{Path: path, Reason: reason})
}

// cleanName strips the file extension and replaces underscores with spaces.
func cleanName(base string) string {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Library holds the current index snapshot for a songs root. Rebuilds swap
// the snapshot wholesale, so readers never observe a partial scan.
type Library struct {
	root string

	mu  sync.RWMutex
	idx *Index
}

func New(root string) *Library {
	return &Library{root: root, idx: &Index{tracks: map[string]Track{}}}
}

func (l *Library) Root() string { return l.root }

// Rebuild rescans the songs tree and replaces the snapshot.
func (l *Library) Rebuild() error {
	idx, err := Build(l.root)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.idx = idx
	l.mu.Unlock()
	return nil
}

// Snapshot returns the current complete index.
func (l *Library) Snapshot() *Index {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.idx
}
