// /internal/playlist/playlist.go
package playlist

import (
	"errors"
	"log"
	"math/rand"

	"catfm/internal/library"
)

// ErrExhausted signals an empty playlist. Callers regenerate on it, they do
// not treat it as a failure.
var ErrExhausted = errors.New("playlist exhausted")

// Playlist is a randomized, non-repeating ordering of track names, consumed
// from the tail.
type Playlist struct {
	names []string
}

// Generate builds a fresh playlist from the library's current snapshot: a
// uniform random permutation of every track name, each exactly once. If the
// snapshot is empty the library is rebuilt once first; a still-empty library
// yields an empty playlist, which callers treat as "nothing playable".
func Generate(lib *library.Library) *Playlist {
	idx := lib.Snapshot()
	if idx.Len() == 0 {
		if err := lib.Rebuild(); err != nil {
			log.Printf("[ERR] Library rebuild during playlist generation failed: %v", err)
		}
		idx = lib.Snapshot()
	}

	names := idx.Names()
	rand.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	return &Playlist{names: names}
}

// Consume removes and returns the next track name, or ErrExhausted.
func (p *Playlist) Consume() (string, error) {
	if p == nil || len(p.names) == 0 {
		return "", ErrExhausted
	}
	name := p.names[len(p.names)-1]
	p.names = p.names[:len(p.names)-1]
	return name, nil
}

// Len reports how many names are left.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}
