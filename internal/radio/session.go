// /internal/radio/session.go
package radio

import (
	"sync"
	"time"

	"catfm/internal/playlist"
)

type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusPlaying
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "Connecting"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Disconnected"
	}
}

// Session is one guild's playback state. All fields are guarded by mu; the
// controller serializes every transition for a guild through it, including
// completion callbacks arriving from the transport's goroutine.
type Session struct {
	mu sync.Mutex

	guildID  string
	playlist *playlist.Playlist
	conn     Connection
	status   Status
	current  string

	idleTimer *time.Timer

	// gen invalidates in-flight completion callbacks. Stop and disconnects
	// bump it; a callback carrying a stale gen is discarded.
	gen uint64

	// pauseSeq counts Pause calls. An idle timer firing carries the seq of
	// the pause that armed it, so a firing from an already-resumed pause is
	// discarded.
	pauseSeq uint64
}

func (s *Session) GuildID() string { return s.guildID }

// Status returns the session's current playback status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// stopIdleTimerLocked cancels a pending auto-disconnect. Caller holds mu.
func (s *Session) stopIdleTimerLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
}

// resetLocked returns the session to Disconnected and invalidates any
// in-flight work. Caller holds mu; the connection is not touched here.
func (s *Session) resetLocked() {
	s.gen++
	s.stopIdleTimerLocked()
	s.conn = nil
	s.playlist = nil
	s.current = ""
	s.status = StatusDisconnected
}
