// /internal/radio/controller.go
package radio

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"catfm/internal/library"
	"catfm/internal/playlist"
)

const defaultIdleTimeout = 3 * time.Minute

var errNothingPlayable = errors.New("no playable tracks in the library")

// Controller runs the per-guild playback state machine: connect, play the
// next shuffled track, advance on completion, regenerate the playlist when it
// runs out, and enforce the busy and presence rules. Completion callbacks
// arrive on the transport's goroutine and are serialized per session through
// the session mutex; stale callbacks are discarded by generation.
type Controller struct {
	registry  *Registry
	lib       *library.Library
	transport Transport
	presence  Presence
	history   History

	idleTimeout time.Duration
}

func NewController(registry *Registry, lib *library.Library, transport Transport, presence Presence, history History) *Controller {
	return &Controller{
		registry:    registry,
		lib:         lib,
		transport:   transport,
		presence:    presence,
		history:     history,
		idleTimeout: defaultIdleTimeout,
	}
}

// Registry exposes the session registry to the gateway glue.
func (c *Controller) Registry() *Registry { return c.registry }

// SetIdleTimeout overrides how long a paused session waits before
// auto-disconnecting.
func (c *Controller) SetIdleTimeout(d time.Duration) { c.idleTimeout = d }

// Join connects to the caller's voice channel and starts playing the guild's
// playlist, generating a fresh one if the session has none left.
func (c *Controller) Join(guildID, channelID string) Result {
	if c.transport.Connected(guildID) {
		return reject(CodeBusy)
	}

	s := c.registry.Ensure(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusDisconnected {
		return reject(CodeBusy)
	}

	if s.playlist.Len() == 0 {
		s.playlist = playlist.Generate(c.lib)
	}

	s.status = StatusConnecting
	conn, err := c.transport.Connect(guildID, channelID)
	if err != nil {
		s.resetLocked()
		if errors.Is(err, ErrAlreadyConnected) {
			return reject(CodeBusy)
		}
		return failed(fmt.Errorf("failed to join voice channel: %w", err))
	}
	s.conn = conn

	if name, started := c.startNextLocked(s); started {
		return ok(name)
	}

	// Nothing playable at all. Leave rather than sit in the channel mute.
	_ = conn.Disconnect()
	s.resetLocked()
	return failed(errNothingPlayable)
}

// Pause suspends playback and arms the inactivity timer.
func (c *Controller) Pause(guildID string) Result {
	s, found := c.registry.Get(guildID)
	if !found {
		return reject(CodeNothingPlaying)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.conn == nil {
		return reject(CodeNothingPlaying)
	}

	s.conn.Pause()
	s.status = StatusPaused

	s.pauseSeq++
	seq := s.pauseSeq
	s.idleTimer = time.AfterFunc(c.idleTimeout, func() {
		c.autoDisconnect(guildID, seq)
	})

	return ok(s.current)
}

// Resume continues a paused session and cancels the inactivity timer.
func (c *Controller) Resume(guildID string) Result {
	s, found := c.registry.Get(guildID)
	if !found {
		return reject(CodeNotPaused)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPaused || s.conn == nil {
		return reject(CodeNotPaused)
	}

	s.stopIdleTimerLocked()

	// A session parked because the library ran dry has no suspended stream;
	// try to start one rather than pretending to play.
	if s.current == "" {
		if name, started := c.startNextLocked(s); started {
			return ok(name)
		}
		return reject(CodeNothingPlaying)
	}

	s.conn.Resume()
	s.status = StatusPlaying

	return ok(s.current)
}

// Stop force-closes the guild's connection and clears playback state. Safe
// from any state; a no-op when already disconnected.
func (c *Controller) Stop(guildID string) Result {
	s := c.registry.Ensure(guildID)

	s.mu.Lock()
	defer s.mu.Unlock()

	conn := s.conn
	s.resetLocked()

	if conn != nil {
		conn.StopAudio()
		if err := conn.Disconnect(); err != nil {
			log.Printf("[ERR] [%s] Error leaving voice channel: %v", guildID, err)
		}
		c.setPresence("")
	}

	return ok("")
}

// Skip force-ends the current track, driving the same continuation as a
// natural end of track. Only callers outside the session's voice channel may
// skip; it is a remote moderation tool.
func (c *Controller) Skip(guildID, userID string) Result {
	s, found := c.registry.Get(guildID)
	if !found {
		return reject(CodeNothingPlaying)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.conn == nil {
		return reject(CodeNothingPlaying)
	}

	listeners, err := c.transport.Listeners(guildID, s.conn.ChannelID())
	if err != nil {
		return failed(fmt.Errorf("failed to check voice channel members: %w", err))
	}
	if slices.Contains(listeners, userID) {
		return reject(CodeCallerPresent)
	}

	skipped := s.current
	s.conn.StopAudio()
	return ok(skipped)
}

// PlayEffect plays a single fixed sound to completion and disconnects from
// its own completion handler. Independent of the session machinery: it never
// touches the playlist or status, only the guild-level busy check applies.
func (c *Controller) PlayEffect(guildID, channelID, path string) Result {
	if c.transport.Connected(guildID) {
		return reject(CodeBusy)
	}

	conn, err := c.transport.Connect(guildID, channelID)
	if err != nil {
		if errors.Is(err, ErrAlreadyConnected) {
			return reject(CodeBusy)
		}
		return failed(fmt.Errorf("failed to join voice channel: %w", err))
	}

	src, err := c.transport.Probe(path)
	if err != nil {
		_ = conn.Disconnect()
		return failed(fmt.Errorf("failed to open effect %s: %w", path, err))
	}

	err = conn.Play(src, func(playErr error) {
		if playErr != nil {
			log.Printf("[ERR] [%s] Effect playback error: %v", guildID, playErr)
		}
		if err := conn.Disconnect(); err != nil {
			log.Printf("[ERR] [%s] Error leaving voice channel after effect: %v", guildID, err)
		}
	})
	if err != nil {
		src.Close()
		_ = conn.Disconnect()
		return failed(fmt.Errorf("failed to play effect: %w", err))
	}

	return ok("")
}

// RefreshPassive re-evaluates packet suppression for the guild, typically on
// voice state changes.
func (c *Controller) RefreshPassive(guildID string) {
	s, found := c.registry.Get(guildID)
	if !found {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil || (s.status != StatusPlaying && s.status != StatusPaused) {
		return
	}
	c.applyPassiveLocked(s)
}

// NowPlaying reports the current track name and status for a guild.
func (c *Controller) NowPlaying(guildID string) (string, Status) {
	s, found := c.registry.Get(guildID)
	if !found {
		return "", StatusDisconnected
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.status
}

// LeaveGuild tears down the guild's session entirely.
func (c *Controller) LeaveGuild(guildID string) {
	c.Stop(guildID)
	c.registry.Remove(guildID)
}

// startNextLocked consumes tracks until one starts streaming, regenerating
// the playlist once on exhaustion. A track that fails to probe or play is
// logged and skipped; it must not stall the session. Returns false when the
// library has nothing playable even after a refill, in which case the session
// is parked Paused but stays connected. Caller holds s.mu and s.conn is set.
func (c *Controller) startNextLocked(s *Session) (string, bool) {
	for {
		name, err := s.playlist.Consume()
		if err != nil {
			s.playlist = playlist.Generate(c.lib)
			if name, err = s.playlist.Consume(); err != nil {
				log.Printf("[WARN] [%s] Tried to refill the playlist but it stayed empty", s.guildID)
				s.current = ""
				s.status = StatusPaused
				return "", false
			}
		}

		track, found := c.lib.Snapshot().Lookup(name)
		if !found {
			log.Printf("[WARN] [%s] Track %q is gone from the library, skipping", s.guildID, name)
			continue
		}

		src, err := c.transport.Probe(track.Path)
		if err != nil {
			log.Printf("[ERR] [%s] Failed to probe %s: %v", s.guildID, track.Path, err)
			continue
		}

		gen := s.gen
		guildID := s.guildID
		if err := s.conn.Play(src, func(playErr error) {
			c.onTrackDone(guildID, gen, playErr)
		}); err != nil {
			src.Close()
			log.Printf("[ERR] [%s] Failed to start track %q: %v", s.guildID, track.Name, err)
			continue
		}

		s.status = StatusPlaying
		s.current = track.Name
		c.setPresence(track.Name)
		c.applyPassiveLocked(s)
		c.recordPlay(s.guildID, track)

		log.Printf("[INFO] [%s] Now playing %q (%s)", s.guildID, track.Name, track.Album)
		return track.Name, true
	}
}

// onTrackDone is the continuation for a finished stream. It runs on the
// transport's goroutine; the session mutex serializes it against commands and
// other completions, and the generation check drops callbacks that a Stop or
// disconnect already cancelled.
func (c *Controller) onTrackDone(guildID string, gen uint64, playErr error) {
	s, found := c.registry.Get(guildID)
	if !found {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.conn == nil || s.status != StatusPlaying {
		return
	}

	if playErr != nil {
		// One bad track must not stall the session; log and move on.
		log.Printf("[ERR] [%s] Player error on %q: %v", guildID, s.current, playErr)
	}

	c.startNextLocked(s)
}

// autoDisconnect fires when a paused session sat idle for the full timeout.
// The seq check discards a firing whose pause was already resumed, even when
// a later pause re-armed the timer while this one was blocked on the mutex.
func (c *Controller) autoDisconnect(guildID string, seq uint64) {
	s, found := c.registry.Get(guildID)
	if !found {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.pauseSeq || s.status != StatusPaused {
		return
	}

	log.Printf("[INFO] [%s] Paused for %v, leaving voice channel", guildID, c.idleTimeout)

	conn := s.conn
	s.resetLocked()
	if conn != nil {
		conn.StopAudio()
		if err := conn.Disconnect(); err != nil {
			log.Printf("[ERR] [%s] Error leaving voice channel: %v", guildID, err)
		}
	}
	c.setPresence("")
}

// applyPassiveLocked suppresses outbound audio while nobody is listening.
// The playlist keeps advancing either way. Caller holds s.mu.
func (c *Controller) applyPassiveLocked(s *Session) {
	listeners, err := c.transport.Listeners(s.guildID, s.conn.ChannelID())
	if err != nil {
		log.Printf("[WARN] [%s] Failed to check listeners: %v", s.guildID, err)
		return
	}
	s.conn.SetSilent(len(listeners) == 0)
}

func (c *Controller) setPresence(text string) {
	if c.presence == nil {
		return
	}
	go func() {
		if err := c.presence.SetStatus(text); err != nil {
			log.Printf("[WARN] Failed to update presence: %v", err)
		}
	}()
}

func (c *Controller) recordPlay(guildID string, track library.Track) {
	if c.history == nil {
		return
	}
	if err := c.history.AppendTrackToHistory(guildID, track.Name, track.Album); err != nil {
		log.Printf("[WARN] [%s] Failed to record track history: %v", guildID, err)
	}
}
