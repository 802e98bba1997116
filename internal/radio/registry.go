// /internal/radio/registry.go
package radio

import (
	"log"
	"sync"
)

// Registry maps guild IDs to their Sessions. The map itself is guarded by a
// RWMutex; per-session state is guarded by each session's own mutex so
// unrelated guilds never serialize on each other.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	initOnce sync.Once
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Ensure returns the guild's session, creating a disconnected one with no
// playlist if it does not exist yet. Idempotent.
func (r *Registry) Ensure(guildID string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[guildID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[guildID]; ok {
		return s
	}
	s = &Session{guildID: guildID, status: StatusDisconnected}
	r.sessions[guildID] = s
	return s
}

// Get returns the session without creating one.
func (r *Registry) Get(guildID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Remove drops a guild's session, when the bot leaves the guild.
func (r *Registry) Remove(guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, guildID)
}

// InitConfigured creates sessions for the configured guilds the bot is
// actually a member of. Runs once per process, on the gateway ready signal;
// later calls are no-ops.
func (r *Registry) InitConfigured(guildIDs []string, member func(guildID string) bool) {
	r.initOnce.Do(func() {
		var created []string
		for _, id := range guildIDs {
			if !member(id) {
				continue
			}
			r.Ensure(id)
			created = append(created, id)
		}
		log.Printf("[INFO] Sessions initialized for guilds: %v", created)
	})
}

// GuildIDs returns the IDs of all guilds with a session, in no particular
// order.
func (r *Registry) GuildIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Len reports how many sessions exist.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
