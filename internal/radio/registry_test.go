// /internal/radio/registry_test.go
package radio

import (
	"slices"
	"testing"
)

func TestRegistryEnsureIsIdempotent(t *testing.T) {
	r := NewRegistry()

	s1 := r.Ensure("g1")
	s2 := r.Ensure("g1")
	if s1 != s2 {
		t.Error("Ensure should return the same session for a guild")
	}
	if s1.GuildID() != "g1" {
		t.Errorf("unexpected guild ID %q", s1.GuildID())
	}
	if s1.Status() != StatusDisconnected {
		t.Errorf("new session should be Disconnected, got %v", s1.Status())
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 session, got %d", r.Len())
	}
}

func TestRegistryGetAndRemove(t *testing.T) {
	r := NewRegistry()

	if _, found := r.Get("g1"); found {
		t.Error("Get must not create sessions")
	}

	r.Ensure("g1")
	if _, found := r.Get("g1"); !found {
		t.Error("session missing after Ensure")
	}

	r.Remove("g1")
	if _, found := r.Get("g1"); found {
		t.Error("session still present after Remove")
	}
}

func TestRegistryGuildIDs(t *testing.T) {
	r := NewRegistry()
	r.Ensure("g1")
	r.Ensure("g2")

	ids := r.GuildIDs()
	slices.Sort(ids)
	if !slices.Equal(ids, []string{"g1", "g2"}) {
		t.Errorf("unexpected guild IDs: %v", ids)
	}
}

func TestRegistryInitConfigured(t *testing.T) {
	r := NewRegistry()

	member := func(guildID string) bool { return guildID != "g-left" }
	r.InitConfigured([]string{"g1", "g-left", "g2"}, member)

	if r.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", r.Len())
	}
	if _, found := r.Get("g-left"); found {
		t.Error("session created for a guild the bot is not a member of")
	}

	// Later calls are no-ops.
	r.InitConfigured([]string{"g3"}, func(string) bool { return true })
	if _, found := r.Get("g3"); found {
		t.Error("InitConfigured ran more than once")
	}
}
