// /internal/bot/interface.go
package bot

import "catfm/internal/radio"

// Radio is the surface the Discord bot provides to command handlers.
type Radio interface {
	Controller() *radio.Controller
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
	IsDeveloper(userID string) bool
	SyncCommands(guildID string) error
}

// VoiceState holds minimal voice channel state for a user.
type VoiceState struct {
	ChannelID string
	UserID    string
}
