// /internal/radio/transport.go
package radio

import (
	"errors"
	"io"
)

// MediaSource is an opened, playable audio stream (48kHz stereo s16le PCM).
// Closing it releases whatever process or handle backs it.
type MediaSource = io.ReadCloser

// ErrAlreadyConnected is returned by Connect when the guild already holds a
// voice connection. Commands race each other on separate goroutines, so the
// guild slot has to be claimed inside Connect itself, not by a lookahead
// Connected call.
var ErrAlreadyConnected = errors.New("guild already has a voice connection")

// Transport is the voice backend the controller drives. Implementations
// deliver the onDone callback from their own send-loop goroutine, never
// synchronously from inside Play.
type Transport interface {
	// Connect opens a voice connection for the guild's channel, atomically
	// claiming the guild's slot. Fails with ErrAlreadyConnected when the
	// guild holds one already.
	Connect(guildID, channelID string) (Connection, error)

	// Probe opens a media source for a track file.
	Probe(path string) (MediaSource, error)

	// Connected reports whether the guild has any open voice connection,
	// including one playing a one-shot effect.
	Connected(guildID string) bool

	// Listeners returns the non-bot user IDs currently in the channel.
	Listeners(guildID, channelID string) ([]string, error)
}

// Connection is one open voice connection. At most one stream is active on a
// connection at a time.
type Connection interface {
	// Play starts streaming src and invokes onDone exactly once when the
	// stream ends, naturally or via StopAudio, with any stream error.
	Play(src MediaSource, onDone func(error)) error

	// Pause suspends the active stream without discarding it.
	Pause()

	// Resume continues a suspended stream.
	Resume()

	// StopAudio force-ends the active stream; onDone still fires.
	StopAudio()

	// SetSilent toggles packet suppression: the stream keeps advancing but
	// no audio is sent while silent.
	SetSilent(silent bool)

	ChannelID() string
	Disconnect() error
}

// Presence reports the bot's status text.
type Presence interface {
	SetStatus(text string) error
}

// History records played tracks. Optional collaborator.
type History interface {
	AppendTrackToHistory(guildID, name, album string) error
}
