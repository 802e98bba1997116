// /internal/discord/transport.go
package discord

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"catfm/internal/radio"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

const (
	frameDuration = 20 * time.Millisecond
	pauseTick     = 200 * time.Millisecond
)

// voiceTransport implements radio.Transport on top of discordgo voice.
type voiceTransport struct {
	dg *discordgo.Session

	mu    sync.Mutex
	conns map[string]*voiceConn
}

func newVoiceTransport(dg *discordgo.Session) *voiceTransport {
	return &voiceTransport{dg: dg, conns: make(map[string]*voiceConn)}
}

// Connect claims the guild's slot before joining, so two commands racing
// each other cannot both open a connection for the same guild.
func (t *voiceTransport) Connect(guildID, channelID string) (radio.Connection, error) {
	conn := &voiceConn{transport: t, guildID: guildID}
	t.mu.Lock()
	if _, exists := t.conns[guildID]; exists {
		t.mu.Unlock()
		return nil, radio.ErrAlreadyConnected
	}
	t.conns[guildID] = conn
	t.mu.Unlock()

	vc, err := t.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		t.drop(guildID)
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}
	conn.vc = vc
	return conn, nil
}

// Connected reports whether the guild holds any voice connection opened
// through this transport, one-shot effects included.
func (t *voiceTransport) Connected(guildID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.conns[guildID]
	return ok
}

func (t *voiceTransport) drop(guildID string) {
	t.mu.Lock()
	delete(t.conns, guildID)
	t.mu.Unlock()
}

func (t *voiceTransport) Probe(path string) (radio.MediaSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("track file not usable: %w", err)
	}
	reader, cleanup, err := openFFmpegStream(path)
	if err != nil {
		return nil, err
	}
	return &mediaSource{ReadCloser: reader, cleanup: cleanup}, nil
}

func (t *voiceTransport) Listeners(guildID, channelID string) ([]string, error) {
	guild, err := t.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	botID := t.dg.State.User.ID
	var users []string
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID && vs.UserID != botID {
			users = append(users, vs.UserID)
		}
	}
	return users, nil
}

type mediaSource struct {
	io.ReadCloser
	cleanup func()
	once    sync.Once
}

func (m *mediaSource) Close() error {
	var err error
	m.once.Do(func() {
		err = m.ReadCloser.Close()
		if m.cleanup != nil {
			m.cleanup()
		}
	})
	return err
}

// voiceConn is one open voice connection with at most one active stream.
type voiceConn struct {
	transport *voiceTransport
	guildID   string
	vc        *discordgo.VoiceConnection

	mu       sync.Mutex
	paused   bool
	silent   bool
	active   bool
	stop     chan struct{}
	stopOnce *sync.Once
}

func (c *voiceConn) Play(src radio.MediaSource, onDone func(error)) error {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return errors.New("a stream is already active on this connection")
	}
	c.active = true
	c.stop = make(chan struct{})
	c.stopOnce = &sync.Once{}
	stop := c.stop
	c.mu.Unlock()

	go c.sendLoop(src, stop, onDone)
	return nil
}

// sendLoop reads PCM frames, opus-encodes them and feeds the voice
// connection. While silent it keeps consuming frames at stream pace but
// sends nothing, so the playlist advances without using bandwidth.
func (c *voiceConn) sendLoop(src radio.MediaSource, stop <-chan struct{}, onDone func(error)) {
	defer src.Close()

	finish := func(err error) {
		c.mu.Lock()
		c.active = false
		c.mu.Unlock()
		onDone(err)
	}

	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		finish(fmt.Errorf("encoder error: %w", err))
		return
	}

	_ = c.vc.Speaking(true)
	defer func() { _ = c.vc.Speaking(false) }()

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		select {
		case <-stop:
			finish(nil)
			return
		default:
		}

		c.mu.Lock()
		paused, silent := c.paused, c.silent
		c.mu.Unlock()

		if paused {
			select {
			case <-stop:
				finish(nil)
				return
			case <-time.After(pauseTick):
			}
			continue
		}

		if _, err := io.ReadFull(src, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				finish(nil)
			} else {
				finish(fmt.Errorf("read error: %w", err))
			}
			return
		}

		if silent {
			select {
			case <-stop:
				finish(nil)
				return
			case <-time.After(frameDuration):
			}
			continue
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		opus, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			finish(fmt.Errorf("encode error: %w", err))
			return
		}

		select {
		case <-stop:
			finish(nil)
			return
		case c.vc.OpusSend <- opus:
		}
	}
}

func (c *voiceConn) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
	_ = c.vc.Speaking(false)
}

func (c *voiceConn) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
	_ = c.vc.Speaking(true)
}

func (c *voiceConn) StopAudio() {
	c.mu.Lock()
	active, stop, once := c.active, c.stop, c.stopOnce
	c.mu.Unlock()

	if !active || stop == nil {
		return
	}
	once.Do(func() { close(stop) })
}

func (c *voiceConn) SetSilent(silent bool) {
	c.mu.Lock()
	c.silent = silent
	c.mu.Unlock()
}

func (c *voiceConn) ChannelID() string {
	return c.vc.ChannelID
}

func (c *voiceConn) Disconnect() error {
	c.StopAudio()
	c.transport.drop(c.guildID)
	return c.vc.Disconnect()
}
