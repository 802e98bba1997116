// /internal/discord/presence.go
package discord

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

const (
	presenceInterval = 15 * time.Second
	presenceBurst    = 2
)

// presenceReporter sets the bot's status text to the current track. Discord
// throttles presence updates, so a limiter drops excess updates instead of
// queueing them.
type presenceReporter struct {
	dg      *discordgo.Session
	limiter *rate.Limiter
}

func newPresenceReporter(dg *discordgo.Session) *presenceReporter {
	return &presenceReporter{
		dg:      dg,
		limiter: rate.NewLimiter(rate.Every(presenceInterval), presenceBurst),
	}
}

func (p *presenceReporter) SetStatus(text string) error {
	if !p.limiter.Allow() {
		log.Printf("[DEBUG] Presence update dropped (rate limited): %q", text)
		return nil
	}
	return p.dg.UpdateGameStatus(0, text)
}
