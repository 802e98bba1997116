// /internal/command/fm/slash_nowplaying.go
package fm

import (
	"fmt"
	"strings"

	"catfm/internal/bot"
	"catfm/internal/command"
	"catfm/internal/radio"

	"github.com/bwmarrin/discordgo"
)

type NowPlayingCommand struct {
	Bot bot.Radio
}

func (c *NowPlayingCommand) Name() string        { return "now-playing" }
func (c *NowPlayingCommand) Description() string { return "Show the current track and recent history" }
func (c *NowPlayingCommand) Category() string    { return category }
func (c *NowPlayingCommand) RequireDev() bool    { return false }

func (c *NowPlayingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *NowPlayingCommand) Run(ctx *command.Context) error {
	guildID := ctx.Event.GuildID
	current, status := c.Bot.Controller().NowPlaying(guildID)

	var desc strings.Builder
	switch status {
	case radio.StatusPlaying:
		fmt.Fprintf(&desc, "🎶 Now playing: **%s**\n", current)
	case radio.StatusPaused:
		if current != "" {
			fmt.Fprintf(&desc, "⏸ Paused on: **%s**\n", current)
		} else {
			desc.WriteString("⏸ Connected, nothing to play.\n")
		}
	default:
		desc.WriteString("Not playing anything right now.\n")
	}

	if ctx.Storage != nil {
		history, err := ctx.Storage.FetchTrackHistory(guildID)
		if err == nil && len(history) > 0 {
			desc.WriteString("\nRecently played:\n")
			// Newest last in storage; show newest first.
			for i := len(history) - 1; i >= 0; i-- {
				rec := history[i]
				fmt.Fprintf(&desc, "• %s (%s)\n", rec.Name, rec.Album)
			}
		}
	}

	return bot.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
		Title:       "📻 CatFM",
		Description: desc.String(),
	})
}
