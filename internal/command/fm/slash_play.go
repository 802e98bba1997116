// /internal/command/fm/slash_play.go
package fm

import (
	"fmt"

	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

type PlayCommand struct {
	Bot bot.Radio
}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Resume playback if paused" }
func (c *PlayCommand) Category() string    { return category }
func (c *PlayCommand) RequireDev() bool    { return false }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *PlayCommand) Run(ctx *command.Context) error {
	res := c.Bot.Controller().Resume(ctx.Event.GuildID)
	if !res.OK() {
		return respond(ctx, describe(res))
	}
	return respond(ctx, fmt.Sprintf("▶️ Resumed: %s", res.Track))
}
