// /internal/command/fm/slash_pause.go
package fm

import (
	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

type PauseCommand struct {
	Bot bot.Radio
}

func (c *PauseCommand) Name() string        { return "pause" }
func (c *PauseCommand) Description() string { return "Pause playback; leaves the channel after a while" }
func (c *PauseCommand) Category() string    { return category }
func (c *PauseCommand) RequireDev() bool    { return false }

func (c *PauseCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *PauseCommand) Run(ctx *command.Context) error {
	res := c.Bot.Controller().Pause(ctx.Event.GuildID)
	if !res.OK() {
		return respond(ctx, describe(res))
	}
	return respond(ctx, "⏸ Paused. I'll leave the voice channel if nothing happens for a few minutes.")
}
