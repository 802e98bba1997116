// /internal/command/fm/slash_stop.go
package fm

import (
	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

type StopCommand struct {
	Bot bot.Radio
}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback and leave the voice channel" }
func (c *StopCommand) Category() string    { return category }
func (c *StopCommand) RequireDev() bool    { return false }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *StopCommand) Run(ctx *command.Context) error {
	c.Bot.Controller().Stop(ctx.Event.GuildID)
	return respond(ctx, "⏹ Playback stopped.")
}
