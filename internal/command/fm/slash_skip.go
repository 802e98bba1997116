// /internal/command/fm/slash_skip.go
package fm

import (
	"fmt"

	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

type SkipCommand struct {
	Bot bot.Radio
}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current track, from outside the channel only" }
func (c *SkipCommand) Category() string    { return category }
func (c *SkipCommand) RequireDev() bool    { return false }

func (c *SkipCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *SkipCommand) Run(ctx *command.Context) error {
	res := c.Bot.Controller().Skip(ctx.Event.GuildID, ctx.Invoker().ID)
	if !res.OK() {
		return respond(ctx, describe(res))
	}
	return respond(ctx, fmt.Sprintf("⏭ Skipped: %s", res.Track))
}
