// /internal/command/fm/slash_airhorn.go
package fm

import (
	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

// AirHornCommand plays one fixed sound in the caller's channel and leaves
// again. It never touches the guild's playlist session.
type AirHornCommand struct {
	Bot        bot.Radio
	EffectPath string
}

func (c *AirHornCommand) Name() string        { return "air-horn" }
func (c *AirHornCommand) Description() string { return "Drop by your voice channel with an air horn" }
func (c *AirHornCommand) Category() string    { return category }
func (c *AirHornCommand) RequireDev() bool    { return false }

func (c *AirHornCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AirHornCommand) Run(ctx *command.Context) error {
	vs := callerVoiceState(ctx)
	if vs == nil {
		return respond(ctx, "You are not in a voice channel right now.")
	}

	res := c.Bot.Controller().PlayEffect(ctx.Event.GuildID, vs.ChannelID, c.EffectPath)
	if !res.OK() {
		return respond(ctx, describe(res))
	}
	return respond(ctx, "📯 Incoming!")
}
