// /internal/command/fm/slash_join.go
package fm

import (
	"fmt"

	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

type JoinCommand struct {
	Bot bot.Radio
}

func (c *JoinCommand) Name() string        { return "join" }
func (c *JoinCommand) Description() string { return "Join your voice channel and play the playlist" }
func (c *JoinCommand) Category() string    { return category }
func (c *JoinCommand) RequireDev() bool    { return false }

func (c *JoinCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *JoinCommand) Run(ctx *command.Context) error {
	vs := callerVoiceState(ctx)
	if vs == nil {
		return respond(ctx, "You are not in a voice channel right now.")
	}

	res := c.Bot.Controller().Join(ctx.Event.GuildID, vs.ChannelID)
	if !res.OK() {
		return respond(ctx, describe(res))
	}
	return respond(ctx, fmt.Sprintf("Joining the voice channel. 🎶 Now playing: %s", res.Track))
}
