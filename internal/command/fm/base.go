// /internal/command/fm/base.go
package fm

import (
	"fmt"

	"catfm/internal/bot"
	"catfm/internal/command"
	"catfm/internal/radio"

	"github.com/bwmarrin/discordgo"
)

const category = "📻 Radio"

// describe maps a playback outcome to a user-facing message.
func describe(res radio.Result) string {
	switch res.Code {
	case radio.CodeBusy:
		return "The bot is busy doing something else."
	case radio.CodeNoVoiceChannel:
		return "You are not in a voice channel right now."
	case radio.CodeCallerPresent:
		return "You can't skip while you are in the voice channel yourself."
	case radio.CodeNothingPlaying:
		return "Nothing is playing right now."
	case radio.CodeNotPaused:
		return "Playback is not paused."
	case radio.CodeFailed:
		return fmt.Sprintf("Something went wrong: %v", res.Err)
	default:
		return ""
	}
}

func respond(ctx *command.Context, desc string) error {
	return bot.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
		Description: desc,
	})
}

// callerVoiceState resolves the invoking user's voice channel, or nil when
// they are not in one.
func callerVoiceState(ctx *command.Context) *bot.VoiceState {
	vs, err := ctx.Bot.FindUserVoiceState(ctx.Event.GuildID, ctx.Invoker().ID)
	if err != nil {
		return nil
	}
	return vs
}
