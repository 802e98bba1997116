// /internal/command/command_base.go
package command

import (
	"catfm/internal/bot"
	"catfm/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Category() string
	RequireDev() bool
	Run(ctx *Context) error
}

// SlashProvider is implemented by commands that register a slash definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Context carries everything a command handler needs for one invocation.
type Context struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Bot     bot.Radio
}

// Invoker returns the user behind the interaction, whether it came from a
// guild or a DM.
func (ctx *Context) Invoker() *discordgo.User {
	if ctx.Event.Member != nil {
		return ctx.Event.Member.User
	}
	return ctx.Event.User
}
