// /internal/command/middleware.go
package command

import (
	"log"
	"time"

	"catfm/internal/bot"
	"catfm/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

// WrappedCommand decorates a command's Run while passing everything else
// through, including its slash definition.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *WrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly rejects invocations from outside a guild.
func WithGuildOnly() Middleware {
	return func(next Command) Command {
		return &WrappedCommand{Command: next, Wrap: func(ctx *Context) error {
			if ctx.Event.GuildID == "" {
				return bot.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
					Description: "This command only works inside a server.",
				})
			}
			return next.Run(ctx)
		}}
	}
}

// WithDevCheck rejects developer-only commands for everyone else.
func WithDevCheck() Middleware {
	return func(next Command) Command {
		return &WrappedCommand{Command: next, Wrap: func(ctx *Context) error {
			if next.RequireDev() && !ctx.Bot.IsDeveloper(ctx.Invoker().ID) {
				return bot.RespondEmbedEphemeral(ctx.Session, ctx.Event, &discordgo.MessageEmbed{
					Description: "This command is reserved for the bot developers.",
				})
			}
			return next.Run(ctx)
		}}
	}
}

// WithCommandLogger records every invocation in the guild's command history.
func WithCommandLogger() Middleware {
	return func(next Command) Command {
		return &WrappedCommand{Command: next, Wrap: func(ctx *Context) error {
			if ctx.Storage != nil && ctx.Event.GuildID != "" {
				user := ctx.Invoker()
				err := ctx.Storage.AppendCommandToHistory(ctx.Event.GuildID, storage.CommandHistoryRecord{
					ChannelID: ctx.Event.ChannelID,
					UserID:    user.ID,
					Username:  user.Username,
					Command:   next.Name(),
					Datetime:  time.Now(),
				})
				if err != nil {
					log.Printf("[WARN] Failed to log command %s: %v", next.Name(), err)
				}
			}
			return next.Run(ctx)
		}}
	}
}
