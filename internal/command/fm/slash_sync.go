// /internal/command/fm/slash_sync.go
package fm

import (
	"fmt"

	"catfm/internal/bot"
	"catfm/internal/command"

	"github.com/bwmarrin/discordgo"
)

type SyncCommand struct {
	Bot bot.Radio
}

func (c *SyncCommand) Name() string        { return "sync" }
func (c *SyncCommand) Description() string { return "Re-register the bot's slash commands" }
func (c *SyncCommand) Category() string    { return category }
func (c *SyncCommand) RequireDev() bool    { return true }

func (c *SyncCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *SyncCommand) Run(ctx *command.Context) error {
	if err := c.Bot.SyncCommands(ctx.Event.GuildID); err != nil {
		return respond(ctx, fmt.Sprintf("Failed to sync commands: %v", err))
	}
	return respond(ctx, "Commands should be synced.")
}
