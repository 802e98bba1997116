// /internal/discord/bot.go
package discord

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"slices"

	"catfm/internal/bot"
	"catfm/internal/command"
	"catfm/internal/command/fm"
	"catfm/internal/config"
	"catfm/internal/library"
	"catfm/internal/radio"
	"catfm/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord front-end: it owns the gateway session and wires
// commands, voice transport and presence into the playback controller.
type Bot struct {
	dg        *discordgo.Session
	cfg       *config.Config
	storage   *storage.Storage
	lib       *library.Library
	transport *voiceTransport
	ctrl      *radio.Controller
}

// StartBot runs the Discord bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage, lib *library.Library) error {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{dg: dg, cfg: cfg, storage: store, lib: lib}
	b.transport = newVoiceTransport(dg)
	b.ctrl = radio.NewController(radio.NewRegistry(), lib, b.transport, newPresenceReporter(dg), store)
	b.registerRadioCommands()

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onGuildDelete)
	dg.AddHandler(b.onVoiceStateUpdate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	for _, guildID := range b.ctrl.Registry().GuildIDs() {
		b.ctrl.Stop(guildID)
	}
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates
}

// registerRadioCommands wires the playback commands into the registry.
func (b *Bot) registerRadioCommands() {
	effectPath := filepath.Join(b.cfg.Assets, "airhorn.webm")

	cmds := []command.Command{
		&fm.JoinCommand{Bot: b},
		&fm.PlayCommand{Bot: b},
		&fm.PauseCommand{Bot: b},
		&fm.StopCommand{Bot: b},
		&fm.SkipCommand{Bot: b},
		&fm.AirHornCommand{Bot: b, EffectPath: effectPath},
		&fm.NowPlayingCommand{Bot: b},
		&fm.SyncCommand{Bot: b},
	}
	for _, cmd := range cmds {
		command.RegisterCommand(cmd,
			command.WithGuildOnly(),
			command.WithDevCheck(),
			command.WithCommandLogger(),
		)
	}
}

// onReady is called once the gateway handshake completes.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.ctrl.Registry().InitConfigured(b.cfg.Guilds, func(guildID string) bool {
		return slices.ContainsFunc(r.Guilds, func(g *discordgo.Guild) bool {
			return g.ID == guildID
		})
	})

	if b.cfg.Sync {
		log.Println("[INFO] Syncing slash commands...")
		for _, g := range r.Guilds {
			if err := b.SyncCommands(g.ID); err != nil {
				log.Printf("[ERR] Failed to sync commands for guild %s: %v", g.ID, err)
			}
		}
	}

	log.Printf("[INFO] ✅ %v is connected and ready.", s.State.User.Username)
}

// onGuildCreate is called when the bot joins or sees a guild.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.ctrl.Registry().Ensure(g.Guild.ID)
}

// onGuildDelete is called when the bot leaves a guild.
func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	log.Printf("[INFO] Left guild %s, dropping its session", g.Guild.ID)
	b.ctrl.LeaveGuild(g.Guild.ID)
}

// onVoiceStateUpdate re-evaluates passive mode whenever listeners come or go.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	b.ctrl.RefreshPassive(v.GuildID)
}

// onInteractionCreate dispatches slash commands.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, found := command.Get(cmdName)
	if !found {
		log.Printf("[WARN] Unknown command: %s", cmdName)
		return
	}

	ctx := &command.Context{
		Session: s,
		Event:   i,
		Storage: b.storage,
		Bot:     b,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running command:", err)
		_ = bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running command: %v", err),
		})
	}
}

// Controller exposes the playback controller to command handlers.
func (b *Bot) Controller() *radio.Controller { return b.ctrl }

// FindUserVoiceState finds the voice state of a user
func (b *Bot) FindUserVoiceState(guildID, userID string) (*bot.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &bot.VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}

// IsDeveloper reports whether the user may run developer-only commands.
func (b *Bot) IsDeveloper(userID string) bool {
	return slices.Contains(b.cfg.Developers, userID)
}

// SyncCommands replaces the guild's registered slash commands with the
// current set.
func (b *Bot) SyncCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var wanted []*discordgo.ApplicationCommand
	for _, cmd := range command.All() {
		if sp, ok := cmd.(command.SlashProvider); ok {
			if def := sp.SlashDefinition(); def != nil {
				wanted = append(wanted, def)
			}
		}
	}

	if _, err := b.dg.ApplicationCommandBulkOverwrite(appID, guildID, wanted); err != nil {
		return fmt.Errorf("failed to register commands for guild %s: %w", guildID, err)
	}
	log.Printf("[INFO] [%s] Registered %d slash commands", guildID, len(wanted))
	return nil
}
