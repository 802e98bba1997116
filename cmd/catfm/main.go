// /cmd/catfm/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"catfm/internal/config"
	"catfm/internal/discord"
	"catfm/internal/library"
	"catfm/internal/logging"
	"catfm/internal/storage"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagAssets  string
	flagLogFile string
	flagSync    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "catfm",
		Short:         "CatFM, a background radio bot for Discord",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", config.DefaultConfigFile, "path to the config file")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "override the assets directory")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "also write logs to this file, with rotation")
	rootCmd.Flags().BoolVar(&flagSync, "sync", false, "re-register slash commands on startup")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[ERR] %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logging.Setup(flagLogFile)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAssets != "" {
		cfg.Assets = flagAssets
	}
	cfg.Sync = flagSync

	if cfg.Token == "" {
		return errors.New("no bot token configured, set it in the config file or DISCORD_TOKEN")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	lib := library.New(filepath.Join(cfg.Assets, "songs"))
	if err := lib.Rebuild(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := lib.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[ERR] Assets watcher stopped: %v", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, store, lib)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("[INFO] Received signal: %v", sig)
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}
