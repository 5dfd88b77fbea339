// Command shoptill is a keyboard-first point-of-sale terminal for a
// small retail shop: billing, purchases, inventory, customers, and
// credit over the shop backend's REST API.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shoptill/cmd/shoptill/ui"
	"shoptill/internal/api"
	"shoptill/internal/config"
	"shoptill/internal/draft"
	"shoptill/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		baseURL    string
		theme      string
		debug      bool
	)

	root := &cobra.Command{
		Use:          "shoptill",
		Short:        "Point-of-sale terminal for the shop backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if theme != "" {
				cfg.Theme = theme
			}
			if debug {
				cfg.Debug = true
			}
			return run(cfg)
		},
	}

	root.Flags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	root.Flags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides config)")
	root.Flags().StringVar(&theme, "theme", "", "color theme: light or dark")
	root.Flags().BoolVar(&debug, "debug", false, "debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("shoptill " + version)
		},
	})

	return root
}

func run(cfg *config.Config) error {
	log, err := logging.New(cfg.LogPath(), cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	// A broken draft db degrades to an in-memory cache: billing must
	// work even if the local disk does not.
	var drafts draft.Store
	sqliteStore, err := draft.OpenSQLite(cfg.DraftDBPath())
	if err != nil {
		log.Warn("draft db unavailable, drafts will not survive restarts", zap.Error(err))
		drafts = draft.NewMemStore(nil)
	} else {
		defer sqliteStore.Close()
		drafts = sqliteStore
	}

	client := api.New(cfg.BaseURL, cfg.Timeout(), log)

	deps := &ui.Deps{
		API:      client,
		Drafts:   drafts,
		Log:      log,
		Styles:   ui.NewStyles(ui.ThemeByName(cfg.Theme)),
		Debounce: cfg.Debounce(),
	}

	log.Info("starting shoptill",
		zap.String("version", version),
		zap.String("base_url", cfg.BaseURL))

	program := tea.NewProgram(ui.NewApp(deps), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}
	return nil
}
