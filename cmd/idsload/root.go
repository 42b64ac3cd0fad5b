package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/internal/app"
	"github.com/heartmarshall/hanzi-ids/internal/config"
)

// cliContext carries state shared by subcommands after initialization.
type cliContext struct {
	configPath string

	cfg *config.Config
	log *slog.Logger
}

// rootCommand creates the command tree.
func rootCommand(cc *cliContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "idsload",
		Short:         "IDS dictionary loader with radical and tone enrichment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "",
		"path to YAML config (default: $CONFIG_PATH, then ./config.yaml)")

	analyzeCmd := analyzeCommand()
	versionCmd := versionCommand()

	rootCmd.AddCommand(
		loadCommand(cc),
		analyzeCmd,
		migrateCommand(cc),
		seedCommand(cc),
		queryCommand(cc),
		versionCmd,
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// analyze and version work without configuration.
		if cmd.Name() == analyzeCmd.Name() || cmd.Name() == versionCmd.Name() {
			return nil
		}
		return cc.init()
	}

	return rootCmd
}

// init loads configuration and installs the logger.
func (cc *cliContext) init() error {
	path := cc.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cc.cfg = cfg
	cc.log = app.NewLogger(cfg.Log)
	cc.log.Debug("config loaded", slog.String("version", app.BuildVersion()))
	return nil
}
