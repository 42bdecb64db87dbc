// Command pencil renders, replays, validates and converts pencil scene
// documents.
//
//	pencil render scene.yaml -o scene.png
//	pencil render scene.json -o scene.png --watch
//	pencil validate scene.json
//	pencil play scene.yaml --script steps.yaml --out shots
//	pencil convert scene.json scene.yaml
//	pencil types
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shamseena-dev/pencil"
)

type globalFlags struct {
	configPath string
	logLevel   string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pencil:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "pencil",
		Short:         "Render, replay and inspect pencil scene documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "TOML settings file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "log frame statistics and tree warnings")

	root.AddCommand(
		newRenderCmd(&g),
		newValidateCmd(&g),
		newPlayCmd(&g),
		newConvertCmd(),
		newTypesCmd(),
	)
	return root
}

// loadConfig reads the settings file, if any, applies flag overrides and
// installs the logger.
func (g *globalFlags) loadConfig() (pencil.Config, error) {
	cfg := pencil.DefaultConfig()
	if g.configPath != "" {
		var err error
		if cfg, err = pencil.LoadConfig(g.configPath); err != nil {
			return cfg, err
		}
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	level, err := cfg.Level()
	if err != nil {
		return cfg, err
	}
	pencil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}
