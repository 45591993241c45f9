// Package cli provides the command-line interface for molsel.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/molviz-labs/molsel/internal/cli/commands"
	"github.com/molviz-labs/molsel/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "molsel",
		Short: "molsel - molecular selection engine",
		Long: `molsel evaluates PyMOL-style selection expressions against molecular
structures.

Expressions combine property predicates (name, resn, chain, elem, resi,
index), classification keywords (protein, water, backbone, ...), boolean
algebra (and/or/not/xor), distance operators (around/xaround/beyond) and
expansion operators (byres/bychain).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), config.ConfigKey(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), newLogger(cfg.Verbose))
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default molsel.yaml)")
	flags.String("state", "", "named-selection database path")
	flags.StringP("output", "o", "", "output format: table, json, csv or count")
	flags.Int("limit", 0, "max rows rendered in tables (0 = unlimited)")
	flags.BoolP("verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(
		commands.NewSelectCmd(),
		commands.NewShellCmd(),
		commands.NewNamesCmd(),
		commands.NewInitCmd(),
		commands.NewVersionCmd(Version, BuildDate, GitCommit),
	)

	return rootCmd
}

// newLogger builds the CLI logger; debug level under --verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
