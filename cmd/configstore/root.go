package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/configstore"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	global     bool
	configPath string
	format     string
	readOnly   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "configstore",
	Short: "Inspect and edit configstore settings files",
	Long: `configstore reads and writes the per-application settings files kept by the
configstore library. Keys are dotted paths into nested values (e.g. ui.theme).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the store for id using the persistent flags.
func openStore(id string) *configstore.Store {
	store, err := configstore.New(id, nil,
		configstore.WithGlobalConfigPath(global),
		configstore.WithConfigPath(configPath),
		configstore.WithFormat(format),
		configstore.WithReadOnly(readOnly),
		configstore.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Failed to open store", err)
	}
	return store
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&global, "global", "g", false, "Use the <id>/config.<ext> layout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Explicit settings file (overrides id based resolution)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "File format (json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Refuse to modify the settings file")
}
