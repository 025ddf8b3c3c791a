package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	storesource "github.com/aretw0/configstore/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch [id]",
	Short: "Print changes of the settings file",
	Long:  `Watch prints an event whenever the settings file is created, modified or removed, until interrupted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src := storesource.NewSource(store)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to watch store", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", store.Path())
		for e := range src.Events() {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
