package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear [id]",
	Short: "Remove every key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])

		if err := store.Clear(context.Background()); err != nil {
			fatal("Failed to clear store", err)
		}

		fmt.Printf("Cleared %s\n", store.Path())
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
