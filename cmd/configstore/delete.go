package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id] [path]",
	Short: "Delete a key",
	Long:  `Delete removes the value at a dotted path. Deleting a missing key is not an error.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])

		if err := store.Delete(context.Background(), args[1]); err != nil {
			fatal("Failed to delete key", err)
		}

		fmt.Printf("Deleted %s\n", args[1])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
