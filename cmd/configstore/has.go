package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var hasCmd = &cobra.Command{
	Use:   "has [id] [path]",
	Short: "Check whether a key exists",
	Long:  `Print true or false. The exit status is 1 when the key does not exist.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])

		ok, err := store.Has(context.Background(), args[1])
		if err != nil {
			fatal("Failed to read store", err)
		}

		fmt.Println(ok)
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(hasCmd)
}
