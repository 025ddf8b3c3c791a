package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [id] [path]",
	Short: "Print a value",
	Long:  `Print the value at a dotted path as JSON. Without a path the whole document is printed.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])
		ctx := context.Background()

		var value any
		if len(args) == 1 {
			doc, err := store.LoadAll(ctx)
			if err != nil {
				fatal("Failed to read store", err)
			}
			value = doc
		} else {
			v, ok, err := store.Lookup(ctx, args[1])
			if err != nil {
				fatal("Failed to read store", err)
			}
			if !ok {
				fmt.Fprintf(os.Stderr, "Key not found: %s\n", args[1])
				os.Exit(1)
			}
			value = v
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
