package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/configstore/pkg/dotpath"
	"github.com/spf13/cobra"
)

var listValues bool

var listCmd = &cobra.Command{
	Use:   "list [id] [pattern]",
	Short: "List keys",
	Long: `List the dotted paths of every leaf value, optionally filtered by a glob pattern.
"*" matches one segment and "**" any number of segments, e.g. "ui.*" or "**.enabled".`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])
		pattern := ""
		if len(args) == 2 {
			pattern = args[1]
		}

		ctx := context.Background()
		doc, err := store.LoadAll(ctx)
		if err != nil {
			fatal("Failed to read store", err)
		}

		keys, err := dotpath.Match(doc, pattern)
		if err != nil {
			fatal("Invalid pattern", err)
		}

		for _, key := range keys {
			if !listValues {
				fmt.Println(key)
				continue
			}
			v, _ := dotpath.Get(doc, key)
			data, err := json.Marshal(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", key, err)
				continue
			}
			fmt.Printf("%s=%s\n", key, data)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listValues, "values", false, "Print key=value pairs")
}
