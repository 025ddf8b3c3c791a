package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var setString bool

var setCmd = &cobra.Command{
	Use:   "set [id] [path] [value]",
	Short: "Set a value",
	Long: `Set the value at a dotted path. The value is parsed as JSON when it is valid JSON
(numbers, booleans, null, objects, arrays) and stored as a plain string otherwise.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore(args[0])

		value := parseValue(args[2], setString)
		if err := store.Set(context.Background(), args[1], value); err != nil {
			fatal("Failed to set value", err)
		}

		fmt.Printf("Set %s in %s\n", args[1], store.Path())
	},
}

// parseValue interprets raw as JSON unless asString is set or it is not valid JSON.
func parseValue(raw string, asString bool) any {
	if asString {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolVarP(&setString, "string", "s", false, "Store the value as a string without JSON parsing")
}
