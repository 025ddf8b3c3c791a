package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path [id]",
	Short: "Print the settings file location",
	Long:  `Print the resolved settings file path. The file is not created.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(openStore(args[0]).Path())
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
