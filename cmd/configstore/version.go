package main

import (
	"fmt"

	"github.com/aretw0/configstore"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of configstore",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("configstore version %s\n", configstore.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
