package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the deckflow version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("deckflow " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
