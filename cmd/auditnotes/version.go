package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of auditnotes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("auditnotes version %s\n", strings.TrimSpace(auditnotes.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
