package main

import (
	"context"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Show the existing checklist, scanning first if there is none",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace()

		report, err := ws.Session.Open(context.Background(), progressPrinter())
		if err != nil {
			fatal("Error opening checklist", err)
		}
		out := cmd.OutOrStdout()
		printReport(out, ws.Store.Locate(), report)
		if !report.NoFiles {
			printCollection(out, ws.Session.Current(), false)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
