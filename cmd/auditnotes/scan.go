package main

import (
	"context"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the project and update audit-notes.md",
	Long: `Scan every matching source file, carry over the checked state of the
existing checklist and write the merged result.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace()

		report, err := ws.Session.ScanAndSave(context.Background(), progressPrinter())
		if err != nil {
			fatal("Error scanning", err)
		}
		printReport(cmd.OutOrStdout(), ws.Store.Locate(), report)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
