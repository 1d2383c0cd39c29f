package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes/pkg/core"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete audit-notes.md and all checked state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace()

		err := ws.Session.Clear(context.Background())
		if errors.Is(err, core.ErrDocumentNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear:", ws.Store.Locate(), "does not exist")
			return
		}
		if err != nil {
			fatal("Error clearing checklist", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed", ws.Store.Locate())
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
