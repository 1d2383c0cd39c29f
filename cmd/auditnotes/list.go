package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes"
	"github.com/aretw0/auditnotes/pkg/core"
)

var (
	listJSON      bool
	listUnchecked bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes of the checklist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace()
		c := loadChecklist(ws)

		if listJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(c.Files()); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		printCollection(cmd.OutOrStdout(), c, listUnchecked)
	},
}

// loadChecklist loads the persisted checklist or exits with a hint.
func loadChecklist(ws *auditnotes.Workspace) *core.Collection {
	c, err := ws.Session.Load(context.Background())
	switch {
	case errors.Is(err, core.ErrDocumentNotFound):
		fatal("No checklist yet (run 'auditnotes scan')", err)
	case errors.Is(err, core.ErrMalformedDocument):
		printWarning(os.Stderr, err)
	case err != nil:
		fatal("Error loading checklist", err)
	}
	return c
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listUnchecked, "unchecked", false, "Only show unchecked notes")
}
