package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/session"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the checklist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace()

		if _, err := ws.Session.Load(context.Background()); err != nil &&
			!errors.Is(err, core.ErrDocumentNotFound) && !errors.Is(err, core.ErrMalformedDocument) {
			fatal("Error loading checklist", err)
		}

		components := map[string]any{}
		for _, c := range []any{ws.Session, ws.Store, ws.Session.Current()} {
			intro, ok := c.(introspection.Introspectable)
			if !ok {
				continue
			}
			name := "unknown"
			if comp, ok := c.(introspection.Component); ok {
				name = comp.ComponentType()
			}
			components[name] = intro.State()
		}

		if statusJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(components); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		st, _ := ws.Session.State().(session.State)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Root:     %s\n", ws.Root)
		fmt.Fprintf(out, "Document: %s\n", st.Document)
		fmt.Fprintf(out, "Status:   %s\n", st.Status)
		if st.Loaded {
			fmt.Fprintf(out, "Notes:    %d/%d checked in %d files\n", st.Checked, st.Notes, st.Files)
		}
		fmt.Fprintf(out, "Markers:  %v (checkable %v)\n", ws.Settings.Markers, ws.Settings.CheckableMarkers)
		fmt.Fprintf(out, "Scanning: %v files in %s mode\n", ws.Settings.FileExtensions, ws.Settings.ScanMode)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output component state as JSON")
}
