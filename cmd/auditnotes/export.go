package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes/pkg/checklist"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the checklist as markdown, JSON, YAML or HTML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws := openWorkspace()
		c := loadChecklist(ws)

		data, err := checklist.Export(c, exportFormat)
		if err != nil {
			fatal("Error exporting", err)
		}

		if exportOutput == "" || exportOutput == "-" {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				fatal("Error writing output", err)
			}
			return
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			fatal("Error writing output", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d notes to %s\n", c.NoteCount(), exportOutput)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format ("+strings.Join(checklist.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
