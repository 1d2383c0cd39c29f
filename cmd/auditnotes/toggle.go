package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

var uncheck bool

var toggleCmd = &cobra.Command{
	Use:   "toggle <file> <line>",
	Short: "Check (or with --uncheck, uncheck) the note at file:line",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		line, err := strconv.Atoi(args[1])
		if err != nil || line < 1 {
			fatal("Invalid line number", fmt.Errorf("%q", args[1]))
		}

		ws := openWorkspace()
		loadChecklist(ws)

		candidates := []string{filepath.Join(ws.Root, args[0])}
		if abs, err := filepath.Abs(args[0]); err == nil {
			candidates = append([]string{abs}, candidates...)
		}

		for _, identity := range candidates {
			note, ok := ws.Session.Find(identity, line)
			if !ok {
				continue
			}
			if err := ws.Session.Toggle(context.Background(), identity, note.Line, note.Content, !uncheck); err != nil {
				fatal("Error saving checklist", err)
			}
			box := "[x]"
			if uncheck {
				box = "[ ]"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s:%d %s\n", box, args[0], line, note.Content)
			return
		}
		fatal("Error toggling note", fmt.Errorf("no note at %s:%d", args[0], line))
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	toggleCmd.Flags().BoolVar(&uncheck, "uncheck", false, "Uncheck instead of check")
}
