package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes"
	"github.com/aretw0/auditnotes/pkg/adapters/editor"
	"github.com/aretw0/auditnotes/pkg/adapters/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse and check notes interactively",
	Long: `Open the checklist in an interactive view. Space toggles a note,
enter opens it in $VISUAL or $EDITOR, r re-scans.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !isTerminal(os.Stdout) {
			fatal("Error starting ui", errors.New("ui requires a terminal"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		nav := editor.New(slog.Default())
		ws := openWorkspace(auditnotes.WithNavigator(nav))

		report, err := ws.Session.Open(ctx, progressPrinter())
		if err != nil {
			fatal("Error opening checklist", err)
		}
		printWarning(os.Stderr, report.Warning)

		if err := tui.Run(ctx, ws.Session, nav); err != nil {
			fatal("Error running ui", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
