package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes"
	lcadapter "github.com/aretw0/auditnotes/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scan, then re-scan whenever a matching source file changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ws := openWorkspace(auditnotes.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher error", "error", err)
		}))
		out := cmd.OutOrStdout()

		report, err := ws.Session.ScanAndSave(ctx, progressPrinter())
		if err != nil {
			fatal("Error scanning", err)
		}
		printReport(out, ws.Store.Locate(), report)

		events, err := ws.Watch(ctx)
		if err != nil {
			fatal("Error starting watcher", err)
		}
		changes := lcadapter.NewSource(events)
		if err := changes.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}

		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", ws.Root)
		for e := range changes.Events() {
			slog.Debug("change detected", "event", e.String())
			if rescan, ok := e.(lcadapter.Rescan); ok {
				for _, change := range rescan.Changes {
					fmt.Fprintf(out, "%s %s\n", lineColor.Sprint(change.Type), change.Path)
				}
			}

			report, err := ws.Session.ScanAndSave(ctx, nil)
			if ctx.Err() != nil {
				break
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
				continue
			}
			printReport(out, ws.Store.Locate(), report)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
