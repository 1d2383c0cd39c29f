package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes"
	"github.com/aretw0/auditnotes/pkg/core"
)

var (
	verbose  bool
	rootDir  string
	markers  []string
	exts     []string
	scanMode string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auditnotes",
	Short: "Collect TODO and @audit markers into a persistent checklist",
	Long: `auditnotes scans source comments for annotation markers (TODO, @audit,
@note, ...) and keeps them in audit-notes.md at the project root.
Checked items stay checked across re-scans as long as the note keeps its
line and text.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "Project root (default: nearest directory with .git, .auditnotes.yaml or audit-notes.md)")
	rootCmd.PersistentFlags().StringSliceVar(&markers, "marker", nil, "Markers to look for, replacing the configured ones")
	rootCmd.PersistentFlags().StringSliceVar(&exts, "ext", nil, "File extensions to scan, replacing the configured ones")
	rootCmd.PersistentFlags().StringVar(&scanMode, "mode", "", "Scan mode: comments or all")
}

// projectRoot returns --root or the root found above the working directory.
func projectRoot() string {
	if rootDir != "" {
		return rootDir
	}

	wd, err := os.Getwd()
	if err != nil {
		fatal("Error getting working directory", err)
	}
	root, err := auditnotes.FindRoot(wd)
	if err != nil {
		if errors.Is(err, core.ErrNoWorkspace) {
			fatal("Error finding project root (run 'auditnotes init' or pass --root)", err)
		}
		fatal("Error finding project root", err)
	}
	return root
}

// openWorkspace opens the project root with the default logger.
func openWorkspace(opts ...auditnotes.Option) *auditnotes.Workspace {
	opts = append([]auditnotes.Option{auditnotes.WithLogger(slog.Default())}, opts...)
	if len(markers) > 0 {
		opts = append(opts, auditnotes.WithMarkers(markers...))
	}
	if len(exts) > 0 {
		opts = append(opts, auditnotes.WithExtensions(exts...))
	}
	if scanMode != "" {
		opts = append(opts, auditnotes.WithScanMode(scanMode))
	}
	ws, err := auditnotes.Open(projectRoot(), opts...)
	if err != nil {
		fatal("Error opening workspace", err)
	}
	return ws
}
