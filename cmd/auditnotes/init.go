package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/auditnotes"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .auditnotes.yaml",
	Long: `Write a settings file with the default markers, extensions and
exclusions. The directory containing it becomes a project root.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir := rootDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			dir = cwd
		}

		path, err := auditnotes.WriteSettings(dir, auditnotes.DefaultSettings(), initForce)
		if errors.Is(err, auditnotes.ErrSettingsExist) {
			fatal("Settings already exist (use --force to overwrite)", fmt.Errorf("%s", path))
		}
		if err != nil {
			fatal("Failed to write settings", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing settings file")
}
