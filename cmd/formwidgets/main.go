// Formwidgets renders widget row documents as terminal forms.
//
// A row document is a YAML or JSON list of rows, each row a list of cells
// naming a widget type, an id and its props. Formwidgets assembles the
// document and drives it as a full-screen form, walks it as a sequential
// line-mode session, or publishes the built-in widget guide.
//
// Usage:
//
//	formwidgets [command] [flags]
//
// See 'formwidgets --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwidgets/internal/config"
	"github.com/goliatone/go-formwidgets/internal/logging"
	"github.com/goliatone/go-formwidgets/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	logLevel string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "formwidgets",
	Short: "Terminal form widgets for tool builders",
	Long: `Render widget row documents as terminal forms.

A row document describes a grid of widgets: text fields, sliders, color
pickers, tag editors, file uploads and more. Formwidgets runs such a
document interactively, fills it over line prompts, or publishes the
widget guide that documents every type.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevel); err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log verbosity (debug, info, warn, error); silent when empty")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formwidgets %s\n", version.Full())
	},
}
