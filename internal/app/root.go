// Package app contains the Cobra command tree for gcca-parser.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wizardassassin/GCCA-Parser/internal/logging"
	"github.com/wizardassassin/GCCA-Parser/internal/output"
	"github.com/wizardassassin/GCCA-Parser/internal/scanner"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
	flagArchive string
)

// logger is built in PersistentPreRunE; commands may assume it is set.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "gcca-parser",
	Short: "Index a coding competitions archive into one JSON file",
	Long: `gcca-parser walks a coding competitions archive (Code Jam, Kick Start,
Farewell Rounds, Hash Code and friends), finds every problem folder by its
problem.yaml, groups problems into rounds and years, classifies how each
problem is validated, and writes a single consolidated index.

Run 'gcca-parser' with no arguments to rebuild the index with the configured
defaults. The whole index is recomputed on every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(flagVerbose)
		if err != nil {
			return err
		}
		logger = l
		output.ConfigureColor(flagNoColor, os.Stdout)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runBuild,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints err to stderr, one line per consistency fault.
func reportError(err error) {
	var ce *scanner.ConsistencyError
	if errors.As(err, &ce) {
		fmt.Fprintf(os.Stderr, "error: %d archive consistency fault(s); no index written\n", len(ce.Faults))
		for _, f := range ce.Faults {
			fmt.Fprintf(os.Stderr, "  %s %s\n", output.StyleError.Render(string(f.Kind)), f.Path)
			fmt.Fprintf(os.Stderr, "      %s\n", f.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/gcca-parser/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagArchive, "archive", "", "Archive root folder (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&buildFlagOutput, "output", "o", "", "Index file to write, or - for stdout (overrides config)")
	rootCmd.Flags().StringVar(&buildFlagFormat, "format", "", "Index format: json or yaml (overrides config)")
	rootCmd.Flags().BoolVar(&buildFlagRecord, "record", false, "Record this run in the history database")
}
