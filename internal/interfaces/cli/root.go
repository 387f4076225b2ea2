// Package cli implements the lexatlas command line interface.  Commands run
// the ingestion and analysis pipelines locally over a file corpus, without
// requiring the API server.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global CLI flags.
type RootOptions struct {
	LogLevel     string
	OutputFormat string
	Workers      int
}

// NewRootCommand builds the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lexatlas",
		Short: "Legal precedent analysis from opinion corpora",
		Long: "lexatlas ingests a corpus of judicial opinions, builds a precedent\n" +
			"database and analyzes legal issues against it: controlling and persuasive\n" +
			"authority, conflicts, and a structured reasoning chain.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.IntVar(&opts.Workers, "workers", 0, "extraction worker count (0 = default)")

	cmd.AddCommand(newIngestCmd(opts))
	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *RootOptions) logger() logging.Logger {
	l, err := logging.NewLogger(logging.LogConfig{
		Level:            o.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return logging.NewDefaultLogger()
	}
	return l
}

func printResult(cmd *cobra.Command, format string, v interface{}, text func()) error {
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text()
	return nil
}
