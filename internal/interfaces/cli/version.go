package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"version":    Version,
				"commit":     GitCommit,
				"build_date": BuildDate,
				"go_version": runtime.Version(),
				"platform":   runtime.GOOS + "/" + runtime.GOARCH,
			}
			return printResult(cmd, opts.OutputFormat, info, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "lexatlas %s\n", Version)
				fmt.Fprintf(out, "  commit:     %s\n", GitCommit)
				fmt.Fprintf(out, "  build date: %s\n", BuildDate)
				fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
				fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			})
		},
	}
}
