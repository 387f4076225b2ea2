package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func newStatsCmd(opts *RootOptions) *cobra.Command {
	var serverAddr string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch analysis statistics from a running API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := fetchStatistics(cmd, serverAddr)
			if err != nil {
				return err
			}

			return printResult(cmd, opts.OutputFormat, stats, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Precedents analyzed:          %d\n", stats.PrecedentsAnalyzed)
				fmt.Fprintf(out, "Controlling precedents found: %d\n", stats.ControllingPrecedentsFound)
				fmt.Fprintf(out, "Conflicts resolved:           %d\n", stats.PrecedentConflictsResolved)
				fmt.Fprintf(out, "Reasoning chains generated:   %d\n", stats.ReasoningChainsGenerated)
				fmt.Fprintf(out, "Precedents in database:       %d\n", stats.TotalPrecedentsInDatabase)
			})
		},
	}

	cmd.Flags().StringVar(&serverAddr, "server", "http://localhost:8080", "API server address")

	return cmd
}

func fetchStatistics(cmd *cobra.Command, serverAddr string) (*ptypes.Statistics, error) {
	url := serverAddr + "/api/v1/statistics"
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building statistics request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching statistics from %s: %w", serverAddr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("statistics request failed: %s", resp.Status)
	}

	var stats ptypes.Statistics
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decoding statistics response: %w", err)
	}
	return &stats, nil
}
