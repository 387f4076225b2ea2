package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexatlas/precedent-intelligence/internal/application/ingest"
	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/concepts"
)

func newIngestCmd(opts *RootOptions) *cobra.Command {
	var (
		corpusPath    string
		citationsPath string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest an opinion corpus and report extraction results",
		Long: "Classifies each corpus document, extracts precedent records from case\n" +
			"opinions, and enriches them from a citation network when one is provided.",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(corpusPath)
			if err != nil {
				return err
			}
			citations, err := loadCitationNetwork(citationsPath)
			if err != nil {
				return err
			}

			svc, err := ingest.NewService(ingest.Deps{
				Repo:      precedent.NewMemoryRepository(),
				Citations: citations,
				Concepts:  concepts.NewLexiconExtractor(),
				Logger:    opts.logger(),
				Workers:   opts.Workers,
			})
			if err != nil {
				return err
			}

			report, err := svc.IngestCorpus(cmd.Context(), corpus)
			if err != nil {
				return err
			}

			return printResult(cmd, opts.OutputFormat, report, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Documents:          %d\n", report.Documents)
				fmt.Fprintf(out, "Case opinions:      %d\n", report.CaseOpinions)
				fmt.Fprintf(out, "Precedents stored:  %d\n", report.PrecedentsStored)
				fmt.Fprintf(out, "Duplicates skipped: %d\n", report.DuplicatesSkipped)
				fmt.Fprintf(out, "Extraction failed:  %d\n", report.ExtractionFailed)
				fmt.Fprintf(out, "Citations enriched: %d\n", report.CitationsEnriched)
				fmt.Fprintf(out, "Elapsed:            %s\n", report.Elapsed)
			})
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus directory or JSON file (required)")
	cmd.Flags().StringVar(&citationsPath, "citations", "", "citation network JSON file")
	_ = cmd.MarkFlagRequired("corpus")

	return cmd
}
