package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lexatlas/precedent-intelligence/internal/application/analysis"
	"github.com/lexatlas/precedent-intelligence/internal/application/ingest"
	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/concepts"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func newAnalyzeCmd(opts *RootOptions) *cobra.Command {
	var (
		corpusPath    string
		citationsPath string
		issue         string
		jurisdiction  string
		facts         string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a legal issue against an opinion corpus",
		Long: "Ingests the corpus, then retrieves, classifies and ranks precedents for\n" +
			"the given issue: controlling and persuasive authority, conflicts, and a\n" +
			"structured reasoning chain with a confidence score.",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(corpusPath)
			if err != nil {
				return err
			}
			citations, err := loadCitationNetwork(citationsPath)
			if err != nil {
				return err
			}

			logger := opts.logger()
			repo := precedent.NewMemoryRepository()

			ingestSvc, err := ingest.NewService(ingest.Deps{
				Repo:      repo,
				Citations: citations,
				Concepts:  concepts.NewLexiconExtractor(),
				Logger:    logger,
				Workers:   opts.Workers,
			})
			if err != nil {
				return err
			}
			if _, err := ingestSvc.IngestCorpus(cmd.Context(), corpus); err != nil {
				return err
			}

			analysisSvc, err := analysis.NewService(analysis.Deps{Repo: repo, Logger: logger})
			if err != nil {
				return err
			}
			result, err := analysisSvc.AnalyzeIssue(cmd.Context(), issue,
				ptypes.Jurisdiction(jurisdiction), facts)
			if err != nil {
				return err
			}

			return printResult(cmd, opts.OutputFormat, result, func() {
				writeResultText(cmd.OutOrStdout(), result)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&corpusPath, "corpus", "", "corpus directory or JSON file (required)")
	flags.StringVar(&citationsPath, "citations", "", "citation network JSON file")
	flags.StringVar(&issue, "issue", "", "legal issue to analyze (required)")
	flags.StringVar(&jurisdiction, "jurisdiction", "", "target jurisdiction, e.g. US_Federal or US_State_Ohio")
	flags.StringVar(&facts, "facts", "", "user facts to apply the extracted rules to")
	_ = cmd.MarkFlagRequired("corpus")
	_ = cmd.MarkFlagRequired("issue")

	return cmd
}

func writeResultText(out io.Writer, result *ptypes.AnalysisResult) {
	fmt.Fprintf(out, "Issue:        %s\n", result.LegalIssue)
	if result.Jurisdiction != "" {
		fmt.Fprintf(out, "Jurisdiction: %s\n", result.Jurisdiction)
	}
	fmt.Fprintf(out, "Confidence:   %.2f\n\n", result.ConfidenceScore)

	writePrecedentSection(out, "Controlling precedents", result.ControllingPrecedents)
	writePrecedentSection(out, "Persuasive precedents", result.PersuasivePrecedents)
	writePrecedentSection(out, "Conflicting precedents", result.ConflictingPrecedents)

	chain := result.ReasoningChain
	fmt.Fprintf(out, "Reasoning (confidence %.2f):\n", chain.ConfidenceScore)
	fmt.Fprintf(out, "  %s\n", chain.IssueIdentification)
	for _, rule := range chain.RuleExtraction {
		fmt.Fprintf(out, "  - %s\n", rule)
	}
	for _, application := range chain.RuleApplication {
		fmt.Fprintf(out, "  - %s\n", application)
	}
	fmt.Fprintf(out, "  %s\n\n", chain.Conclusion)

	fmt.Fprintf(out, "Summary: %s\n", result.Summary)
}

func writePrecedentSection(out io.Writer, header string, dtos []ptypes.PrecedentDTO) {
	if len(dtos) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", header)
	for _, dto := range dtos {
		fmt.Fprintf(out, "  %-45s %s (authority %.2f, %s)\n",
			dto.CaseName, dto.Court, dto.Authority, dto.Strength)
	}
	fmt.Fprintln(out)
}
