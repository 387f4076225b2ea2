// Package concepts implements the legal concept extraction port with a
// phrase lexicon.  Matching is case-insensitive substring search over a fixed
// vocabulary, which keeps tagging deterministic and dependency-free while an
// NLP-backed collaborator is not deployed.
package concepts

import (
	"context"
	"strings"

	"github.com/lexatlas/precedent-intelligence/internal/domain/concept"
)

// lexiconEntry maps one concept tag to the phrases that signal it.
type lexiconEntry struct {
	Concept string
	Phrases []string
}

// defaultLexicon covers the doctrines the analysis layer scores against.
// Order is significant: extraction emits tags in lexicon order so repeated
// runs over the same text produce identical tag lists.
var defaultLexicon = []lexiconEntry{
	{"due_process", []string{"due process"}},
	{"equal_protection", []string{"equal protection"}},
	{"first_amendment", []string{"first amendment", "freedom of speech", "free exercise"}},
	{"fourth_amendment", []string{"fourth amendment", "unreasonable search", "search and seizure"}},
	{"negligence", []string{"negligence", "duty of care", "breach of duty"}},
	{"proximate_cause", []string{"proximate cause", "foreseeability"}},
	{"strict_liability", []string{"strict liability", "abnormally dangerous"}},
	{"breach_of_contract", []string{"breach of contract", "material breach"}},
	{"consideration", []string{"consideration", "bargained-for exchange"}},
	{"promissory_estoppel", []string{"promissory estoppel", "detrimental reliance"}},
	{"easement", []string{"easement", "right of way"}},
	{"adverse_possession", []string{"adverse possession", "hostile possession"}},
	{"eminent_domain", []string{"eminent domain", "just compensation", "takings clause"}},
	{"habeas_corpus", []string{"habeas corpus"}},
	{"double_jeopardy", []string{"double jeopardy"}},
	{"miranda_rights", []string{"miranda", "right to remain silent"}},
	{"standing", []string{"standing to sue", "injury in fact"}},
	{"preemption", []string{"preemption", "supremacy clause"}},
	{"sovereign_immunity", []string{"sovereign immunity", "qualified immunity"}},
	{"statute_of_limitations", []string{"statute of limitations", "time-barred"}},
	{"res_judicata", []string{"res judicata", "claim preclusion", "collateral estoppel"}},
	{"fiduciary_duty", []string{"fiduciary duty", "duty of loyalty"}},
	{"unjust_enrichment", []string{"unjust enrichment", "quantum meruit"}},
	{"commerce_clause", []string{"commerce clause", "interstate commerce"}},
	{"separation_of_powers", []string{"separation of powers", "nondelegation"}},
}

// LexiconExtractor tags opinion text by phrase lookup.
type LexiconExtractor struct {
	lexicon []lexiconEntry
}

var _ concept.Extractor = (*LexiconExtractor)(nil)

// NewLexiconExtractor builds an extractor over the default vocabulary.
func NewLexiconExtractor() *LexiconExtractor {
	return &LexiconExtractor{lexicon: defaultLexicon}
}

// NewLexiconExtractorWithVocabulary builds an extractor over a caller-supplied
// vocabulary, given as concept tag → signal phrases in emission order.
func NewLexiconExtractorWithVocabulary(entries map[string][]string, order []string) *LexiconExtractor {
	lexicon := make([]lexiconEntry, 0, len(order))
	for _, tag := range order {
		phrases, ok := entries[tag]
		if !ok || len(phrases) == 0 {
			continue
		}
		lexicon = append(lexicon, lexiconEntry{Concept: tag, Phrases: phrases})
	}
	return &LexiconExtractor{lexicon: lexicon}
}

// ExtractConcepts returns the concept tags whose signal phrases appear in the
// text.  Each tag is emitted at most once, in lexicon order.
func (e *LexiconExtractor) ExtractConcepts(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	lowered := strings.ToLower(text)
	var tags []string
	for _, entry := range e.lexicon {
		for _, phrase := range entry.Phrases {
			if strings.Contains(lowered, phrase) {
				tags = append(tags, entry.Concept)
				break
			}
		}
	}
	return tags, nil
}
