package concepts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconExtractor_ExtractConcepts(t *testing.T) {
	extractor := NewLexiconExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single doctrine",
			text: "The ordinance violates the Due Process clause of the Fourteenth Amendment.",
			want: []string{"due_process"},
		},
		{
			name: "multiple doctrines in lexicon order",
			text: "Plaintiff alleges negligence and argues the injury was a foreseeability question; defendant raises the statute of limitations.",
			want: []string{"negligence", "proximate_cause", "statute_of_limitations"},
		},
		{
			name: "phrase variants map to one tag",
			text: "An unreasonable search under the Fourth Amendment requires a warrant; search and seizure doctrine controls.",
			want: []string{"fourth_amendment"},
		},
		{
			name: "no doctrine match",
			text: "The court continued the hearing to the following term.",
			want: nil,
		},
		{
			name: "empty text",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.ExtractConcepts(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexiconExtractor_CustomVocabulary(t *testing.T) {
	extractor := NewLexiconExtractorWithVocabulary(map[string][]string{
		"riparian_rights": {"riparian", "water rights"},
		"mineral_rights":  {"mineral estate"},
		"empty":           {},
	}, []string{"mineral_rights", "riparian_rights", "empty", "missing"})

	got, err := extractor.ExtractConcepts(context.Background(),
		"The severed mineral estate does not extinguish the surface owner's riparian interests.")
	require.NoError(t, err)
	assert.Equal(t, []string{"mineral_rights", "riparian_rights"}, got)
}

func TestLexiconExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLexiconExtractor().ExtractConcepts(ctx, "due process")
	require.Error(t, err)
}

func TestLexiconExtractor_Deterministic(t *testing.T) {
	extractor := NewLexiconExtractor()
	text := "Equal protection and due process claims, plus a habeas corpus petition."

	first, err := extractor.ExtractConcepts(context.Background(), text)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := extractor.ExtractConcepts(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"due_process", "equal_protection", "habeas_corpus"}, first)
}
