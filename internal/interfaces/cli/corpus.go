package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
)

// loadCorpus reads a corpus from path.  A .json file must hold a JSON array
// of documents; a directory is read as one document per .txt or .md file,
// with the file name (minus extension) as the title.  Directory entries are
// loaded in name order so repeated runs ingest in the same order.
func loadCorpus(path string) ([]document.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("corpus path %s: %w", path, err)
	}

	if !info.IsDir() {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading corpus file: %w", err)
		}
		var docs []document.Document
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
		}
		return docs, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".txt", ".md":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	docs := make([]document.Document, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(path, name))
		if err != nil {
			return nil, fmt.Errorf("reading corpus document %s: %w", name, err)
		}
		docs = append(docs, document.Document{
			Title:   strings.TrimSuffix(name, filepath.Ext(name)),
			Content: string(content),
		})
	}
	return docs, nil
}

// loadCitationNetwork reads a precomputed citation network from a JSON file.
// An empty path yields a nil provider, which disables enrichment.
func loadCitationNetwork(path string) (citation.Provider, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading citation network file: %w", err)
	}
	var network citation.Network
	if err := json.Unmarshal(raw, &network); err != nil {
		return nil, fmt.Errorf("parsing citation network file %s: %w", path, err)
	}
	return citation.NewStaticProvider(network), nil
}
