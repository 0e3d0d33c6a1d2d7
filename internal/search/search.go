package search

import (
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	File           model.File
	MatchedIndexes []int // byte indexes into File.Path
	Score          int
}

// filePaths implements fuzzy.Source over file paths.
type filePaths []model.File

func (fp filePaths) String(i int) string {
	return fp[i].Path
}

func (fp filePaths) Len() int {
	return len(fp)
}

// FuzzySearchFiles matches files by path.
// Returns results sorted by match score (best first).
func FuzzySearchFiles(files []model.File, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, filePaths(files))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			File:           files[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FilterFiles narrows files to fuzzy matches of query, keeping all files
// for an empty query.
func FilterFiles(files []model.File, query string) []model.File {
	if query == "" {
		return files
	}
	results := FuzzySearchFiles(files, query)
	filtered := make([]model.File, len(results))
	for i, r := range results {
		filtered[i] = r.File
	}
	return filtered
}
