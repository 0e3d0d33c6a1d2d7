package search

import (
	"testing"

	"github.com/nikbrunner/tagbox/internal/model"
)

func testFiles() []model.File {
	return []model.File{
		{ID: "f1", Path: "/photos/2024/kyoto-temple.jpg", Name: "kyoto-temple.jpg"},
		{ID: "f2", Path: "/photos/2024/beach.jpg", Name: "beach.jpg"},
		{ID: "f3", Path: "/notes/kyoto.md", Name: "kyoto.md"},
	}
}

func TestFuzzySearchFiles_EmptyQuery(t *testing.T) {
	results := FuzzySearchFiles(testFiles(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchFiles_Match(t *testing.T) {
	results := FuzzySearchFiles(testFiles(), "beach")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].File.ID != "f2" {
		t.Errorf("expected f2, got %s", results[0].File.ID)
	}
	if len(results[0].MatchedIndexes) != len("beach") {
		t.Errorf("expected %d matched indexes, got %d", len("beach"), len(results[0].MatchedIndexes))
	}
}

func TestFuzzySearchFiles_FuzzyAcrossSegments(t *testing.T) {
	results := FuzzySearchFiles(testFiles(), "ntkyo")

	if len(results) != 1 || results[0].File.ID != "f3" {
		t.Fatalf("expected only /notes/kyoto.md, got %v", results)
	}
}

func TestFuzzySearchFiles_NoMatch(t *testing.T) {
	if results := FuzzySearchFiles(testFiles(), "zzz"); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestFuzzySearchFiles_SortedByScore(t *testing.T) {
	results := FuzzySearchFiles(testFiles(), "kyoto")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score < results[1].Score {
		t.Errorf("expected results sorted by score, got %d then %d", results[0].Score, results[1].Score)
	}
}

func TestFilterFiles(t *testing.T) {
	files := testFiles()

	if got := FilterFiles(files, ""); len(got) != 3 {
		t.Errorf("expected all files for empty query, got %d", len(got))
	}
	if got := FilterFiles(files, "beach"); len(got) != 1 || got[0].ID != "f2" {
		t.Errorf("expected [f2], got %v", got)
	}
}
