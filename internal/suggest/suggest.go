// Package suggest ranks tag candidates for the tag combobox.
package suggest

import (
	"slices"
	"strings"

	"github.com/nikbrunner/tagbox/internal/model"
)

// Ranker reports the recency position of a tag ID.
// *recency.Queue satisfies it.
type Ranker interface {
	Rank(id string) (int, bool)
}

// Suggest returns the tags whose name contains query (case-insensitive),
// or all tags for an empty query. Recently used tags come first in recency
// order; tags that were never used keep their catalog order.
func Suggest(tags []model.Tag, query string, ranker Ranker) []model.Tag {
	result := Filter(tags, query)
	if ranker == nil {
		return result
	}

	slices.SortStableFunc(result, func(a, b model.Tag) int {
		rankA, okA := ranker.Rank(a.ID)
		rankB, okB := ranker.Rank(b.ID)
		switch {
		case okA && okB:
			return rankA - rankB
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
	return result
}

// Filter returns a fresh slice of tags whose name contains query,
// ignoring case. An empty query matches every tag.
func Filter(tags []model.Tag, query string) []model.Tag {
	if query == "" {
		return slices.Clone(tags)
	}

	needle := strings.ToLower(query)
	var result []model.Tag
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			result = append(result, t)
		}
	}
	return result
}

// Cache memoizes the last Suggest result.
// Callers pass revisions of the catalog and recency queue; the result is
// recomputed only when the query or a revision changes.
type Cache struct {
	valid      bool
	query      string
	catalogRev uint64
	recencyRev uint64
	result     []model.Tag
}

// Get returns the cached suggestions for the given inputs, calling compute on a miss.
func (c *Cache) Get(query string, catalogRev, recencyRev uint64, compute func() []model.Tag) []model.Tag {
	if c.valid && c.query == query && c.catalogRev == catalogRev && c.recencyRev == recencyRev {
		return c.result
	}

	c.result = compute()
	c.query = query
	c.catalogRev = catalogRev
	c.recencyRev = recencyRev
	c.valid = true
	return c.result
}

// Invalidate forces the next Get to recompute.
func (c *Cache) Invalidate() {
	c.valid = false
	c.result = nil
}
