package suggest

import (
	"testing"

	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/recency"
	"gotest.tools/v3/assert"
)

func names(tags []model.Tag) []string {
	result := make([]string, len(tags))
	for i, t := range tags {
		result[i] = t.Name
	}
	return result
}

func testCatalog() []model.Tag {
	return []model.Tag{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	}
}

func TestSuggest_EmptyQueryPreservesCatalogOrder(t *testing.T) {
	got := Suggest(testCatalog(), "", recency.New(5))

	assert.DeepEqual(t, names(got), []string{"A", "B", "C"})
}

func TestSuggest_RecentTagFirst(t *testing.T) {
	q := recency.New(5)
	q.Touch("c")

	got := Suggest(testCatalog(), "", q)

	assert.DeepEqual(t, names(got), []string{"C", "A", "B"})
}

func TestSuggest_RecencyOrderAmongRecentTags(t *testing.T) {
	q := recency.New(5)
	q.Touch("a")
	q.Touch("c")

	got := Suggest(testCatalog(), "", q)

	assert.DeepEqual(t, names(got), []string{"C", "A", "B"})
}

func TestSuggest_SubstringFilter(t *testing.T) {
	catalog := []model.Tag{
		{ID: "red", Name: "Red"},
		{ID: "blue", Name: "Blue"},
		{ID: "green", Name: "Green"},
	}

	tests := []struct {
		name    string
		query   string
		touched []string
		want    []string
	}{
		{"case-insensitive contains", "re", nil, []string{"Red", "Green"}},
		{"uppercase query", "RE", nil, []string{"Red", "Green"}},
		{"recency reorders matches", "re", []string{"green"}, []string{"Green", "Red"}},
		{"no match", "xyz", nil, nil},
		{"recent non-match stays out", "blu", []string{"red"}, []string{"Blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := recency.New(5)
			for _, id := range tt.touched {
				q.Touch(id)
			}

			got := Suggest(catalog, tt.query, q)

			if len(tt.want) == 0 {
				assert.Equal(t, len(got), 0)
				return
			}
			assert.DeepEqual(t, names(got), tt.want)
		})
	}
}

func TestSuggest_StaleRecencyIDsIgnored(t *testing.T) {
	q := recency.New(5)
	q.Touch("deleted")
	q.Touch("b")

	got := Suggest(testCatalog(), "", q)

	assert.DeepEqual(t, names(got), []string{"B", "A", "C"})
}

func TestSuggest_DoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	q := recency.New(5)
	q.Touch("c")

	Suggest(catalog, "", q)

	assert.DeepEqual(t, names(catalog), []string{"A", "B", "C"})
}

func TestSuggest_NilRanker(t *testing.T) {
	got := Suggest(testCatalog(), "b", nil)

	assert.DeepEqual(t, names(got), []string{"B"})
}

func TestCache_RecomputesOnlyOnChange(t *testing.T) {
	var c Cache
	calls := 0
	compute := func() []model.Tag {
		calls++
		return testCatalog()
	}

	c.Get("a", 1, 1, compute)
	c.Get("a", 1, 1, compute)
	assert.Equal(t, calls, 1)

	c.Get("ab", 1, 1, compute)
	assert.Equal(t, calls, 2)

	c.Get("ab", 1, 2, compute)
	assert.Equal(t, calls, 3)

	c.Invalidate()
	c.Get("ab", 1, 2, compute)
	assert.Equal(t, calls, 4)
}
