package combobox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/tristate"
	"gotest.tools/v3/assert"
)

func TestGate_Offer(t *testing.T) {
	tags := []model.Tag{
		{ID: "red", Name: "Red"},
		{ID: "kyoto", Name: "Kyoto", ParentID: stringPtr("japan")},
	}

	tests := []struct {
		name     string
		query    string
		parentID *string
		want     bool
	}{
		{"empty query", "", nil, false},
		{"blank query", "   ", nil, false},
		{"new name", "Sunset", nil, true},
		{"existing name", "Red", nil, false},
		{"existing name different case", "rED", nil, false},
		{"substring of existing name", "Re", nil, true},
		{"name exists under other parent", "Kyoto", nil, true},
		{"name exists under same parent", "kyoto", stringPtr("japan"), false},
	}

	g := NewGate(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := g.Offer(tt.query, tt.parentID, tags)
			assert.Equal(t, row != nil, tt.want)
			if row != nil {
				assert.Equal(t, row.Name, tt.query)
				assert.Assert(t, !row.Pending)
			}
		})
	}
}

func TestGate_PendingIsCaseInsensitive(t *testing.T) {
	g := NewGate(time.Second)
	catalog := testCatalog()

	cmd := g.Request(catalog, nil, "Sunset", nil)
	assert.Assert(t, cmd != nil)
	assert.Assert(t, g.Pending("sunset"))
	assert.Assert(t, g.Request(catalog, nil, "SUNSET", nil) == nil)

	g.Resolve("Sunset")
	assert.Assert(t, !g.Pending("Sunset"))
	assert.Assert(t, g.Request(catalog, nil, "Sunset", nil) != nil)
}

func TestGate_PendingIgnoresSurroundingSpace(t *testing.T) {
	g := NewGate(time.Second)
	catalog := testCatalog()

	assert.Assert(t, g.Request(catalog, nil, "Beach", nil) != nil)
	assert.Assert(t, g.Pending("Beach "))
	assert.Assert(t, g.Request(catalog, nil, " beach ", nil) == nil)

	g.Resolve("Beach ")
	assert.Assert(t, !g.Pending("Beach"))
}

func TestGate_RequestCapturesTargets(t *testing.T) {
	g := NewGate(time.Second)
	target := &fakeTarget{id: "T1"}

	cmd := g.Request(testCatalog(), nil, "Sunset", []tristate.Target{target})
	msg, ok := cmd().(TagCreatedMsg)

	assert.Assert(t, ok)
	assert.Equal(t, msg.Tag.Name, "Sunset")
	assert.Equal(t, len(msg.Targets), 1)
	assert.Equal(t, msg.Targets[0].ID(), "T1")
	assert.Equal(t, len(target.tags), 0, "request itself applies nothing")
}

type deadlineCatalog struct{ *fakeCatalog }

func (c deadlineCatalog) CreateTag(ctx context.Context, _ *string, _ string) (model.Tag, error) {
	<-ctx.Done()
	return model.Tag{}, ctx.Err()
}

func TestGate_RequestTimesOut(t *testing.T) {
	g := NewGate(10 * time.Millisecond)

	msg, ok := g.Request(deadlineCatalog{testCatalog()}, nil, "Slow", nil)().(TagCreateFailedMsg)

	assert.Assert(t, ok)
	assert.Equal(t, msg.Name, "Slow")
	assert.Assert(t, errors.Is(msg.Err, context.DeadlineExceeded))
}
