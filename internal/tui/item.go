package tui

import "github.com/nikbrunner/tagbox/internal/model"

// Item is a file row in the list with its resolved tags.
type Item struct {
	File model.File
	Tags []model.Tag // resolved in display order, stale IDs dropped
}

// ID returns the file ID.
func (i Item) ID() string {
	return i.File.ID
}

// Title returns a display title for the item.
func (i Item) Title() string {
	if i.File.Name != "" {
		return i.File.Name
	}
	return i.File.Path
}
