package model

import (
	"path/filepath"
	"slices"
	"time"
)

// File is a taggable entity identified by its filesystem path.
type File struct {
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Tags    []string  `json:"tags"` // tag IDs in the order they were applied
	AddedAt time.Time `json:"addedAt"`
}

// NewFileParams holds parameters for creating a new File.
type NewFileParams struct {
	Path string
	Name string // defaults to the base name of Path
	Tags []string
}

// NewFile creates a File with generated UUID and timestamp.
func NewFile(params NewFileParams) File {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	name := params.Name
	if name == "" {
		name = filepath.Base(params.Path)
	}

	return File{
		ID:      GenerateUUID(),
		Path:    params.Path,
		Name:    name,
		Tags:    tags,
		AddedAt: time.Now(),
	}
}

// HasTag returns true if the file carries the tag.
func (f *File) HasTag(tagID string) bool {
	return slices.Contains(f.Tags, tagID)
}

// AddTag appends the tag if the file doesn't carry it yet.
// Returns true if the tag was added.
func (f *File) AddTag(tagID string) bool {
	if f.HasTag(tagID) {
		return false
	}
	f.Tags = append(f.Tags, tagID)
	return true
}

// RemoveTag removes the tag from the file.
// Returns true if the tag was present.
func (f *File) RemoveTag(tagID string) bool {
	idx := slices.Index(f.Tags, tagID)
	if idx < 0 {
		return false
	}
	f.Tags = slices.Delete(f.Tags, idx, idx+1)
	return true
}
