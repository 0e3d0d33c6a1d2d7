package model

import (
	"slices"
	"strings"
)

// Store holds all tags and files.
type Store struct {
	Tags  []Tag  `json:"tags"`
	Files []File `json:"files"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Tags:  []Tag{},
		Files: []File{},
	}
}

// GetTagsInParent returns tags with the given parent ID.
// Pass nil for root level tags.
func (s *Store) GetTagsInParent(parentID *string) []Tag {
	var result []Tag
	for _, t := range s.Tags {
		if ptrEqual(t.ParentID, parentID) {
			result = append(result, t)
		}
	}
	return result
}

// GetTagByID finds a tag by ID, returns nil if not found.
func (s *Store) GetTagByID(id string) *Tag {
	for i := range s.Tags {
		if s.Tags[i].ID == id {
			return &s.Tags[i]
		}
	}
	return nil
}

// FindTagByName finds a tag by name under the given parent.
// The comparison is case-insensitive. Returns nil if not found.
func (s *Store) FindTagByName(parentID *string, name string) *Tag {
	for i := range s.Tags {
		if ptrEqual(s.Tags[i].ParentID, parentID) && strings.EqualFold(s.Tags[i].Name, name) {
			return &s.Tags[i]
		}
	}
	return nil
}

// TagPath returns the chain of tags from the root down to the tag itself.
// The chain stops early at a parent that no longer exists.
func (s *Store) TagPath(id string) []Tag {
	var path []Tag
	seen := make(map[string]bool)
	current := s.GetTagByID(id)
	for current != nil && !seen[current.ID] {
		seen[current.ID] = true
		path = append([]Tag{*current}, path...)
		if current.ParentID == nil {
			break
		}
		current = s.GetTagByID(*current.ParentID)
	}
	return path
}

// AddTag appends a tag to the store.
func (s *Store) AddTag(t Tag) {
	s.Tags = append(s.Tags, t)
}

// GetFileByID finds a file by ID, returns nil if not found.
func (s *Store) GetFileByID(id string) *File {
	for i := range s.Files {
		if s.Files[i].ID == id {
			return &s.Files[i]
		}
	}
	return nil
}

// GetFileByPath finds a file by path, returns nil if not found.
func (s *Store) GetFileByPath(path string) *File {
	for i := range s.Files {
		if s.Files[i].Path == path {
			return &s.Files[i]
		}
	}
	return nil
}

// AddFile appends a file to the store.
func (s *Store) AddFile(f File) {
	s.Files = append(s.Files, f)
}

// RemoveFile removes a file by ID. Returns false if it wasn't registered.
func (s *Store) RemoveFile(id string) bool {
	idx := slices.IndexFunc(s.Files, func(f File) bool { return f.ID == id })
	if idx < 0 {
		return false
	}
	s.Files = slices.Delete(s.Files, idx, idx+1)
	return true
}

// FilesWithTag returns all files carrying the given tag.
func (s *Store) FilesWithTag(tagID string) []File {
	var result []File
	for _, f := range s.Files {
		if f.HasTag(tagID) {
			result = append(result, f)
		}
	}
	return result
}

// ImportMerge merges imported tags and files into the store.
// Tags are reused when a tag with the same name exists under the same parent.
// Files are skipped when their path is already registered.
// Returns the number of files added and skipped.
func (s *Store) ImportMerge(tags []Tag, files []File) (added, skipped int) {
	// Maps imported tag ID to the ID used in the store
	idMap := make(map[string]string)

	for _, t := range tags {
		var parentID *string
		if t.ParentID != nil {
			if mapped, ok := idMap[*t.ParentID]; ok {
				parentID = &mapped
			}
		}

		if existing := s.FindTagByName(parentID, t.Name); existing != nil {
			idMap[t.ID] = existing.ID
			continue
		}

		t.ParentID = parentID
		s.AddTag(t)
		idMap[t.ID] = t.ID
	}

	for _, f := range files {
		if s.GetFileByPath(f.Path) != nil {
			skipped++
			continue
		}

		remapped := make([]string, 0, len(f.Tags))
		for _, id := range f.Tags {
			if mapped, ok := idMap[id]; ok {
				id = mapped
			}
			if !slices.Contains(remapped, id) {
				remapped = append(remapped, id)
			}
		}
		f.Tags = remapped

		s.AddFile(f)
		added++
	}

	return added, skipped
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
