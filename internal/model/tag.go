package model

import "time"

// Tag is a named, colored label that can be attached to files.
// Tags form a hierarchy through ParentID.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	ParentID  *string   `json:"parentId"` // nil = root level
	CreatedAt time.Time `json:"createdAt"`
}

// NewTagParams holds parameters for creating a new Tag.
type NewTagParams struct {
	Name     string
	Color    string
	ParentID *string
}

// NewTag creates a Tag with generated UUID and timestamp.
func NewTag(params NewTagParams) Tag {
	return Tag{
		ID:        GenerateUUID(),
		Name:      params.Name,
		Color:     params.Color,
		ParentID:  params.ParentID,
		CreatedAt: time.Now(),
	}
}
