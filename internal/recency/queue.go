// Package recency keeps the most recently applied tags in a bounded,
// deduplicated queue used to bias tag suggestions.
package recency

import "slices"

// DefaultCapacity is the number of tag IDs kept when no capacity is configured.
const DefaultCapacity = 10

// Queue is an ordered list of tag IDs, most recent first.
// An ID appears at most once.
type Queue struct {
	ids      []string
	capacity int
	revision uint64
}

// New creates a Queue seeded with ids (most recent first).
// Duplicate ids keep their first occurrence; the result is truncated to capacity.
func New(capacity int, ids ...string) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	q := &Queue{
		ids:      make([]string, 0, capacity),
		capacity: capacity,
	}
	for _, id := range ids {
		if len(q.ids) == capacity {
			break
		}
		if !slices.Contains(q.ids, id) {
			q.ids = append(q.ids, id)
		}
	}
	return q
}

// Touch moves id to the front of the queue, inserting it if absent,
// then drops the oldest entries beyond capacity.
func (q *Queue) Touch(id string) {
	if idx := slices.Index(q.ids, id); idx >= 0 {
		q.ids = slices.Delete(q.ids, idx, idx+1)
	}
	q.ids = slices.Insert(q.ids, 0, id)
	if len(q.ids) > q.capacity {
		q.ids = q.ids[:q.capacity]
	}
	q.revision++
}

// Rank returns the zero-based position of id, or false if it isn't queued.
func (q *Queue) Rank(id string) (int, bool) {
	idx := slices.Index(q.ids, id)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// IDs returns a copy of the queued IDs, most recent first.
func (q *Queue) IDs() []string {
	return slices.Clone(q.ids)
}

// Len returns the number of queued IDs.
func (q *Queue) Len() int {
	return len(q.ids)
}

// Capacity returns the maximum number of IDs kept.
func (q *Queue) Capacity() int {
	return q.capacity
}

// Revision changes every time the queue is mutated.
func (q *Queue) Revision() uint64 {
	return q.revision
}
