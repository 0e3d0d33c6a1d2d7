// Package tristate summarizes tag membership across a set of targets and
// turns toggles into per-target add/remove operations.
package tristate

import (
	"fmt"
	"slices"
)

// Target is an entity that owns a set of tag IDs.
// AddTag and RemoveTag are idempotent.
type Target interface {
	ID() string
	Tags() []string
	AddTag(tagID string) error
	RemoveTag(tagID string) error
}

// State classifies how many targets of a set carry a tag.
type State int

const (
	None    State = iota // no target carries the tag
	Partial              // some, but not all, targets carry the tag
	All                  // every target carries the tag
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Partial:
		return "partial"
	case All:
		return "all"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// OpKind is the direction of an operation.
type OpKind int

const (
	Add OpKind = iota
	Remove
)

func (k OpKind) String() string {
	if k == Add {
		return "add"
	}
	return "remove"
}

// Op is a single tag change on a single target.
type Op struct {
	Kind   OpKind
	TagID  string
	Target Target
}

// Membership counts, for every tag carried by any target, how many targets carry it.
// Tags carried by no target are absent from the map.
func Membership(targets []Target) map[string]int {
	counts := make(map[string]int)
	for _, t := range targets {
		seen := make(map[string]bool)
		for _, id := range t.Tags() {
			if seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}
	return counts
}

// StateOf classifies a tag given membership counts over total targets.
func StateOf(counts map[string]int, tagID string, total int) State {
	n := counts[tagID]
	switch {
	case n == 0 || total == 0:
		return None
	case n >= total:
		return All
	default:
		return Partial
	}
}

// Toggle computes the operations that flip a tag for the target set.
// A tag carried by every target is removed from all of them; otherwise it is
// added to each target that lacks it.
func Toggle(tagID string, targets []Target) []Op {
	if len(targets) == 0 {
		return nil
	}

	if StateOf(Membership(targets), tagID, len(targets)) == All {
		return RemoveAll(tagID, targets)
	}
	return AddAll(tagID, targets)
}

// AddAll returns add operations for every target lacking the tag.
func AddAll(tagID string, targets []Target) []Op {
	var ops []Op
	for _, t := range targets {
		if !slices.Contains(t.Tags(), tagID) {
			ops = append(ops, Op{Kind: Add, TagID: tagID, Target: t})
		}
	}
	return ops
}

// RemoveAll returns remove operations for every target carrying the tag.
// Targets without the tag get no operation.
func RemoveAll(tagID string, targets []Target) []Op {
	var ops []Op
	for _, t := range targets {
		if slices.Contains(t.Tags(), tagID) {
			ops = append(ops, Op{Kind: Remove, TagID: tagID, Target: t})
		}
	}
	return ops
}

// HasAdd reports whether any operation adds a tag.
func HasAdd(ops []Op) bool {
	for _, op := range ops {
		if op.Kind == Add {
			return true
		}
	}
	return false
}

// Selected returns the tags carried by any target, in display order:
// first-seen order walking targets and their tags in sequence.
func Selected(targets []Target) []string {
	var result []string
	seen := make(map[string]bool)
	for _, t := range targets {
		for _, id := range t.Tags() {
			if !seen[id] {
				seen[id] = true
				result = append(result, id)
			}
		}
	}
	return result
}

// Apply performs every operation in order. If one fails, the operations
// already performed are reverted and the error is returned.
func Apply(ops []Op) error {
	for i, op := range ops {
		if err := apply(op, op.Kind); err != nil {
			for j := i - 1; j >= 0; j-- {
				// Best effort: the target already accepted this change once.
				_ = apply(ops[j], inverse(ops[j].Kind))
			}
			return fmt.Errorf("%s tag %s on %s: %w", op.Kind, op.TagID, op.Target.ID(), err)
		}
	}
	return nil
}

func apply(op Op, kind OpKind) error {
	if kind == Add {
		return op.Target.AddTag(op.TagID)
	}
	return op.Target.RemoveTag(op.TagID)
}

func inverse(kind OpKind) OpKind {
	if kind == Add {
		return Remove
	}
	return Add
}
