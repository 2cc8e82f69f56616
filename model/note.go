package model

import (
	"time"
)

type NoteState string

const (
	NoteActive   NoteState = "active"
	NoteArchived NoteState = "archived"
	NoteTrashed  NoteState = "trashed"
)

type Note struct {
	ID        string     `bson:"_id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	Content   string     `bson:"content" json:"content"`
	Archived  bool       `bson:"archived" json:"archived"`
	DeletedAt *time.Time `bson:"deleted_at" json:"deletedAt"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// State derives the lifecycle state from the two stored flags. A trashed note
// is trashed regardless of its archived flag.
func (n *Note) State() NoteState {
	switch {
	case n.DeletedAt != nil:
		return NoteTrashed
	case n.Archived:
		return NoteArchived
	default:
		return NoteActive
	}
}

func (n *Note) Clone() *Note {
	clone := *n
	if n.DeletedAt != nil {
		deletedAt := *n.DeletedAt
		clone.DeletedAt = &deletedAt
	}
	return &clone
}

// NoteFilter is a conjunction of predicates over the lifecycle flags. Nil
// fields do not constrain. The same filter drives the Mongo query and the
// in-memory store so both agree on what a view contains.
type NoteFilter struct {
	Archived *bool
	Trashed  *bool
	// DeletedAtOrBefore matches trashed notes whose deletedAt <= the value.
	DeletedAtOrBefore *time.Time
}

func (f NoteFilter) IsEmpty() bool {
	return f.Archived == nil && f.Trashed == nil && f.DeletedAtOrBefore == nil
}

func (f NoteFilter) Matches(n *Note) bool {
	if f.Archived != nil && n.Archived != *f.Archived {
		return false
	}
	if f.Trashed != nil && (n.DeletedAt != nil) != *f.Trashed {
		return false
	}
	if f.DeletedAtOrBefore != nil {
		if n.DeletedAt == nil || n.DeletedAt.After(*f.DeletedAtOrBefore) {
			return false
		}
	}
	return true
}

// NotePatch lists the flag writes of a single transition.
type NotePatch struct {
	Archived       *bool
	DeletedAt      *time.Time
	ClearDeletedAt bool
}

func (p NotePatch) Apply(n *Note, now time.Time) {
	if p.Archived != nil {
		n.Archived = *p.Archived
	}
	if p.DeletedAt != nil {
		deletedAt := *p.DeletedAt
		n.DeletedAt = &deletedAt
	}
	if p.ClearDeletedAt {
		n.DeletedAt = nil
	}
	n.UpdatedAt = now
}
