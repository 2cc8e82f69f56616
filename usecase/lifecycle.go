package usecase

import (
	"time"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/model"
)

func boolPtr(b bool) *bool { return &b }

// Transition is one edge of the note lifecycle. Guard is the precondition the
// stored note must satisfy at write time; Rejected is returned when it does not.
type Transition struct {
	Name     string
	Guard    model.NoteFilter
	Patch    func(now time.Time) model.NotePatch
	Rejected func() error
}

var (
	Archive = Transition{
		Name: "archive",
		Patch: func(time.Time) model.NotePatch {
			return model.NotePatch{Archived: boolPtr(true)}
		},
	}

	Unarchive = Transition{
		Name: "unarchive",
		Patch: func(time.Time) model.NotePatch {
			return model.NotePatch{Archived: boolPtr(false)}
		},
	}

	// SoftDelete re-stamps deletedAt on every call, so repeating it moves the
	// retention clock forward.
	SoftDelete = Transition{
		Name: "soft_delete",
		Patch: func(now time.Time) model.NotePatch {
			return model.NotePatch{DeletedAt: &now}
		},
	}

	// Restore is the only guarded transition: an untrashed note is rejected
	// rather than silently accepted.
	Restore = Transition{
		Name:     "restore",
		Guard:    model.NoteFilter{Trashed: boolPtr(true)},
		Rejected: apperr.NotDeleted,
		Patch: func(time.Time) model.NotePatch {
			return model.NotePatch{ClearDeletedAt: true}
		},
	}
)

func (t Transition) rejection() error {
	if t.Rejected != nil {
		return t.Rejected()
	}
	return apperr.Validation("transition " + t.Name + " not allowed")
}

// Views over the lifecycle flags. Trashed notes appear only in TrashView.
var (
	ActiveView   = model.NoteFilter{Archived: boolPtr(false), Trashed: boolPtr(false)}
	ArchivedView = model.NoteFilter{Archived: boolPtr(true), Trashed: boolPtr(false)}
	TrashView    = model.NoteFilter{Trashed: boolPtr(true)}
)

// PurgeFilter selects trashed notes whose deletedAt is at or before cutoff.
func PurgeFilter(cutoff time.Time) model.NoteFilter {
	return model.NoteFilter{DeletedAtOrBefore: &cutoff}
}
