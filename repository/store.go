package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dododo1295/keepnotes/model"
)

// ErrPreconditionFailed reports that the target note exists but does not
// satisfy the guard of a conditional update.
var ErrPreconditionFailed = errors.New("note does not satisfy update precondition")

// NoteStore is the durable home of notes. Every method is atomic for a single
// record; none spans records transactionally.
type NoteStore interface {
	Insert(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id string) (*model.Note, error)
	Find(ctx context.Context, filter model.NoteFilter) ([]*model.Note, error)
	// Update applies patch to the note with the given id if it also matches
	// guard. It returns the updated note, a NotFound error when no note has
	// the id, or ErrPreconditionFailed when the guard rejects it.
	Update(ctx context.Context, id string, guard model.NoteFilter, patch model.NotePatch, now time.Time) (*model.Note, error)
	// DeleteMany permanently removes every note matching filter, evaluated
	// against the data present at delete time. An empty filter is rejected.
	DeleteMany(ctx context.Context, filter model.NoteFilter) (int64, error)
	Ping(ctx context.Context) error
}

type ReminderStore interface {
	Insert(ctx context.Context, reminder *model.Reminder) error
	FindByID(ctx context.Context, id string) (*model.Reminder, error)
	// FindAll returns reminders by ascending reminder time, ties in insertion order.
	FindAll(ctx context.Context) ([]*model.Reminder, error)
	// ClampToNow moves an elapsed reminder time up to now and always writes.
	ClampToNow(ctx context.Context, id string, now time.Time) (*model.Reminder, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ NoteStore     = (*NotesRepo)(nil)
	_ NoteStore     = (*MemoryNotesRepo)(nil)
	_ ReminderStore = (*RemindersRepo)(nil)
	_ ReminderStore = (*MemoryRemindersRepo)(nil)
)
