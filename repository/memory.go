package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/model"
)

var errDuplicateID = errors.New("duplicate id")

// MemoryNotesRepo is a NoteStore held in process memory. It backs tests and
// the "memory" store driver. Records are copied in and out so callers never
// share state with the store.
type MemoryNotesRepo struct {
	mu    sync.RWMutex
	order []string
	notes map[string]*model.Note
}

func NewMemoryNotesRepo() *MemoryNotesRepo {
	return &MemoryNotesRepo{notes: make(map[string]*model.Note)}
}

func (r *MemoryNotesRepo) Insert(_ context.Context, note *model.Note) error {
	if note == nil || strings.TrimSpace(note.ID) == "" {
		return apperr.Validation("note id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[note.ID]; exists {
		return apperr.Storage(errDuplicateID, "failed to insert note")
	}
	r.notes[note.ID] = note.Clone()
	r.order = append(r.order, note.ID)
	return nil
}

func (r *MemoryNotesRepo) FindByID(_ context.Context, id string) (*model.Note, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("note id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note not found")
	}
	return note.Clone(), nil
}

func (r *MemoryNotesRepo) Find(_ context.Context, filter model.NoteFilter) ([]*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := []*model.Note{}
	for _, id := range r.order {
		if note := r.notes[id]; filter.Matches(note) {
			notes = append(notes, note.Clone())
		}
	}
	return notes, nil
}

func (r *MemoryNotesRepo) Update(_ context.Context, id string, guard model.NoteFilter, patch model.NotePatch, now time.Time) (*model.Note, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("note id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, apperr.NotFound("Note not found")
	}
	if !guard.Matches(note) {
		return nil, ErrPreconditionFailed
	}
	patch.Apply(note, now)
	return note.Clone(), nil
}

func (r *MemoryNotesRepo) DeleteMany(_ context.Context, filter model.NoteFilter) (int64, error) {
	if filter.IsEmpty() {
		return 0, apperr.Validation("refusing to delete notes without a filter")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	kept := r.order[:0]
	for _, id := range r.order {
		if filter.Matches(r.notes[id]) {
			delete(r.notes, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return deleted, nil
}

func (r *MemoryNotesRepo) Ping(context.Context) error {
	return nil
}

type MemoryRemindersRepo struct {
	mu        sync.RWMutex
	order     []string
	reminders map[string]*model.Reminder
}

func NewMemoryRemindersRepo() *MemoryRemindersRepo {
	return &MemoryRemindersRepo{reminders: make(map[string]*model.Reminder)}
}

func (r *MemoryRemindersRepo) Insert(_ context.Context, reminder *model.Reminder) error {
	if reminder == nil || strings.TrimSpace(reminder.ID) == "" {
		return apperr.Validation("reminder id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reminders[reminder.ID]; exists {
		return apperr.Storage(errDuplicateID, "failed to insert reminder")
	}
	clone := *reminder
	r.reminders[reminder.ID] = &clone
	r.order = append(r.order, reminder.ID)
	return nil
}

func (r *MemoryRemindersRepo) FindByID(_ context.Context, id string) (*model.Reminder, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("reminder id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	reminder, ok := r.reminders[id]
	if !ok {
		return nil, apperr.NotFound("Reminder not found")
	}
	clone := *reminder
	return &clone, nil
}

func (r *MemoryRemindersRepo) FindAll(context.Context) ([]*model.Reminder, error) {
	r.mu.RLock()
	reminders := make([]*model.Reminder, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.reminders[id]
		reminders = append(reminders, &clone)
	}
	r.mu.RUnlock()

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].ReminderTime.Before(reminders[j].ReminderTime)
	})
	return reminders, nil
}

func (r *MemoryRemindersRepo) ClampToNow(_ context.Context, id string, now time.Time) (*model.Reminder, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("reminder id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reminder, ok := r.reminders[id]
	if !ok {
		return nil, apperr.NotFound("Reminder not found")
	}
	reminder.Clamp(now)
	clone := *reminder
	return &clone, nil
}

func (r *MemoryRemindersRepo) Delete(_ context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Validation("reminder id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reminders[id]; !ok {
		return apperr.NotFound("Reminder not found")
	}
	delete(r.reminders, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
