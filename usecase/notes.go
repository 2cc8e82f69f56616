package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/model"
	"github.com/dododo1295/keepnotes/repository"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/google/uuid"
)

type NotesService struct {
	NotesRepo repository.NoteStore
	Clock     utils.Clock
}

func NewNotesService(notesRepo repository.NoteStore, clock utils.Clock) *NotesService {
	if clock == nil {
		clock = utils.RealTime{}
	}
	return &NotesService{NotesRepo: notesRepo, Clock: clock}
}

// CreateNote stores a new active note. Title and content may both be empty.
func (svc *NotesService) CreateNote(ctx context.Context, title, content string) (*model.Note, error) {
	now := svc.Clock.Now()
	note := &model.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.NotesRepo.Insert(ctx, note); err != nil {
		return nil, err
	}
	utils.TrackNoteOperation("create")
	return note, nil
}

func (svc *NotesService) ArchiveNote(ctx context.Context, noteID string) (*model.Note, error) {
	return svc.transition(ctx, noteID, Archive)
}

func (svc *NotesService) UnarchiveNote(ctx context.Context, noteID string) (*model.Note, error) {
	return svc.transition(ctx, noteID, Unarchive)
}

// DeleteNote moves the note to the trash. Only the retention sweep removes it for good.
func (svc *NotesService) DeleteNote(ctx context.Context, noteID string) (*model.Note, error) {
	return svc.transition(ctx, noteID, SoftDelete)
}

func (svc *NotesService) RestoreNote(ctx context.Context, noteID string) (*model.Note, error) {
	return svc.transition(ctx, noteID, Restore)
}

// transition hands guard and patch to the store as one conditional write, so
// a missing note surfaces as NotFound and a failed guard as the transition's
// rejection, never as a partially applied change.
func (svc *NotesService) transition(ctx context.Context, noteID string, t Transition) (*model.Note, error) {
	if strings.TrimSpace(noteID) == "" {
		return nil, apperr.Validation("note id is required")
	}

	now := svc.Clock.Now()
	note, err := svc.NotesRepo.Update(ctx, noteID, t.Guard, t.Patch(now), now)
	if errors.Is(err, repository.ErrPreconditionFailed) {
		return nil, t.rejection()
	}
	if err != nil {
		return nil, err
	}

	utils.TrackNoteOperation(t.Name)
	return note, nil
}

func (svc *NotesService) GetActiveNotes(ctx context.Context) ([]*model.Note, error) {
	return svc.NotesRepo.Find(ctx, ActiveView)
}

func (svc *NotesService) GetArchivedNotes(ctx context.Context) ([]*model.Note, error) {
	return svc.NotesRepo.Find(ctx, ArchivedView)
}

func (svc *NotesService) GetTrashedNotes(ctx context.Context) ([]*model.Note, error) {
	return svc.NotesRepo.Find(ctx, TrashView)
}
