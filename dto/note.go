package dto

import (
	"time"

	"github.com/dododo1295/keepnotes/model"
)

// CreateNoteRequest is the body of POST /notes. Both fields may be omitted.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Archived  bool       `json:"archived"`
	DeletedAt *time.Time `json:"deletedAt"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Archived:  note.Archived,
		DeletedAt: note.DeletedAt,
		State:     string(note.State()),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// Convert slice of notes to slice of NoteResponse. Never nil, so an empty
// listing encodes as [].
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
