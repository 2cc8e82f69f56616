package handler

import (
	"context"
	"errors"
	"io"

	"github.com/dododo1295/keepnotes/dto"
	"github.com/dododo1295/keepnotes/model"
	"github.com/dododo1295/keepnotes/usecase"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type NotesHandler struct {
	notesService *usecase.NotesService
	log          zerolog.Logger
}

func NewNotesHandler(notesService *usecase.NotesService, log zerolog.Logger) *NotesHandler {
	return &NotesHandler{notesService: notesService, log: log}
}

func (h *NotesHandler) GetNotes(c *gin.Context) {
	notes, err := h.notesService.GetActiveNotes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching notes")
		return
	}
	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	// An empty body creates an empty note.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		respondError(c, h.log, err, "Error creating note")
		return
	}
	utils.Created(c, "Note created successfully", dto.ToNoteResponse(note))
}

func (h *NotesHandler) ArchiveNote(c *gin.Context) {
	h.transition(c, h.notesService.ArchiveNote, "Server error while archiving note")
}

func (h *NotesHandler) UnarchiveNote(c *gin.Context) {
	h.transition(c, h.notesService.UnarchiveNote, "Server error while unarchiving note")
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	h.transition(c, h.notesService.DeleteNote, "Server error while deleting note")
}

func (h *NotesHandler) RestoreNote(c *gin.Context) {
	h.transition(c, h.notesService.RestoreNote, "Server error while restoring note")
}

func (h *NotesHandler) transition(c *gin.Context, apply func(ctx context.Context, id string) (*model.Note, error), fallback string) {
	note, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, fallback)
		return
	}
	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NotesHandler) GetArchivedNotes(c *gin.Context) {
	notes, err := h.notesService.GetArchivedNotes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Server error while fetching archived notes")
		return
	}
	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NotesHandler) GetTrash(c *gin.Context) {
	notes, err := h.notesService.GetTrashedNotes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching trash notes")
		return
	}
	utils.Success(c, dto.ToNoteResponses(notes))
}
