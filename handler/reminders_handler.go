package handler

import (
	"github.com/dododo1295/keepnotes/dto"
	"github.com/dododo1295/keepnotes/usecase"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RemindersHandler struct {
	remindersService *usecase.RemindersService
	log              zerolog.Logger
}

func NewRemindersHandler(remindersService *usecase.RemindersService, log zerolog.Logger) *RemindersHandler {
	return &RemindersHandler{remindersService: remindersService, log: log}
}

func (h *RemindersHandler) CreateReminder(c *gin.Context) {
	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reminderTime, err := req.ReminderTimeText()
	if err != nil {
		utils.BadRequest(c, "Invalid reminderTime")
		return
	}

	reminder, err := h.remindersService.CreateReminder(c.Request.Context(), usecase.ReminderInput{
		Note:         req.Note,
		ReminderTime: reminderTime,
	})
	if err != nil {
		respondError(c, h.log, err, "Server error")
		return
	}
	utils.Created(c, "Reminder set successfully", dto.ToReminderResponse(reminder))
}

func (h *RemindersHandler) GetReminders(c *gin.Context) {
	reminders, err := h.remindersService.ListReminders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Server error")
		return
	}
	utils.Success(c, dto.ToReminderResponses(reminders))
}

// UpdateReminder clamps an elapsed reminder time to now. The request body is ignored.
func (h *RemindersHandler) UpdateReminder(c *gin.Context) {
	reminder, err := h.remindersService.ClampReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Error updating reminder")
		return
	}
	utils.Success(c, dto.ToReminderResponse(reminder))
}

func (h *RemindersHandler) DeleteReminder(c *gin.Context) {
	if err := h.remindersService.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Error deleting reminder")
		return
	}
	utils.SuccessMessage(c, "Reminder deleted successfully", nil)
}
