package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/model"
	"github.com/dododo1295/keepnotes/repository"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type RemindersService struct {
	RemindersRepo repository.ReminderStore
	Clock         utils.Clock
	validate      *validator.Validate
}

type ReminderInput struct {
	Note         string `validate:"required"`
	ReminderTime string `validate:"required,timestamp"`
}

func NewRemindersService(remindersRepo repository.ReminderStore, clock utils.Clock, validate *validator.Validate) *RemindersService {
	if clock == nil {
		clock = utils.RealTime{}
	}
	if validate == nil {
		validate = utils.NewValidator()
	}
	return &RemindersService{RemindersRepo: remindersRepo, Clock: clock, validate: validate}
}

func (svc *RemindersService) validateInput(input ReminderInput) error {
	err := svc.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation(err.Error())
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperr.Validation("Missing fields")
		}
	}
	return apperr.Validation("Invalid reminderTime")
}

// CreateReminder stores a reminder at the absolute time parsed from the input.
// No record is written when validation fails.
func (svc *RemindersService) CreateReminder(ctx context.Context, input ReminderInput) (*model.Reminder, error) {
	if err := svc.validateInput(input); err != nil {
		return nil, err
	}

	reminderTime, err := utils.ParseTimestamp(input.ReminderTime)
	if err != nil {
		return nil, apperr.Validation("Invalid reminderTime")
	}

	now := svc.Clock.Now()
	reminder := &model.Reminder{
		ID:           uuid.New().String(),
		Note:         input.Note,
		ReminderTime: reminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := svc.RemindersRepo.Insert(ctx, reminder); err != nil {
		return nil, err
	}
	utils.TrackReminderOperation("create")
	return reminder, nil
}

func (svc *RemindersService) ListReminders(ctx context.Context) ([]*model.Reminder, error) {
	return svc.RemindersRepo.FindAll(ctx)
}

// ClampReminder pulls an elapsed reminder time up to now. The write happens
// even when the time is still in the future.
func (svc *RemindersService) ClampReminder(ctx context.Context, reminderID string) (*model.Reminder, error) {
	if strings.TrimSpace(reminderID) == "" {
		return nil, apperr.Validation("reminder id is required")
	}

	reminder, err := svc.RemindersRepo.ClampToNow(ctx, reminderID, svc.Clock.Now())
	if err != nil {
		return nil, err
	}
	utils.TrackReminderOperation("clamp")
	return reminder, nil
}

func (svc *RemindersService) DeleteReminder(ctx context.Context, reminderID string) error {
	if strings.TrimSpace(reminderID) == "" {
		return apperr.Validation("reminder id is required")
	}

	if err := svc.RemindersRepo.Delete(ctx, reminderID); err != nil {
		return err
	}
	utils.TrackReminderOperation("delete")
	return nil
}
