package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/repository"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRemindersService(now time.Time) (*RemindersService, *repository.MemoryRemindersRepo) {
	store := repository.NewMemoryRemindersRepo()
	return NewRemindersService(store, utils.FixedTime{Fixed: now}, nil), store
}

func TestCreateReminder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Valid", func(t *testing.T) {
		svc, _ := newTestRemindersService(now)
		reminder, err := svc.CreateReminder(ctx, ReminderInput{Note: "water plants", ReminderTime: "2026-04-02T08:00:00Z"})
		require.NoError(t, err)
		assert.NotEmpty(t, reminder.ID)
		assert.Equal(t, "water plants", reminder.Note)
		assert.Equal(t, time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC), reminder.ReminderTime)
		assert.Equal(t, now, reminder.CreatedAt)
		assert.Equal(t, now, reminder.UpdatedAt)
	})

	invalid := []struct {
		name    string
		input   ReminderInput
		message string
	}{
		{name: "MissingTime", input: ReminderInput{Note: "water plants"}, message: "Missing fields"},
		{name: "MissingNote", input: ReminderInput{ReminderTime: "2026-04-02T08:00:00Z"}, message: "Missing fields"},
		{name: "MissingBoth", input: ReminderInput{}, message: "Missing fields"},
		{name: "Unparseable", input: ReminderInput{Note: "x", ReminderTime: "next tuesday"}, message: "Invalid reminderTime"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestRemindersService(now)
			_, err := svc.CreateReminder(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all, "no record is created on validation failure")
		})
	}
}

func TestListRemindersOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestRemindersService(time.Now())

	for _, at := range []string{"2026-05-02T00:00:00Z", "2026-05-01T00:00:00Z", "2026-05-03T00:00:00Z"} {
		_, err := svc.CreateReminder(ctx, ReminderInput{Note: at, ReminderTime: at})
		require.NoError(t, err)
	}

	reminders, err := svc.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 3)
	assert.Equal(t, "2026-05-01T00:00:00Z", reminders[0].Note)
	assert.Equal(t, "2026-05-02T00:00:00Z", reminders[1].Note)
	assert.Equal(t, "2026-05-03T00:00:00Z", reminders[2].Note)
}

func TestClampReminder(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("PastIsClampedToCallTime", func(t *testing.T) {
		svc, _ := newTestRemindersService(createdAt)
		reminder, err := svc.CreateReminder(ctx, ReminderInput{Note: "old", ReminderTime: "2020-01-01T00:00:00Z"})
		require.NoError(t, err)
		original := reminder.ReminderTime

		updateAt := createdAt.Add(5 * time.Minute)
		svc.Clock = utils.FixedTime{Fixed: updateAt}
		clamped, err := svc.ClampReminder(ctx, reminder.ID)
		require.NoError(t, err)
		assert.Equal(t, updateAt, clamped.ReminderTime)
		assert.True(t, clamped.ReminderTime.After(original))
	})

	t.Run("FutureIsUnchanged", func(t *testing.T) {
		svc, _ := newTestRemindersService(createdAt)
		reminder, err := svc.CreateReminder(ctx, ReminderInput{Note: "soon", ReminderTime: "2030-01-01T00:00:00Z"})
		require.NoError(t, err)

		updateAt := createdAt.Add(5 * time.Minute)
		svc.Clock = utils.FixedTime{Fixed: updateAt}
		clamped, err := svc.ClampReminder(ctx, reminder.ID)
		require.NoError(t, err)
		assert.Equal(t, reminder.ReminderTime, clamped.ReminderTime)
		assert.Equal(t, updateAt, clamped.UpdatedAt, "the write happens even without clamping")
	})

	t.Run("Missing", func(t *testing.T) {
		svc, _ := newTestRemindersService(createdAt)
		_, err := svc.ClampReminder(ctx, "nope")
		assert.True(t, apperr.IsNotFound(err))

		_, err = svc.ClampReminder(ctx, "")
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestDeleteReminder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestRemindersService(time.Now())

	reminder, err := svc.CreateReminder(ctx, ReminderInput{Note: "bye", ReminderTime: "2026-04-02"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReminder(ctx, reminder.ID))
	assert.True(t, apperr.IsNotFound(svc.DeleteReminder(ctx, reminder.ID)))
	assert.True(t, apperr.IsValidation(svc.DeleteReminder(ctx, " ")))

	reminders, err := svc.ListReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}
