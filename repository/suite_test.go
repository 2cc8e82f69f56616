package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// Mongo stores milliseconds, so suite times are truncated to keep comparisons exact.
func suiteNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newNote(title string, now time.Time) *model.Note {
	return &model.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   title + " content",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ids(notes []*model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func runNoteStoreSuite(t *testing.T, store NoteStore) {
	ctx := context.Background()
	now := suiteNow()

	t.Run("InsertAndFind", func(t *testing.T) {
		note := newNote("first", now)
		require.NoError(t, store.Insert(ctx, note))

		found, err := store.FindByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, note.Title, found.Title)
		assert.False(t, found.Archived)
		assert.Nil(t, found.DeletedAt)
	})

	t.Run("FindMissing", func(t *testing.T) {
		_, err := store.FindByID(ctx, uuid.New().String())
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("MalformedInput", func(t *testing.T) {
		assert.True(t, apperr.IsValidation(store.Insert(ctx, &model.Note{})))
		_, err := store.FindByID(ctx, " ")
		assert.True(t, apperr.IsValidation(err))
		_, err = store.Update(ctx, "", model.NoteFilter{}, model.NotePatch{}, now)
		assert.True(t, apperr.IsValidation(err))
		_, err = store.DeleteMany(ctx, model.NoteFilter{})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("GuardedUpdate", func(t *testing.T) {
		note := newNote("guarded", now)
		require.NoError(t, store.Insert(ctx, note))

		trashed := model.NoteFilter{Trashed: boolPtr(true)}
		_, err := store.Update(ctx, note.ID, trashed, model.NotePatch{ClearDeletedAt: true}, now)
		assert.True(t, errors.Is(err, ErrPreconditionFailed))

		_, err = store.Update(ctx, uuid.New().String(), trashed, model.NotePatch{ClearDeletedAt: true}, now)
		assert.True(t, apperr.IsNotFound(err))

		deletedAt := now.Add(-time.Hour)
		updated, err := store.Update(ctx, note.ID, model.NoteFilter{}, model.NotePatch{DeletedAt: &deletedAt}, now)
		require.NoError(t, err)
		require.NotNil(t, updated.DeletedAt)
		assert.True(t, deletedAt.Equal(*updated.DeletedAt))

		restored, err := store.Update(ctx, note.ID, trashed, model.NotePatch{ClearDeletedAt: true}, now)
		require.NoError(t, err)
		assert.Nil(t, restored.DeletedAt)
	})

	t.Run("FilteredScansAndPurge", func(t *testing.T) {
		cutoff := now.Add(-7 * 24 * time.Hour)
		oldDeleted := now.Add(-8 * 24 * time.Hour)
		recentDeleted := now.Add(-6 * 24 * time.Hour)

		active := newNote("scan-active", now)
		archived := newNote("scan-archived", now)
		archived.Archived = true
		old := newNote("scan-old", now)
		old.DeletedAt = &oldDeleted
		recent := newNote("scan-recent", now)
		recent.DeletedAt = &recentDeleted
		for _, n := range []*model.Note{active, archived, old, recent} {
			require.NoError(t, store.Insert(ctx, n))
		}

		activeNotes, err := store.Find(ctx, model.NoteFilter{Archived: boolPtr(false), Trashed: boolPtr(false)})
		require.NoError(t, err)
		assert.Contains(t, ids(activeNotes), active.ID)
		assert.NotContains(t, ids(activeNotes), old.ID)
		assert.NotContains(t, ids(activeNotes), archived.ID)

		archivedNotes, err := store.Find(ctx, model.NoteFilter{Archived: boolPtr(true)})
		require.NoError(t, err)
		assert.Contains(t, ids(archivedNotes), archived.ID)

		trash, err := store.Find(ctx, model.NoteFilter{Trashed: boolPtr(true)})
		require.NoError(t, err)
		assert.Contains(t, ids(trash), old.ID)
		assert.Contains(t, ids(trash), recent.ID)
		assert.NotContains(t, ids(trash), active.ID)

		purged, err := store.DeleteMany(ctx, model.NoteFilter{DeletedAtOrBefore: &cutoff})
		require.NoError(t, err)
		assert.EqualValues(t, 1, purged)

		_, err = store.FindByID(ctx, old.ID)
		assert.True(t, apperr.IsNotFound(err))
		for _, kept := range []*model.Note{active, archived, recent} {
			_, err := store.FindByID(ctx, kept.ID)
			assert.NoError(t, err, kept.Title)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func runReminderStoreSuite(t *testing.T, store ReminderStore) {
	ctx := context.Background()
	now := suiteNow()

	newReminder := func(at time.Time) *model.Reminder {
		return &model.Reminder{
			ID:           uuid.New().String(),
			Note:         "call the dentist",
			ReminderTime: at,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	t.Run("OrderedListing", func(t *testing.T) {
		t1 := now.Add(1 * time.Hour)
		t2 := now.Add(2 * time.Hour)
		t3 := now.Add(3 * time.Hour)

		r2, r1, r3 := newReminder(t2), newReminder(t1), newReminder(t3)
		for _, r := range []*model.Reminder{r2, r1, r3} {
			require.NoError(t, store.Insert(ctx, r))
		}

		all, err := store.FindAll(ctx)
		require.NoError(t, err)

		var got []string
		for _, r := range all {
			if r.ID == r1.ID || r.ID == r2.ID || r.ID == r3.ID {
				got = append(got, r.ID)
			}
		}
		assert.Equal(t, []string{r1.ID, r2.ID, r3.ID}, got)
	})

	t.Run("ClampPast", func(t *testing.T) {
		past := newReminder(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, store.Insert(ctx, past))

		clampAt := now.Add(time.Minute)
		clamped, err := store.ClampToNow(ctx, past.ID, clampAt)
		require.NoError(t, err)
		assert.True(t, clampAt.Equal(clamped.ReminderTime))
		assert.True(t, clampAt.Equal(clamped.UpdatedAt))
	})

	t.Run("ClampFuture", func(t *testing.T) {
		future := now.Add(48 * time.Hour)
		r := newReminder(future)
		require.NoError(t, store.Insert(ctx, r))

		clampAt := now.Add(time.Minute)
		clamped, err := store.ClampToNow(ctx, r.ID, clampAt)
		require.NoError(t, err)
		assert.True(t, future.Equal(clamped.ReminderTime))
		assert.True(t, clampAt.Equal(clamped.UpdatedAt), "the write happens even without clamping")
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.ClampToNow(ctx, uuid.New().String(), now)
		assert.True(t, apperr.IsNotFound(err))
		assert.True(t, apperr.IsNotFound(store.Delete(ctx, uuid.New().String())))
		_, err = store.FindByID(ctx, uuid.New().String())
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("Delete", func(t *testing.T) {
		r := newReminder(now)
		require.NoError(t, store.Insert(ctx, r))
		require.NoError(t, store.Delete(ctx, r.ID))

		_, err := store.FindByID(ctx, r.ID)
		assert.True(t, apperr.IsNotFound(err))
		assert.True(t, apperr.IsNotFound(store.Delete(ctx, r.ID)))
	})
}
