package model

import "time"

// Reminder references note text by value; it is not linked to a Note id.
type Reminder struct {
	ID           string    `bson:"_id" json:"id"`
	Note         string    `bson:"note" json:"note"`
	ReminderTime time.Time `bson:"reminder_time" json:"reminderTime"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Clamp moves an elapsed reminder time forward to now and reports whether it
// changed. UpdatedAt is bumped either way since the write always happens.
func (r *Reminder) Clamp(now time.Time) bool {
	r.UpdatedAt = now
	if r.ReminderTime.Before(now) {
		r.ReminderTime = now
		return true
	}
	return false
}
