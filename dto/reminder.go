package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/dododo1295/keepnotes/model"
)

var ErrReminderTimeType = errors.New("reminderTime must be a string or a number")

// maxEpochMillis bounds numeric reminder times to the range a browser Date accepts.
const maxEpochMillis = 8.64e15

// CreateReminderRequest is the body of POST /reminders. ReminderTime stays raw
// so both date strings and epoch milliseconds are accepted, and an unparseable
// value is reported as a validation error rather than a malformed body.
type CreateReminderRequest struct {
	Note         string          `json:"note"`
	ReminderTime json.RawMessage `json:"reminderTime"`
}

// ReminderTimeText normalizes ReminderTime to text. A JSON number is read as
// epoch milliseconds; absent or null yields "".
func (r CreateReminderRequest) ReminderTimeText() (string, error) {
	raw := bytes.TrimSpace(r.ReminderTime)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", err
		}
		return text, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		millis, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.Abs(millis) > maxEpochMillis {
			return "", ErrReminderTimeType
		}
		return time.UnixMilli(int64(millis)).UTC().Format(time.RFC3339Nano), nil
	}
	return "", ErrReminderTimeType
}

type ReminderResponse struct {
	ID           string    `json:"id"`
	Note         string    `json:"note"`
	ReminderTime time.Time `json:"reminderTime"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ToReminderResponse(reminder *model.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:           reminder.ID,
		Note:         reminder.Note,
		ReminderTime: reminder.ReminderTime,
		CreatedAt:    reminder.CreatedAt,
		UpdatedAt:    reminder.UpdatedAt,
	}
}

func ToReminderResponses(reminders []*model.Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, len(reminders))
	for i, reminder := range reminders {
		responses[i] = ToReminderResponse(reminder)
	}
	return responses
}
