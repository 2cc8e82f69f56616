package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2020-01-01T00:00:00Z", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-05-01T09:30:00+02:00", time.Date(2026, 5, 1, 7, 30, 0, 0, time.UTC)},
		{"2026-05-01T09:30:00.250Z", time.Date(2026, 5, 1, 9, 30, 0, 250_000_000, time.UTC)},
		{"2026-05-01T09:30", time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-05-01 09:30", time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)},
		{" 2026-05-01 ", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"Wed, 01 Jan 2020 00:00:00 GMT", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T00:00:00.000+0530", time.Date(2019, 12, 31, 18, 30, 0, 0, time.UTC)},
		{"01/05/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	for _, bad := range []string{"", "   ", "tomorrow", "2026-13-01", "not a date"} {
		_, err := ParseTimestamp(bad)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, bad)
	}
}

func TestTimestampValidationRule(t *testing.T) {
	v := NewValidator()

	type input struct {
		At string `validate:"required,timestamp"`
	}

	assert.NoError(t, v.Struct(input{At: "2026-01-01T00:00:00Z"}))
	assert.Error(t, v.Struct(input{At: "soon"}))
	assert.Error(t, v.Struct(input{}))
}

func TestParseUserAgent(t *testing.T) {
	info := ParseUserAgent("")
	assert.Equal(t, ClientInfo{Browser: "Unknown Browser", OS: "Unknown OS", Device: "Desktop"}, info)

	info = ParseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Equal(t, "Safari", info.Browser)
	assert.Equal(t, "iOS", info.OS)
	assert.Equal(t, "Mobile", info.Device)
}

func TestFixedTime(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock Clock = FixedTime{Fixed: fixed}
	assert.Equal(t, fixed, clock.Now())
	assert.WithinDuration(t, time.Now(), RealTime{}.Now(), time.Second)
}
