package repository

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"calendar date", "2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"RFC3339 timestamp", "2025-06-01T14:30:00Z", time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), false},
		{"offset is normalized to UTC", "2025-06-01T16:30:00+02:00", time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), false},
		{"garbage", "June 1st", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNullHelpers(t *testing.T) {
	assert.Equal[any](t, nil, nullString(""))
	assert.Equal[any](t, "x", nullString("x"))
	assert.Equal[any](t, nil, nullInt(nil))

	q := 4
	assert.Equal[any](t, 4, nullInt(&q))
}
