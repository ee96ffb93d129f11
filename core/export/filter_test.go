package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestFilterMessagesByDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	msgs := []Message{
		{ID: "1", Role: RoleUser, Timestamp: null.Int64From(millis(day(1)))},
		{ID: "2", Role: RoleAssistant, Timestamp: null.Int64From(millis(day(2)))},
		{ID: "3", Role: RoleUser, Timestamp: null.Int64From(millis(day(3)))},
		{ID: "4", Role: RoleAssistant},
	}
	ids := func(msgs []Message) []string {
		out := make([]string, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, m.ID)
		}
		return out
	}

	tests := []struct {
		name       string
		start, end null.Time
		want       []string
	}{
		{"no bounds", null.Time{}, null.Time{}, []string{"1", "2", "3", "4"}},
		{"inclusive bounds", null.TimeFrom(day(2)), null.TimeFrom(day(3)), []string{"2", "3"}},
		{"start only drops untimed", null.TimeFrom(day(2)), null.Time{}, []string{"2", "3"}},
		{"end only keeps untimed", null.Time{}, null.TimeFrom(day(1)), []string{"1", "4"}},
		{"empty range", null.TimeFrom(day(3)), null.TimeFrom(day(2)), []string{}},
		{"epoch start keeps untimed", null.TimeFrom(time.Unix(0, 0)), null.Time{}, []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMessagesByDateRange(msgs, tt.start, tt.end)
			assert.Equal(t, tt.want, ids(got))
			// idempotent
			assert.Equal(t, got, FilterMessagesByDateRange(got, tt.start, tt.end))
		})
	}
	assert.Len(t, msgs, 4, "input must be left untouched")
}

func TestFilterMessagesByDateRange_Empty(t *testing.T) {
	got := FilterMessagesByDateRange(nil, null.TimeFrom(time.Now()), null.Time{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
