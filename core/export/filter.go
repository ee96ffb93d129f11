package export

import (
	"github.com/volatiletech/null/v8"
)

// FilterMessagesByDateRange keeps messages whose timestamp lies within [start, end], both
// bounds inclusive and optional. A message without timestamp counts as the epoch.
// The input is left untouched and the result is never nil.
func FilterMessagesByDateRange(messages []Message, start, end null.Time) []Message {
	filtered := make([]Message, 0, len(messages))
	for _, msg := range messages {
		ts := msg.Timestamp.Int64
		if !msg.Timestamp.Valid {
			ts = 0
		}
		if start.Valid && ts < millis(start.Time) {
			continue
		}
		if end.Valid && ts > millis(end.Time) {
			continue
		}
		filtered = append(filtered, msg)
	}
	return filtered
}
