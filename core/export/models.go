package export

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// Format is an export file format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

var Formats = []Format{FormatText, FormatMarkdown, FormatJSON, FormatPDF}

func (f Format) Valid() bool {
	for _, ff := range Formats {
		if ff == f {
			return true
		}
	}
	return false
}

// Extension returns the file extension, dot included.
func (f Format) Extension() string { return "." + string(f) }

// Roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const DefaultTitle = "Chat Transcript"

// Message is one message of a transcript, as supplied by the caller.
type Message struct {
	ID      string `json:"id" validate:"required"`
	Role    string `json:"role" validate:"required,chatrole"`
	Content string `json:"content"`
	// Timestamp is in epoch milliseconds.
	Timestamp null.Int64 `json:"timestamp"`
}

// Time returns the message time, if any.
func (m Message) Time() (time.Time, bool) {
	if !m.Timestamp.Valid {
		return time.Time{}, false
	}
	return time.Unix(0, m.Timestamp.Int64*int64(time.Millisecond)), true
}

func (m Message) IsUser() bool { return m.Role == RoleUser }

// roleLabel is how a role is shown to readers of a transcript.
func roleLabel(role string) string {
	if role == RoleUser {
		return "You"
	}
	return "Assistant"
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result is what callers of an export get back. Failures never escape as errors.
// Queued is set when the file was handed to an asynchronous mailer: Success then means the
// transcript was rendered and accepted for delivery, not that it reached the inbox.
type Result struct {
	Success  bool   `json:"success"`
	Queued   bool   `json:"queued,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Request is the payload of an export request.
type Request struct {
	Format    Format    `json:"format" validate:"required,exportformat"`
	Title     string    `json:"title" validate:"max=200"`
	Messages  []Message `json:"messages" validate:"required,dive"`
	StartDate null.Time `json:"start_date"`
	EndDate   null.Time `json:"end_date"`
}

// EmailRequest is the payload of a request to mail a transcript.
type EmailRequest struct {
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"max=100"`
	Format   Format    `json:"format" validate:"required,exportformat"`
	Title    string    `json:"title" validate:"max=200"`
	Messages []Message `json:"messages" validate:"required,dive"`
}

// Clean normalizes user supplied fields.
func (r *Request) Clean() {
	r.Title = cleanTitle(r.Title)
	r.Format = cleanFormat(r.Format)
}

func (r *EmailRequest) Clean() {
	r.Title = cleanTitle(r.Title)
	r.Format = cleanFormat(r.Format)
}

func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

func cleanFormat(f Format) Format {
	return Format(strings.ToLower(strings.TrimSpace(string(f))))
}

func millis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
