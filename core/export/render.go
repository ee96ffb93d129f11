package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
)

const (
	stampLayout = "2006-01-02 15:04:05"
	isoLayout   = "2006-01-02T15:04:05.000Z07:00"
)

// Content types
const (
	ContentTypeText     = "text/plain; charset=utf-8"
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
	ContentTypeJSON     = "application/json"
)

// ContentTypePrintHTML is the real content type of "pdf" exports.
const ContentTypePrintHTML = "text/html; charset=utf-8"

// Renderer turns transcripts into files. Rendering has no side effects.
type Renderer struct {
	Brand    string
	Location *time.Location
	// NewFace returns the face pdf pages are drawn with. It is called once per render
	// since faces are not safe for concurrent use.
	NewFace func() (font.Face, error)
}

func NewRenderer(brand string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{Brand: brand, Location: loc, NewFace: newBodyFace}
}

// Render renders messages in the given format.
func (r *Renderer) Render(format Format, messages []Message, title string, exportedAt time.Time) (File, error) {
	switch format {
	case FormatText:
		return r.Text(messages, title, exportedAt), nil
	case FormatMarkdown:
		return r.Markdown(messages, title, exportedAt), nil
	case FormatJSON:
		return r.JSON(messages, title, exportedAt)
	case FormatPDF:
		return r.PDF(messages, title, exportedAt)
	}
	return File{}, errors.Errorf("unsupported export format %q", format)
}

func (r *Renderer) stamp(t time.Time) string {
	return t.In(r.Location).Format(stampLayout)
}

// Text renders a plain text transcript: a header, then one line per message.
func (r *Renderer) Text(messages []Message, title string, exportedAt time.Time) File {
	title = titleOrDefault(title)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Exported: %s\n\n", r.stamp(exportedAt))
	for _, msg := range messages {
		if t, ok := msg.Time(); ok {
			fmt.Fprintf(&b, "[%s] ", r.stamp(t))
		}
		fmt.Fprintf(&b, "%s: %s\n", roleLabel(msg.Role), msg.Content)
	}

	return File{
		Name:        Filename(title, FormatText),
		ContentType: ContentTypeText,
		Data:        []byte(b.String()),
	}
}

// Markdown renders a transcript with one "###" section per message separated by rules.
func (r *Renderer) Markdown(messages []Message, title string, exportedAt time.Time) File {
	title = titleOrDefault(title)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*Exported: %s*\n\n", r.stamp(exportedAt))
	for _, msg := range messages {
		fmt.Fprintf(&b, "### %s\n\n", roleLabel(msg.Role))
		if t, ok := msg.Time(); ok {
			fmt.Fprintf(&b, "*%s*\n\n", r.stamp(t))
		}
		fmt.Fprintf(&b, "%s\n\n---\n\n", msg.Content)
	}

	return File{
		Name:        Filename(title, FormatMarkdown),
		ContentType: ContentTypeMarkdown,
		Data:        []byte(b.String()),
	}
}

type (
	jsonTranscript struct {
		Title      string        `json:"title"`
		ExportedAt string        `json:"exportedAt"`
		Messages   []jsonMessage `json:"messages"`
	}

	jsonMessage struct {
		ID        string `json:"id"`
		Role      string `json:"role"`
		Content   string `json:"content"`
		Timestamp int64  `json:"timestamp"`
	}
)

// JSON renders a pretty-printed transcript. Messages without timestamp get the export time.
func (r *Renderer) JSON(messages []Message, title string, exportedAt time.Time) (File, error) {
	title = titleOrDefault(title)

	doc := jsonTranscript{
		Title:      title,
		ExportedAt: exportedAt.UTC().Format(isoLayout),
		Messages:   make([]jsonMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		ts := millis(exportedAt)
		if msg.Timestamp.Valid {
			ts = msg.Timestamp.Int64
		}
		doc.Messages = append(doc.Messages, jsonMessage{
			ID:        msg.ID,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: ts,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return File{}, errors.Wrap(err, "encoding json transcript")
	}

	return File{
		Name:        Filename(title, FormatJSON),
		ContentType: ContentTypeJSON,
		Data:        buf.Bytes(),
	}, nil
}

func titleOrDefault(title string) string {
	if title = strings.TrimSpace(title); title == "" {
		return DefaultTitle
	}
	return title
}

// Filename turns title into a filesystem safe, lowercase base name with the format's extension.
// Every character other than an ASCII letter or digit becomes an underscore.
func Filename(title string, format Format) string {
	title = titleOrDefault(title)
	var b strings.Builder
	for _, c := range strings.ToLower(title) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + format.Extension()
}
