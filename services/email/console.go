package emailsvc

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

type consoleService struct {
	from       mail.Address
	subjPrefix string
	templates  *core.EmailTemplates
	logger     core.Logger
	out        io.Writer
	nowFunc    func() time.Time
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService writes messages to stdout as MIME documents instead of sending them.
func NewConsoleService(conf *core.Config, templates *core.EmailTemplates, logger core.Logger) core.EmailService {
	return newConsoleService(conf, templates, logger, os.Stdout)
}

func newConsoleService(conf *core.Config, templates *core.EmailTemplates, logger core.Logger, out io.Writer) *consoleService {
	return &consoleService{
		from:       conf.DefaultFromEmail,
		subjPrefix: "[" + conf.AppName + "] ",
		templates:  templates,
		logger:     logger,
		out:        out,
		nowFunc:    time.Now,
	}
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go func(msg *core.EmailMessage) {
			if _, err := svc.deliver(msg); err != nil {
				svc.logger.Error("printing email", err, map[string]interface{}{"subject": msg.Subject})
			}
		}(msg)
	}
}

// deliver renders msg and prints it. Messages without recipients or content are skipped (false).
func (svc *consoleService) deliver(msg *core.EmailMessage) (bool, error) {
	if err := svc.templates.Render(msg); err != nil {
		return false, errors.Wrap(err, "rendering email")
	}
	if !msg.HasRecipients() || !(msg.HasContent() || msg.HasAttachments()) {
		return false, nil
	}
	body, err := svc.compose(*msg)
	if err != nil {
		return false, err
	}
	if _, err = io.WriteString(svc.out, body+"\n"); err != nil {
		return false, errors.Wrap(err, "writing email")
	}
	return true, nil
}

// compose lays out msg as multipart/alternative (text + html),
// nested in multipart/mixed when there are attachments.
func (svc *consoleService) compose(msg core.EmailMessage) (string, error) {
	body := new(strings.Builder)

	headers := [][2]string{
		{"From", svc.from.String()},
		{"MIME-Version", "1.0"},
		{"Date", svc.nowFunc().Format(time.RFC1123Z)},
		{"Subject", svc.subjPrefix + msg.Subject},
		{"To", joinAddresses(msg.To)},
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, [2]string{"Cc", joinAddresses(msg.Cc)})
	}
	if len(msg.Bcc) > 0 {
		headers = append(headers, [2]string{"Bcc", joinAddresses(msg.Bcc)})
	}

	alt := multipart.NewWriter(body)
	var mixed *multipart.Writer
	if msg.HasAttachments() {
		mixed = multipart.NewWriter(body)
		headers = append(headers, [2]string{"Content-Type", "multipart/mixed; boundary=" + mixed.Boundary()})
	} else {
		headers = append(headers, [2]string{"Content-Type", "multipart/alternative; boundary=" + alt.Boundary()})
	}
	for _, h := range headers {
		_, _ = fmt.Fprintf(body, "%s: %s\r\n", h[0], h[1])
	}
	body.WriteString("\r\n")

	if mixed != nil {
		if _, err := mixed.CreatePart(contentType("multipart/alternative; boundary=" + alt.Boundary())); err != nil {
			return "", errors.Wrap(err, "creating multipart/alternative part")
		}
	}
	if err := writePart(alt, contentType("text/plain; charset=utf-8"), msg.TextContent); err != nil {
		return "", err
	}
	if msg.HTMLContent != "" {
		if err := writePart(alt, contentType("text/html; charset=utf-8"), msg.HTMLContent); err != nil {
			return "", err
		}
	}
	if err := alt.Close(); err != nil {
		return "", errors.Wrap(err, "closing multipart/alternative part")
	}

	if mixed == nil {
		return body.String(), nil
	}
	for _, at := range msg.Attachments {
		header := contentType(at.ContentType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", "attachment; filename="+at.Filename)
		if err := writePart(mixed, header, at.Content.String()); err != nil {
			return "", err
		}
	}
	if err := mixed.Close(); err != nil {
		return "", errors.Wrap(err, "closing multipart/mixed part")
	}
	return body.String(), nil
}

func contentType(ct string) textproto.MIMEHeader {
	return textproto.MIMEHeader{"Content-Type": {ct}}
}

func writePart(w *multipart.Writer, header textproto.MIMEHeader, content string) error {
	part, err := w.CreatePart(header)
	if err != nil {
		return errors.Wrapf(err, "creating %s part", header.Get("Content-Type"))
	}
	_, err = io.WriteString(part, content+"\r\n")
	return errors.Wrapf(err, "writing %s part", header.Get("Content-Type"))
}

func joinAddresses(addrs []mail.Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// ConsoleServiceMock composes messages synchronously, prints nothing and keeps what it sent.
type ConsoleServiceMock struct {
	svc *consoleService

	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*ConsoleServiceMock)(nil)

func NewConsoleServiceMock(conf *core.Config, templates *core.EmailTemplates) *ConsoleServiceMock {
	return &ConsoleServiceMock{svc: newConsoleService(conf, templates, core.NopLogger{}, io.Discard)}
}

func (m *ConsoleServiceMock) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if ok, err := m.svc.deliver(msg); err != nil || !ok {
			continue
		}
		m.mu.Lock()
		m.sent = append(m.sent, *msg)
		m.mu.Unlock()
	}
}

// Sent returns a copy of the messages sent so far.
func (m *ConsoleServiceMock) Sent() []core.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.EmailMessage(nil), m.sent...)
}
