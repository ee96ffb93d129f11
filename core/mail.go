package core

import (
	"bytes"
	"encoding/base64"
	htmltmpl "html/template"
	"io/fs"
	"net/http"
	"net/mail"
	"path"
	"strings"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

type (
	tmplCacheEntry map[string]interface{}    // {ext: *Template}
	tmplCache      map[string]tmplCacheEntry // {name: {tmplCacheEntry}}

	Attachment struct {
		Content     *bytes.Buffer // base64 encoded
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		BodyStr     string // simple text/plain, non-templated content
		Attachments []Attachment

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}

	// EmailTemplates renders templated messages. Each template "name" is made of "name.txt"
	// and/or "name.gohtml", both layered over the "_base" template of the same extension.
	EmailTemplates struct {
		frontendBaseURL string
		cache           tmplCache
	}
)

// ParseEmailTemplates parses the templates found in dir. In strict mode, missing keys are errors.
func ParseEmailTemplates(fsys fs.FS, dir, frontendBaseURL string, strict bool) (*EmailTemplates, error) {
	t := &EmailTemplates{frontendBaseURL: frontendBaseURL, cache: make(tmplCache)}

	fps, err := fs.Glob(fsys, path.Join(dir, "*"))
	if err != nil {
		return nil, errors.Wrap(err, "listing email templates")
	}

	for _, fp := range fps {
		fname := path.Base(fp)
		ext := path.Ext(fname)
		if strings.HasPrefix(fname, "_") || !(ext == ".txt" || ext == ".gohtml") {
			continue
		}
		name := strings.TrimSuffix(fname, ext)
		entry, ok := t.cache[name]
		if !ok {
			entry = make(tmplCacheEntry)
			t.cache[name] = entry
		}

		base := path.Join(dir, "_base"+ext)
		if ext == ".txt" {
			tmpl, err := texttmpl.ParseFS(fsys, base, fp)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %s", fname)
			}
			if strict {
				tmpl = tmpl.Option("missingkey=error")
			}
			entry[ext] = tmpl
		} else {
			tmpl, err := htmltmpl.ParseFS(fsys, base, fp)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %s", fname)
			}
			if strict {
				tmpl = tmpl.Option("missingkey=error")
			}
			entry[ext] = tmpl
		}
	}
	return t, nil
}

func (t *EmailTemplates) get(name, ext string) (interface{}, bool) {
	if t == nil {
		return nil, false
	}
	cache, ok := t.cache[name]
	if !ok {
		return nil, ok
	}
	tmplEntry, ok := cache[ext]
	return tmplEntry, ok
}

// Render fills TextContent and HTMLContent of m. A nil *EmailTemplates only handles BodyStr.
func (t *EmailTemplates) Render(m *EmailMessage) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
	}
	if m.TemplateName == "" {
		return nil
	}
	data := ContextData{Data: m.TemplateData}
	if t != nil {
		data.FrontendBaseURL = t.frontendBaseURL
	}

	if m.BodyStr == "" {
		if tmpl, ok := t.get(m.TemplateName, ".txt"); ok {
			var buff bytes.Buffer
			if err := tmpl.(*texttmpl.Template).Execute(&buff, data); err != nil {
				return errors.Wrapf(err, "rendering %s.txt", m.TemplateName)
			}
			m.TextContent = buff.String()
		}
	}

	if tmpl, ok := t.get(m.TemplateName, ".gohtml"); ok {
		var buff bytes.Buffer
		if err := tmpl.(*htmltmpl.Template).Execute(&buff, data); err != nil {
			return errors.Wrapf(err, "rendering %s.gohtml", m.TemplateName)
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

// Attach adds content as a base64 encoded attachment. The content type is sniffed unless given.
func (m *EmailMessage) Attach(content []byte, filename string, ct ...string) {
	contentType := http.DetectContentType(content)
	if len(ct) > 0 && ct[0] != "" {
		contentType = ct[0]
	}
	m.Attachments = append(m.Attachments, Attachment{
		Content:     bytes.NewBufferString(base64.StdEncoding.EncodeToString(content)),
		ContentType: contentType,
		Filename:    filename,
	})
}

func (m *EmailMessage) HasRecipients() bool  { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool     { return (m.TextContent != "") || (m.HTMLContent != "") }
func (m *EmailMessage) HasAttachments() bool { return len(m.Attachments) > 0 }
