package core

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTemplatesFS = fstest.MapFS{
	"email/_base.txt":      {Data: []byte("{{template \"content\" .}}\n-- {{.FrontendBaseURL}}")},
	"email/_base.gohtml":   {Data: []byte("<body>{{template \"content\" .}}</body>")},
	"email/welcome.txt":    {Data: []byte("{{define \"content\"}}Hi {{.Data.Name}}{{end}}")},
	"email/welcome.gohtml": {Data: []byte("{{define \"content\"}}<p>Hi {{.Data.Name}}</p>{{end}}")},
	"email/text-only.txt":  {Data: []byte("{{define \"content\"}}plain{{end}}")},
	"email/ignored.md":     {Data: []byte("# ignored")},
}

func TestEmailTemplates_Render(t *testing.T) {
	tmpls, err := ParseEmailTemplates(testTemplatesFS, "email", "https://elimu.test", true)
	require.NoError(t, err)

	tests := []struct {
		name     string
		msg      EmailMessage
		wantText string
		wantHTML string
		wantErr  bool
	}{
		{
			name:     "text and html",
			msg:      EmailMessage{TemplateName: "welcome", TemplateData: map[string]string{"Name": "<Ada>"}},
			wantText: "Hi <Ada>\n-- https://elimu.test",
			wantHTML: "<body><p>Hi &lt;Ada&gt;</p></body>",
		},
		{
			name:     "text only",
			msg:      EmailMessage{TemplateName: "text-only"},
			wantText: "plain\n-- https://elimu.test",
		},
		{
			name:     "body string wins over text template",
			msg:      EmailMessage{BodyStr: "raw", TemplateName: "text-only"},
			wantText: "raw",
		},
		{
			name:     "unknown template",
			msg:      EmailMessage{TemplateName: "nope"},
			wantText: "",
		},
		{
			name:    "missing key in strict mode",
			msg:     EmailMessage{TemplateName: "welcome", TemplateData: map[string]string{}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			err := tmpls.Render(&msg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, msg.TextContent)
			assert.Equal(t, tt.wantHTML, msg.HTMLContent)
		})
	}
}

func TestEmailMessage_Attach(t *testing.T) {
	var msg EmailMessage
	msg.Attach([]byte("hello"), "hello.txt")
	msg.Attach([]byte("{}"), "data.json", "application/json")

	require.True(t, msg.HasAttachments())
	assert.Equal(t, "aGVsbG8=", msg.Attachments[0].Content.String())
	assert.Equal(t, "text/plain; charset=utf-8", msg.Attachments[0].ContentType)
	assert.Equal(t, "application/json", msg.Attachments[1].ContentType)
	assert.Equal(t, "data.json", msg.Attachments[1].Filename)
}

func TestEmailTemplates_NilRendersBodyOnly(t *testing.T) {
	var tmpls *EmailTemplates
	msg := EmailMessage{BodyStr: "hi", TemplateName: "welcome"}
	require.NoError(t, tmpls.Render(&msg))
	assert.Equal(t, "hi", msg.TextContent)
	assert.Empty(t, msg.HTMLContent)
}
