package export

import (
	"context"
	"fmt"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
)

type exportRecord struct {
	title  string
	format Format
	count  int
	res    Result
	req    core.Requester
}

type recorderMock struct {
	mu      sync.Mutex
	records []exportRecord
}

func (r *recorderMock) RecordExport(_ context.Context, title string, format Format, count int, res Result, req core.Requester) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, exportRecord{title, format, count, res, req})
}

type mailerMock struct {
	messages []*core.EmailMessage
}

func (m *mailerMock) SendMessages(messages ...*core.EmailMessage) {
	m.messages = append(m.messages, messages...)
}

func newTestService(sink Sink, mailer core.EmailService, recorder Recorder, batchSize int) *Service {
	svc := NewService(sink, mailer, recorder, nil, Options{Brand: "Elimu", Location: time.UTC, BatchSize: batchSize})
	svc.nowFunc = func() time.Time { return exportedAt }
	return svc
}

func fakeMessages(n int) []Message {
	faker := gofakeit.New(42)
	msgs := make([]Message, n)
	for i := range msgs {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		msgs[i] = Message{
			ID:        faker.UUID(),
			Role:      role,
			Content:   faker.Sentence(12),
			Timestamp: null.Int64From(1714557600000 + int64(i)*1000),
		}
	}
	return msgs
}

func TestService_Export(t *testing.T) {
	sink := new(MemorySink)
	rec := new(recorderMock)
	svc := newTestService(sink, nil, rec, 0)
	req := core.Requester{ID: "usr_1"}

	tests := []struct {
		name string
		run  func() Result
		want string
	}{
		{"text", func() Result { return svc.ExportAsText(context.Background(), transcript, "My Chat", req) }, "my_chat.txt"},
		{"markdown", func() Result { return svc.ExportAsMarkdown(context.Background(), transcript, "My Chat", req) }, "my_chat.md"},
		{"json", func() Result { return svc.ExportAsJSON(context.Background(), transcript, "My Chat", req) }, "my_chat.json"},
		{"pdf", func() Result { return svc.ExportAsPDF(context.Background(), transcript, "My Chat", req) }, "my_chat.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Result{Success: true, Filename: tt.want}, tt.run())
		})
	}

	files := sink.Files()
	require.Len(t, files, 4)
	assert.Equal(t, "my_chat.txt", files[0].Name)
	require.Len(t, rec.records, 4)
	assert.Equal(t, exportRecord{"My Chat", FormatText, 3, Result{Success: true, Filename: "my_chat.txt"}, req}, rec.records[0])
}

func TestService_Export_Failures(t *testing.T) {
	failing := SinkFunc(func(context.Context, File) error { return errors.New("disk full") })

	t.Run("sink failure", func(t *testing.T) {
		rec := new(recorderMock)
		res := newTestService(failing, nil, rec, 0).Export(context.Background(), FormatText, transcript, "x", core.Requester{})
		assert.False(t, res.Success)
		assert.Empty(t, res.Filename)
		assert.Contains(t, res.Error, "disk full")
		require.Len(t, rec.records, 1)
		assert.False(t, rec.records[0].res.Success)
	})

	t.Run("unknown format", func(t *testing.T) {
		sink := new(MemorySink)
		res := newTestService(sink, nil, nil, 0).Export(context.Background(), "docx", transcript, "x", core.Requester{})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "unsupported export format")
		assert.Empty(t, sink.Files())
	})

	t.Run("no sink", func(t *testing.T) {
		res := newTestService(nil, nil, nil, 0).Export(context.Background(), FormatText, transcript, "x", core.Requester{})
		assert.False(t, res.Success)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sink := new(MemorySink)
		res := newTestService(sink, nil, nil, 0).Export(ctx, FormatJSON, transcript, "x", core.Requester{})
		assert.False(t, res.Success)
		assert.Empty(t, sink.Files())
	})
}

func TestNewService_InvalidBatchSize(t *testing.T) {
	assert.Panics(t, func() { newTestService(new(MemorySink), nil, nil, -1) })
}

func TestService_ExportLargeChat(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		batchSize int
		want      []float64
	}{
		{"single partial batch", 42, 100, []float64{100}},
		{"exact batches", 200, 100, []float64{50, 100}},
		{"trailing partial batch", 250, 100, []float64{40, 80, 100}},
		{"custom batch size", 10, 4, []float64{40, 80, 100}},
		{"no messages", 0, 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := new(MemorySink)
			svc := newTestService(sink, nil, nil, tt.batchSize)
			msgs := fakeMessages(tt.count)

			var progress []float64
			res := svc.ExportLargeChat(context.Background(), sink, FormatText, msgs, "Big chat", core.Requester{}, func(p float64) {
				progress = append(progress, p)
			})

			assert.True(t, res.Success, res.Error)
			assert.Equal(t, "big_chat.txt", res.Filename)
			assert.InDeltaSlice(t, tt.want, progress, 1e-9)

			want, err := svc.Render(FormatText, msgs, "Big chat")
			require.NoError(t, err)
			files := sink.Files()
			require.Len(t, files, 1)
			assert.Equal(t, want.Data, files[0].Data)
		})
	}
}

func TestService_ExportLargeChat_Canceled(t *testing.T) {
	sink := new(MemorySink)
	rec := new(recorderMock)
	svc := newTestService(sink, nil, rec, 10)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	res := svc.ExportLargeChat(ctx, sink, FormatMarkdown, fakeMessages(50), "", core.Requester{}, func(float64) {
		calls++
		cancel()
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, context.Canceled.Error())
	assert.Equal(t, 1, calls)
	assert.Empty(t, sink.Files())
	require.Len(t, rec.records, 1)
	assert.Equal(t, DefaultTitle, rec.records[0].title)
}

func TestService_Email(t *testing.T) {
	mailer := new(mailerMock)
	svc := newTestService(nil, mailer, nil, 0)
	to := mail.Address{Name: "Ada", Address: "ada@elimu.test"}

	res := svc.Email(context.Background(), to, FormatMarkdown, transcript, "Algebra help", core.Requester{})
	require.True(t, res.Success, res.Error)
	assert.True(t, res.Queued)
	assert.Equal(t, "algebra_help.md", res.Filename)

	require.Len(t, mailer.messages, 1)
	msg := mailer.messages[0]
	assert.Equal(t, []mail.Address{to}, msg.To)
	assert.Equal(t, "Algebra help", msg.Subject)
	assert.Equal(t, "transcript", msg.TemplateName)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "algebra_help.md", msg.Attachments[0].Filename)
	assert.Equal(t, ContentTypeMarkdown, msg.Attachments[0].ContentType)

	t.Run("without mailer", func(t *testing.T) {
		res := newTestService(nil, nil, nil, 0).Email(context.Background(), to, FormatText, transcript, "x", core.Requester{})
		assert.False(t, res.Success)
		assert.False(t, res.Queued)
	})
}

func ExampleFilename() {
	fmt.Println(Filename("Physics: Week 3", FormatMarkdown))
	// Output: physics__week_3.md
}
