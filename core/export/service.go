// Package export renders chat transcripts (text, markdown, json and a printable "pdf") and
// delivers them to a Sink.
package export

import (
	"context"
	"net/mail"
	"runtime"
	"sync"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

const DefaultBatchSize = 100

type (
	// Sink receives rendered files. Save must not leave a partial file behind when it fails.
	Sink interface {
		Save(ctx context.Context, f File) error
	}

	// Recorder keeps a history of exports. Implementations must not fail the request.
	Recorder interface {
		RecordExport(ctx context.Context, title string, format Format, messageCount int, res Result, req core.Requester)
	}

	// ProgressFunc receives the percentage of processed messages, from 0 to 100.
	ProgressFunc func(percent float64)

	Options struct {
		Brand     string
		Location  *time.Location
		BatchSize int
	}

	Service struct {
		renderer  *Renderer
		sink      Sink
		mailer    core.EmailService
		recorder  Recorder
		logger    core.Logger
		batchSize int
		nowFunc   func() time.Time
	}
)

// NewService builds an export service delivering to sink. mailer and recorder may be nil.
func NewService(sink Sink, mailer core.EmailService, recorder Recorder, logger core.Logger, opts Options) *Service {
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	vala.BeginValidation().Validate(
		vala.GreaterThan(opts.BatchSize, 0, "BatchSize"),
	).CheckAndPanic()

	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Service{
		renderer:  NewRenderer(opts.Brand, opts.Location),
		sink:      sink,
		mailer:    mailer,
		recorder:  recorder,
		logger:    logger,
		batchSize: opts.BatchSize,
		nowFunc:   time.Now,
	}
}

// Render renders messages without delivering them.
func (svc *Service) Render(format Format, messages []Message, title string) (File, error) {
	return svc.renderer.Render(format, messages, title, svc.nowFunc())
}

// Export renders messages and saves them to the service sink.
func (svc *Service) Export(ctx context.Context, format Format, messages []Message, title string, req core.Requester) Result {
	return svc.ExportTo(ctx, svc.sink, format, messages, title, req)
}

func (svc *Service) ExportAsText(ctx context.Context, messages []Message, title string, req core.Requester) Result {
	return svc.Export(ctx, FormatText, messages, title, req)
}

func (svc *Service) ExportAsMarkdown(ctx context.Context, messages []Message, title string, req core.Requester) Result {
	return svc.Export(ctx, FormatMarkdown, messages, title, req)
}

func (svc *Service) ExportAsJSON(ctx context.Context, messages []Message, title string, req core.Requester) Result {
	return svc.Export(ctx, FormatJSON, messages, title, req)
}

func (svc *Service) ExportAsPDF(ctx context.Context, messages []Message, title string, req core.Requester) Result {
	return svc.Export(ctx, FormatPDF, messages, title, req)
}

// ExportTo renders messages and saves them to dst. Every failure is reported in the Result.
func (svc *Service) ExportTo(ctx context.Context, dst Sink, format Format, messages []Message, title string, req core.Requester) Result {
	res := svc.deliver(ctx, dst, format, messages, title)
	svc.record(ctx, title, format, len(messages), res, req)
	return res
}

// ExportLargeChat processes messages in batches, reporting progress after each one and
// yielding between batches, then exports them like ExportTo.
// onProgress may be nil.
func (svc *Service) ExportLargeChat(ctx context.Context, dst Sink, format Format, messages []Message, title string, req core.Requester, onProgress ProgressFunc) Result {
	processed := make([]Message, 0, len(messages))
	total := len(messages)

	for i := 0; i < total; i += svc.batchSize {
		end := i + svc.batchSize
		if end > total {
			end = total
		}
		processed = append(processed, messages[i:end]...)

		if onProgress != nil {
			onProgress(float64(end) / float64(total) * 100)
		}
		if end < total {
			runtime.Gosched()
			if err := ctx.Err(); err != nil {
				res := svc.failure(format, errors.Wrap(err, "exporting large chat"))
				svc.record(ctx, title, format, total, res, req)
				return res
			}
		}
	}

	return svc.ExportTo(ctx, dst, format, processed, title, req)
}

// Email renders messages and queues them as an attachment to the given address.
// The mailer sends asynchronously and logs its own failures, so a successful Result is Queued
// and the recorded history entry reflects queue acceptance only.
func (svc *Service) Email(ctx context.Context, to mail.Address, format Format, messages []Message, title string, req core.Requester) Result {
	if svc.mailer == nil {
		res := svc.failure(format, errors.New("no mailer configured"))
		svc.record(ctx, title, format, len(messages), res, req)
		return res
	}

	res := svc.ExportTo(ctx, SinkFunc(func(_ context.Context, f File) error {
		msg := &core.EmailMessage{
			To:           []mail.Address{to},
			Subject:      titleOrDefault(title),
			TemplateName: "transcript",
			TemplateData: map[string]interface{}{
				"Name":         to.Name,
				"Title":        titleOrDefault(title),
				"MessageCount": len(messages),
				"Filename":     f.Name,
			},
		}
		msg.Attach(f.Data, f.Name, f.ContentType)
		svc.mailer.SendMessages(msg)
		return nil
	}), format, messages, title, req)
	res.Queued = res.Success
	return res
}

func (svc *Service) deliver(ctx context.Context, dst Sink, format Format, messages []Message, title string) Result {
	if dst == nil {
		return svc.failure(format, errors.New("no sink configured"))
	}
	f, err := svc.Render(format, messages, title)
	if err != nil {
		return svc.failure(format, errors.Wrapf(err, "rendering %s", format))
	}
	if err = dst.Save(ctx, f); err != nil {
		return svc.failure(format, errors.Wrapf(err, "saving %s", f.Name))
	}
	return Result{Success: true, Filename: f.Name}
}

func (svc *Service) failure(format Format, err error) Result {
	svc.logger.Error("export failed", err, map[string]interface{}{"format": format})
	return Result{Success: false, Error: err.Error()}
}

func (svc *Service) record(ctx context.Context, title string, format Format, count int, res Result, req core.Requester) {
	if svc.recorder != nil {
		svc.recorder.RecordExport(ctx, titleOrDefault(title), format, count, res, req)
	}
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, f File) error

func (fn SinkFunc) Save(ctx context.Context, f File) error { return fn(ctx, f) }

// MemorySink keeps saved files in memory.
type MemorySink struct {
	mu    sync.Mutex
	files []File
}

var _ Sink = (*MemorySink)(nil)

func (s *MemorySink) Save(ctx context.Context, f File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, f)
	return nil
}

// Files returns a copy of the saved files, in save order.
func (s *MemorySink) Files() []File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]File(nil), s.files...)
}
