// Package metricsvc counts classified queries and exports for Prometheus.
package metricsvc

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
)

const namespace = "elimu"

type (
	// Next receives the events after they are counted.
	Next interface {
		assistant.Recorder
		export.Recorder
	}

	// Recorder counts queries by type and exports by format and outcome, then passes the
	// events on to next.
	Recorder struct {
		next       Next
		queries    *prometheus.CounterVec
		confidence *prometheus.HistogramVec
		exports    *prometheus.CounterVec
		messages   prometheus.Counter
	}
)

var (
	_ assistant.Recorder = (*Recorder)(nil)
	_ export.Recorder    = (*Recorder)(nil)
)

// NewRecorder registers the collectors on reg. next may be nil.
func NewRecorder(reg prometheus.Registerer, next Next) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		next: next,
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "queries_total",
			Help:      "Analyzed chat queries by classified type.",
		}, []string{"type"}),
		confidence: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "confidence",
			Help:      "Classification confidence by type.",
			Buckets:   []float64{0, 0.7, 0.75, 0.8, 0.85, 0.9, 1},
		}, []string{"type"}),
		exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "Chat exports by format and success.",
		}, []string{"format", "success"}),
		messages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "messages_total",
			Help:      "Messages processed by chat exports.",
		}),
	}
}

func (r *Recorder) RecordQuery(ctx context.Context, query string, analysis assistant.QueryAnalysis, req core.Requester) {
	r.queries.WithLabelValues(string(analysis.Type)).Inc()
	r.confidence.WithLabelValues(string(analysis.Type)).Observe(analysis.Confidence)
	if r.next != nil {
		r.next.RecordQuery(ctx, query, analysis, req)
	}
}

func (r *Recorder) RecordExport(ctx context.Context, title string, format export.Format, count int, res export.Result, req core.Requester) {
	r.exports.WithLabelValues(string(format), strconv.FormatBool(res.Success)).Inc()
	r.messages.Add(float64(count))
	if r.next != nil {
		r.next.RecordExport(ctx, title, format, count, res, req)
	}
}
