// Package history keeps a log of analyzed queries and chat exports.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
)

type (
	Repository interface {
		CreateQueryRecord(ctx context.Context, rec QueryRecord) error
		FilterQueryRecords(ctx context.Context, filter QueryFilter) ([]QueryRecord, error)
		// CountQueriesByType returns the per-type counts, most frequent first.
		CountQueriesByType(ctx context.Context, userID string) ([]TypeCount, error)
		CreateExportRecord(ctx context.Context, rec ExportRecord) error
		FilterExportRecords(ctx context.Context, filter ExportFilter) ([]ExportRecord, error)
	}

	Service struct {
		repo    Repository
		logger  core.Logger
		nowFunc func() time.Time
	}
)

var (
	_ assistant.Recorder = (*Service)(nil)
	_ export.Recorder    = (*Service)(nil)
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger, nowFunc: time.Now}
}

var newID = func() string { return uuid.New().String() } // mockable

// RecordQuery stores an analysis. Failures are logged only.
func (svc *Service) RecordQuery(ctx context.Context, query string, analysis assistant.QueryAnalysis, req core.Requester) {
	rec := newQueryRecord(query, analysis, req.ID, svc.nowFunc().UTC())
	if err := svc.repo.CreateQueryRecord(ctx, rec); err != nil {
		svc.logger.Error("recording query", errors.Wrap(err, "recording query"), req)
	}
}

// RecordExport stores the outcome of an export. Failures are logged only.
func (svc *Service) RecordExport(ctx context.Context, title string, format export.Format, count int, res export.Result, req core.Requester) {
	rec := newExportRecord(title, format, count, res, req.ID, svc.nowFunc().UTC())
	if err := svc.repo.CreateExportRecord(ctx, rec); err != nil {
		svc.logger.Error("recording export", errors.Wrap(err, "recording export"), req)
	}
}

func (svc *Service) Queries(ctx context.Context, filter QueryFilter) ([]QueryRecord, error) {
	filter.Limit = limit(filter.Limit)
	recs, err := svc.repo.FilterQueryRecords(ctx, filter)
	return recs, readError(err)
}

func (svc *Service) QueryStats(ctx context.Context, userID string) ([]TypeCount, error) {
	counts, err := svc.repo.CountQueriesByType(ctx, userID)
	return counts, readError(err)
}

func (svc *Service) Exports(ctx context.Context, filter ExportFilter) ([]ExportRecord, error) {
	filter.Limit = limit(filter.Limit)
	recs, err := svc.repo.FilterExportRecords(ctx, filter)
	return recs, readError(err)
}

// readError turns a lost database connection into a shutdown request.
func readError(err error) error {
	if errors.Is(err, sql.ErrConnDone) {
		return core.NewShutdownError("database connection closed")
	}
	return err
}
