package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
	"github.com/trezcool/elimu/core/history"
)

type (
	// timestamps are stored as epoch milliseconds so that every engine sorts them the same way
	queryRow struct {
		ID          string      `db:"id"`
		Query       string      `db:"query_text"`
		Type        string      `db:"query_type"`
		Subject     null.String `db:"subject"`
		Topic       null.String `db:"topic"`
		Feature     null.String `db:"feature"`
		PricingPlan null.String `db:"pricing_plan"`
		Confidence  float64     `db:"confidence"`
		UserID      null.String `db:"user_id"`
		CreatedAt   int64       `db:"created_at"`
	}

	exportRow struct {
		ID           string      `db:"id"`
		Title        string      `db:"title"`
		Format       string      `db:"format"`
		Filename     null.String `db:"filename"`
		MessageCount int         `db:"message_count"`
		Success      bool        `db:"success"`
		Error        null.String `db:"error"`
		UserID       null.String `db:"user_id"`
		CreatedAt    int64       `db:"created_at"`
	}

	historyRepository struct {
		db *sqlx.DB
	}
)

var _ history.Repository = (*historyRepository)(nil)

func NewHistoryRepository(db *sqlx.DB) history.Repository {
	return &historyRepository{db: db}
}

func toMillis(t time.Time) int64 { return t.UnixNano() / int64(time.Millisecond) }

func fromMillis(ms int64) time.Time { return time.Unix(0, ms*int64(time.Millisecond)).UTC() }

const insertQuery = `INSERT INTO query_records
	(id, query_text, query_type, subject, topic, feature, pricing_plan, confidence, user_id, created_at)
	VALUES (:id, :query_text, :query_type, :subject, :topic, :feature, :pricing_plan, :confidence, :user_id, :created_at)`

func (repo *historyRepository) CreateQueryRecord(ctx context.Context, rec history.QueryRecord) error {
	row := queryRow{
		ID:          rec.ID,
		Query:       rec.Query,
		Type:        string(rec.Type),
		Subject:     rec.Subject,
		Topic:       rec.Topic,
		Feature:     rec.Feature,
		PricingPlan: rec.PricingPlan,
		Confidence:  rec.Confidence,
		UserID:      rec.UserID,
		CreatedAt:   toMillis(rec.CreatedAt),
	}
	if _, err := repo.db.NamedExecContext(ctx, insertQuery, row); err != nil {
		return errors.Wrap(err, "inserting query record")
	}
	return nil
}

func (repo *historyRepository) FilterQueryRecords(ctx context.Context, filter history.QueryFilter) ([]history.QueryRecord, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Type != "" {
		where = append(where, "query_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}

	q := "SELECT * FROM query_records" + whereClause(where) + " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []queryRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting query records")
	}

	recs := make([]history.QueryRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, history.QueryRecord{
			ID:          row.ID,
			Query:       row.Query,
			Type:        assistant.QueryType(row.Type),
			Subject:     row.Subject,
			Topic:       row.Topic,
			Feature:     row.Feature,
			PricingPlan: row.PricingPlan,
			Confidence:  row.Confidence,
			UserID:      row.UserID,
			CreatedAt:   fromMillis(row.CreatedAt),
		})
	}
	return recs, nil
}

func (repo *historyRepository) CountQueriesByType(ctx context.Context, userID string) ([]history.TypeCount, error) {
	var (
		where []string
		args  []interface{}
	)
	if userID != "" {
		where = append(where, "user_id = ?")
		args = append(args, userID)
	}
	q := "SELECT query_type, COUNT(*) AS count FROM query_records" + whereClause(where) +
		" GROUP BY query_type ORDER BY count DESC, query_type"

	stats := make([]history.TypeCount, 0)
	if err := repo.db.SelectContext(ctx, &stats, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "counting query records")
	}
	return stats, nil
}

const insertExport = `INSERT INTO export_records
	(id, title, format, filename, message_count, success, error, user_id, created_at)
	VALUES (:id, :title, :format, :filename, :message_count, :success, :error, :user_id, :created_at)`

func (repo *historyRepository) CreateExportRecord(ctx context.Context, rec history.ExportRecord) error {
	row := exportRow{
		ID:           rec.ID,
		Title:        rec.Title,
		Format:       string(rec.Format),
		Filename:     rec.Filename,
		MessageCount: rec.MessageCount,
		Success:      rec.Success,
		Error:        rec.Error,
		UserID:       rec.UserID,
		CreatedAt:    toMillis(rec.CreatedAt),
	}
	if _, err := repo.db.NamedExecContext(ctx, insertExport, row); err != nil {
		return errors.Wrap(err, "inserting export record")
	}
	return nil
}

func (repo *historyRepository) FilterExportRecords(ctx context.Context, filter history.ExportFilter) ([]history.ExportRecord, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Format != "" {
		where = append(where, "format = ?")
		args = append(args, string(filter.Format))
	}
	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}

	q := "SELECT * FROM export_records" + whereClause(where) + " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []exportRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting export records")
	}

	recs := make([]history.ExportRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, history.ExportRecord{
			ID:           row.ID,
			Title:        row.Title,
			Format:       export.Format(row.Format),
			Filename:     row.Filename,
			MessageCount: row.MessageCount,
			Success:      row.Success,
			Error:        row.Error,
			UserID:       row.UserID,
			CreatedAt:    fromMillis(row.CreatedAt),
		})
	}
	return recs, nil
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
