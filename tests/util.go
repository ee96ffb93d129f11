package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
	"github.com/trezcool/elimu/core/history"
	"github.com/trezcool/elimu/storage/database"
)

// PrepareDB opens a migrated in-memory sqlite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.SQLite, Path: ":memory:"}}

	db, err := database.Open(context.Background(), conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	goose.SetLogger(goose.NopLogger())
	if err = database.Migrate(context.Background(), db.DB, conf.Database.Engine); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// FakeMessages returns n alternating user/assistant messages, one second apart from start.
func FakeMessages(n int, start time.Time) []export.Message {
	faker := gofakeit.New(int64(n))
	msgs := make([]export.Message, n)
	for i := range msgs {
		role := export.RoleUser
		if i%2 == 1 {
			role = export.RoleAssistant
		}
		msgs[i] = export.Message{
			ID:        faker.UUID(),
			Role:      role,
			Content:   faker.Sentence(10),
			Timestamp: null.Int64From(start.Add(time.Duration(i)*time.Second).UnixNano() / int64(time.Millisecond)),
		}
	}
	return msgs
}

func CreateQueryRecord(
	t *testing.T,
	repo history.Repository,
	query string,
	typ assistant.QueryType,
	userID string,
	createdAt ...time.Time,
) history.QueryRecord {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	rec := history.QueryRecord{
		ID:         gofakeit.UUID(),
		Query:      query,
		Type:       typ,
		Confidence: 0.7,
		UserID:     null.NewString(userID, userID != ""),
		CreatedAt:  tstamp,
	}
	if err := repo.CreateQueryRecord(context.Background(), rec); err != nil {
		t.Fatalf("CreateQueryRecord() failed: %v", err)
	}
	return rec
}

func CreateExportRecord(
	t *testing.T,
	repo history.Repository,
	title string,
	format export.Format,
	success bool,
	userID string,
	createdAt ...time.Time,
) history.ExportRecord {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	rec := history.ExportRecord{
		ID:           gofakeit.UUID(),
		Title:        title,
		Format:       format,
		MessageCount: 2,
		Success:      success,
		UserID:       null.NewString(userID, userID != ""),
		CreatedAt:    tstamp,
	}
	if success {
		rec.Filename = null.StringFrom(export.Filename(title, format))
	} else {
		rec.Error = null.StringFrom("export failed")
	}
	if err := repo.CreateExportRecord(context.Background(), rec); err != nil {
		t.Fatalf("CreateExportRecord() failed: %v", err)
	}
	return rec
}
