package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
	"github.com/trezcool/elimu/core/history"
	"github.com/trezcool/elimu/tests"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestHistoryRepository_QueryRecords(t *testing.T) {
	repo := NewHistoryRepository(testutil.PrepareDB(t))
	ctx := context.Background()

	greet := testutil.CreateQueryRecord(t, repo, "hello", assistant.TypeGreeting, "usr_1", t0)
	subj := testutil.CreateQueryRecord(t, repo, "help with physics", assistant.TypeSubjectQuestion, "usr_2", t0.Add(time.Minute))
	greet2 := testutil.CreateQueryRecord(t, repo, "hi", assistant.TypeGreeting, "", t0.Add(2*time.Minute))

	tests := []struct {
		name   string
		filter history.QueryFilter
		want   []history.QueryRecord
	}{
		{"all newest first", history.QueryFilter{}, []history.QueryRecord{greet2, subj, greet}},
		{"by type", history.QueryFilter{Type: assistant.TypeGreeting}, []history.QueryRecord{greet2, greet}},
		{"by user", history.QueryFilter{UserID: "usr_2"}, []history.QueryRecord{subj}},
		{"by type and user", history.QueryFilter{Type: assistant.TypeGreeting, UserID: "usr_2"}, []history.QueryRecord{}},
		{"limit", history.QueryFilter{Limit: 1}, []history.QueryRecord{greet2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FilterQueryRecords(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	stats, err := repo.CountQueriesByType(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []history.TypeCount{
		{Type: assistant.TypeGreeting, Count: 2},
		{Type: assistant.TypeSubjectQuestion, Count: 1},
	}, stats)

	stats, err = repo.CountQueriesByType(ctx, "usr_2")
	require.NoError(t, err)
	assert.Equal(t, []history.TypeCount{{Type: assistant.TypeSubjectQuestion, Count: 1}}, stats)
}

func TestHistoryRepository_ExportRecords(t *testing.T) {
	repo := NewHistoryRepository(testutil.PrepareDB(t))
	ctx := context.Background()

	ok := testutil.CreateExportRecord(t, repo, "Algebra", export.FormatMarkdown, true, "usr_1", t0)
	failed := testutil.CreateExportRecord(t, repo, "Physics", export.FormatPDF, false, "usr_1", t0.Add(time.Second))

	got, err := repo.FilterExportRecords(ctx, history.ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, []history.ExportRecord{failed, ok}, got)

	got, err = repo.FilterExportRecords(ctx, history.ExportFilter{Format: export.FormatMarkdown})
	require.NoError(t, err)
	assert.Equal(t, []history.ExportRecord{ok}, got)

	got, err = repo.FilterExportRecords(ctx, history.ExportFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryRepository_DuplicateID(t *testing.T) {
	repo := NewHistoryRepository(testutil.PrepareDB(t))
	rec := testutil.CreateQueryRecord(t, repo, "hello", assistant.TypeGreeting, "", t0)
	assert.Error(t, repo.CreateQueryRecord(context.Background(), rec))
}
