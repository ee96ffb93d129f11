package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/history"
)

type historyRepository struct {
	db *DB
}

var _ history.Repository = (*historyRepository)(nil)

func NewHistoryRepository(db *DB) history.Repository {
	return &historyRepository{db: db}
}

func (repo *historyRepository) CreateQueryRecord(_ context.Context, rec history.QueryRecord) error {
	repo.db.queries.Lock()
	defer repo.db.queries.Unlock()
	repo.db.queries.rows = append(repo.db.queries.rows, rec)
	return nil
}

func (repo *historyRepository) FilterQueryRecords(_ context.Context, filter history.QueryFilter) ([]history.QueryRecord, error) {
	repo.db.queries.RLock()
	defer repo.db.queries.RUnlock()

	recs := make([]history.QueryRecord, 0)
	// newest first, ties in reverse insertion order
	for i := len(repo.db.queries.rows) - 1; i >= 0; i-- {
		rec := repo.db.queries.rows[i]
		if filter.Type != "" && rec.Type != filter.Type {
			continue
		}
		if filter.UserID != "" && rec.UserID.String != filter.UserID {
			continue
		}
		recs = append(recs, rec)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	if filter.Limit > 0 && len(recs) > filter.Limit {
		recs = recs[:filter.Limit]
	}
	return recs, nil
}

func (repo *historyRepository) CountQueriesByType(_ context.Context, userID string) ([]history.TypeCount, error) {
	repo.db.queries.RLock()
	defer repo.db.queries.RUnlock()

	counts := make(map[assistant.QueryType]int)
	for _, rec := range repo.db.queries.rows {
		if userID != "" && rec.UserID.String != userID {
			continue
		}
		counts[rec.Type]++
	}

	stats := make([]history.TypeCount, 0, len(counts))
	for typ, count := range counts {
		stats = append(stats, history.TypeCount{Type: typ, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Type < stats[j].Type
	})
	return stats, nil
}

func (repo *historyRepository) CreateExportRecord(_ context.Context, rec history.ExportRecord) error {
	repo.db.exports.Lock()
	defer repo.db.exports.Unlock()
	repo.db.exports.rows = append(repo.db.exports.rows, rec)
	return nil
}

func (repo *historyRepository) FilterExportRecords(_ context.Context, filter history.ExportFilter) ([]history.ExportRecord, error) {
	repo.db.exports.RLock()
	defer repo.db.exports.RUnlock()

	recs := make([]history.ExportRecord, 0)
	for i := len(repo.db.exports.rows) - 1; i >= 0; i-- {
		rec := repo.db.exports.rows[i]
		if filter.Format != "" && rec.Format != filter.Format {
			continue
		}
		if filter.UserID != "" && rec.UserID.String != filter.UserID {
			continue
		}
		recs = append(recs, rec)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	if filter.Limit > 0 && len(recs) > filter.Limit {
		recs = recs[:filter.Limit]
	}
	return recs, nil
}
