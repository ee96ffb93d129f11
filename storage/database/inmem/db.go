package inmemdb

import (
	"sync"

	"github.com/trezcool/elimu/core/history"
)

type (
	DB struct {
		queries *queryTable
		exports *exportTable
	}

	queryTable struct {
		sync.RWMutex
		rows []history.QueryRecord
	}

	exportTable struct {
		sync.RWMutex
		rows []history.ExportRecord
	}
)

func Open() *DB {
	return &DB{
		queries: new(queryTable),
		exports: new(exportTable),
	}
}
