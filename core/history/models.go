package history

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type (
	QueryRecord struct {
		ID          string              `json:"id"`
		Query       string              `json:"query"`
		Type        assistant.QueryType `json:"type"`
		Subject     null.String         `json:"subject"`
		Topic       null.String         `json:"topic"`
		Feature     null.String         `json:"feature"`
		PricingPlan null.String         `json:"pricing_plan"`
		Confidence  float64             `json:"confidence"`
		UserID      null.String         `json:"user_id"`
		CreatedAt   time.Time           `json:"created_at"`
	}

	ExportRecord struct {
		ID           string        `json:"id"`
		Title        string        `json:"title"`
		Format       export.Format `json:"format"`
		Filename     null.String   `json:"filename"`
		MessageCount int           `json:"message_count"`
		Success      bool          `json:"success"`
		Error        null.String   `json:"error"`
		UserID       null.String   `json:"user_id"`
		CreatedAt    time.Time     `json:"created_at"`
	}

	// QueryFilter applies AND operation on the set fields. Results are newest first.
	QueryFilter struct {
		Type   assistant.QueryType `json:"type" query:"type" validate:"omitempty,querytype"`
		UserID string              `json:"-" query:"-"`
		Limit  int                 `json:"limit" query:"limit" validate:"min=0,max=500"`
	}

	ExportFilter struct {
		Format export.Format `json:"format" query:"format" validate:"omitempty,exportformat"`
		UserID string        `json:"-" query:"-"`
		Limit  int           `json:"limit" query:"limit" validate:"min=0,max=500"`
	}

	// TypeCount is the number of recorded queries of one type.
	TypeCount struct {
		Type  assistant.QueryType `json:"type" db:"query_type"`
		Count int                 `json:"count" db:"count"`
	}
)

func newQueryRecord(query string, analysis assistant.QueryAnalysis, userID string, now time.Time) QueryRecord {
	return QueryRecord{
		ID:          newID(),
		Query:       query,
		Type:        analysis.Type,
		Subject:     null.NewString(analysis.Subject, analysis.Subject != ""),
		Topic:       null.NewString(analysis.Topic, analysis.Topic != ""),
		Feature:     null.NewString(analysis.Feature, analysis.Feature != ""),
		PricingPlan: null.NewString(analysis.PricingPlan, analysis.PricingPlan != ""),
		Confidence:  analysis.Confidence,
		UserID:      null.NewString(userID, userID != ""),
		CreatedAt:   now,
	}
}

func newExportRecord(title string, format export.Format, count int, res export.Result, userID string, now time.Time) ExportRecord {
	return ExportRecord{
		ID:           newID(),
		Title:        title,
		Format:       format,
		Filename:     null.NewString(res.Filename, res.Filename != ""),
		MessageCount: count,
		Success:      res.Success,
		Error:        null.NewString(res.Error, res.Error != ""),
		UserID:       null.NewString(userID, userID != ""),
		CreatedAt:    now,
	}
}

// limit clamps l to (0, MaxLimit]; zero means DefaultLimit.
func limit(l int) int {
	switch {
	case l <= 0:
		return DefaultLimit
	case l > MaxLimit:
		return MaxLimit
	}
	return l
}
