package core

import (
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(nil,
		FieldError{Field: "end_date", Error: "first"},
		FieldError{Field: "end_date", Error: "second"},
		FieldError{Field: "title", Error: "too long"},
	)
	var vErr *ValidationError
	if assert.True(t, errors.As(errors.Wrap(err, "validating"), &vErr)) {
		assert.Equal(t, "invalid request", vErr.Error())
		assert.Equal(t, map[string]string{"end_date": "first", "title": "too long"}, vErr.FieldMap())
	}

	plain := NewValidationError(sql.ErrNoRows).(*ValidationError)
	assert.Nil(t, plain.FieldMap())
	assert.True(t, errors.Is(plain, sql.ErrNoRows))
}

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("database connection closed")
	assert.Equal(t, "shutdown requested: database connection closed", err.Error())
	assert.True(t, IsShutdown(err))
	assert.True(t, IsShutdown(errors.Wrap(err, "listing queries")))
	assert.False(t, IsShutdown(errors.New("database connection closed")))
	assert.False(t, IsShutdown(nil))
}
