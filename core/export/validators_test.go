package export

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
)

func newValidator() (*validator.Validate, func(error) map[string]string) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate, func(err error) map[string]string {
		return core.TranslateValidationErrors(err.(validator.ValidationErrors), translator)
	}
}

func TestRequest_Validate(t *testing.T) {
	validate, translate := newValidator()

	tests := []struct {
		name    string
		req     Request
		wantErr map[string]string
	}{
		{
			name: "valid",
			req:  Request{Format: " MD ", Messages: []Message{{ID: "1", Role: RoleUser, Content: "hi"}}},
		},
		{
			name: "empty transcript",
			req:  Request{Format: FormatText, Messages: []Message{}},
		},
		{
			name:    "missing fields",
			req:     Request{},
			wantErr: map[string]string{"format": "this field is required", "messages": "this field is required"},
		},
		{
			name:    "bad format",
			req:     Request{Format: "docx", Messages: []Message{}},
			wantErr: map[string]string{"format": exportFormatText},
		},
		{
			name: "bad message",
			req: Request{Format: FormatJSON, Messages: []Message{
				{ID: "1", Role: RoleUser},
				{Role: "system"},
			}},
			wantErr: map[string]string{"messages[1].id": "this field is required", "messages[1].role": chatRoleText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate(validate)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, req.Format.Valid())
				assert.Equal(t, DefaultTitle, req.Title)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, translate(err))
		})
	}
}

func TestRequest_Validate_dateRange(t *testing.T) {
	validate, _ := newValidator()
	may := func(d int) null.Time { return null.TimeFrom(time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)) }

	same := Request{Format: FormatText, Messages: []Message{}, StartDate: may(2), EndDate: may(2)}
	require.NoError(t, same.Validate(validate))

	openEnded := Request{Format: FormatText, Messages: []Message{}, EndDate: may(1)}
	require.NoError(t, openEnded.Validate(validate))

	reversed := Request{Format: FormatText, Messages: []Message{}, StartDate: may(3), EndDate: may(1)}
	err := reversed.Validate(validate)
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, map[string]string{"end_date": "end_date must not be before start_date"}, vErr.FieldMap())
}

func TestEmailRequest_Validate(t *testing.T) {
	validate, translate := newValidator()

	req := EmailRequest{Email: "  Ada@Elimu.TEST ", Name: " Ada ", Format: "TXT", Title: " Algebra ", Messages: []Message{}}
	require.NoError(t, req.Validate(validate))
	assert.Equal(t, "ada@elimu.test", req.Email)
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, FormatText, req.Format)
	assert.Equal(t, "Algebra", req.Title)

	bad := EmailRequest{Email: "nope", Format: FormatText, Messages: []Message{}}
	err := bad.Validate(validate)
	require.Error(t, err)
	assert.Contains(t, translate(err), "email")
}
