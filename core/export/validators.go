package export

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

var (
	chatRoleTag      = "chatrole"
	chatRoleText     = "role must be one of: user, assistant"
	exportFormatTag  = "exportformat"
	exportFormatText = "format must be one of: txt, md, json, pdf"
)

// InitValidators registers the export validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterTags(validate, translator,
		core.Tag{Name: chatRoleTag, Text: chatRoleText, Func: chatRoleValidation},
		core.Tag{Name: exportFormatTag, Text: exportFormatText, Func: exportFormatValidation},
	)
}

var errDateRange = errors.New("invalid date range")

// Validate cleans and validates the request.
func (r *Request) Validate(validate *validator.Validate) error {
	r.Clean()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.StartDate.Valid && r.EndDate.Valid && r.EndDate.Time.Before(r.StartDate.Time) {
		return core.NewValidationError(errDateRange, core.FieldError{
			Field: "end_date",
			Error: "end_date must not be before start_date",
		})
	}
	return nil
}

func (r *EmailRequest) Validate(validate *validator.Validate) error {
	r.Clean()
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.Name = core.CleanString(r.Name)
	return validate.Struct(r)
}

func chatRoleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == RoleUser || role == RoleAssistant
}

func exportFormatValidation(fl validator.FieldLevel) bool {
	return Format(fl.Field().String()).Valid()
}
