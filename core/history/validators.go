package history

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/export"
)

var (
	queryTypeTag  = "querytype"
	queryTypeText = "unknown query type"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterTags(validate, translator, core.Tag{
		Name: queryTypeTag,
		Text: queryTypeText,
		Func: func(fl validator.FieldLevel) bool {
			return assistant.QueryType(fl.Field().String()).Valid()
		},
	})
}

func (f *QueryFilter) Validate(validate *validator.Validate) error {
	f.Type = assistant.QueryType(core.CleanString(string(f.Type), true /* lower */))
	return validate.Struct(f)
}

func (f *ExportFilter) Validate(validate *validator.Validate) error {
	f.Format = export.Format(core.CleanString(string(f.Format), true /* lower */))
	return validate.Struct(f)
}
