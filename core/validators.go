package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const requiredText = "this field is required"

// Tag is a custom validation tag and its english message.
// Func may be nil to only translate a built-in tag; Override must then be set.
type Tag struct {
	Name     string
	Text     string
	Func     validator.Func
	Override bool
}

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	locale := en.New()
	translator, _ := ut.New(locale, locale).GetTranslator(locale.Locale())
	return translator
}

// InitValidators sets up validate with english messages and JSON field names.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)
	validate.RegisterTagNameFunc(fieldName)
	RegisterTags(validate, translator,
		Tag{Name: "required", Text: requiredText, Override: true},
		Tag{Name: "required_with", Text: requiredText, Override: true},
	)
}

// RegisterTags registers each tag's validation func (if any) and its message.
func RegisterTags(validate *validator.Validate, translator ut.Translator, tags ...Tag) {
	for _, tag := range tags {
		tag := tag
		if tag.Func != nil {
			_ = validate.RegisterValidation(tag.Name, tag.Func)
		}
		_ = validate.RegisterTranslation(
			tag.Name, translator,
			func(t ut.Translator) error { return t.Add(tag.Name, tag.Text, tag.Override) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag.Name, fe.Field())
				return msg
			},
		)
	}
}

// fieldName names a field after its JSON key, or its query key for GET filters.
func fieldName(fld reflect.StructField) string {
	for _, key := range [...]string{"json", "query"} {
		switch name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]; name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}
	return ""
}

// TranslateValidationErrors maps each failing field to its translated message.
// Keys are namespaced without the root struct, eg. "messages[2].role".
func TranslateValidationErrors(errs validator.ValidationErrors, translator ut.Translator) map[string]string {
	fldErrs := make(map[string]string, len(errs))
	for _, vErr := range errs {
		key := vErr.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		fldErrs[key] = vErr.Translate(translator)
	}
	return fldErrs
}
