package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)
	RegisterTags(validate, translator, Tag{
		Name: "even",
		Text: "{0} must be even",
		Func: func(fl validator.FieldLevel) bool { return fl.Field().Int()%2 == 0 },
	})

	type item struct {
		Name string `json:"name,omitempty" validate:"required"`
	}
	type payload struct {
		Page   int    `query:"page" validate:"even"`
		Items  []item `json:"items" validate:"dive"`
		Secret string `json:"-" validate:"required"`
	}

	err := validate.Struct(payload{Page: 3, Items: []item{{Name: "a"}, {}}})
	require.IsType(t, validator.ValidationErrors{}, err)
	assert.Equal(t, map[string]string{
		"page":          "page must be even",
		"items[1].name": "this field is required",
		"Secret":        "this field is required",
	}, TranslateValidationErrors(err.(validator.ValidationErrors), translator))
}
