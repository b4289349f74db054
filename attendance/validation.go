package attendance

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// employeeInput is what the operator types when adding an employee.
type employeeInput struct {
	ID   string `label:"id" validate:"required"`
	Name string `label:"name" validate:"required"`
}

func newEmployeeInput(id, name string) employeeInput {
	return employeeInput{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}
}

type inputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var inputs = newInputValidator()

func newInputValidator() *inputValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	return &inputValidator{validate: validate, translator: trans}
}

// check returns the first failing field as a *ValidationError.
func (iv *inputValidator) check(v any) error {
	err := iv.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: fe.Translate(iv.translator)}
	}
	return &ValidationError{Message: err.Error()}
}
