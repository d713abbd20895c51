package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "kanban-board.com/kanban-board/internal/errors"
)

const invalidEmail = "enter a valid email address"

// RequestValidator plugs go-playground/validator into echo's Validator hook
// and reports failures keyed by JSON field name.
type RequestValidator struct {
	validate *validator.Validate
}

// validate is shared: validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func New() *RequestValidator {
	return &RequestValidator{validate: validate}
}

// ValidateEmail applies the `email` tag rules to a single address.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return apperrors.ValidationFields(invalidEmail, map[string]string{
			"email": invalidEmail,
		})
	}
	return nil
}

func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperrors.ValidationFields("invalid request", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return invalidEmail
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "must be a positive id"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
