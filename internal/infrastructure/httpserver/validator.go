package httpserver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/avatarctic/storefront/internal/application/services"
)

// FormValidator adapts go-playground/validator to echo.Validator and turns the
// first failing field into a message a shopper can read.
type FormValidator struct {
	validate *validator.Validate
}

func NewValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return &FormValidator{validate: v}
}

func (v *FormValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return &services.ValidationError{Message: fieldMessage(fieldErrs[0])}
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return "Please enter a valid email address."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters.", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// fieldLabel turns "postal_code" into "Postal code".
func fieldLabel(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return "Field"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
