package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// BirthDateLayout is the dd-mm-yyyy layout birth dates are entered in.
const BirthDateLayout = "02-01-2006"

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = val.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		return IsBirthDate(fl.Field().String())
	})
	return val
}

// Struct validates s against its `validate` tags and returns a readable error.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func IsBirthDate(s string) bool {
	t, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return false
	}
	return !t.After(time.Now())
}

func IsTaxID(s string) bool {
	return v.Var(s, "required,number") == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "number":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "birthdate":
		return fmt.Sprintf("%s must be a past date in dd-mm-yyyy format", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
