package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/go-playground/validator/v10"
)

// Validator checks request payloads before any store call is made.
type Validator struct {
	validate      *validator.Validate
	campusDomains []string
}

// New creates a validator. When campusDomains is empty any email domain is accepted on sign-up.
func New(campusDomains []string) *Validator {
	v := &Validator{
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		campusDomains: campusDomains,
	}

	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.validate.RegisterValidation("event_type", eventType)
	_ = v.validate.RegisterValidation("campus_email", v.campusEmail)

	return v
}

// Struct validates s and returns *errorz.ValidationError keyed by json field name.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = message(fe)
	}
	return errorz.NewValidationError(fields)
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", name)
	case "email":
		return "Invalid email"
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "event_type":
		return "Invalid event type"
	case "campus_email":
		return "Email domain is not allowed"
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// label turns "event_date" into "Event date".
func label(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
