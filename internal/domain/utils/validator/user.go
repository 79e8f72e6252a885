package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

func (v *Validator) campusEmail(fl validator.FieldLevel) bool {
	if len(v.campusDomains) == 0 {
		return true
	}

	email := strings.ToLower(fl.Field().String())
	for _, domain := range v.campusDomains {
		if strings.HasSuffix(email, "@"+strings.TrimPrefix(strings.ToLower(domain), "@")) {
			return true
		}
	}
	return false
}
