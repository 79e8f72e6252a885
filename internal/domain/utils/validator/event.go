package validator

import (
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/go-playground/validator/v10"
)

func eventType(fl validator.FieldLevel) bool {
	return entity.EventType(fl.Field().String()).Valid()
}
