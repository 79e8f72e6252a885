package postgres

import (
	"errors"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorz.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorz.ErrConflict
	default:
		return err
	}
}
