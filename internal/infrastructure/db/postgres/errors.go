package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// notFound translates gorm's missing-row error into domain.ErrNotFound and
// leaves every other error untouched.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, domain.ErrNotFound)...)
	}
	return err
}
