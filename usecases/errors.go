package usecases

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy exposed to the presentation layer. All four are
// recoverable at the call site. A row that exists under another tenant
// reports ErrNotFound, never ErrPermissionDenied, so callers cannot probe
// for cross-tenant existence.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// translate maps store-level errors into the taxonomy. Anything else is an
// internal failure and propagates untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
