package league

import (
	"errors"
	"fmt"
)

var (
	// ErrSeasonNotFound is returned when the referenced season does not exist.
	ErrSeasonNotFound = errors.New("season not found")
	// ErrPlayerNotFound is returned when the referenced player does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrConflict is returned when a concurrent write invalidated the
	// operation. The caller may retry the whole operation.
	ErrConflict = errors.New("conflicting concurrent write")
)

// ValidationError reports malformed input, caught before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
