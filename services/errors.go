package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"servic-backend/services/interfaces"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicatePhone = fmt.Errorf("%w: phone number already registered", ErrValidation)
)

// tooLong reports whether s exceeds a varchar(max) column, which counts
// characters rather than bytes.
func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbidden(action string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, action)
}

// lookupError turns a repository miss on what into ErrNotFound and leaves
// other errors untouched.
func lookupError(err error, what string) error {
	if errors.Is(err, interfaces.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

// referenceError is lookupError for ids carried in a request body, where a
// miss is bad input rather than a missing resource.
func referenceError(err error, what string) error {
	if errors.Is(err, interfaces.ErrRecordNotFound) {
		return validationError("%s does not exist", what)
	}
	return err
}
