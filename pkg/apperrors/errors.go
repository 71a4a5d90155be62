package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrForeignKey     = errors.New("referenced parent does not exist")
	ErrValidation     = errors.New("validation failed")
	ErrUnknownProfile = errors.New("unknown database profile")
)
