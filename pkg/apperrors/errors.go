package apperrors

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotFound        = errors.New("not found")
)
