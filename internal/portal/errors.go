package portal

import "errors"

var (
	ErrInvalidInput = errors.New("portal: invalid input")
	ErrNotFound     = errors.New("portal: not found")
	ErrConflict     = errors.New("portal: resource conflict")
)
