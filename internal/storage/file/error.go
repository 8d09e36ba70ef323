package file

import "errors"

var (
	ErrEmptyPath     = errors.New("reservations file path is empty")
	ErrInvalidRecord = errors.New("invalid reservation record")
)
