package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrNextID         = errors.New("get next id from generator")
	ErrRecordNotFound = errors.New("record not found")
	ErrPersistence    = errors.New("reservation storage unavailable")
)

type NotFoundError struct {
	ID int64
}

func IsNotFoundError(err error) *NotFoundError {
	if err == nil {
		return nil
	}

	var notFoundError *NotFoundError

	if errors.As(err, &notFoundError) {
		return notFoundError
	}

	return nil
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reservation %d: %v", e.ID, ErrRecordNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
