package slots

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDateRange = errors.New("invalid date range")

type Missing string

const (
	MissingSeason   Missing = "season"
	MissingCategory Missing = "category"
	MissingParty    Missing = "party"
	MissingDates    Missing = "dates"
)

// MissingError lists every required slot an instruction lacked, so the caller
// can ask for all of them at once.
type MissingError struct {
	missing []Missing
}

func NewMissingError() *MissingError {
	//nolint:exhaustruct
	return &MissingError{}
}

func IsMissingError(err error) *MissingError {
	if err == nil {
		return nil
	}

	var missingError *MissingError

	if errors.As(err, &missingError) {
		return missingError
	}

	return nil
}

func (e *MissingError) Add(m Missing) {
	e.missing = append(e.missing, m)
}

func (e *MissingError) Count() int {
	return len(e.missing)
}

func (e *MissingError) Missing() []Missing {
	return e.missing
}

func (e *MissingError) Has(m Missing) bool {
	for _, item := range e.missing {
		if item == m {
			return true
		}
	}

	return false
}

func (e *MissingError) Error() string {
	items := make([]string, 0, len(e.missing))
	for _, m := range e.missing {
		items = append(items, string(m))
	}

	return fmt.Sprintf("missing slots: %s", strings.Join(items, ", "))
}
