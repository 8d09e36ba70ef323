package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/avstrong/campsite/internal/slots"
)

type Record struct {
	ID          int64
	Description string
	Category    *slots.Category
	Dates       *slots.DateRange
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy so callers never share state with the store.
func (r *Record) Clone() *Record {
	c := *r

	if r.Category != nil {
		category := *r.Category
		c.Category = &category
	}

	if r.Dates != nil {
		dates := *r.Dates
		c.Dates = &dates
	}

	return &c
}

// Summary renders category and dates when known, else the raw description.
func (r *Record) Summary() string {
	var parts []string

	if r.Category != nil {
		parts = append(parts, string(*r.Category))
	}

	if r.Dates != nil {
		parts = append(parts, r.Dates.String())
	}

	if len(parts) == 0 {
		return r.Description
	}

	return strings.Join(parts, " ")
}

func (r *Record) String() string {
	return fmt.Sprintf("%d: %s", r.ID, r.Summary())
}

type Filter struct {
	Category *slots.Category
	Dates    *slots.DateRange
}

func (f Filter) match(r *Record) bool {
	if f.Category != nil && (r.Category == nil || *r.Category != *f.Category) {
		return false
	}

	if f.Dates != nil && (r.Dates == nil || !r.Dates.Overlaps(*f.Dates)) {
		return false
	}

	return true
}

type CreateInput struct {
	Description string
	Category    *slots.Category
	Dates       *slots.DateRange
}

type ModifyInput struct {
	Description string
	Category    *slots.Category
	Dates       *slots.DateRange
}
