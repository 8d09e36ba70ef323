package availability

import (
	"context"
	"fmt"

	"github.com/avstrong/campsite/internal/rates"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
)

type reservationFinder interface {
	Search(ctx context.Context, filter reservation.Filter) ([]*reservation.Record, error)
}

type Line struct {
	Category slots.Category `json:"category"`
	Free     int            `json:"free"`
	Total    int            `json:"total"`
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %d disponibles de %d", l.Category, l.Free, l.Total)
}

type Result struct {
	Dates slots.DateRange `json:"dates"`
	Lines []Line          `json:"lines"`
}

// Engine counts occupied units on demand. Nothing is reserved or enforced
// here; the numbers are advisory.
type Engine struct {
	rates  *rates.Table
	finder reservationFinder
}

func New(table *rates.Table, finder reservationFinder) *Engine {
	return &Engine{rates: table, finder: finder}
}

// Check requires a date range. Without a category every known category is
// reported in canonical order.
func (e *Engine) Check(ctx context.Context, s *slots.Slots) (*Result, error) {
	if s.Dates == nil {
		missing := slots.NewMissingError()
		missing.Add(slots.MissingDates)

		return nil, missing
	}

	overlapping, err := e.finder.Search(ctx, reservation.Filter{Category: s.Category, Dates: s.Dates})
	if err != nil {
		return nil, fmt.Errorf("search overlapping reservations: %w", err)
	}

	occupied := make(map[slots.Category]int, len(overlapping))

	for _, r := range overlapping {
		if r.Category == nil || r.Dates == nil {
			continue
		}

		occupied[*r.Category]++
	}

	scope := slots.Categories()
	if s.Category != nil {
		scope = []slots.Category{*s.Category}
	}

	//nolint:exhaustruct
	result := &Result{Dates: *s.Dates}

	for _, category := range scope {
		total := e.rates.Capacity(category)

		free := total - occupied[category]
		if free < 0 {
			free = 0
		}

		result.Lines = append(result.Lines, Line{Category: category, Free: free, Total: total})
	}

	return result, nil
}
