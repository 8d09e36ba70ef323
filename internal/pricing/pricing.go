package pricing

import (
	"github.com/avstrong/campsite/internal/rates"
	"github.com/avstrong/campsite/internal/slots"
)

const defaultNights = 1

type LineKind string

const (
	LineCustomer LineKind = "customer"
	LineAddOn    LineKind = "add_on"
)

// Line is one entry of a quote breakdown. NoRate lines contribute nothing.
type Line struct {
	Kind     LineKind `json:"kind"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Rate     float64  `json:"rate"`
	Nights   int      `json:"nights"`
	Subtotal float64  `json:"subtotal"`
	NoRate   bool     `json:"no_rate,omitempty"`
}

type Quote struct {
	Season   slots.Season        `json:"season"`
	Category slots.Category      `json:"category"`
	Nights   int                 `json:"nights"`
	Party    []slots.PartyMember `json:"party"`
	AddOns   []rates.AddOn       `json:"add_ons,omitempty"`
	Lines    []Line              `json:"lines"`
	Total    float64             `json:"total"`
}

type RateSheet struct {
	Season   slots.Season         `json:"season"`
	Category slots.Category       `json:"category"`
	Rates    []rates.CustomerRate `json:"rates"`
}

type Engine struct {
	rates *rates.Table
}

func New(table *rates.Table) *Engine {
	return &Engine{rates: table}
}

// Quote refuses to price anything until season, category and party are all
// known, and reports every missing one in a single *slots.MissingError.
func (e *Engine) Quote(s *slots.Slots) (*Quote, error) {
	missing := slots.NewMissingError()

	if s.Season == nil {
		missing.Add(slots.MissingSeason)
	}

	if s.Category == nil {
		missing.Add(slots.MissingCategory)
	}

	if len(s.Party) == 0 {
		missing.Add(slots.MissingParty)
	}

	if missing.Count() > 0 {
		return nil, missing
	}

	nights := Nights(s)

	//nolint:exhaustruct
	q := &Quote{
		Season:   *s.Season,
		Category: *s.Category,
		Nights:   nights,
		Party:    s.Party,
	}

	for _, member := range s.Party {
		rate, ok := e.rates.Rate(q.Season, q.Category, member.Type)
		if !ok {
			q.Lines = append(q.Lines, Line{
				Kind:     LineCustomer,
				Name:     string(member.Type),
				Quantity: member.Count,
				Nights:   nights,
				NoRate:   true,
			})

			continue
		}

		subtotal := rate * float64(member.Count) * float64(nights)
		q.Lines = append(q.Lines, Line{
			Kind:     LineCustomer,
			Name:     string(member.Type),
			Quantity: member.Count,
			Rate:     rate,
			Nights:   nights,
			Subtotal: subtotal,
		})
		q.Total += subtotal
	}

	for _, name := range s.AddOns {
		addOn, ok := e.rates.AddOn(name)
		if !ok {
			continue
		}

		subtotal := addOn.Nightly * float64(nights)
		q.AddOns = append(q.AddOns, addOn)
		q.Lines = append(q.Lines, Line{
			Kind:     LineAddOn,
			Name:     addOn.Name,
			Quantity: 1,
			Rate:     addOn.Nightly,
			Nights:   nights,
			Subtotal: subtotal,
		})
		q.Total += subtotal
	}

	return q, nil
}

// Table lists every customer rate for the season and category; the party is
// not needed.
func (e *Engine) Table(s *slots.Slots) (*RateSheet, error) {
	missing := slots.NewMissingError()

	if s.Season == nil {
		missing.Add(slots.MissingSeason)
	}

	if s.Category == nil {
		missing.Add(slots.MissingCategory)
	}

	if missing.Count() > 0 {
		return nil, missing
	}

	customerRates, _ := e.rates.CategoryRates(*s.Season, *s.Category)

	return &RateSheet{
		Season:   *s.Season,
		Category: *s.Category,
		Rates:    customerRates,
	}, nil
}

func (e *Engine) AddOns() []rates.AddOn {
	return e.rates.AddOns
}

func (e *Engine) Rates() *rates.Table {
	return e.rates
}

// Nights prefers the date range, then an explicit night count, then one night.
func Nights(s *slots.Slots) int {
	if s.Dates != nil {
		return s.Dates.Nights()
	}

	if s.Nights != nil && *s.Nights > 0 {
		return *s.Nights
	}

	return defaultNights
}
