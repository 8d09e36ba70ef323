package rates

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avstrong/campsite/internal/slots"
	"github.com/go-playground/validator/v10"
)

//go:embed rates.json
var defaultTables []byte

var ErrUnknownValue = errors.New("unknown value in rate tables")

type CustomerRate struct {
	CustomerType slots.CustomerType `json:"customer_type" validate:"required"`
	Nightly      float64            `json:"nightly"       validate:"gte=0"`
}

type CategoryRates struct {
	Category slots.Category `json:"category" validate:"required"`
	Rates    []CustomerRate `json:"rates"    validate:"dive"`
}

type SeasonRates struct {
	Season     slots.Season    `json:"season"     validate:"required"`
	Categories []CategoryRates `json:"categories" validate:"required,dive"`
}

type AddOn struct {
	Name    string  `json:"name"    validate:"required"`
	Nightly float64 `json:"nightly" validate:"gte=0"`
}

type Capacity struct {
	Category slots.Category `json:"category" validate:"required"`
	Units    int            `json:"units"    validate:"gte=0"`
}

// Table is read-only once loaded.
type Table struct {
	Seasons    []SeasonRates `json:"seasons"  validate:"required,dive"`
	AddOns     []AddOn       `json:"add_ons"  validate:"dive"`
	Capacities []Capacity    `json:"capacity" validate:"required,dive"`
}

func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultTables))
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rate tables %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*Table, error) {
	var t Table

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode rate tables: %w", err)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return &t, nil
}

func (t *Table) validate() error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("validate rate tables: %w", err)
	}

	seasons := make(map[slots.Season]bool)
	for _, s := range slots.Seasons() {
		seasons[s] = true
	}

	categories := make(map[slots.Category]bool)
	for _, c := range slots.Categories() {
		categories[c] = true
	}

	customers := make(map[slots.CustomerType]bool)
	for _, c := range slots.CustomerTypes() {
		customers[c] = true
	}

	for _, s := range t.Seasons {
		if !seasons[s.Season] {
			return fmt.Errorf("season %q: %w", s.Season, ErrUnknownValue)
		}

		for _, c := range s.Categories {
			if !categories[c.Category] {
				return fmt.Errorf("category %q in %q: %w", c.Category, s.Season, ErrUnknownValue)
			}

			for _, r := range c.Rates {
				if !customers[r.CustomerType] {
					return fmt.Errorf("customer type %q in %q/%q: %w", r.CustomerType, s.Season, c.Category, ErrUnknownValue)
				}
			}
		}
	}

	for _, c := range t.Capacities {
		if !categories[c.Category] {
			return fmt.Errorf("capacity category %q: %w", c.Category, ErrUnknownValue)
		}
	}

	return nil
}

// CategoryRates returns the customer rates for a season and category in
// configuration order.
func (t *Table) CategoryRates(season slots.Season, category slots.Category) ([]CustomerRate, bool) {
	for _, s := range t.Seasons {
		if s.Season != season {
			continue
		}

		for _, c := range s.Categories {
			if c.Category == category {
				return c.Rates, true
			}
		}
	}

	return nil, false
}

func (t *Table) Rate(season slots.Season, category slots.Category, customer slots.CustomerType) (float64, bool) {
	rates, ok := t.CategoryRates(season, category)
	if !ok {
		return 0, false
	}

	for _, r := range rates {
		if r.CustomerType == customer {
			return r.Nightly, true
		}
	}

	return 0, false
}

func (t *Table) AddOn(name string) (AddOn, bool) {
	for _, a := range t.AddOns {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}

	return AddOn{}, false
}

func (t *Table) AddOnNames() []string {
	names := make([]string, 0, len(t.AddOns))
	for _, a := range t.AddOns {
		names = append(names, a.Name)
	}

	return names
}

// Capacity is zero for a category the table does not list.
func (t *Table) Capacity(category slots.Category) int {
	for _, c := range t.Capacities {
		if c.Category == category {
			return c.Units
		}
	}

	return 0
}
