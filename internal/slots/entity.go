package slots

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type Category string

const (
	CategoryStandard Category = "Parcela Estándar"
	CategoryPremium  Category = "Parcela Premium"
	CategoryBungalow Category = "Bungalow"
	CategoryGlamping Category = "Glamping"
)

// Categories returns every known category in alias precedence order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryAliases))
	for _, c := range categoryAliases {
		out = append(out, c.category)
	}

	return out
}

type Season string

const (
	SeasonLow    Season = "Temporada Baja"
	SeasonMedium Season = "Temporada Media"
	SeasonHigh   Season = "Temporada Alta"
)

func Seasons() []Season {
	return []Season{SeasonLow, SeasonMedium, SeasonHigh}
}

type CustomerType string

const (
	CustomerAdult    CustomerType = "adulto"
	CustomerChild    CustomerType = "niño"
	CustomerSenior   CustomerType = "senior"
	CustomerDisabled CustomerType = "persona con discapacidad"
	CustomerPet      CustomerType = "mascota"
	CustomerGroup    CustomerType = "grupo"
)

func CustomerTypes() []CustomerType {
	out := make([]CustomerType, 0, len(customerKeywords))
	for _, c := range customerKeywords {
		out = append(out, c.customer)
	}

	return out
}

type PartyMember struct {
	Type  CustomerType `json:"type"`
	Count int          `json:"count"`
}

type DateRange struct {
	From time.Time
	To   time.Time
}

type dateRangeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ParseCivilRange reads two YYYY-MM-DD dates and rejects a reversed range.
func ParseCivilRange(from, to string) (DateRange, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDateRange, from)
	}

	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDateRange, to)
	}

	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, from, to)
	}

	return DateRange{From: start, To: end}, nil
}

// MarshalJSON writes civil dates, never timestamps.
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{From: r.From.Format(DateLayout), To: r.To.Format(DateLayout)})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseCivilRange(raw.From, raw.To)
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Nights is never less than one, even for a same-day range.
func (r DateRange) Nights() int {
	hours := r.To.Sub(r.From).Hours()

	nights := int(hours / 24) //nolint:gomnd
	if float64(nights)*24 < hours {
		nights++
	}

	if nights < 1 {
		return 1
	}

	return nights
}

// Overlaps treats both ranges as closed intervals.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.From.After(other.To) && !other.From.After(r.To)
}

func (r DateRange) String() string {
	return fmt.Sprintf("del %s al %s", r.From.Format(DateLayout), r.To.Format(DateLayout))
}

type Intent int

const (
	IntentUnknown Intent = iota
	IntentListAddOns
	IntentPriceTable
	IntentModify
	IntentCancel
	IntentList
	IntentSearch
	IntentAvailability
	IntentCreate
	IntentQuote
)

var intentNames = map[Intent]string{
	IntentUnknown:      "unknown",
	IntentListAddOns:   "list_add_ons",
	IntentPriceTable:   "price_table",
	IntentModify:       "modify",
	IntentCancel:       "cancel",
	IntentList:         "list",
	IntentSearch:       "search",
	IntentAvailability: "availability",
	IntentCreate:       "create",
	IntentQuote:        "quote",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}

	return intentNames[IntentUnknown]
}

// Slots holds everything extracted from one instruction. Nil pointers and
// empty slices mean the slot was not found.
type Slots struct {
	Text          string        `json:"text"`
	Intent        Intent        `json:"intent"`
	Dates         *DateRange    `json:"dates,omitempty"`
	Nights        *int          `json:"nights,omitempty"`
	Category      *Category     `json:"category,omitempty"`
	Season        *Season       `json:"season,omitempty"`
	Party         []PartyMember `json:"party,omitempty"`
	AddOns        []string      `json:"add_ons,omitempty"`
	ReservationID *int64        `json:"reservation_id,omitempty"`
}
