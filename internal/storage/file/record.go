package file

import (
	"fmt"
	"time"

	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
)

// record is the on-disk shape of a reservation. Field names follow the
// reservas.json files already in use; creada and actualizada are optional.
type record struct {
	ID          int64      `json:"id"`
	Description string     `json:"descripcion"`
	Category    *string    `json:"tipoParcela,omitempty"`
	From        string     `json:"desde,omitempty"`
	To          string     `json:"hasta,omitempty"`
	CreatedAt   *time.Time `json:"creada,omitempty"`
	UpdatedAt   *time.Time `json:"actualizada,omitempty"`
}

func toFileRecord(r *reservation.Record) record {
	//nolint:exhaustruct
	out := record{ID: r.ID, Description: r.Description}

	if r.Category != nil {
		category := string(*r.Category)
		out.Category = &category
	}

	if r.Dates != nil {
		out.From = r.Dates.From.Format(slots.DateLayout)
		out.To = r.Dates.To.Format(slots.DateLayout)
	}

	if !r.CreatedAt.IsZero() {
		created := r.CreatedAt.UTC()
		out.CreatedAt = &created
	}

	if !r.UpdatedAt.IsZero() {
		updated := r.UpdatedAt.UTC()
		out.UpdatedAt = &updated
	}

	return out
}

func (r record) reservation() (*reservation.Record, error) {
	//nolint:exhaustruct
	out := &reservation.Record{ID: r.ID, Description: r.Description}

	if r.Category != nil {
		category, ok := knownCategory(*r.Category)
		if !ok {
			return nil, fmt.Errorf("%w: id %d has unknown category %q", ErrInvalidRecord, r.ID, *r.Category)
		}

		out.Category = &category
	}

	switch {
	case r.From == "" && r.To == "":
	case r.From == "" || r.To == "":
		return nil, fmt.Errorf("%w: id %d needs both desde and hasta", ErrInvalidRecord, r.ID)
	default:
		dates, err := slots.ParseCivilRange(r.From, r.To)
		if err != nil {
			return nil, fmt.Errorf("%w: id %d: %w", ErrInvalidRecord, r.ID, err)
		}

		out.Dates = &dates
	}

	if r.CreatedAt != nil {
		out.CreatedAt = r.CreatedAt.UTC()
	}

	if r.UpdatedAt != nil {
		out.UpdatedAt = r.UpdatedAt.UTC()
	}

	return out, nil
}

func knownCategory(name string) (slots.Category, bool) {
	for _, c := range slots.Categories() {
		if string(c) == name {
			return c, true
		}
	}

	return "", false
}
