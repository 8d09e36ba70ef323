package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
)

func (d *Dispatcher) checkAvailability(ctx context.Context, s *slots.Slots) (string, error) {
	result, err := d.availability.Check(ctx, s)
	if missing := slots.IsMissingError(err); missing != nil {
		return missingDatesText, nil
	}

	if err != nil {
		return "", fmt.Errorf("check availability: %w", err)
	}

	lines := make([]string, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, l.String())
	}

	return strings.Join(lines, "\n"), nil
}

func notFoundText(id int64) string {
	return fmt.Sprintf("No se encontró la reserva %d.", id)
}

func renderRecords(records []*reservation.Record) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.String())
	}

	return strings.Join(lines, "\n")
}

// search looks up one record when an id is given, else filters by category
// and date range together.
func (d *Dispatcher) search(ctx context.Context, s *slots.Slots) (string, error) {
	if s.ReservationID != nil {
		r, err := d.reservations.Get(ctx, *s.ReservationID)
		if nf := reservation.IsNotFoundError(err); nf != nil {
			return notFoundText(nf.ID), nil
		}

		if err != nil {
			return "", fmt.Errorf("get reservation: %w", err)
		}

		return r.String(), nil
	}

	records, err := d.reservations.Search(ctx, reservation.Filter{Category: s.Category, Dates: s.Dates})
	if err != nil {
		return "", fmt.Errorf("search reservations: %w", err)
	}

	if len(records) == 0 {
		return noMatchesText, nil
	}

	return renderRecords(records), nil
}

func (d *Dispatcher) list(ctx context.Context) (string, error) {
	records, err := d.reservations.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list reservations: %w", err)
	}

	if len(records) == 0 {
		return noReservationsText, nil
	}

	return renderRecords(records), nil
}

func (d *Dispatcher) create(ctx context.Context, text string, s *slots.Slots) (string, error) {
	r, err := d.reservations.Create(ctx, reservation.CreateInput{
		Description: text,
		Category:    s.Category,
		Dates:       s.Dates,
	})
	if err != nil {
		return "", fmt.Errorf("create reservation: %w", err)
	}

	return fmt.Sprintf("Reserva creada con id %d.", r.ID), nil
}

func (d *Dispatcher) cancel(ctx context.Context, s *slots.Slots) (string, error) {
	if s.ReservationID == nil {
		return cancelWithoutIDText, nil
	}

	id := *s.ReservationID

	err := d.reservations.Cancel(ctx, id)
	if reservation.IsNotFoundError(err) != nil {
		return notFoundText(id), nil
	}

	if err != nil {
		return "", fmt.Errorf("cancel reservation: %w", err)
	}

	return fmt.Sprintf("Reserva %d cancelada.", id), nil
}

func (d *Dispatcher) modify(ctx context.Context, text string, s *slots.Slots) (string, error) {
	if s.ReservationID == nil {
		return modifyWithoutIDText, nil
	}

	id := *s.ReservationID

	r, err := d.reservations.Modify(ctx, id, reservation.ModifyInput{
		Description: text,
		Category:    s.Category,
		Dates:       s.Dates,
	})
	if reservation.IsNotFoundError(err) != nil {
		return notFoundText(id), nil
	}

	if err != nil {
		return "", fmt.Errorf("modify reservation: %w", err)
	}

	return fmt.Sprintf("Reserva %d actualizada: %s", id, r.Summary()), nil
}
