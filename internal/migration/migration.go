package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
)

type reservationManager interface {
	List(ctx context.Context) ([]*reservation.Record, error)
	Create(ctx context.Context, input reservation.CreateInput) (*reservation.Record, error)
}

func category(c slots.Category) *slots.Category {
	return &c
}

func dates(year, fromMonth, fromDay, toMonth, toDay int) *slots.DateRange {
	return &slots.DateRange{
		From: slots.Date(year, time.Month(fromMonth), fromDay),
		To:   slots.Date(year, time.Month(toMonth), toDay),
	}
}

// DemoReservations is the sample data written by Up.
func DemoReservations() []reservation.CreateInput {
	return []reservation.CreateInput{
		{
			Description: "Crear reserva bungalow del 1/7/2025 al 5/7/2025 para 2 adultos y 1 niño",
			Category:    category(slots.CategoryBungalow),
			Dates:       dates(2025, 7, 1, 7, 5),
		},
		{
			Description: "Reservar glamping del 3/7/2025 al 10/7/2025 para 2 adultos",
			Category:    category(slots.CategoryGlamping),
			Dates:       dates(2025, 7, 3, 7, 10),
		},
		{
			Description: "Crear reserva parcela estándar del 15/8/2025 al 20/8/2025 con electricidad y caravana",
			Category:    category(slots.CategoryStandard),
			Dates:       dates(2025, 8, 15, 8, 20),
		},
		{
			Description: "Crear reserva para grupo scout, fechas por confirmar",
		},
	}
}

// Up seeds the demo reservations into an empty store and leaves a store
// that already holds records untouched.
func Up(ctx context.Context, l *logger.Logger, manager reservationManager) (err error) {
	existing, err := manager.List(ctx)
	if err != nil {
		return fmt.Errorf("list existing reservations: %w", err)
	}

	if len(existing) > 0 {
		l.LogInfo("Store already holds %d reservations, demo migration skipped", len(existing))

		return nil
	}

	defer func() {
		if err != nil {
			l.LogErrorf("Demo migration stopped after error: %v", err.Error())

			return
		}

		l.LogInfo("Demo migration has been applied")
	}()

	for i, input := range DemoReservations() {
		ctx := reservation.NewContextWithIdempotencyKey(ctx, fmt.Sprintf("migration-%d", i))

		if _, err = manager.Create(ctx, input); err != nil {
			return fmt.Errorf("create demo reservation %d: %w", i, err)
		}
	}

	return nil
}
