package migration

import (
	"context"
	"io"
	"testing"

	"github.com/avstrong/campsite/internal/idgen/simple"
	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/storage/memory"
)

func TestUp(t *testing.T) {
	ctx := context.Background()
	l := logger.New(logger.Config{Output: io.Discard})
	manager := reservation.New(l, memory.New(memory.Config{L: l}), simple.New(0))

	if err := Up(ctx, l, manager); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	records, err := manager.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(records) != len(DemoReservations()) {
		t.Fatalf("len(List()) = %v, want %v", len(records), len(DemoReservations()))
	}

	if err := Up(ctx, l, manager); err != nil {
		t.Fatalf("second Up() error = %v", err)
	}

	again, err := manager.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(again) != len(records) {
		t.Errorf("second Up() changed the store: %v records, want %v", len(again), len(records))
	}
}

func TestDemoReservations(t *testing.T) {
	for i, input := range DemoReservations() {
		if input.Description == "" {
			t.Errorf("DemoReservations()[%d] has no description", i)
		}

		if input.Dates != nil && input.Dates.From.After(input.Dates.To) {
			t.Errorf("DemoReservations()[%d] dates %v are reversed", i, input.Dates)
		}
	}
}
