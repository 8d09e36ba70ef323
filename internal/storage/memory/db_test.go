package memory

import (
	"context"
	"io"
	"testing"

	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
)

func TestDB_LoadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	db := New(Config{L: logger.New(logger.Config{Output: io.Discard})})

	category := slots.CategoryBungalow
	if err := db.Save(ctx, []*reservation.Record{{ID: 1, Description: "bungalow", Category: &category}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	first, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	*first[0].Category = slots.CategoryGlamping
	first[0].Description = "changed"

	second, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if second[0].Description != "bungalow" || *second[0].Category != slots.CategoryBungalow {
		t.Errorf("Load() = %+v, want the saved record untouched", second[0])
	}

	if db.Saves() != 1 {
		t.Errorf("Saves() = %v, want %v", db.Saves(), 1)
	}
}

func TestDB_SaveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db := New(Config{L: logger.New(logger.Config{Output: io.Discard})})
	if err := db.Save(ctx, nil); err == nil {
		t.Error("Save() error = nil, want context error")
	}
}
