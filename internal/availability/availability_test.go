package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/avstrong/campsite/internal/rates"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
)

// fakeFinder applies the same filter semantics as reservation.Manager.
type fakeFinder struct {
	records []*reservation.Record
	err     error
}

func (f *fakeFinder) Search(_ context.Context, filter reservation.Filter) ([]*reservation.Record, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []*reservation.Record

	for _, r := range f.records {
		if filter.Category != nil && (r.Category == nil || *r.Category != *filter.Category) {
			continue
		}

		if filter.Dates != nil && (r.Dates == nil || !r.Dates.Overlaps(*filter.Dates)) {
			continue
		}

		out = append(out, r)
	}

	return out, nil
}

func ptr[T any](v T) *T {
	return &v
}

func july(from, to int) *slots.DateRange {
	return &slots.DateRange{From: slots.Date(2025, 7, from), To: slots.Date(2025, 7, to)}
}

func record(id int64, category slots.Category, dates *slots.DateRange) *reservation.Record {
	//nolint:exhaustruct
	return &reservation.Record{ID: id, Category: &category, Dates: dates}
}

func newEngine(t *testing.T, records ...*reservation.Record) *Engine {
	t.Helper()

	table, err := rates.Default()
	if err != nil {
		t.Fatalf("rates.Default() error = %v", err)
	}

	return New(table, &fakeFinder{records: records})
}

func TestEngine_Check(t *testing.T) {
	records := []*reservation.Record{
		record(1, slots.CategoryBungalow, july(1, 5)),
		record(2, slots.CategoryBungalow, july(4, 8)),
		record(3, slots.CategoryBungalow, july(5, 5)),
		record(4, slots.CategoryBungalow, july(20, 25)),
		record(5, slots.CategoryGlamping, july(2, 3)),
		{ID: 6, Description: "crear reserva sin datos"},
	}

	tests := []struct {
		name  string
		slots *slots.Slots
		want  []Line
	}{
		{
			name:  "bungalow with three overlapping",
			slots: &slots.Slots{Dates: july(5, 6), Category: ptr(slots.CategoryBungalow)},
			want:  []Line{{Category: slots.CategoryBungalow, Free: 7, Total: 10}},
		},
		{
			name:  "range outside every booking",
			slots: &slots.Slots{Dates: july(10, 12), Category: ptr(slots.CategoryBungalow)},
			want:  []Line{{Category: slots.CategoryBungalow, Free: 10, Total: 10}},
		},
		{
			name:  "all categories in canonical order",
			slots: &slots.Slots{Dates: july(1, 3)},
			want: []Line{
				{Category: slots.CategoryStandard, Free: 40, Total: 40},
				{Category: slots.CategoryPremium, Free: 20, Total: 20},
				{Category: slots.CategoryBungalow, Free: 9, Total: 10},
				{Category: slots.CategoryGlamping, Free: 5, Total: 6},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(t, records...).Check(context.Background(), tt.slots)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}

			if !reflect.DeepEqual(got.Lines, tt.want) {
				t.Errorf("Check() = %v, want %v", got.Lines, tt.want)
			}
		})
	}
}

func TestEngine_CheckFloorsAtZero(t *testing.T) {
	var records []*reservation.Record
	for i := int64(1); i <= 8; i++ {
		records = append(records, record(i, slots.CategoryGlamping, july(1, 10)))
	}

	got, err := newEngine(t, records...).Check(context.Background(), &slots.Slots{
		Dates:    july(2, 3),
		Category: ptr(slots.CategoryGlamping),
	})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	want := Line{Category: slots.CategoryGlamping, Free: 0, Total: 6}
	if len(got.Lines) != 1 || got.Lines[0] != want {
		t.Errorf("Check() = %v, want %v", got.Lines, want)
	}
}

func TestEngine_CheckRequiresDates(t *testing.T) {
	_, err := newEngine(t).Check(context.Background(), &slots.Slots{Category: ptr(slots.CategoryBungalow)})

	missing := slots.IsMissingError(err)
	if missing == nil {
		t.Fatalf("Check() error = %v, want MissingError", err)
	}

	if !reflect.DeepEqual(missing.Missing(), []slots.Missing{slots.MissingDates}) {
		t.Errorf("Missing() = %v, want [dates]", missing.Missing())
	}
}

func TestEngine_CheckStorageFailure(t *testing.T) {
	table, err := rates.Default()
	if err != nil {
		t.Fatalf("rates.Default() error = %v", err)
	}

	broken := errors.New("broken")
	e := New(table, &fakeFinder{err: broken})

	if _, err := e.Check(context.Background(), &slots.Slots{Dates: july(1, 2)}); !errors.Is(err, broken) {
		t.Errorf("Check() error = %v, want %v", err, broken)
	}
}

func TestLine_String(t *testing.T) {
	l := Line{Category: slots.CategoryBungalow, Free: 7, Total: 10}

	if got, want := l.String(), "Bungalow: 7 disponibles de 10"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
