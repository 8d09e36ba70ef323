package reservation_test

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/avstrong/campsite/internal/idgen/simple"
	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/slots"
	"github.com/avstrong/campsite/internal/storage/memory"
)

func newTestManager(t *testing.T) *reservation.Manager {
	t.Helper()

	l := logger.New(logger.Config{Output: io.Discard})

	return reservation.New(l, memory.New(memory.Config{L: l}), simple.New(100))
}

func category(c slots.Category) *slots.Category {
	return &c
}

func dates(fromDay, toDay int) *slots.DateRange {
	return &slots.DateRange{From: slots.Date(2025, 7, fromDay), To: slots.Date(2025, 7, toDay)}
}

func TestManager_CreateGet(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	created, err := m.Create(ctx, reservation.CreateInput{
		Description: "  crear reserva bungalow del 1/7/2025 al 5/7/2025 ",
		Category:    category(slots.CategoryBungalow),
		Dates:       dates(1, 5),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID != 101 {
		t.Errorf("Create().ID = %v, want %v", created.ID, 101)
	}

	got, err := m.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if !reflect.DeepEqual(got, created) {
		t.Errorf("Get() = %+v, want %+v", got, created)
	}

	if got.Description != "crear reserva bungalow del 1/7/2025 al 5/7/2025" {
		t.Errorf("Get().Description = %q, want trimmed text", got.Description)
	}
}

func TestManager_ModifyPartial(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	created, err := m.Create(ctx, reservation.CreateInput{
		Description: "crear reserva",
		Category:    category(slots.CategoryStandard),
		Dates:       dates(1, 5),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name         string
		input        reservation.ModifyInput
		wantCategory slots.Category
		wantDates    *slots.DateRange
	}{
		{
			name:         "only category keeps dates",
			input:        reservation.ModifyInput{Description: "modificar a glamping", Category: category(slots.CategoryGlamping)},
			wantCategory: slots.CategoryGlamping,
			wantDates:    dates(1, 5),
		},
		{
			name:         "only dates keeps category",
			input:        reservation.ModifyInput{Description: "modificar fechas", Dates: dates(10, 12)},
			wantCategory: slots.CategoryGlamping,
			wantDates:    dates(10, 12),
		},
		{
			name:         "nothing parsed keeps both",
			input:        reservation.ModifyInput{Description: "modificar nada"},
			wantCategory: slots.CategoryGlamping,
			wantDates:    dates(10, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Modify(ctx, created.ID, tt.input)
			if err != nil {
				t.Fatalf("Modify() error = %v", err)
			}

			if got.Description != tt.input.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.input.Description)
			}

			if got.Category == nil || *got.Category != tt.wantCategory {
				t.Errorf("Category = %v, want %v", got.Category, tt.wantCategory)
			}

			if !reflect.DeepEqual(got.Dates, tt.wantDates) {
				t.Errorf("Dates = %v, want %v", got.Dates, tt.wantDates)
			}

			stored, err := m.Get(ctx, created.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}

			if !reflect.DeepEqual(stored, got) {
				t.Errorf("Get() = %+v, want %+v", stored, got)
			}
		})
	}
}

func TestManager_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	if _, err := m.Get(ctx, 1); !errors.Is(err, reservation.ErrRecordNotFound) {
		t.Errorf("Get() error = %v, want %v", err, reservation.ErrRecordNotFound)
	}

	if _, err := m.Modify(ctx, 1, reservation.ModifyInput{Description: "x"}); reservation.IsNotFoundError(err) == nil {
		t.Errorf("Modify() error = %v, want NotFoundError", err)
	}

	if err := m.Cancel(ctx, 1); reservation.IsNotFoundError(err) == nil {
		t.Errorf("Cancel() error = %v, want NotFoundError", err)
	}
}

func TestManager_Cancel(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	first, _ := m.Create(ctx, reservation.CreateInput{Description: "uno"})
	second, _ := m.Create(ctx, reservation.CreateInput{Description: "dos"})

	if err := m.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if _, err := m.Get(ctx, first.ID); reservation.IsNotFoundError(err) == nil {
		t.Errorf("Get() after Cancel() error = %v, want NotFoundError", err)
	}

	list, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(list) != 1 || list[0].ID != second.ID {
		t.Errorf("List() = %v, want only %d", list, second.ID)
	}
}

func TestManager_Search(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	seed := []reservation.CreateInput{
		{Description: "a", Category: category(slots.CategoryBungalow), Dates: dates(1, 5)},
		{Description: "b", Category: category(slots.CategoryBungalow), Dates: dates(10, 15)},
		{Description: "c", Category: category(slots.CategoryGlamping), Dates: dates(3, 4)},
		{Description: "d"},
	}

	for _, in := range seed {
		if _, err := m.Create(ctx, in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		filter reservation.Filter
		want   []string
	}{
		{name: "no filter", filter: reservation.Filter{}, want: []string{"a", "b", "c", "d"}},
		{name: "by category", filter: reservation.Filter{Category: category(slots.CategoryBungalow)}, want: []string{"a", "b"}},
		{name: "by dates touching boundary", filter: reservation.Filter{Dates: dates(5, 9)}, want: []string{"a"}},
		{name: "by dates", filter: reservation.Filter{Dates: dates(2, 3)}, want: []string{"a", "c"}},
		{
			name:   "category and dates",
			filter: reservation.Filter{Category: category(slots.CategoryGlamping), Dates: dates(1, 31)},
			want:   []string{"c"},
		},
		{name: "nothing matches", filter: reservation.Filter{Category: category(slots.CategoryPremium)}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Search(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			var descriptions []string
			for _, r := range got {
				descriptions = append(descriptions, r.Description)
			}

			if !reflect.DeepEqual(descriptions, tt.want) {
				t.Errorf("Search() = %v, want %v", descriptions, tt.want)
			}
		})
	}
}

func TestManager_ListIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	for _, d := range []string{"uno", "dos", "tres"} {
		if _, err := m.Create(ctx, reservation.CreateInput{Description: d}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	first, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	second, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("List() = %v, then %v", first, second)
	}
}

func TestManager_IdempotencyKey(t *testing.T) {
	m := newTestManager(t)
	ctx := reservation.NewContextWithIdempotencyKey(context.Background(), "call-1")

	first, err := m.Create(ctx, reservation.CreateInput{Description: "crear reserva"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	again, err := m.Create(ctx, reservation.CreateInput{Description: "crear reserva"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if again.ID != first.ID {
		t.Errorf("Create() with same key = %v, want %v", again.ID, first.ID)
	}

	other, err := m.Create(context.Background(), reservation.CreateInput{Description: "crear reserva"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if other.ID == first.ID {
		t.Errorf("Create() without key reused id %v", other.ID)
	}
}

// collidingGenerator returns the same id twice before moving on.
type collidingGenerator struct {
	ids []int64
}

func (g *collidingGenerator) GetID(_ context.Context) (int64, error) {
	id := g.ids[0]
	g.ids = g.ids[1:]

	return id, nil
}

func TestManager_SkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	l := logger.New(logger.Config{Output: io.Discard})
	m := reservation.New(l, memory.New(memory.Config{L: l}), &collidingGenerator{ids: []int64{5, 5, 6}})

	first, err := m.Create(ctx, reservation.CreateInput{Description: "uno"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second, err := m.Create(ctx, reservation.CreateInput{Description: "dos"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if first.ID != 5 || second.ID != 6 {
		t.Errorf("ids = %v, %v, want 5, 6", first.ID, second.ID)
	}
}

type brokenStorage struct{}

var errDiskGone = errors.New("disk gone")

func (brokenStorage) Load(_ context.Context) ([]*reservation.Record, error) {
	return nil, errDiskGone
}

func (brokenStorage) Save(_ context.Context, _ []*reservation.Record) error {
	return errDiskGone
}

func TestManager_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	l := logger.New(logger.Config{Output: io.Discard})
	m := reservation.New(l, brokenStorage{}, simple.New(0))

	_, err := m.Create(ctx, reservation.CreateInput{Description: "x"})
	if !errors.Is(err, reservation.ErrPersistence) || !errors.Is(err, errDiskGone) {
		t.Errorf("Create() error = %v, want persistence error wrapping cause", err)
	}

	if _, err := m.List(ctx); !errors.Is(err, reservation.ErrPersistence) {
		t.Errorf("List() error = %v, want %v", err, reservation.ErrPersistence)
	}
}

func TestManager_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	const n = 50

	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := m.Create(ctx, reservation.CreateInput{Description: "concurrente"}); err != nil {
				t.Errorf("Create() error = %v", err)
			}
		}()
	}

	wg.Wait()

	list, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(list) != n {
		t.Errorf("len(List()) = %v, want %v (lost updates)", len(list), n)
	}
}

func TestRecord_Summary(t *testing.T) {
	tests := []struct {
		name string
		r    reservation.Record
		want string
	}{
		{name: "description only", r: reservation.Record{ID: 1, Description: "crear reserva"}, want: "1: crear reserva"},
		{
			name: "category and dates",
			r:    reservation.Record{ID: 2, Category: category(slots.CategoryBungalow), Dates: dates(1, 5)},
			want: "2: Bungalow del 2025-07-01 al 2025-07-05",
		},
		{name: "category only", r: reservation.Record{ID: 3, Category: category(slots.CategoryGlamping)}, want: "3: Glamping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
