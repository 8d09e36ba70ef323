package reservation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avstrong/campsite/internal/logger"
)

const (
	maxIDAttempts = 16

	// maxIdempotencyKeys bounds the in-memory key table. The oldest key is
	// forgotten first, and every key is lost on restart.
	maxIdempotencyKeys = 1024
)

type idGenerator interface {
	GetID(ctx context.Context) (int64, error)
}

// storage persists the whole reservation list as one unit.
type storage interface {
	Load(ctx context.Context) ([]*Record, error)
	Save(ctx context.Context, records []*Record) error
}

// Manager is the only owner of reservation records. Every operation runs
// under one lock, so read-modify-write cycles never interleave.
type Manager struct {
	mu              sync.Mutex
	l               *logger.Logger
	storage         storage
	idGenerator     idGenerator
	idempotencyKeys map[string]int64
	keyOrder        []string
	maxKeys         int
	now             func() time.Time
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator) *Manager {
	//nolint:exhaustruct
	return &Manager{
		l:               l,
		storage:         storage,
		idGenerator:     idGenerator,
		idempotencyKeys: make(map[string]int64),
		maxKeys:         maxIdempotencyKeys,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (m *Manager) load(ctx context.Context) ([]*Record, error) {
	records, err := m.storage.Load(ctx)
	if err != nil {
		return nil, persistenceError("load reservations", err)
	}

	return records, nil
}

func (m *Manager) save(ctx context.Context, records []*Record) error {
	if err := m.storage.Save(ctx, records); err != nil {
		return persistenceError("save reservations", err)
	}

	return nil
}

func find(records []*Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}

	return -1
}

func (m *Manager) Get(ctx context.Context, id int64) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := find(records, id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}

	return records[idx].Clone(), nil
}

// Search applies every filter that is set; an empty filter returns everything.
func (m *Manager) Search(ctx context.Context, filter Filter) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	var out []*Record

	for _, r := range records {
		if filter.match(r) {
			out = append(out, r.Clone())
		}
	}

	return out, nil
}

func (m *Manager) List(ctx context.Context) ([]*Record, error) {
	return m.Search(ctx, Filter{})
}

func (m *Manager) nextID(ctx context.Context, records []*Record) (int64, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := m.idGenerator.GetID(ctx)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrNextID, err)
		}

		if find(records, id) < 0 {
			return id, nil
		}

		m.l.LogDebug("Generated reservation id %d is already taken, retrying", id)
	}

	return 0, fmt.Errorf("no free id after %d attempts: %w", maxIDAttempts, ErrNextID)
}

func (m *Manager) Create(ctx context.Context, input CreateInput) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	key, hasKey := IdempotencyKeyFromContext(ctx)
	if hasKey {
		if id, ok := m.idempotencyKeys[key]; ok {
			if idx := find(records, id); idx >= 0 {
				m.l.LogInfo("Reservation %d returned for repeated idempotency key", id)

				return records[idx].Clone(), nil
			}
		}
	}

	id, err := m.nextID(ctx, records)
	if err != nil {
		return nil, err
	}

	now := m.now()
	record := &Record{
		ID:          id,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Dates:       input.Dates,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	record = record.Clone()

	if err := m.save(ctx, append(records, record)); err != nil {
		return nil, err
	}

	if hasKey {
		m.rememberKey(key, id)
	}

	m.l.LogInfo("Reservation %d has been created", id)

	return record.Clone(), nil
}

func (m *Manager) rememberKey(key string, id int64) {
	if _, ok := m.idempotencyKeys[key]; !ok {
		m.keyOrder = append(m.keyOrder, key)
	}

	m.idempotencyKeys[key] = id

	for len(m.keyOrder) > m.maxKeys {
		delete(m.idempotencyKeys, m.keyOrder[0])
		m.keyOrder = m.keyOrder[1:]
	}
}

// Modify always replaces the description; category and dates are replaced
// only when the input carries them.
func (m *Manager) Modify(ctx context.Context, id int64, input ModifyInput) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := find(records, id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}

	updated := records[idx].Clone()
	updated.Description = strings.TrimSpace(input.Description)

	if input.Category != nil {
		category := *input.Category
		updated.Category = &category
	}

	if input.Dates != nil {
		dates := *input.Dates
		updated.Dates = &dates
	}

	updated.UpdatedAt = m.now()
	records[idx] = updated

	if err := m.save(ctx, records); err != nil {
		return nil, err
	}

	m.l.LogInfo("Reservation %d has been modified", id)

	return updated.Clone(), nil
}

func (m *Manager) Cancel(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.load(ctx)
	if err != nil {
		return err
	}

	idx := find(records, id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}

	remaining := make([]*Record, 0, len(records)-1)
	remaining = append(remaining, records[:idx]...)
	remaining = append(remaining, records[idx+1:]...)

	if err := m.save(ctx, remaining); err != nil {
		return err
	}

	m.l.LogInfo("Reservation %d has been cancelled", id)

	return nil
}
