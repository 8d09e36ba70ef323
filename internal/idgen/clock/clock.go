package clock

import (
	"context"
	"sync"
	"time"
)

// Generator derives ids from wall-clock milliseconds and never returns the
// same id twice, even when called within one millisecond or when the clock
// steps backwards.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	//nolint:exhaustruct
	return &Generator{now: time.Now}
}

func (g *Generator) GetID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}

	g.last = id

	return id, nil
}
