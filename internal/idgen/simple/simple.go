package simple

import (
	"context"
	"sync"
)

// Generator hands out consecutive ids after start. Deterministic, for tests
// and the in-memory store.
type Generator struct {
	mu      sync.Mutex
	counter int64
}

func New(start int64) *Generator {
	//nolint:exhaustruct
	return &Generator{counter: start}
}

func (g *Generator) GetID(_ context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return g.counter, nil
}
