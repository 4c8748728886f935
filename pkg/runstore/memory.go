package runstore

import (
	"context"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Memory is an in-memory Store implementation. It round-trips runs
// through msgpack so it exercises the same encoding as the on-disk store.
// Safe for concurrent use; intended primarily for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory run store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, run *Run) error {
	val, err := msgpack.Marshal(run)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[run.ID] = val
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*Run, error) {
	m.mu.RLock()
	val, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeRun(val)
}

func (m *Memory) List(_ context.Context) ([]*Run, error) {
	m.mu.RLock()
	runs := make([]*Run, 0, len(m.data))
	for _, val := range m.data {
		run, err := decodeRun(val)
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		runs = append(runs, run)
	}
	m.mu.RUnlock()
	sortRuns(runs)
	return runs, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.data, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
