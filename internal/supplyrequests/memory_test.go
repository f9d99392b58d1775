package supplyrequests

import (
	"context"
	"sort"
	"sync"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// memoryRepo is an in-process Repository used by service and handler tests.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]SupplyRequest
	err    error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: map[int64]SupplyRequest{}}
}

func (m *memoryRepo) List(ctx context.Context) ([]SupplyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]SupplyRequest, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedOn.Equal(out[j].RequestedOn) {
			return out[i].RequestedOn.After(out[j].RequestedOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memoryRepo) Get(ctx context.Context, id int64) (SupplyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return SupplyRequest{}, m.err
	}
	r, ok := m.rows[id]
	if !ok {
		return SupplyRequest{}, shared.ErrNotFound
	}
	return r, nil
}

func (m *memoryRepo) Create(ctx context.Context, req SupplyRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	req.ID = m.nextID
	m.nextID++
	m.rows[req.ID] = req
	return req.ID, nil
}

func (m *memoryRepo) Update(ctx context.Context, req SupplyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	existing, ok := m.rows[req.ID]
	if !ok {
		return shared.ErrNotFound
	}
	req.RequestedOn = existing.RequestedOn
	m.rows[req.ID] = req
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}
