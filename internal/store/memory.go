package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mgnrega-tools/entrydesk/internal/core"
)

// MemStore is an in-memory core.Store used by tests and local experiments.
// It mirrors the Postgres store's contract: id-ordered lists, exact
// case-sensitive filters, ErrNotFound on unknown ids, sorted deduplicated
// suggestions.
type MemStore struct {
	mu sync.RWMutex

	nextID        int64
	registrations map[int64]core.Registration
	jobcards      map[int64]core.JobcardRequest
	vouchers      map[int64]core.VoucherRequest
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		nextID:        1,
		registrations: make(map[int64]core.Registration),
		jobcards:      make(map[int64]core.JobcardRequest),
		vouchers:      make(map[int64]core.VoucherRequest),
	}
}

func (m *MemStore) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func matches(f core.Filter, block, panchayat string) bool {
	if f.BlockName != "" && block != f.BlockName {
		return false
	}
	if f.Panchayat != "" && panchayat != f.Panchayat {
		return false
	}
	return true
}

func sortedIDs[V any](records map[int64]V) []int64 {
	ids := make([]int64, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CreateRegistration stores a registration and assigns its id.
func (m *MemStore) CreateRegistration(_ context.Context, r *core.Registration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.allocID()
	m.registrations[r.ID] = *r
	return r.ID, nil
}

// GetRegistration fetches a registration by id.
func (m *MemStore) GetRegistration(_ context.Context, id int64) (*core.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.registrations[id]
	if !ok {
		return nil, fmt.Errorf("registration %d: %w", id, core.ErrNotFound)
	}
	return &r, nil
}

// UpdateRegistration overwrites a stored registration.
func (m *MemStore) UpdateRegistration(_ context.Context, r *core.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registrations[r.ID]; !ok {
		return fmt.Errorf("registration %d: %w", r.ID, core.ErrNotFound)
	}
	m.registrations[r.ID] = *r
	return nil
}

// DeleteRegistration removes a registration by id.
func (m *MemStore) DeleteRegistration(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registrations[id]; !ok {
		return fmt.Errorf("registration %d: %w", id, core.ErrNotFound)
	}
	delete(m.registrations, id)
	return nil
}

// ListRegistrations returns matching registrations in id order.
func (m *MemStore) ListRegistrations(_ context.Context, f core.Filter) ([]core.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []core.Registration
	for _, id := range sortedIDs(m.registrations) {
		r := m.registrations[id]
		if matches(f, r.BlockName, r.Panchayat) {
			result = append(result, r)
		}
	}
	return result, nil
}

// CreateJobcardRequest stores a job-card request and assigns its id.
func (m *MemStore) CreateJobcardRequest(_ context.Context, r *core.JobcardRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.allocID()
	m.jobcards[r.ID] = *r
	return r.ID, nil
}

// GetJobcardRequest fetches a job-card request by id.
func (m *MemStore) GetJobcardRequest(_ context.Context, id int64) (*core.JobcardRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.jobcards[id]
	if !ok {
		return nil, fmt.Errorf("jobcard request %d: %w", id, core.ErrNotFound)
	}
	return &r, nil
}

// UpdateJobcardRequest overwrites a stored job-card request.
func (m *MemStore) UpdateJobcardRequest(_ context.Context, r *core.JobcardRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobcards[r.ID]; !ok {
		return fmt.Errorf("jobcard request %d: %w", r.ID, core.ErrNotFound)
	}
	m.jobcards[r.ID] = *r
	return nil
}

// DeleteJobcardRequest removes a job-card request by id.
func (m *MemStore) DeleteJobcardRequest(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobcards[id]; !ok {
		return fmt.Errorf("jobcard request %d: %w", id, core.ErrNotFound)
	}
	delete(m.jobcards, id)
	return nil
}

// ListJobcardRequests returns matching requests in id order.
func (m *MemStore) ListJobcardRequests(_ context.Context, f core.Filter) ([]core.JobcardRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []core.JobcardRequest
	for _, id := range sortedIDs(m.jobcards) {
		r := m.jobcards[id]
		if matches(f, r.BlockName, r.Panchayat) {
			result = append(result, r)
		}
	}
	return result, nil
}

// CreateVoucherRequest stores a voucher request and assigns its id.
func (m *MemStore) CreateVoucherRequest(_ context.Context, r *core.VoucherRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.allocID()
	m.vouchers[r.ID] = *r
	return r.ID, nil
}

// GetVoucherRequest fetches a voucher request by id.
func (m *MemStore) GetVoucherRequest(_ context.Context, id int64) (*core.VoucherRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.vouchers[id]
	if !ok {
		return nil, fmt.Errorf("voucher request %d: %w", id, core.ErrNotFound)
	}
	return &r, nil
}

// UpdateVoucherRequest overwrites a stored voucher request.
func (m *MemStore) UpdateVoucherRequest(_ context.Context, r *core.VoucherRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vouchers[r.ID]; !ok {
		return fmt.Errorf("voucher request %d: %w", r.ID, core.ErrNotFound)
	}
	m.vouchers[r.ID] = *r
	return nil
}

// DeleteVoucherRequest removes a voucher request by id.
func (m *MemStore) DeleteVoucherRequest(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vouchers[id]; !ok {
		return fmt.Errorf("voucher request %d: %w", id, core.ErrNotFound)
	}
	delete(m.vouchers, id)
	return nil
}

// ListVoucherRequests returns matching requests in id order.
func (m *MemStore) ListVoucherRequests(_ context.Context, f core.Filter) ([]core.VoucherRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []core.VoucherRequest
	for _, id := range sortedIDs(m.vouchers) {
		r := m.vouchers[id]
		if matches(f, r.BlockName, r.Panchayat) {
			result = append(result, r)
		}
	}
	return result, nil
}

// Suggestions collects sorted, deduplicated, non-empty location names.
func (m *MemStore) Suggestions(_ context.Context) (*core.Suggestions, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blocks := make(map[string]bool)
	panchayats := make(map[string]bool)
	villages := make(map[string]bool)

	for _, r := range m.registrations {
		blocks[r.BlockName] = true
		panchayats[r.Panchayat] = true
	}
	for _, r := range m.jobcards {
		blocks[r.BlockName] = true
		panchayats[r.Panchayat] = true
	}
	for _, r := range m.vouchers {
		blocks[r.BlockName] = true
		panchayats[r.Panchayat] = true
		villages[r.Village] = true
	}

	return &core.Suggestions{
		Blocks:     sortedNames(blocks),
		Panchayats: sortedNames(panchayats),
		Villages:   sortedNames(villages),
	}, nil
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Ping always succeeds for the in-memory store.
func (m *MemStore) Ping(context.Context) error {
	return nil
}
