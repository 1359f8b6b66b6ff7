package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/repository"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// LedgerService owns the billing state. Writers mutate a clone and swap it
// in only after the snapshot is saved, so a failed save changes nothing.
type LedgerService struct {
	mu      sync.RWMutex
	state   *billing.State
	repo    repository.LedgerRepository
	metrics *metrics.Metrics
}

// NewLedgerService loads the persisted state
func NewLedgerService(ctx context.Context, repo repository.LedgerRepository, m *metrics.Metrics) (*LedgerService, error) {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	state, err := billing.FromSnapshot(*snapshot)
	if err != nil {
		return nil, fmt.Errorf("stored snapshot is invalid: %w", err)
	}

	m.SetRooms(len(state.Rooms))
	logger.Info("Ledger loaded",
		"rooms", len(state.Rooms),
		"readings", len(state.Readings),
		"payments", len(state.Payments),
		"rate_per_kwh", state.RatePerKwh,
	)

	return &LedgerService{state: state, repo: repo, metrics: m}, nil
}

// WithIDGenerator replaces the identifier source, mainly for tests
func (s *LedgerService) WithIDGenerator(fn func() string) *LedgerService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.WithIDGenerator(fn)
	return s
}

// mutate applies fn to a copy of the state and commits it once saved
func (s *LedgerService) mutate(ctx context.Context, fn func(*billing.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// commit must be called with the write lock held
func (s *LedgerService) commit(ctx context.Context, next *billing.State) error {
	if err := s.repo.Save(ctx, next.Snapshot()); err != nil {
		s.metrics.SnapshotSaveFailed()
		logger.Error("Failed to save ledger snapshot", "error", err)
		return err
	}
	s.state = next
	s.metrics.SetRooms(len(next.Rooms))
	return nil
}

// view runs fn against the current state under the read lock. fn must not
// keep references to the state.
func (s *LedgerService) view(fn func(*billing.State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Snapshot returns a copy of the current state
func (s *LedgerService) Snapshot() models.Snapshot {
	var snapshot models.Snapshot
	s.view(func(st *billing.State) { snapshot = st.Snapshot() })
	return snapshot
}

// Replace swaps the whole state for an imported snapshot
func (s *LedgerService) Replace(ctx context.Context, snapshot models.Snapshot) error {
	next, err := billing.FromSnapshot(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next.WithIDGenerator(s.state.IDGenerator())
	return s.commit(ctx, next)
}
