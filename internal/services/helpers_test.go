package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sjperalta/kost-listrik-api/internal/config"
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/repository"
	"github.com/sjperalta/kost-listrik-api/internal/storage"
	"github.com/sjperalta/kost-listrik-api/internal/store"
	"github.com/stretchr/testify/require"
)

var paidOn = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

// flakyStore fails every Put while failPuts is set
type flakyStore struct {
	*store.MemoryStore
	failPuts bool
}

func (s *flakyStore) Put(ctx context.Context, values map[string][]byte) error {
	if s.failPuts {
		return errors.New("disk full")
	}
	return s.MemoryStore.Put(ctx, values)
}

type testEnv struct {
	svcs    *Services
	store   *flakyStore
	storage *storage.LocalStorage
	worker  *jobs.Worker
	metrics *metrics.Metrics
	reg     *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := &flakyStore{MemoryStore: store.NewMemoryStore()}
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{DefaultRate: 1500, JWTExpirationHours: 24}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	svcs, err := NewServices(context.Background(), repository.NewRepositories(st, cfg.DefaultRate), worker, local, cfg, m)
	require.NoError(t, err)

	n := 0
	svcs.Ledger.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})

	return &testEnv{svcs: svcs, store: st, storage: local, worker: worker, metrics: m, reg: reg}
}
