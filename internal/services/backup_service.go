package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/storage"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

const backupDir = "backups"

// BackupService writes snapshot backups and imports snapshots
type BackupService struct {
	ledger  *LedgerService
	storage *storage.LocalStorage
	worker  *jobs.Worker
	metrics *metrics.Metrics
}

// NewBackupService creates a new backup service
func NewBackupService(ledger *LedgerService, storage *storage.LocalStorage, worker *jobs.Worker, m *metrics.Metrics) *BackupService {
	return &BackupService{ledger: ledger, storage: storage, worker: worker, metrics: m}
}

// BackupResult describes a written backup file
type BackupResult struct {
	Path     string    `json:"path"`
	Reason   string    `json:"reason"`
	Rooms    int       `json:"rooms"`
	Readings int       `json:"readings"`
	Payments int       `json:"payments"`
	Created  time.Time `json:"created"`
}

// ImportResult describes a replaced state
type ImportResult struct {
	Backup   *BackupResult `json:"backup"`
	Rooms    int           `json:"rooms"`
	Readings int           `json:"readings"`
	Payments int           `json:"payments"`
	Credits  int           `json:"credits"`
}

// Backup writes the current state to storage
func (s *BackupService) Backup(ctx context.Context, reason string) (*BackupResult, error) {
	return s.write(s.ledger.Snapshot(), reason)
}

// WriteAsync queues an already captured snapshot for writing
func (s *BackupService) WriteAsync(snapshot models.Snapshot, reason string) {
	s.worker.Enqueue(func(ctx context.Context) error {
		_, err := s.write(snapshot, reason)
		return err
	})
}

// Schedule backs up the state every interval until the worker shuts down
func (s *BackupService) Schedule(interval time.Duration) {
	s.worker.ScheduleEvery(interval, func(ctx context.Context) error {
		_, err := s.Backup(ctx, "scheduled")
		return err
	})
}

// Import replaces the whole state. The current state is backed up first and
// a missing tariff keeps the current one.
func (s *BackupService) Import(ctx context.Context, export models.Export) (*ImportResult, error) {
	current := s.ledger.Snapshot()
	snapshot := export.ToSnapshot(current.RatePerKwh)
	if _, err := billing.FromSnapshot(snapshot); err != nil {
		return nil, err
	}

	backup, err := s.write(current, "before-import")
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Replace(ctx, snapshot); err != nil {
		return nil, err
	}

	logger.Info("Snapshot imported",
		"rooms", len(snapshot.Rooms),
		"readings", len(snapshot.Readings),
		"payments", len(snapshot.Payments),
		"backup", backup.Path,
	)
	return &ImportResult{
		Backup:   backup,
		Rooms:    len(snapshot.Rooms),
		Readings: len(snapshot.Readings),
		Payments: len(snapshot.Payments),
		Credits:  len(snapshot.Credits),
	}, nil
}

func (s *BackupService) write(snapshot models.Snapshot, reason string) (result *BackupResult, err error) {
	defer func() { s.metrics.BackupFinished(err) }()

	data, err := json.MarshalIndent(snapshot.ToExport(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	path, err := s.storage.UploadFromBytes(data, reason+".json", backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	logger.Info("Backup written", "path", path, "reason", reason)
	return &BackupResult{
		Path:     path,
		Reason:   reason,
		Rooms:    len(snapshot.Rooms),
		Readings: len(snapshot.Readings),
		Payments: len(snapshot.Payments),
		Created:  time.Now(),
	}, nil
}
