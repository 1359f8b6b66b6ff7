package services

import (
	"context"

	"github.com/sjperalta/kost-listrik-api/internal/config"
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/repository"
	"github.com/sjperalta/kost-listrik-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Ledger  *LedgerService
	Auth    *AuthService
	Room    *RoomService
	Reading *ReadingService
	Payment *PaymentService
	Tariff  *TariffService
	Report  *ReportService
	Export  *ExportService
	Backup  *BackupService
}

// NewServices loads the ledger and creates all service instances
func NewServices(ctx context.Context, repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, cfg *config.Config, m *metrics.Metrics) (*Services, error) {
	ledger, err := NewLedgerService(ctx, repos.Ledger, m)
	if err != nil {
		return nil, err
	}

	backupSvc := NewBackupService(ledger, storage, worker, m)
	reportSvc := NewReportService(ledger)

	return &Services{
		Ledger:  ledger,
		Auth:    NewAuthService(cfg),
		Room:    NewRoomService(ledger, backupSvc),
		Reading: NewReadingService(ledger, m),
		Payment: NewPaymentService(ledger, m),
		Tariff:  NewTariffService(ledger),
		Report:  reportSvc,
		Export:  NewExportService(reportSvc),
		Backup:  backupSvc,
	}, nil
}
