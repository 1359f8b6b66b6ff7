package handlers

import (
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Room    *RoomHandler
	Reading *ReadingHandler
	Payment *PaymentHandler
	Tariff  *TariffHandler
	Report  *ReportHandler
	Backup  *BackupHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(worker),
		Auth:    NewAuthHandler(svcs.Auth),
		Room:    NewRoomHandler(svcs.Room),
		Reading: NewReadingHandler(svcs.Reading),
		Payment: NewPaymentHandler(svcs.Payment),
		Tariff:  NewTariffHandler(svcs.Tariff),
		Report:  NewReportHandler(svcs.Report, svcs.Export),
		Backup:  NewBackupHandler(svcs.Backup),
	}
}
