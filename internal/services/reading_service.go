package services

import (
	"context"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// ReadingService records meter readings
type ReadingService struct {
	ledger  *LedgerService
	metrics *metrics.Metrics
}

// NewReadingService creates a new reading service
func NewReadingService(ledger *LedgerService, m *metrics.Metrics) *ReadingService {
	return &ReadingService{ledger: ledger, metrics: m}
}

// PreviewInput is a reading the operator is still typing
type PreviewInput struct {
	RoomID       string
	StartReading float64
	EndReading   float64
}

// Record bills a reading at the current tariff, consuming the room's credit
func (s *ReadingService) Record(ctx context.Context, in billing.ReadingInput) (*models.Reading, error) {
	var reading *models.Reading
	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		var err error
		reading, err = st.RecordReading(in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReadingRecorded(reading.CreditApplied)
	logger.Info("Reading recorded",
		"reading_id", reading.ID,
		"room_id", reading.RoomID,
		"period", periodLabel(reading.Month, reading.Year),
		"usage", reading.Usage,
		"final_cost", reading.FinalCost,
	)
	return reading, nil
}

// Preview computes the bill a reading would produce without recording it.
// Without a room the preview assumes no credit.
func (s *ReadingService) Preview(ctx context.Context, in PreviewInput) (*models.ReadingPreview, error) {
	var (
		preview models.ReadingPreview
		err     error
	)
	s.ledger.view(func(st *billing.State) {
		credit := 0.0
		if in.RoomID != "" {
			if _, err = st.FindRoom(in.RoomID); err != nil {
				return
			}
			credit = st.Credit(in.RoomID)
		}
		preview = billing.ComputeReading(in.StartReading, in.EndReading, st.RatePerKwh, credit)
		err = billing.CheckFigures(preview)
	})
	if err != nil {
		return nil, err
	}
	return &preview, nil
}

// Get returns a reading with its payment status
func (s *ReadingService) Get(ctx context.Context, readingID string) (*models.HistoryEntry, error) {
	var (
		entry *models.HistoryEntry
		err   error
	)
	s.ledger.view(func(st *billing.State) { entry, err = st.ReadingEntry(readingID) })
	return entry, err
}
