package services

import (
	"context"
	"time"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// PaymentService records payments against billed readings
type PaymentService struct {
	ledger  *LedgerService
	metrics *metrics.Metrics
}

// NewPaymentService creates a new payment service
func NewPaymentService(ledger *LedgerService, m *metrics.Metrics) *PaymentService {
	return &PaymentService{ledger: ledger, metrics: m}
}

// Pay records a payment for a reading. Overpayment becomes room credit.
func (s *PaymentService) Pay(ctx context.Context, in billing.PaymentInput) (*billing.PaymentResult, error) {
	var result *billing.PaymentResult
	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		var err error
		result, err = st.RecordPayment(in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.settle(result), nil
}

// PayLatestUnpaid pays the room's most recent unpaid bill
func (s *PaymentService) PayLatestUnpaid(ctx context.Context, roomID string, paymentDate time.Time, amountPaid float64) (*billing.PaymentResult, error) {
	var result *billing.PaymentResult
	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		var err error
		result, err = st.PayLatestUnpaid(roomID, paymentDate, amountPaid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.settle(result), nil
}

func (s *PaymentService) settle(result *billing.PaymentResult) *billing.PaymentResult {
	s.metrics.PaymentRecorded(result.Payment.AmountPaid, result.Reading.FinalCost)
	logger.Info("Payment recorded",
		"payment_id", result.Payment.ID,
		"reading_id", result.Reading.ID,
		"room_id", result.Reading.RoomID,
		"amount_paid", result.Payment.AmountPaid,
		"overpayment", result.Overpayment,
		"status", result.Status,
	)
	if result.WasPaid {
		logger.Warn("Reading already had a payment", "reading_id", result.Reading.ID)
	}
	return result
}
