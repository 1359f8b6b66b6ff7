package billing

import (
	"context"
	"time"

	"github.com/sjperalta/kost-listrik-api/internal/models"
)

// PaymentInput is money received against a billed reading
type PaymentInput struct {
	ReadingID   string
	PaymentDate time.Time
	AmountPaid  float64
}

// PaymentResult is the recorded payment and its effect on the room's credit
type PaymentResult struct {
	Payment     models.Payment `json:"payment"`
	Reading     models.Reading `json:"reading"`
	Overpayment float64        `json:"overpayment"`
	CreditAfter float64        `json:"creditAfter"`
	Status      string         `json:"status"`
	WasPaid     bool           `json:"-"`
}

// Validate checks the input without looking at state
func (in PaymentInput) Validate() error {
	if in.PaymentDate.IsZero() {
		return invalid("paymentDate", "tanggal pembayaran wajib diisi")
	}
	if !isFinite(in.AmountPaid) {
		return invalid("amountPaid", "jumlah pembayaran tidak valid")
	}
	if in.AmountPaid < 0 {
		return invalid("amountPaid", "jumlah pembayaran tidak boleh negatif")
	}
	return nil
}

// RecordPayment attaches a payment to a reading. Any surplus over the final
// cost becomes room credit. Underpayment is accepted and still settles the bill.
func (s *State) RecordPayment(in PaymentInput) (*PaymentResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	reading, err := s.FindReading(in.ReadingID)
	if err != nil {
		return nil, err
	}
	bill, err := s.bill(reading)
	if err != nil {
		return nil, err
	}
	wasPaid := bill.Current() == models.BillStatusPaid

	payment := models.Payment{
		ID:          s.nextID(),
		ReadingID:   reading.ID,
		PaymentDate: in.PaymentDate,
		AmountPaid:  in.AmountPaid,
	}
	if err := bill.Pay(context.Background(), payment); err != nil {
		return nil, err
	}

	overpayment := bill.Overpayment()
	if overpayment > 0 {
		if err := s.ApplyCredit(reading.RoomID, overpayment); err != nil {
			return nil, err
		}
	}
	s.Payments = append(s.Payments, payment)

	return &PaymentResult{
		Payment:     payment,
		Reading:     *reading,
		Overpayment: overpayment,
		CreditAfter: s.Credit(reading.RoomID),
		Status:      bill.Current(),
		WasPaid:     wasPaid,
	}, nil
}

// PayLatestUnpaid pays the most recent unpaid bill of a room
func (s *State) PayLatestUnpaid(roomID string, paymentDate time.Time, amountPaid float64) (*PaymentResult, error) {
	if _, err := s.FindRoom(roomID); err != nil {
		return nil, err
	}
	unpaid := s.UnpaidReadingsSortedDesc(roomID)
	if len(unpaid) == 0 {
		return nil, ErrNoUnpaidBill
	}
	return s.RecordPayment(PaymentInput{
		ReadingID:   unpaid[0].ID,
		PaymentDate: paymentDate,
		AmountPaid:  amountPaid,
	})
}
