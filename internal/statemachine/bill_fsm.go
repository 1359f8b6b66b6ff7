package statemachine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/looplab/fsm"
	"github.com/sjperalta/kost-listrik-api/internal/models"
)

const eventPay = "pay"

// ErrForeignPayment is returned when a payment belongs to another reading
var ErrForeignPayment = errors.New("payment belongs to another reading")

// BillFSM wraps a billed reading with its payment state machine. Payments are
// fed through the pay event; the machine tracks the last payment and the
// overpayment it produced.
type BillFSM struct {
	reading     *models.Reading
	fsm         *fsm.FSM
	lastPayment *models.Payment
	totalPaid   float64
	overpayment float64
}

// NewBillFSM creates the state machine of a reading without payments. A bill
// whose final cost is zero starts out covered by credit.
func NewBillFSM(reading *models.Reading) *BillFSM {
	b := &BillFSM{reading: reading}

	initial := models.BillStatusUnpaid
	if reading.FinalCost <= 0 {
		initial = models.BillStatusCovered
	}

	b.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			// any bill accepts a payment, including an already paid one
			{Name: eventPay, Src: []string{models.BillStatusUnpaid, models.BillStatusCovered, models.BillStatusPaid}, Dst: models.BillStatusPaid},
		},
		fsm.Callbacks{
			"before_" + eventPay: b.checkPayment,
			"after_" + eventPay:  b.applyPayment,
		},
	)

	return b
}

// ReplayBill rebuilds the state of a reading from its payments in recorded order
func ReplayBill(ctx context.Context, reading *models.Reading, payments []models.Payment) (*BillFSM, error) {
	b := NewBillFSM(reading)
	for _, p := range payments {
		if err := b.Pay(ctx, p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *BillFSM) checkPayment(_ context.Context, e *fsm.Event) {
	payment, ok := paymentArg(e)
	if !ok {
		e.Cancel(errors.New("pay event needs a payment"))
		return
	}
	if payment.ReadingID != b.reading.ID {
		e.Cancel(fmt.Errorf("%w: %s is not %s", ErrForeignPayment, payment.ReadingID, b.reading.ID))
	}
}

// applyPayment also runs on paid -> paid, where no state changes
func (b *BillFSM) applyPayment(_ context.Context, e *fsm.Event) {
	payment, _ := paymentArg(e)
	b.lastPayment = &payment
	b.totalPaid += payment.AmountPaid
	b.overpayment = math.Max(payment.AmountPaid-b.reading.FinalCost, 0)
}

func paymentArg(e *fsm.Event) (models.Payment, bool) {
	if len(e.Args) != 1 {
		return models.Payment{}, false
	}
	payment, ok := e.Args[0].(models.Payment)
	return payment, ok
}

// Pay applies a payment to the bill and moves it to paid
func (b *BillFSM) Pay(ctx context.Context, payment models.Payment) error {
	if err := b.fsm.Event(ctx, eventPay, payment); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) && noTransition.Err == nil {
			return nil
		}
		return fmt.Errorf("failed to pay bill %s: %w", b.reading.ID, err)
	}
	return nil
}

// Current returns the current state
func (b *BillFSM) Current() string {
	return b.fsm.Current()
}

// Can checks if a transition is possible
func (b *BillFSM) Can(event string) bool {
	return b.fsm.Can(event)
}

// IsSettled reports whether nothing is owed on the bill
func (b *BillFSM) IsSettled() bool {
	return b.Current() != models.BillStatusUnpaid
}

// LastPayment is the most recently applied payment, nil when none
func (b *BillFSM) LastPayment() *models.Payment {
	return b.lastPayment
}

// TotalPaid sums every applied payment
func (b *BillFSM) TotalPaid() float64 {
	return b.totalPaid
}

// Overpayment is what the last payment paid beyond the final cost
func (b *BillFSM) Overpayment() float64 {
	return b.overpayment
}
