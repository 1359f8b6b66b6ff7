package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payment(id, readingID string, amount float64) models.Payment {
	return models.Payment{ID: id, ReadingID: readingID, PaymentDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), AmountPaid: amount}
}

func TestNewBillFSM_InitialState(t *testing.T) {
	tests := []struct {
		name      string
		finalCost float64
		expected  string
	}{
		{"unpaid bill", 75000, models.BillStatusUnpaid},
		{"credit covered bill", 0, models.BillStatusCovered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBillFSM(&models.Reading{ID: "r1", FinalCost: tt.finalCost})
			assert.Equal(t, tt.expected, b.Current())
			assert.Nil(t, b.LastPayment())
			assert.True(t, b.Can(eventPay))
		})
	}
}

func TestBillFSM_Pay(t *testing.T) {
	ctx := context.Background()

	t.Run("overpayment moves unpaid to paid", func(t *testing.T) {
		b := NewBillFSM(&models.Reading{ID: "r1", FinalCost: 75000})
		assert.False(t, b.IsSettled())

		require.NoError(t, b.Pay(ctx, payment("p1", "r1", 100000)))
		assert.Equal(t, models.BillStatusPaid, b.Current())
		assert.True(t, b.IsSettled())
		assert.Equal(t, 25000.0, b.Overpayment())
		assert.Equal(t, "p1", b.LastPayment().ID)
	})

	t.Run("underpayment settles without overpayment", func(t *testing.T) {
		b := NewBillFSM(&models.Reading{ID: "r1", FinalCost: 75000})
		require.NoError(t, b.Pay(ctx, payment("p1", "r1", 50000)))
		assert.Equal(t, models.BillStatusPaid, b.Current())
		assert.Zero(t, b.Overpayment())
	})

	t.Run("covered bill payment is all overpayment", func(t *testing.T) {
		b := NewBillFSM(&models.Reading{ID: "r2"})
		assert.True(t, b.IsSettled())
		require.NoError(t, b.Pay(ctx, payment("p1", "r2", 5000)))
		assert.Equal(t, models.BillStatusPaid, b.Current())
		assert.Equal(t, 5000.0, b.Overpayment())
	})

	t.Run("second payment is applied on a paid bill", func(t *testing.T) {
		b := NewBillFSM(&models.Reading{ID: "r3", FinalCost: 10000})
		require.NoError(t, b.Pay(ctx, payment("p1", "r3", 10000)))
		require.NoError(t, b.Pay(ctx, payment("p2", "r3", 12000)))

		assert.Equal(t, models.BillStatusPaid, b.Current())
		assert.Equal(t, "p2", b.LastPayment().ID)
		assert.Equal(t, 22000.0, b.TotalPaid())
		assert.Equal(t, 2000.0, b.Overpayment(), "each payment is measured against the final cost")
	})

	t.Run("payment of another reading is rejected", func(t *testing.T) {
		b := NewBillFSM(&models.Reading{ID: "r4", FinalCost: 10000})
		err := b.Pay(ctx, payment("p1", "other", 10000))
		assert.ErrorIs(t, err, ErrForeignPayment)
		assert.Equal(t, models.BillStatusUnpaid, b.Current())
		assert.Nil(t, b.LastPayment())

		require.NoError(t, b.Pay(ctx, payment("p2", "r4", 10000)))
		err = b.Pay(ctx, payment("p3", "other", 10000))
		assert.ErrorIs(t, err, ErrForeignPayment)
		assert.Equal(t, "p2", b.LastPayment().ID)
	})
}

func TestReplayBill(t *testing.T) {
	ctx := context.Background()
	reading := &models.Reading{ID: "r1", FinalCost: 30000}

	b, err := ReplayBill(ctx, reading, nil)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusUnpaid, b.Current())

	b, err = ReplayBill(ctx, reading, []models.Payment{payment("p1", "r1", 10000), payment("p2", "r1", 25000)})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPaid, b.Current())
	assert.Equal(t, "p2", b.LastPayment().ID)
	assert.Equal(t, 35000.0, b.TotalPaid())

	_, err = ReplayBill(ctx, reading, []models.Payment{payment("p1", "r2", 10000)})
	assert.ErrorIs(t, err, ErrForeignPayment)
}
