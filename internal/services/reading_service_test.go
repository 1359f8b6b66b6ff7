package services

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingService_RecordConsumesCredit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	room, err := env.svcs.Room.Create(ctx, "101", "Budi")
	require.NoError(t, err)
	jan, err := env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 1, Year: 2024, StartReading: 100, EndReading: 150})
	require.NoError(t, err)
	_, err = env.svcs.Payment.Pay(ctx, billing.PaymentInput{ReadingID: jan.ID, PaymentDate: paidOn, AmountPaid: 100000})
	require.NoError(t, err)

	feb, err := env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 2, Year: 2024, StartReading: 150, EndReading: 180})
	require.NoError(t, err)
	assert.Equal(t, 45000.0, feb.Cost)
	assert.Equal(t, 25000.0, feb.CreditApplied)
	assert.Equal(t, 20000.0, feb.FinalCost)

	assert.Empty(t, env.svcs.Ledger.Snapshot().Credits)

	expected := `
# HELP kost_readings_recorded_total Meter readings recorded.
# TYPE kost_readings_recorded_total counter
kost_readings_recorded_total 2
# HELP kost_credit_applied_rupiah_total Rollover credit consumed by new readings, in Rupiah.
# TYPE kost_credit_applied_rupiah_total counter
kost_credit_applied_rupiah_total 25000
`
	assert.NoError(t, testutil.GatherAndCompare(env.reg, strings.NewReader(expected),
		"kost_readings_recorded_total", "kost_credit_applied_rupiah_total"))
}

func TestReadingService_RecordValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	room, err := env.svcs.Room.Create(ctx, "101", "Budi")
	require.NoError(t, err)

	_, err = env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 13, Year: 2024, StartReading: 0, EndReading: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 1, Year: 2024, StartReading: 10, EndReading: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: "missing", Month: 1, Year: 2024, StartReading: 0, EndReading: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, env.svcs.Ledger.Snapshot().Readings)
}

func TestReadingService_Preview(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	room, err := env.svcs.Room.Create(ctx, "101", "Budi")
	require.NoError(t, err)
	jan, err := env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 1, Year: 2024, StartReading: 0, EndReading: 10})
	require.NoError(t, err)
	_, err = env.svcs.Payment.Pay(ctx, billing.PaymentInput{ReadingID: jan.ID, PaymentDate: paidOn, AmountPaid: 20000})
	require.NoError(t, err)

	preview, err := env.svcs.Reading.Preview(ctx, PreviewInput{RoomID: room.ID, StartReading: 10, EndReading: 20})
	require.NoError(t, err)
	assert.Equal(t, models.ReadingPreview{Usage: 10, Cost: 15000, CreditApplied: 5000, FinalCost: 10000, RatePerKwh: 1500}, *preview)

	preview, err = env.svcs.Reading.Preview(ctx, PreviewInput{StartReading: 10, EndReading: 20})
	require.NoError(t, err)
	assert.Equal(t, 0.0, preview.CreditApplied)

	_, err = env.svcs.Reading.Preview(ctx, PreviewInput{RoomID: "missing", StartReading: 10, EndReading: 20})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svcs.Reading.Preview(ctx, PreviewInput{RoomID: room.ID, StartReading: 0, EndReading: 1e306})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Len(t, env.svcs.Ledger.Snapshot().Readings, 1, "preview records nothing")
	assert.Equal(t, 5000.0, env.svcs.Ledger.Snapshot().Credits[0].Amount)
}

func TestReadingService_Get(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	room, err := env.svcs.Room.Create(ctx, "101", "Budi")
	require.NoError(t, err)
	reading, err := env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 1, Year: 2024, StartReading: 0, EndReading: 10})
	require.NoError(t, err)

	entry, err := env.svcs.Reading.Get(ctx, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusUnpaid, entry.Status)

	_, err = env.svcs.Reading.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
