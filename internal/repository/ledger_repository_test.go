package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_LoadEmpty(t *testing.T) {
	repo := NewLedgerRepository(store.NewMemoryStore(), 1500)

	snapshot, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snapshot.Rooms)
	assert.NotNil(t, snapshot.Rooms)
	assert.Equal(t, 1500.0, snapshot.RatePerKwh)
}

func TestLedgerRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(store.NewMemoryStore(), 1500)

	snapshot := models.Snapshot{
		Rooms:    []models.Room{{ID: "room-1", Number: "101", Owner: "Budi"}},
		Readings: []models.Reading{{ID: "r-1", RoomID: "room-1", Month: 1, Year: 2024, StartReading: 100, EndReading: 150, Usage: 50, Cost: 75000, FinalCost: 75000}},
		Payments: []models.Payment{{ID: "p-1", ReadingID: "r-1", PaymentDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AmountPaid: 100000}},
		Credits:  []models.Credit{{RoomID: "room-1", Amount: 25000}},
		RatePerKwh: 1700,
	}
	require.NoError(t, repo.Save(ctx, snapshot))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, *loaded)
}

func TestLedgerRepository_ReadsBrowserLocalStorageFormat(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Put(ctx, map[string][]byte{
		KeyRooms:    []byte(`[{"id":"2024-01-01T00:00:00.000Z","number":"A1","owner":"Sari"}]`),
		KeyReadings: []byte(`[{"id":"r","roomId":"2024-01-01T00:00:00.000Z","month":1,"year":2024,"startReading":0,"endReading":10,"usage":10,"cost":15000,"creditApplied":0,"finalCost":15000}]`),
		KeyPayments: []byte(`[{"id":"p","readingId":"r","paymentDate":"2024-01-05T00:00:00Z","amountPaid":20000}]`),
		KeyCredits:  []byte(`[{"roomId":"2024-01-01T00:00:00.000Z","amount":5000}]`),
	}))

	snapshot, err := NewLedgerRepository(s, 1500).Load(ctx)
	require.NoError(t, err)

	require.Len(t, snapshot.Readings, 1)
	assert.Equal(t, 15000.0, snapshot.Readings[0].FinalCost)
	assert.Equal(t, 20000.0, snapshot.Payments[0].AmountPaid)
	assert.Equal(t, 5000.0, snapshot.Credits[0].Amount)
	assert.Equal(t, 1500.0, snapshot.RatePerKwh, "missing rate falls back to default")
}

func TestLedgerRepository_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Put(ctx, map[string][]byte{KeyRooms: []byte(`{not json`)}))

	_, err := NewLedgerRepository(s, 1500).Load(ctx)
	assert.Error(t, err)
}
