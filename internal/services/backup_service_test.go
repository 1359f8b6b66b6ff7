package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_Backup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedReport(t, env)

	result, err := env.svcs.Backup.Backup(ctx, "manual")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rooms)
	assert.Equal(t, 3, result.Readings)
	assert.Equal(t, 1, result.Payments)

	f, err := env.storage.Download(result.Path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)

	var export models.Export
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, env.svcs.Ledger.Snapshot(), export.ToSnapshot(0))
}

func TestBackupService_Import(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedReport(t, env)

	payload := []byte(`{
		"kost_rooms": [{"id":"1700000000000","number":"A1","owner":"Rina"}],
		"kost_readings": [{"id":"r1","roomId":"1700000000000","month":3,"year":2024,"startReading":0,"endReading":10,"usage":10,"cost":15000,"creditApplied":0,"finalCost":15000}],
		"kost_payments": [],
		"kost_credits": [{"roomId":"1700000000000","amount":2500}]
	}`)
	var export models.Export
	require.NoError(t, json.Unmarshal(payload, &export))

	result, err := env.svcs.Backup.Import(ctx, export)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rooms)
	assert.Equal(t, 2, result.Backup.Rooms, "previous state backed up")
	assert.True(t, env.storage.Exists(result.Backup.Path))

	snapshot := env.svcs.Ledger.Snapshot()
	assert.Equal(t, "Rina", snapshot.Rooms[0].Owner)
	assert.Equal(t, 1500.0, snapshot.RatePerKwh, "missing rate keeps the current one")
	assert.Equal(t, 2500.0, snapshot.Credits[0].Amount)
}

func TestBackupService_ImportRejectsBrokenCredit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedReport(t, env)
	before := env.svcs.Ledger.Snapshot()

	export := models.Export{
		Rooms:   []models.Room{{ID: "a", Number: "1", Owner: "x"}},
		Credits: []models.Credit{{RoomID: "a", Amount: 100}, {RoomID: "a", Amount: 200}},
	}
	_, err := env.svcs.Backup.Import(ctx, export)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, env.svcs.Ledger.Snapshot())
}

func TestBackupService_ImportBrowserPayments(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	payload := []byte(`{
		"kost_rooms": [{"id":"1700000000000","number":"A1","owner":"Rina"}],
		"kost_readings": [{"id":"r1","roomId":"1700000000000","month":1,"year":2024,"startReading":100,"endReading":150,"usage":50,"cost":75000,"creditApplied":0,"finalCost":75000}],
		"kost_payments": [{"id":"p1","readingId":"r1","paymentDate":"2024-01-15","amountPaid":80000}],
		"kost_credits": [{"roomId":"1700000000000","amount":5000}],
		"kost_rate": 1500
	}`)
	var export models.Export
	require.NoError(t, json.Unmarshal(payload, &export))

	result, err := env.svcs.Backup.Import(ctx, export)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Payments)

	snapshot := env.svcs.Ledger.Snapshot()
	require.Len(t, snapshot.Payments, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), snapshot.Payments[0].PaymentDate)

	history, err := env.svcs.Room.History(ctx, "1700000000000")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.BillStatusPaid, history[0].Status)
}
