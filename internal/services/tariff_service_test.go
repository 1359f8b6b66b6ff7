package services

import (
	"context"
	"testing"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTariffService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	assert.Equal(t, 1500.0, env.svcs.Tariff.Get(ctx))

	room, err := env.svcs.Room.Create(ctx, "101", "Budi")
	require.NoError(t, err)
	jan, err := env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 1, Year: 2024, StartReading: 0, EndReading: 10})
	require.NoError(t, err)

	rate, err := env.svcs.Tariff.Set(ctx, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, rate)

	_, err = env.svcs.Tariff.Set(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 2000.0, env.svcs.Tariff.Get(ctx))

	entry, err := env.svcs.Reading.Get(ctx, jan.ID)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, entry.Reading.Cost, "existing bills keep their rate")

	feb, err := env.svcs.Reading.Record(ctx, billing.ReadingInput{RoomID: room.ID, Month: 2, Year: 2024, StartReading: 10, EndReading: 20})
	require.NoError(t, err)
	assert.Equal(t, 20000.0, feb.Cost)
}
