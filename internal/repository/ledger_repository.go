package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/store"
)

// Store keys, shared with the browser localStorage layout
const (
	KeyRooms    = "kost_rooms"
	KeyReadings = "kost_readings"
	KeyPayments = "kost_payments"
	KeyCredits  = "kost_credits"
	KeyRate     = "kost_rate"
)

// LedgerRepository loads and saves the full billing snapshot
type LedgerRepository interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot models.Snapshot) error
}

// ledgerRepository maps a snapshot onto store keys
type ledgerRepository struct {
	store       store.Store
	defaultRate float64
}

// NewLedgerRepository creates a new ledger repository. defaultRate is used
// while no tariff has been saved.
func NewLedgerRepository(s store.Store, defaultRate float64) LedgerRepository {
	return &ledgerRepository{store: s, defaultRate: defaultRate}
}

// Load reads every collection. Missing keys load as empty collections.
func (r *ledgerRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{
		Rooms:      []models.Room{},
		Readings:   []models.Reading{},
		Payments:   []models.Payment{},
		Credits:    []models.Credit{},
		RatePerKwh: r.defaultRate,
	}

	targets := []struct {
		key string
		dst any
	}{
		{KeyRooms, &snapshot.Rooms},
		{KeyReadings, &snapshot.Readings},
		{KeyPayments, &snapshot.Payments},
		{KeyCredits, &snapshot.Credits},
		{KeyRate, &snapshot.RatePerKwh},
	}

	for _, target := range targets {
		data, err := r.store.Get(ctx, target.key)
		if errors.Is(err, store.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", target.key, err)
		}
		if err := json.Unmarshal(data, target.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", target.key, err)
		}
	}

	return snapshot, nil
}

// Save writes the whole snapshot in a single store batch
func (r *ledgerRepository) Save(ctx context.Context, snapshot models.Snapshot) error {
	values := make(map[string][]byte, 5)

	sources := map[string]any{
		KeyRooms:    snapshot.Rooms,
		KeyReadings: snapshot.Readings,
		KeyPayments: snapshot.Payments,
		KeyCredits:  snapshot.Credits,
		KeyRate:     snapshot.RatePerKwh,
	}
	for key, src := range sources {
		data, err := json.Marshal(src)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[key] = data
	}

	if err := r.store.Put(ctx, values); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
