package services

import (
	"context"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// TariffService reads and changes the rate per kWh
type TariffService struct {
	ledger *LedgerService
}

// NewTariffService creates a new tariff service
func NewTariffService(ledger *LedgerService) *TariffService {
	return &TariffService{ledger: ledger}
}

// Get returns the current rate
func (s *TariffService) Get(ctx context.Context) float64 {
	var rate float64
	s.ledger.view(func(st *billing.State) { rate = st.RatePerKwh })
	return rate
}

// Set changes the rate for readings recorded from now on
func (s *TariffService) Set(ctx context.Context, ratePerKwh float64) (float64, error) {
	var previous float64
	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		previous = st.RatePerKwh
		return st.SetTariff(ratePerKwh)
	})
	if err != nil {
		return 0, err
	}
	logger.Info("Tariff changed", "from", previous, "to", ratePerKwh)
	return ratePerKwh, nil
}
