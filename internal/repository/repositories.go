package repository

import (
	"github.com/sjperalta/kost-listrik-api/internal/store"
)

// Repositories holds all repository instances
type Repositories struct {
	Ledger LedgerRepository
}

// NewRepositories creates all repository instances
func NewRepositories(s store.Store, defaultRate float64) *Repositories {
	return &Repositories{
		Ledger: NewLedgerRepository(s, defaultRate),
	}
}
