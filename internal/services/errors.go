package services

import (
	"errors"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
)

// Common service errors. Billing sentinels are re-exported for handlers.
var (
	ErrValidation         = billing.ErrValidation
	ErrNotFound           = billing.ErrNotFound
	ErrNoUnpaidBill       = billing.ErrNoUnpaidBill
	ErrInvalidCredentials = errors.New("nama pengguna atau kata sandi salah")
	ErrUnauthorized       = errors.New("tidak memiliki akses")
	ErrUnsupportedFormat  = errors.New("format ekspor tidak didukung")
)
