package billing

import (
	"errors"
	"fmt"
)

// Billing errors. User-facing messages follow the operator's locale.
var (
	ErrValidation     = errors.New("data tidak valid")
	ErrNotFound       = errors.New("data tidak ditemukan")
	ErrNegativeCredit = errors.New("saldo kredit tidak boleh negatif")
	ErrNoUnpaidBill   = fmt.Errorf("%w: tidak ada tagihan yang belum lunas untuk kamar ini", ErrNotFound)
)

// ValidationError describes a rejected field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFound(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}
