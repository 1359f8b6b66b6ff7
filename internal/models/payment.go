package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PaymentDateLayouts are the accepted paymentDate formats. The browser app
// stores plain dates.
var PaymentDateLayouts = []string{"2006-01-02", time.RFC3339}

// Payment records money received against a billed reading
type Payment struct {
	ID          string    `json:"id"`
	ReadingID   string    `json:"readingId"`
	PaymentDate time.Time `json:"paymentDate"`
	AmountPaid  float64   `json:"amountPaid"`
}

// UnmarshalJSON accepts paymentDate as a plain date or an RFC3339 timestamp
func (p *Payment) UnmarshalJSON(data []byte) error {
	type payment Payment
	aux := struct {
		*payment
		PaymentDate string `json:"paymentDate"`
	}{payment: (*payment)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	date, err := ParsePaymentDate(aux.PaymentDate)
	if err != nil {
		return err
	}
	p.PaymentDate = date
	return nil
}

// ParsePaymentDate parses a paymentDate value. An empty value is the zero time.
func ParsePaymentDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range PaymentDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid paymentDate %q", value)
}

// Bill status values derived from a reading and its payments
const (
	BillStatusUnpaid  = "unpaid"
	BillStatusPaid    = "paid"
	BillStatusCovered = "covered" // fully paid by rollover credit
)
