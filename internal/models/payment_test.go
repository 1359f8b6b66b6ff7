package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "plain date",
			body:     `{"id":"p1","readingId":"r1","paymentDate":"2024-01-15","amountPaid":80000}`,
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 timestamp",
			body:     `{"id":"p1","readingId":"r1","paymentDate":"2024-01-15T08:30:00Z","amountPaid":80000}`,
			expected: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "missing date",
			body: `{"id":"p1","readingId":"r1","amountPaid":80000}`,
		},
		{
			name:    "unknown layout",
			body:    `{"id":"p1","readingId":"r1","paymentDate":"15/01/2024","amountPaid":80000}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Payment
			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "p1", p.ID)
			assert.Equal(t, "r1", p.ReadingID)
			assert.Equal(t, 80000.0, p.AmountPaid)
			assert.True(t, tt.expected.Equal(p.PaymentDate))
		})
	}
}

func TestExport_BrowserPayments(t *testing.T) {
	payload := `{"kost_payments":[{"id":"p1","readingId":"r1","paymentDate":"2024-01-15","amountPaid":80000}]}`

	var export Export
	require.NoError(t, json.Unmarshal([]byte(payload), &export))
	require.Len(t, export.Payments, 1)
	assert.Equal(t, 2024, export.Payments[0].PaymentDate.Year())

	// written back as RFC3339, which reads back unchanged
	data, err := json.Marshal(export.Payments[0])
	require.NoError(t, err)
	var again Payment
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, export.Payments[0], again)
}
