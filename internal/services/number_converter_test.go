package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "NOL RUPIAH"},
		{1, "SATU RUPIAH"},
		{11, "SEBELAS RUPIAH"},
		{15, "LIMA BELAS RUPIAH"},
		{21, "DUA PULUH SATU RUPIAH"},
		{100, "SERATUS RUPIAH"},
		{1500, "SERIBU LIMA RATUS RUPIAH"},
		{75000, "TUJUH PULUH LIMA RIBU RUPIAH"},
		{1500500, "SATU JUTA LIMA RATUS RIBU LIMA RATUS RUPIAH"},
		{2000000000, "DUA MILIAR RUPIAH"},
		{999.6, "SERIBU RUPIAH"},
		{-2500, "MINUS DUA RIBU LIMA RATUS RUPIAH"},
		{1e12, "ANGKA TERLALU BESAR"},
		{math.MaxFloat64, "ANGKA TERLALU BESAR"},
		{-math.MaxFloat64, "ANGKA TERLALU BESAR"},
		{math.Inf(1), "ANGKA TERLALU BESAR"},
		{math.NaN(), "ANGKA TERLALU BESAR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NumberToWords(tt.amount), "amount %v", tt.amount)
	}
}

func TestConvertNumberToWords_MinInt64(t *testing.T) {
	assert.Equal(t, "ANGKA TERLALU BESAR", convertNumberToWords(math.MinInt64))
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 900", FormatRupiah(900))
	assert.Equal(t, "Rp 1.500", FormatRupiah(1500))
	assert.Equal(t, "Rp 75.000", FormatRupiah(75000))
	assert.Equal(t, "Rp 1.234.567", FormatRupiah(1234567.4))
	assert.Equal(t, "-Rp 25.000", FormatRupiah(-25000))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Januari 2024", periodLabel(1, 2024))
	assert.Equal(t, "Desember 2023", periodLabel(12, 2023))
	assert.Equal(t, "13/2024", periodLabel(13, 2024))
}
