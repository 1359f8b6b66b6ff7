package services

import (
	"fmt"
	"math"
	"strings"
)

// NumberToWords spells a Rupiah amount in Indonesian, rounded to whole Rupiah.
// Example: 1500500 -> "SATU JUTA LIMA RATUS RIBU LIMA RATUS RUPIAH"
func NumberToWords(amount float64) string {
	if math.IsNaN(amount) || math.Abs(amount) >= maxWordsAmount {
		return tooLargeWords
	}
	n := int64(math.Round(amount))
	if n == 0 {
		return "NOL RUPIAH"
	}
	return strings.ToUpper(convertNumberToWords(n)) + " RUPIAH"
}

func convertNumberToWords(n int64) string {
	if n == math.MinInt64 {
		return tooLargeWords
	}
	if n < 0 {
		return "MINUS " + convertNumberToWords(-n)
	}

	switch {
	case n < 10:
		return units[n]
	case n == 10:
		return "SEPULUH"
	case n == 11:
		return "SEBELAS"
	case n < 20:
		return units[n%10] + " BELAS"
	case n < 100:
		return joinWords(units[n/10]+" PULUH", n%10)
	case n < 200:
		return joinWords("SERATUS", n%100)
	case n < 1000:
		return joinWords(units[n/100]+" RATUS", n%100)
	case n < 2000:
		return joinWords("SERIBU", n%1000)
	case n < 1000000:
		return joinWords(convertNumberToWords(n/1000)+" RIBU", n%1000)
	case n < 1000000000:
		return joinWords(convertNumberToWords(n/1000000)+" JUTA", n%1000000)
	case n < 1000000000000:
		return joinWords(convertNumberToWords(n/1000000000)+" MILIAR", n%1000000000)
	}

	return tooLargeWords
}

func joinWords(head string, remainder int64) string {
	if remainder == 0 {
		return head
	}
	return fmt.Sprintf("%s %s", head, convertNumberToWords(remainder))
}

// amounts from one trillion up have no spelling
const (
	maxWordsAmount = 1e12
	tooLargeWords  = "ANGKA TERLALU BESAR"
)

var units = []string{
	"", "SATU", "DUA", "TIGA", "EMPAT", "LIMA", "ENAM", "TUJUH", "DELAPAN", "SEMBILAN",
}

var monthNames = []string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatRupiah formats an amount the way id-ID locales do: "Rp 1.500.000"
func FormatRupiah(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return fmt.Sprintf("%sRp %s", sign, b.String())
}

// periodLabel renders a billing period, e.g. "Januari 2024"
func periodLabel(month, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d/%d", month, year)
	}
	return fmt.Sprintf("%s %d", monthNames[month], year)
}
