package billing

import (
	"math"

	"github.com/sjperalta/kost-listrik-api/internal/models"
)

// ReadingInput is a new meter reading entered by the operator
type ReadingInput struct {
	RoomID       string
	Month        int
	Year         int
	StartReading float64
	EndReading   float64
}

// Validate checks the input without looking at state
func (in ReadingInput) Validate() error {
	if in.Month < 1 || in.Month > 12 {
		return invalid("month", "bulan harus antara 1 dan 12")
	}
	if in.Year <= 0 {
		return invalid("year", "tahun tidak valid")
	}
	if !isFinite(in.StartReading) {
		return invalid("startReading", "meteran lama tidak valid")
	}
	if !isFinite(in.EndReading) {
		return invalid("endReading", "meteran bulan ini tidak valid")
	}
	if in.StartReading < 0 {
		return invalid("startReading", "meteran lama tidak boleh negatif")
	}
	if in.EndReading <= in.StartReading {
		return invalid("endReading", "meteran bulan ini harus lebih besar dari meteran bulan lalu")
	}
	return nil
}

// ComputeReading derives usage, cost and credit consumption for a pair of
// meter values. A non-increasing pair yields zero usage.
func ComputeReading(startReading, endReading, ratePerKwh, credit float64) models.ReadingPreview {
	usage := 0.0
	if endReading > startReading {
		usage = endReading - startReading
	}
	cost := usage * ratePerKwh
	creditApplied := math.Min(cost, math.Max(credit, 0))

	return models.ReadingPreview{
		Usage:         usage,
		Cost:          cost,
		CreditApplied: creditApplied,
		FinalCost:     cost - creditApplied,
		RatePerKwh:    ratePerKwh,
	}
}

// CheckFigures rejects figures that overflowed the float range
func CheckFigures(figures models.ReadingPreview) error {
	if !isFinite(figures.Usage) || !isFinite(figures.Cost) || !isFinite(figures.FinalCost) {
		return invalid("endReading", "pemakaian terlalu besar untuk dihitung")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RecordReading bills a new reading at the current tariff, consuming the
// room's credit first
func (s *State) RecordReading(in ReadingInput) (*models.Reading, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.FindRoom(in.RoomID); err != nil {
		return nil, err
	}

	figures := ComputeReading(in.StartReading, in.EndReading, s.RatePerKwh, s.Credit(in.RoomID))
	if err := CheckFigures(figures); err != nil {
		return nil, err
	}

	if figures.CreditApplied > 0 {
		if err := s.ApplyCredit(in.RoomID, -figures.CreditApplied); err != nil {
			return nil, err
		}
	}

	reading := models.Reading{
		ID:            s.nextID(),
		RoomID:        in.RoomID,
		Month:         in.Month,
		Year:          in.Year,
		StartReading:  in.StartReading,
		EndReading:    in.EndReading,
		Usage:         figures.Usage,
		Cost:          figures.Cost,
		CreditApplied: figures.CreditApplied,
		FinalCost:     figures.FinalCost,
	}
	s.Readings = append(s.Readings, reading)
	return &reading, nil
}

// NextStartReading is the meter value the next reading of a room starts from
func (s *State) NextStartReading(roomID string) float64 {
	if latest, ok := s.LatestReadingByRoom()[roomID]; ok {
		return latest.EndReading
	}
	return 0
}
