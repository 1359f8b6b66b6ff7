package models

// Reading is one recorded pair of meter values for a room in a billing period.
// Cost embeds the tariff in force when the reading was recorded.
type Reading struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"roomId"`
	Month         int     `json:"month"` // 1-12
	Year          int     `json:"year"`
	StartReading  float64 `json:"startReading"`
	EndReading    float64 `json:"endReading"`
	Usage         float64 `json:"usage"`
	Cost          float64 `json:"cost"`
	CreditApplied float64 `json:"creditApplied"`
	FinalCost     float64 `json:"finalCost"`
}

// After reports whether r belongs to a later billing period than other
func (r *Reading) After(other *Reading) bool {
	if r.Year != other.Year {
		return r.Year > other.Year
	}
	return r.Month > other.Month
}

// InPeriod reports whether the reading was recorded for the given month and year
func (r *Reading) InPeriod(month, year int) bool {
	return r.Month == month && r.Year == year
}
