package models

// DefaultRatePerKwh is the tariff used until the operator sets one
const DefaultRatePerKwh = 1500

// Snapshot is the full persisted billing state: four collections plus the tariff
type Snapshot struct {
	Rooms      []Room    `json:"rooms"`
	Readings   []Reading `json:"readings"`
	Payments   []Payment `json:"payments"`
	Credits    []Credit  `json:"credits"`
	RatePerKwh float64   `json:"ratePerKwh"`
}

// HistoryEntry is a reading annotated with its payment and bill status
type HistoryEntry struct {
	Reading Reading  `json:"reading"`
	Payment *Payment `json:"payment,omitempty"`
	Status  string   `json:"status"`
}

// MonthlyReportLine is one room's bill in a monthly report
type MonthlyReportLine struct {
	Room    Room     `json:"room"`
	Reading Reading  `json:"reading"`
	Payment *Payment `json:"payment,omitempty"`
	Status  string   `json:"status"`
}

// MonthlyReport aggregates every bill recorded for a billing period
type MonthlyReport struct {
	Month              int                 `json:"month"`
	Year               int                 `json:"year"`
	Lines              []MonthlyReportLine `json:"lines"`
	TotalUsage         float64             `json:"totalUsage"`
	TotalCost          float64             `json:"totalCost"`
	TotalCreditApplied float64             `json:"totalCreditApplied"`
	TotalFinalCost     float64             `json:"totalFinalCost"`
	TotalCollected     float64             `json:"totalCollected"`
	TotalOutstanding   float64             `json:"totalOutstanding"`
}

// RoomDetail is the per-room history view
type RoomDetail struct {
	Room    Room           `json:"room"`
	Credit  float64        `json:"credit"`
	History []HistoryEntry `json:"history"`
}

// ReadingPreview holds the figures a reading would produce without recording it
type ReadingPreview struct {
	Usage         float64 `json:"usage"`
	Cost          float64 `json:"cost"`
	CreditApplied float64 `json:"creditApplied"`
	FinalCost     float64 `json:"finalCost"`
	RatePerKwh    float64 `json:"ratePerKwh"`
}

// Export is the browser storage layout, one key per collection. Backups are
// written in this form and imports accept it.
type Export struct {
	Rooms      []Room    `json:"kost_rooms"`
	Readings   []Reading `json:"kost_readings"`
	Payments   []Payment `json:"kost_payments"`
	Credits    []Credit  `json:"kost_credits"`
	RatePerKwh *float64  `json:"kost_rate,omitempty"`
}

// ToExport converts the snapshot to its storage layout
func (s Snapshot) ToExport() Export {
	rate := s.RatePerKwh
	return Export{
		Rooms:      s.Rooms,
		Readings:   s.Readings,
		Payments:   s.Payments,
		Credits:    s.Credits,
		RatePerKwh: &rate,
	}
}

// ToSnapshot converts an export, using fallbackRate when it carries no tariff.
// Missing collections become empty.
func (e Export) ToSnapshot(fallbackRate float64) Snapshot {
	snapshot := Snapshot{
		Rooms:      append([]Room{}, e.Rooms...),
		Readings:   append([]Reading{}, e.Readings...),
		Payments:   append([]Payment{}, e.Payments...),
		Credits:    append([]Credit{}, e.Credits...),
		RatePerKwh: fallbackRate,
	}
	if e.RatePerKwh != nil {
		snapshot.RatePerKwh = *e.RatePerKwh
	}
	return snapshot
}

// Dashboard is the room overview with portfolio totals
type Dashboard struct {
	Rooms        []RoomResponse `json:"rooms"`
	TotalRooms   int            `json:"totalRooms"`
	UnpaidRooms  int            `json:"unpaidRooms"`
	TotalCredit  float64        `json:"totalCredit"`
	RatePerKwh   float64        `json:"ratePerKwh"`
	LatestPeriod *Period        `json:"latestPeriod,omitempty"`
}

// Period is a billing month
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}
