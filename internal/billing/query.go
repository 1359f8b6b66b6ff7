package billing

import (
	"context"
	"sort"

	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/statemachine"
)

// Projections below are pure functions of the state. Ties follow insertion
// order: the first recorded reading of a period wins "latest", the last
// recorded payment of a reading wins the payment lookup.

// LatestReadingByRoom maps each room to its reading with the greatest (year, month)
func (s *State) LatestReadingByRoom() map[string]models.Reading {
	latest := make(map[string]models.Reading)
	for i := range s.Readings {
		r := s.Readings[i]
		existing, ok := latest[r.RoomID]
		if !ok || r.After(&existing) {
			latest[r.RoomID] = r
		}
	}
	return latest
}

// PaymentByReading maps each paid reading to its payment
func (s *State) PaymentByReading() map[string]models.Payment {
	byReading := make(map[string]models.Payment, len(s.Payments))
	for _, p := range s.Payments {
		byReading[p.ReadingID] = p
	}
	return byReading
}

// paymentsByReading groups payments per reading in recorded order
func (s *State) paymentsByReading() map[string][]models.Payment {
	byReading := make(map[string][]models.Payment, len(s.Payments))
	for _, p := range s.Payments {
		byReading[p.ReadingID] = append(byReading[p.ReadingID], p)
	}
	return byReading
}

// bill replays the payments of a reading through its state machine
func (s *State) bill(r *models.Reading) (*statemachine.BillFSM, error) {
	payments := make([]models.Payment, 0)
	for _, p := range s.Payments {
		if p.ReadingID == r.ID {
			payments = append(payments, p)
		}
	}
	return statemachine.ReplayBill(context.Background(), r, payments)
}

// IsUnpaid reports whether any reading of the room has no payment
func (s *State) IsUnpaid(roomID string) bool {
	paid := s.PaymentByReading()
	for _, r := range s.Readings {
		if r.RoomID == roomID {
			if _, ok := paid[r.ID]; !ok {
				return true
			}
		}
	}
	return false
}

// UnpaidReadingsSortedDesc lists the room's readings without payment, newest period first
func (s *State) UnpaidReadingsSortedDesc(roomID string) []models.Reading {
	paid := s.PaymentByReading()
	unpaid := make([]models.Reading, 0)
	for _, r := range s.Readings {
		if r.RoomID != roomID {
			continue
		}
		if _, ok := paid[r.ID]; !ok {
			unpaid = append(unpaid, r)
		}
	}
	sortDesc(unpaid)
	return unpaid
}

// RoomHistory lists all readings of a room, newest period first, each with its payment
func (s *State) RoomHistory(roomID string) []models.HistoryEntry {
	readings := make([]models.Reading, 0)
	for _, r := range s.Readings {
		if r.RoomID == roomID {
			readings = append(readings, r)
		}
	}
	sortDesc(readings)

	byReading := s.paymentsByReading()
	history := make([]models.HistoryEntry, 0, len(readings))
	for i := range readings {
		history = append(history, newHistoryEntry(&readings[i], byReading[readings[i].ID]))
	}
	return history
}

// ReadingEntry returns one reading with its payment and bill status
func (s *State) ReadingEntry(readingID string) (*models.HistoryEntry, error) {
	reading, err := s.FindReading(readingID)
	if err != nil {
		return nil, err
	}
	bill, err := s.bill(reading)
	if err != nil {
		return nil, err
	}
	entry := historyEntry(reading, bill)
	return &entry, nil
}

// RoomSummaries builds the per-room overview in room order
func (s *State) RoomSummaries() []models.RoomResponse {
	latest := s.LatestReadingByRoom()
	paid := s.PaymentByReading()

	summaries := make([]models.RoomResponse, 0, len(s.Rooms))
	for _, room := range s.Rooms {
		summary := models.RoomResponse{
			ID:            room.ID,
			Number:        room.Number,
			Owner:         room.Owner,
			Credit:        s.Credit(room.ID),
			HasUnpaidBill: s.IsUnpaid(room.ID),
		}
		if r, ok := latest[room.ID]; ok {
			summary.LatestReading = &r
			if p, ok := paid[r.ID]; ok {
				summary.LatestPayment = &p
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// RoomDetail is the history view of a single room
func (s *State) RoomDetail(roomID string) (*models.RoomDetail, error) {
	room, err := s.FindRoom(roomID)
	if err != nil {
		return nil, err
	}
	return &models.RoomDetail{
		Room:    *room,
		Credit:  s.Credit(roomID),
		History: s.RoomHistory(roomID),
	}, nil
}

// MonthlyReport collects the bills of a period. Readings whose room no longer
// exists are left out.
func (s *State) MonthlyReport(month, year int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, invalid("month", "bulan harus antara 1 dan 12")
	}

	rooms := make(map[string]models.Room, len(s.Rooms))
	for _, room := range s.Rooms {
		rooms[room.ID] = room
	}
	byReading := s.paymentsByReading()

	report := &models.MonthlyReport{Month: month, Year: year, Lines: make([]models.MonthlyReportLine, 0)}
	for i := range s.Readings {
		r := s.Readings[i]
		if !r.InPeriod(month, year) {
			continue
		}
		room, ok := rooms[r.RoomID]
		if !ok {
			continue
		}

		entry := newHistoryEntry(&r, byReading[r.ID])
		report.Lines = append(report.Lines, models.MonthlyReportLine{
			Room:    room,
			Reading: r,
			Payment: entry.Payment,
			Status:  entry.Status,
		})

		report.TotalUsage += r.Usage
		report.TotalCost += r.Cost
		report.TotalCreditApplied += r.CreditApplied
		report.TotalFinalCost += r.FinalCost
		if entry.Payment != nil {
			report.TotalCollected += entry.Payment.AmountPaid
		} else {
			report.TotalOutstanding += r.FinalCost
		}
	}
	return report, nil
}

// AvailableYears lists the distinct years having readings, newest first
func (s *State) AvailableYears() []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, r := range s.Readings {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// newHistoryEntry replays the payments of r, all belonging to it, through the
// bill machine
func newHistoryEntry(r *models.Reading, payments []models.Payment) models.HistoryEntry {
	bill := statemachine.NewBillFSM(r)
	for _, p := range payments {
		_ = bill.Pay(context.Background(), p)
	}
	return historyEntry(r, bill)
}

func historyEntry(r *models.Reading, bill *statemachine.BillFSM) models.HistoryEntry {
	entry := models.HistoryEntry{Reading: *r, Status: bill.Current()}
	if p := bill.LastPayment(); p != nil {
		payment := *p
		entry.Payment = &payment
	}
	return entry
}

func sortDesc(readings []models.Reading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].After(&readings[j])
	})
}
