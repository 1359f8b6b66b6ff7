package services

import (
	"context"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/models"
)

// ReportService builds the dashboard and monthly reports
type ReportService struct {
	ledger *LedgerService
}

// NewReportService creates a new report service
func NewReportService(ledger *LedgerService) *ReportService {
	return &ReportService{ledger: ledger}
}

// Dashboard returns every room card with portfolio totals
func (s *ReportService) Dashboard(ctx context.Context) *models.Dashboard {
	dashboard := &models.Dashboard{}
	s.ledger.view(func(st *billing.State) {
		dashboard.Rooms = st.RoomSummaries()
		dashboard.RatePerKwh = st.RatePerKwh
		for i := range st.Readings {
			r := &st.Readings[i]
			if dashboard.LatestPeriod == nil || r.Year > dashboard.LatestPeriod.Year ||
				(r.Year == dashboard.LatestPeriod.Year && r.Month > dashboard.LatestPeriod.Month) {
				dashboard.LatestPeriod = &models.Period{Month: r.Month, Year: r.Year}
			}
		}
	})

	dashboard.TotalRooms = len(dashboard.Rooms)
	for _, room := range dashboard.Rooms {
		if room.HasUnpaidBill {
			dashboard.UnpaidRooms++
		}
		dashboard.TotalCredit += room.Credit
	}
	return dashboard
}

// Monthly returns the bills of one period
func (s *ReportService) Monthly(ctx context.Context, month, year int) (*models.MonthlyReport, error) {
	var (
		report *models.MonthlyReport
		err    error
	)
	s.ledger.view(func(st *billing.State) { report, err = st.MonthlyReport(month, year) })
	return report, err
}

// Years returns the years having readings, newest first
func (s *ReportService) Years(ctx context.Context) []int {
	var years []int
	s.ledger.view(func(st *billing.State) { years = st.AvailableYears() })
	return years
}
