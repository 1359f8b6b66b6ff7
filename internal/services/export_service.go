package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var statusLabels = map[string]string{
	models.BillStatusPaid:    "Lunas",
	models.BillStatusCovered: "Lunas (Kredit)",
	models.BillStatusUnpaid:  "Belum Lunas",
}

var reportHeader = []string{
	"Kamar", "Penghuni", "Meter Awal", "Meter Akhir", "Pemakaian (kWh)",
	"Biaya", "Kredit Dipakai", "Total Tagihan", "Dibayar", "Tanggal Bayar", "Status",
}

// ExportService renders monthly reports as downloadable files
type ExportService struct {
	reports *ReportService
	now     func() time.Time
}

// NewExportService creates a new export service
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports, now: time.Now}
}

// ExportMonthly renders the monthly report in the requested format and
// returns the file content, its name and content type
func (s *ExportService) ExportMonthly(ctx context.Context, month, year int, format string) ([]byte, string, string, error) {
	report, err := s.reports.Monthly(ctx, month, year)
	if err != nil {
		return nil, "", "", err
	}

	var data []byte
	var contentType string
	switch format {
	case FormatCSV, "":
		format = FormatCSV
		data, err = s.ExportCSV(report)
		contentType = "text/csv"
	case FormatXLSX:
		data, err = s.ExportXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		data, err = s.ExportPDF(report)
		contentType = "application/pdf"
	default:
		return nil, "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("laporan_listrik_%04d_%02d.%s", year, month, format)
	return data, filename, contentType, nil
}

func reportRow(line models.MonthlyReportLine) []string {
	paid, paidOn := "", ""
	if line.Payment != nil {
		paid = fmt.Sprintf("%.0f", line.Payment.AmountPaid)
		paidOn = line.Payment.PaymentDate.Format("2006-01-02")
	}
	return []string{
		line.Room.Number,
		line.Room.Owner,
		fmt.Sprintf("%.2f", line.Reading.StartReading),
		fmt.Sprintf("%.2f", line.Reading.EndReading),
		fmt.Sprintf("%.2f", line.Reading.Usage),
		fmt.Sprintf("%.0f", line.Reading.Cost),
		fmt.Sprintf("%.0f", line.Reading.CreditApplied),
		fmt.Sprintf("%.0f", line.Reading.FinalCost),
		paid,
		paidOn,
		statusLabels[line.Status],
	}
}

// ExportCSV writes one row per bill followed by a totals row
func (s *ExportService) ExportCSV(report *models.MonthlyReport) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Laporan Listrik", periodLabel(report.Month, report.Year)})
	_ = writer.Write(reportHeader)
	for _, line := range report.Lines {
		_ = writer.Write(reportRow(line))
	}
	_ = writer.Write([]string{
		"Total", "", "", "",
		fmt.Sprintf("%.2f", report.TotalUsage),
		fmt.Sprintf("%.0f", report.TotalCost),
		fmt.Sprintf("%.0f", report.TotalCreditApplied),
		fmt.Sprintf("%.0f", report.TotalFinalCost),
		fmt.Sprintf("%.0f", report.TotalCollected),
		"", "",
	})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the report to a single styled sheet
func (s *ExportService) ExportXLSX(report *models.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Laporan"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Laporan Listrik "+periodLabel(report.Month, report.Year))
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	for i, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, title)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reportHeader), 3)
	_ = f.SetCellStyle(sheet, "A3", lastHeader, headerStyle)

	row := 4
	for _, line := range report.Lines {
		values := []any{
			line.Room.Number,
			line.Room.Owner,
			line.Reading.StartReading,
			line.Reading.EndReading,
			line.Reading.Usage,
			line.Reading.Cost,
			line.Reading.CreditApplied,
			line.Reading.FinalCost,
			nil,
			nil,
			statusLabels[line.Status],
		}
		if line.Payment != nil {
			values[8] = line.Payment.AmountPaid
			values[9] = line.Payment.PaymentDate.Format("2006-01-02")
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	totals := map[int]float64{
		5: report.TotalUsage,
		6: report.TotalCost,
		7: report.TotalCreditApplied,
		8: report.TotalFinalCost,
		9: report.TotalCollected,
	}
	totalCell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetCellValue(sheet, totalCell, "Total")
	for col, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders a landscape table of the report with totals in words
func (s *ExportService) ExportPDF(report *models.MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Laporan Listrik "+periodLabel(report.Month, report.Year))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 8, "Dicetak "+s.now().Format("02/01/2006 15:04"))
	pdf.Ln(10)

	widths := []float64{18, 40, 22, 22, 24, 26, 24, 26, 26, 24, 25}
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(224, 224, 224)
	for i, title := range reportHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, line := range report.Lines {
		for i, value := range reportRow(line) {
			align := "R"
			if i < 2 || i >= 9 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	summary := [][2]string{
		{"Total Pemakaian:", fmt.Sprintf("%.2f kWh", report.TotalUsage)},
		{"Total Tagihan:", FormatRupiah(report.TotalFinalCost)},
		{"Terbayar:", FormatRupiah(report.TotalCollected)},
		{"Belum Terbayar:", FormatRupiah(report.TotalOutstanding)},
	}
	for _, item := range summary {
		pdf.Cell(50, 7, item[0])
		pdf.Cell(60, 7, item[1])
		pdf.Ln(6)
	}
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 7, "Terbilang: "+NumberToWords(report.TotalFinalCost))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
