package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/debtbook-api/internal/policy"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ExportFile is a rendered report ready to be served
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

type ExportService struct {
	reportSvc *ReportService
	now       func() time.Time
}

func NewExportService(reportSvc *ReportService) *ExportService {
	return &ExportService{reportSvc: reportSvc, now: time.Now}
}

// Export renders the principal's reports in format
func (s *ExportService) Export(ctx context.Context, principal policy.Principal, format string) (*ExportFile, error) {
	reports, err := s.reportSvc.Reports(ctx, principal)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return s.ExportCSV(reports)
	case FormatXLSX:
		return s.ExportXLSX(reports)
	case FormatPDF:
		return s.ExportPDF(reports)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, format)
	}
}

func (s *ExportService) filename(ext string) string {
	return fmt.Sprintf("debt_report_%s.%s", s.now().Format("2006-01-02"), ext)
}

func (s *ExportService) ExportCSV(reports *Reports) (*ExportFile, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	// Header
	_ = writer.Write([]string{"Reporte de Deudas", s.now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	// Totals
	_ = writer.Write([]string{"Resumen General"})
	_ = writer.Write([]string{"Métrica", "Valor"})
	_ = writer.Write([]string{"Deuda Total", reports.Totals.TotalDebt.StringFixed(2)})
	_ = writer.Write([]string{"Total Pagado", reports.Totals.TotalPaid.StringFixed(2)})
	_ = writer.Write([]string{"Saldo Pendiente", reports.Totals.Remaining.StringFixed(2)})
	_ = writer.Write([]string{"Deudas", fmt.Sprintf("%d", reports.Totals.DebtCount)})
	_ = writer.Write([]string{"Deudas Abiertas", fmt.Sprintf("%d", reports.Totals.OpenCount)})
	_ = writer.Write([]string{""})

	// Distribution
	_ = writer.Write([]string{"Distribución por Tipo"})
	_ = writer.Write([]string{"Tipo", "Monto"})
	for _, share := range reports.Distribution {
		_ = writer.Write([]string{share.DebtType, share.Amount.StringFixed(2)})
	}
	_ = writer.Write([]string{""})

	// Monthly
	_ = writer.Write([]string{"Tendencia Mensual"})
	_ = writer.Write([]string{"Mes", "Pagado", "Vencido"})
	for _, point := range reports.Monthly {
		_ = writer.Write([]string{point.Month, point.Paid.StringFixed(2), point.Due.StringFixed(2)})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &ExportFile{Data: buf.Bytes(), Filename: s.filename(FormatCSV), ContentType: "text/csv"}, nil
}

func (s *ExportService) ExportXLSX(reports *Reports) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reporte"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Reporte de Deudas")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Resumen General")
	rows := [][]interface{}{
		{"Deuda Total", reports.Totals.TotalDebt.InexactFloat64()},
		{"Total Pagado", reports.Totals.TotalPaid.InexactFloat64()},
		{"Saldo Pendiente", reports.Totals.Remaining.InexactFloat64()},
		{"Deudas", reports.Totals.DebtCount},
		{"Deudas Abiertas", reports.Totals.OpenCount},
	}
	row := 4
	for _, r := range rows {
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &r)
		row++
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Distribución por Tipo")
	row++
	for _, share := range reports.Distribution {
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{share.DebtType, share.Amount.InexactFloat64()})
		row++
	}

	trend := "Tendencia"
	_, _ = f.NewSheet(trend)
	_ = f.SetSheetRow(trend, "A1", &[]interface{}{"Mes", "Pagado", "Vencido"})
	_ = f.SetCellStyle(trend, "A1", "C1", headerStyle)
	for i, point := range reports.Monthly {
		cell := fmt.Sprintf("A%d", i+2)
		_ = f.SetSheetRow(trend, cell, &[]interface{}{point.Month, point.Paid.InexactFloat64(), point.Due.InexactFloat64()})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:        buf.Bytes(),
		Filename:    s.filename(FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func (s *ExportService) ExportPDF(reports *Reports) (*ExportFile, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Reporte de Deudas")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Resumen General")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	line := func(label, value string) {
		pdf.Cell(60, 10, tr(label))
		pdf.Cell(40, 10, value)
		pdf.Ln(6)
	}
	line("Deuda Total:", reports.Totals.TotalDebt.StringFixed(2))
	line("Total Pagado:", reports.Totals.TotalPaid.StringFixed(2))
	line("Saldo Pendiente:", reports.Totals.Remaining.StringFixed(2))
	line("Deudas:", fmt.Sprintf("%d", reports.Totals.DebtCount))
	line("Deudas Abiertas:", fmt.Sprintf("%d", reports.Totals.OpenCount))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, tr("Distribución por Tipo"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, share := range reports.Distribution {
		line(share.DebtType+":", share.Amount.StringFixed(2))
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Tendencia Mensual")
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 8, "Mes", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Pagado", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, "Vencido", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, point := range reports.Monthly {
		pdf.CellFormat(40, 8, point.Month, "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 8, point.Paid.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, point.Due.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	return &ExportFile{Data: buf.Bytes(), Filename: s.filename(FormatPDF), ContentType: "application/pdf"}, nil
}
