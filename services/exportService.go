package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
)

// ExportService renders the full patient roster as a downloadable document.
// Exports are built in memory and streamed to the caller; nothing is written
// to disk.
type ExportService struct {
	repo repositories.PatientRepository

	now func() time.Time
}

func NewExportService(repo repositories.PatientRepository) *ExportService {
	return &ExportService{repo: repo, now: time.Now}
}

var exportHeaders = []string{
	"No", "Medical Record Number", "Name", "NIK", "Sex", "Birth Date",
	"Phone", "Email", "Address", "Blood Type", "Status", "Registered At",
}

// ExcelExport renders every patient into an xlsx workbook and returns the
// file bytes plus a timestamped filename.
func (s *ExportService) ExcelExport(ctx context.Context) ([]byte, string, error) {
	patients, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to export patients: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Patients"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, "", fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i := range patients {
		p := &patients[i]
		row := exportRow(i+1, p)
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), s.filename("xlsx"), nil
}

// PDFExport renders every patient into a landscape A4 table and returns the
// file bytes plus a timestamped filename.
func (s *ExportService) PDFExport(ctx context.Context) ([]byte, string, error) {
	patients, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to export patients: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Patient List")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated at %s", s.now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	widths := []float64{10, 32, 40, 30, 16, 22, 26, 40, 24, 16, 21}
	pdfHeaders := []string{
		"No", "Record No", "Name", "NIK", "Sex", "Birth Date",
		"Phone", "Email", "Blood Type", "Status", "Registered",
	}

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(221, 221, 221)
	for i, header := range pdfHeaders {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i := range patients {
		p := &patients[i]
		cells := []string{
			fmt.Sprintf("%d", i+1),
			p.MedicalRecordNumber,
			p.Name,
			p.NIK,
			p.Sex,
			p.BirthDate.Format("2006-01-02"),
			p.Phone,
			deref(p.Email),
			deref(p.BloodType),
			p.Status,
			p.CreatedAt.Format("2006-01-02"),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to serialize pdf: %w", err)
	}
	return buf.Bytes(), s.filename("pdf"), nil
}

func exportRow(no int, p *models.Patient) []interface{} {
	return []interface{}{
		no,
		p.MedicalRecordNumber,
		p.Name,
		p.NIK,
		p.Sex,
		p.BirthDate.Format("2006-01-02"),
		p.Phone,
		deref(p.Email),
		p.Address,
		deref(p.BloodType),
		p.Status,
		p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *ExportService) filename(ext string) string {
	return fmt.Sprintf("patients_%s.%s", s.now().Format("20060102_150405"), ext)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
