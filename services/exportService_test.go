package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yogimardilah/klinik-api/models"
)

func exportFixture() *memPatientRepo {
	return newMemPatientRepo(
		models.Patient{
			Name:                "Siti Rahayu",
			NIK:                 "3174012345678901",
			Phone:               "081234567890",
			Address:             "Jl. Melati 1, Jakarta",
			BirthDate:           time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC),
			Sex:                 models.SexFemale,
			BloodType:           strPtr("A"),
			Status:              models.StatusActive,
			MedicalRecordNumber: "RM-2026-001",
			Email:               strPtr("siti@example.com"),
			CreatedAt:           time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC),
		},
		models.Patient{
			Name:                "Budi Santoso",
			Phone:               "081298765432",
			Address:             "Jl. Mawar 2, Bandung",
			BirthDate:           time.Date(1985, time.March, 2, 0, 0, 0, 0, time.UTC),
			Sex:                 models.SexMale,
			Status:              models.StatusActive,
			MedicalRecordNumber: "RM-2026-002",
			CreatedAt:           time.Date(2026, time.February, 1, 14, 0, 0, 0, time.UTC),
		},
	)
}

func TestExcelExportContainsRoster(t *testing.T) {
	svc := NewExportService(exportFixture())
	svc.now = func() time.Time { return time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC) }

	content, filename, err := svc.ExcelExport(context.Background())
	if err != nil {
		t.Fatalf("ExcelExport() error = %v", err)
	}
	if filename != "patients_20260901_103000.xlsx" {
		t.Errorf("filename = %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("exported workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Patients")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 patients", len(rows))
	}
	if rows[0][1] != "Medical Record Number" {
		t.Errorf("header[1] = %s", rows[0][1])
	}
	if rows[1][1] != "RM-2026-001" || rows[1][2] != "Siti Rahayu" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][2] != "Budi Santoso" {
		t.Errorf("second data row = %v", rows[2])
	}
}

func TestPDFExportProducesDocument(t *testing.T) {
	svc := NewExportService(exportFixture())
	svc.now = func() time.Time { return time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC) }

	content, filename, err := svc.PDFExport(context.Background())
	if err != nil {
		t.Fatalf("PDFExport() error = %v", err)
	}
	if filename != "patients_20260901_103000.pdf" {
		t.Errorf("filename = %s", filename)
	}
	if !strings.HasPrefix(string(content[:5]), "%PDF-") {
		t.Errorf("content does not start with a PDF header: %q", content[:5])
	}
}

func TestExportsHandleEmptyRoster(t *testing.T) {
	svc := NewExportService(newMemPatientRepo())

	content, _, err := svc.ExcelExport(context.Background())
	if err != nil {
		t.Fatalf("ExcelExport() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("empty workbook does not open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Patients")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}

	if _, _, err := svc.PDFExport(context.Background()); err != nil {
		t.Fatalf("PDFExport() error = %v", err)
	}
}
