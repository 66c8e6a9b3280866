package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/yogimardilah/klinik-api/models"
)

func ptr(s string) *string { return &s }

func TestValidatePatientCreate(t *testing.T) {
	valid := models.CreatePatientRequest{
		Name:      "Siti Rahayu",
		Phone:     "081234567890",
		Address:   "Jl. Melati 1, Jakarta",
		BirthDate: "1990-05-20",
		Sex:       models.SexFemale,
		Status:    models.StatusActive,
	}
	if err := ValidatePatientCreate(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	cases := map[string]struct {
		mutate    func(*models.CreatePatientRequest)
		wantField string
	}{
		"missing name":    {func(r *models.CreatePatientRequest) { r.Name = "" }, "name"},
		"missing address": {func(r *models.CreatePatientRequest) { r.Address = "" }, "address"},
		"missing phone":   {func(r *models.CreatePatientRequest) { r.Phone = "" }, "phone"},
		"bad sex":         {func(r *models.CreatePatientRequest) { r.Sex = "unknown" }, "sex"},
		"bad status":      {func(r *models.CreatePatientRequest) { r.Status = "pending" }, "status"},
		"bad blood type":  {func(r *models.CreatePatientRequest) { r.BloodType = ptr("Z") }, "blood_type"},
		"bad email":       {func(r *models.CreatePatientRequest) { r.Email = ptr("nope") }, "email"},
		"future date":     {func(r *models.CreatePatientRequest) { r.BirthDate = "2999-01-01" }, "birth_date"},
		"bad date":        {func(r *models.CreatePatientRequest) { r.BirthDate = "1990/05/20" }, "birth_date"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := ValidatePatientCreate(req)
			if err == nil {
				t.Fatal("invalid payload accepted")
			}
			fields := FieldErrors(err)
			if _, ok := fields[tc.wantField]; !ok {
				t.Errorf("FieldErrors = %v, want key %q", fields, tc.wantField)
			}
		})
	}
}

func TestEmailCheckIsFormatOnly(t *testing.T) {
	// The email rule must not depend on DNS: a well-formed address on an
	// unresolvable domain is still valid input.
	req := models.CreatePatientRequest{
		Name:      "Siti Rahayu",
		Phone:     "081234567890",
		Address:   "Jl. Melati 1, Jakarta",
		BirthDate: "1990-05-20",
		Sex:       models.SexFemale,
		Status:    models.StatusActive,
		Email:     ptr("siti@intranet.klinik.invalid"),
	}
	if err := ValidatePatientCreate(req); err != nil {
		t.Fatalf("well-formed email rejected: %v", err)
	}

	doctor := models.CreateDoctorRequest{
		Name:     "Dr. Ana",
		Email:    "ana@clinic-internal.invalid",
		Password: "supersecret",
	}
	if err := ValidateDoctorCreate(doctor); err != nil {
		t.Fatalf("well-formed doctor email rejected: %v", err)
	}
}

func TestPastDateUsesLocalCalendarDay(t *testing.T) {
	yesterday := models.CreatePatientRequest{
		Name:      "Siti Rahayu",
		Phone:     "081234567890",
		Address:   "Jl. Melati 1, Jakarta",
		BirthDate: time.Now().AddDate(0, 0, -1).Format(DateLayout),
		Sex:       models.SexFemale,
		Status:    models.StatusActive,
	}
	if err := ValidatePatientCreate(yesterday); err != nil {
		t.Fatalf("yesterday's date rejected: %v", err)
	}

	today := yesterday
	today.BirthDate = time.Now().Format(DateLayout)
	err := ValidatePatientCreate(today)
	if err == nil {
		t.Fatal("today's date accepted as a birth date")
	}
	if _, ok := FieldErrors(err)["birth_date"]; !ok {
		t.Errorf("FieldErrors = %v, want birth_date key", FieldErrors(err))
	}
}

func TestValidatePatientUpdateSkipsNilFields(t *testing.T) {
	// An empty update is valid: every field keeps its stored value.
	if err := ValidatePatientUpdate(models.UpdatePatientRequest{}); err != nil {
		t.Fatalf("empty update rejected: %v", err)
	}

	bad := models.UpdatePatientRequest{Sex: ptr("unknown")}
	if err := ValidatePatientUpdate(bad); err == nil {
		t.Fatal("invalid sex accepted on update")
	}

	blank := models.UpdatePatientRequest{Name: ptr("")}
	if err := ValidatePatientUpdate(blank); err == nil {
		t.Fatal("blank name accepted on update")
	}
}

func TestValidateDoctorCreate(t *testing.T) {
	valid := models.CreateDoctorRequest{Name: "Dr. Ana", Email: "ana@klinik.com", Password: "supersecret"}
	if err := ValidateDoctorCreate(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	short := valid
	short.Password = "short"
	if err := ValidateDoctorCreate(short); err == nil {
		t.Fatal("short password accepted")
	}

	noEmail := valid
	noEmail.Email = ""
	if err := ValidateDoctorCreate(noEmail); err == nil {
		t.Fatal("missing email accepted")
	}
}

func TestFieldErrorsNonValidationError(t *testing.T) {
	if fields := FieldErrors(errors.New("boom")); fields != nil {
		t.Errorf("FieldErrors = %v, want nil for plain error", fields)
	}
}
