package utils

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/yogimardilah/klinik-api/models"
)

// DateLayout is the wire format for dates in request payloads.
const DateLayout = "2006-01-02"

var (
	errDateInFuture = errors.New("must be a date in the past")
	errBadDate      = errors.New("must be a valid date in YYYY-MM-DD format")
)

// pastDate validates a YYYY-MM-DD string strictly before today. Only the
// local calendar date matters, so midnight is built from the date components
// rather than truncating against the UTC epoch.
func pastDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return errBadDate
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.Location())
	if !d.Before(today) {
		return errDateInFuture
	}
	return nil
}

func inStrings(values []string) validation.Rule {
	items := make([]interface{}, len(values))
	for i, v := range values {
		items[i] = v
	}
	return validation.In(items...)
}

// ValidatePatientCreate checks a patient registration payload. The returned
// error is a validation.Errors map keyed by field name.
func ValidatePatientCreate(req models.CreatePatientRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.BirthDate, validation.Required, validation.By(pastDate)),
		validation.Field(&req.Sex, validation.Required, inStrings([]string{models.SexMale, models.SexFemale})),
		validation.Field(&req.Address, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Phone, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Email, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&req.BloodType, inStrings(models.BloodTypes)),
		validation.Field(&req.Status, validation.Required, inStrings([]string{models.StatusActive, models.StatusInactive})),
		validation.Field(&req.MedicalRecordNumber, validation.Length(0, 100)),
		validation.Field(&req.Allergies, validation.Length(0, 500)),
		validation.Field(&req.EmergencyContactName, validation.Length(0, 255)),
		validation.Field(&req.EmergencyContactPhone, validation.Length(0, 20)),
	)
}

// ValidatePatientUpdate checks a partial patient update. Nil fields are
// skipped; present fields follow the same rules as creation.
func ValidatePatientUpdate(req models.UpdatePatientRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.BirthDate, validation.By(pastDatePtr)),
		validation.Field(&req.Sex, inStrings([]string{models.SexMale, models.SexFemale})),
		validation.Field(&req.Address, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&req.Phone, validation.NilOrNotEmpty, validation.Length(1, 20)),
		validation.Field(&req.Email, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&req.BloodType, inStrings(models.BloodTypes)),
		validation.Field(&req.Status, inStrings([]string{models.StatusActive, models.StatusInactive})),
		validation.Field(&req.MedicalRecordNumber, validation.Length(0, 100)),
		validation.Field(&req.Allergies, validation.Length(0, 500)),
		validation.Field(&req.EmergencyContactName, validation.Length(0, 255)),
		validation.Field(&req.EmergencyContactPhone, validation.Length(0, 20)),
	)
}

func pastDatePtr(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return pastDate(*s)
}

// ValidateDoctorCreate checks a doctor account creation payload.
func ValidateDoctorCreate(req models.CreateDoctorRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 255)),
	)
}

// ValidateDoctorUpdate checks a partial doctor account update.
func ValidateDoctorUpdate(req models.UpdateDoctorRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Email, is.EmailFormat, validation.Length(0, 255)),
		validation.Field(&req.Password, validation.Length(8, 255)),
	)
}

// FieldErrors extracts the field-keyed message map from a validation error.
// Returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}
	return out
}
