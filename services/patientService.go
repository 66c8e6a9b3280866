package services

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
	"github.com/yogimardilah/klinik-api/utils"
)

type PatientService struct {
	repo repositories.PatientRepository
}

func NewPatientService(repo repositories.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// Create validates the payload, enforces uniqueness, and registers the
// patient. The medical record number is assigned by the store when omitted.
func (s *PatientService) Create(ctx context.Context, req models.CreatePatientRequest) (*models.Patient, error) {
	if err := utils.ValidatePatientCreate(req); err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(ctx, req.Email, req.MedicalRecordNumber, 0); err != nil {
		return nil, err
	}

	birthDate, err := time.Parse(utils.DateLayout, req.BirthDate)
	if err != nil {
		return nil, validation.Errors{"birth_date": errors.New("must be a valid date in YYYY-MM-DD format")}
	}

	patient := &models.Patient{
		Name:                  req.Name,
		NIK:                   req.NIK,
		Phone:                 req.Phone,
		Address:               req.Address,
		BirthDate:             birthDate,
		Sex:                   req.Sex,
		BloodType:             normalizeOptional(req.BloodType),
		Status:                req.Status,
		MedicalRecordNumber:   req.MedicalRecordNumber,
		Email:                 normalizeOptional(req.Email),
		Allergies:             normalizeOptional(req.Allergies),
		EmergencyContactName:  normalizeOptional(req.EmergencyContactName),
		EmergencyContactPhone: normalizeOptional(req.EmergencyContactPhone),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) List(ctx context.Context, q repositories.PatientQuery) ([]models.Patient, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *PatientService) Search(ctx context.Context, query string, limit int) ([]models.Patient, error) {
	return s.repo.Search(ctx, query, limit)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repo.GetAll(ctx)
}

// Update applies a partial update. Fields absent from the payload keep their
// stored values. Returns (nil, nil) when the patient does not exist.
func (s *PatientService) Update(ctx context.Context, id int64, req models.UpdatePatientRequest) (*models.Patient, error) {
	if err := utils.ValidatePatientUpdate(req); err != nil {
		return nil, err
	}

	var mrn string
	if req.MedicalRecordNumber != nil {
		mrn = *req.MedicalRecordNumber
	}
	if err := s.checkUniqueness(ctx, req.Email, mrn, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.NIK != nil {
		updates["nik"] = *req.NIK
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(utils.DateLayout, *req.BirthDate)
		if err != nil {
			return nil, validation.Errors{"birth_date": errors.New("must be a valid date in YYYY-MM-DD format")}
		}
		updates["birth_date"] = birthDate
	}
	if req.Sex != nil {
		updates["sex"] = *req.Sex
	}
	if req.BloodType != nil {
		updates["blood_type"] = normalizeOptional(req.BloodType)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.MedicalRecordNumber != nil {
		updates["medical_record_number"] = *req.MedicalRecordNumber
	}
	if req.Email != nil {
		updates["email"] = normalizeOptional(req.Email)
	}
	if req.Allergies != nil {
		updates["allergies"] = normalizeOptional(req.Allergies)
	}
	if req.EmergencyContactName != nil {
		updates["emergency_contact_name"] = normalizeOptional(req.EmergencyContactName)
	}
	if req.EmergencyContactPhone != nil {
		updates["emergency_contact_phone"] = normalizeOptional(req.EmergencyContactPhone)
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	// Re-read so the response reflects the applied update.
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// checkUniqueness verifies the email and medical record number are not in use
// by another record. Violations surface as field-keyed validation errors.
func (s *PatientService) checkUniqueness(ctx context.Context, email *string, mrn string, excludeID int64) error {
	verrs := validation.Errors{}

	if email != nil && *email != "" {
		exists, err := s.repo.EmailExists(ctx, *email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			verrs["email"] = errors.New("has already been taken")
		}
	}
	if mrn != "" {
		exists, err := s.repo.MedicalRecordNumberExists(ctx, mrn, excludeID)
		if err != nil {
			return err
		}
		if exists {
			verrs["medical_record_number"] = errors.New("has already been taken")
		}
	}

	return verrs.Filter()
}

// normalizeOptional maps empty strings to nil so optional columns store NULL
// and unique indexes ignore blank values.
func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
