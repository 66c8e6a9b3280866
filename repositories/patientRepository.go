package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yogimardilah/klinik-api/cache"
	"github.com/yogimardilah/klinik-api/database"
	"github.com/yogimardilah/klinik-api/models"
)

const (
	PatientCacheExpiry = 24 * time.Hour

	patientListCacheKey     = "pasiens_cache:all"
	patientListCachePattern = "pasiens_cache*"
)

// PatientQuery carries the list parameters for the patients resource.
type PatientQuery struct {
	Search    string
	Status    string
	Sex       string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// PatientRepository is the patient store. The production implementation is
// backed by Postgres through GORM; tests use an in-memory implementation.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id int64) (*models.Patient, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.Patient, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q PatientQuery) ([]models.Patient, int64, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	Search(ctx context.Context, query string, limit int) ([]models.Patient, error)
	ListActive(ctx context.Context) ([]models.Patient, error)
	ListRecent(ctx context.Context, limit int) ([]models.Patient, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountBySex(ctx context.Context, sex string) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountCreatedInMonth(ctx context.Context, year int, month time.Month) (int64, error)
	CountIncompleteProfiles(ctx context.Context) (int64, error)

	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	MedicalRecordNumberExists(ctx context.Context, number string, excludeID int64) (bool, error)
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

// Create inserts the patient. A blank medical record number is assigned from
// the medical_record_seq sequence, so concurrent creates never collide.
func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	lockKey := fmt.Sprintf("patient_lock:create:%s:%s", patient.Name, patient.BirthDate.Format("2006-01-02"))
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if patient.MedicalRecordNumber == "" {
			var number string
			query := fmt.Sprintf("SELECT 'RM-%d-' || LPAD(nextval('medical_record_seq')::TEXT, 3, '0')", time.Now().Year())
			if err := tx.Raw(query).Scan(&number).Error; err != nil {
				return fmt.Errorf("failed to obtain next medical record number: %w", err)
			}
			patient.MedicalRecordNumber = number
		}

		if err := tx.Create(patient).Error; err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return r.invalidate(ctx, patient.ID)
	})
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.patientCacheKey(id)
	var cached models.Patient
	if err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

// Update applies a partial column map. Columns absent from the map keep their
// stored values.
func (r *patientRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.Patient, error) {
	lockKey := fmt.Sprintf("patient_lock:%d", id)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&patient).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update patient: %w", err)
		}
	}

	if err := r.invalidate(ctx, id); err != nil {
		return nil, err
	}
	return &patient, nil
}

// Delete soft-deletes the patient. Soft-deleted rows are excluded from every
// default query through gorm.DeletedAt.
func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	lockKey := fmt.Sprintf("patient_lock:%d", id)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	res := r.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.invalidate(ctx, id)
}

var patientSortColumns = map[string]bool{
	"name":                  true,
	"created_at":            true,
	"birth_date":            true,
	"status":                true,
	"medical_record_number": true,
}

func (r *patientRepository) List(ctx context.Context, q PatientQuery) ([]models.Patient, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&models.Patient{})

	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where(
			"name ILIKE ? OR medical_record_number ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like,
		)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Sex != "" {
		tx = tx.Where("sex = ?", q.Sex)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	sortBy := q.SortBy
	if !patientSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		order = "ASC"
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = 15
	}

	var patients []models.Patient
	err := tx.Order(sortBy + " " + order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&patients).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

// GetAll returns the full roster, newest first. The result backs the export
// endpoints, so it is cached under the list key that invalidate clears on
// every mutation.
func (r *patientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	var cached []models.Patient
	if err := r.cache.GetJSON(ctx, patientListCacheKey, &cached); err == nil {
		return cached, nil
	} else if err != cache.ErrMiss {
		log.Printf("Failed to get patient list from cache: %v", err)
	}

	var patients []models.Patient
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	if err := r.cache.SetJSON(ctx, patientListCacheKey, patients, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient list in cache: %v", err)
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, query string, limit int) ([]models.Patient, error) {
	if limit < 1 {
		limit = 10
	}
	like := "%" + query + "%"
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR medical_record_number ILIKE ? OR email ILIKE ?", like, like, like).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListActive(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).Where("status = ?", models.StatusActive).Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListRecent(ctx context.Context, limit int) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error
	return count, err
}

func (r *patientRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *patientRepository) CountBySex(ctx context.Context, sex string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("sex = ?", sex).Count(&count).Error
	return count, err
}

func (r *patientRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *patientRepository) CountCreatedInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return r.CountCreatedBetween(ctx, from, from.AddDate(0, 1, 0))
}

// CountIncompleteProfiles counts active patients missing an email, a blood
// type or an address.
func (r *patientRepository) CountIncompleteProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("status = ?", models.StatusActive).
		Where("email IS NULL OR email = '' OR blood_type IS NULL OR blood_type = '' OR address = ''").
		Count(&count).Error
	return count, err
}

func (r *patientRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.Patient{}).Where("email = ?", email)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *patientRepository) MedicalRecordNumberExists(ctx context.Context, number string, excludeID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.Patient{}).Where("medical_record_number = ?", number)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check medical record number existence: %w", err)
	}
	return count > 0, nil
}

func (r *patientRepository) invalidate(ctx context.Context, id int64) error {
	if err := r.cache.Delete(ctx, r.patientCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, patientListCachePattern)
}

func (r *patientRepository) patientCacheKey(id int64) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
