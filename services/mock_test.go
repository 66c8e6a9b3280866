package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
)

// memPatientRepo is an in-memory PatientRepository for service tests.
type memPatientRepo struct {
	patients []models.Patient
	nextID   int64
	nextSeq  int64
}

func newMemPatientRepo(patients ...models.Patient) *memPatientRepo {
	repo := &memPatientRepo{nextID: 1, nextSeq: 1}
	for _, p := range patients {
		p.ID = repo.nextID
		repo.nextID++
		repo.patients = append(repo.patients, p)
	}
	return repo
}

func (r *memPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	patient.ID = r.nextID
	r.nextID++
	if patient.MedicalRecordNumber == "" {
		patient.MedicalRecordNumber = fmt.Sprintf("RM-%d-%03d", time.Now().Year(), r.nextSeq)
		r.nextSeq++
	}
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now()
	}
	r.patients = append(r.patients, *patient)
	return nil
}

func (r *memPatientRepo) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	for i := range r.patients {
		if r.patients[i].ID == id {
			p := r.patients[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memPatientRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.Patient, error) {
	for i := range r.patients {
		if r.patients[i].ID == id {
			applyPatientUpdates(&r.patients[i], updates)
			p := r.patients[i]
			return &p, nil
		}
	}
	return nil, nil
}

// applyPatientUpdates mirrors the column-map semantics of the gorm store:
// only columns present in the map change.
func applyPatientUpdates(p *models.Patient, updates map[string]interface{}) {
	for column, value := range updates {
		switch column {
		case "name":
			p.Name = value.(string)
		case "nik":
			p.NIK = value.(string)
		case "phone":
			p.Phone = value.(string)
		case "address":
			p.Address = value.(string)
		case "birth_date":
			p.BirthDate = value.(time.Time)
		case "sex":
			p.Sex = value.(string)
		case "blood_type":
			p.BloodType, _ = value.(*string)
		case "status":
			p.Status = value.(string)
		case "medical_record_number":
			p.MedicalRecordNumber = value.(string)
		case "email":
			p.Email, _ = value.(*string)
		case "allergies":
			p.Allergies, _ = value.(*string)
		case "emergency_contact_name":
			p.EmergencyContactName, _ = value.(*string)
		case "emergency_contact_phone":
			p.EmergencyContactPhone, _ = value.(*string)
		}
	}
}

func (r *memPatientRepo) Delete(ctx context.Context, id int64) error {
	for i := range r.patients {
		if r.patients[i].ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memPatientRepo) List(ctx context.Context, q repositories.PatientQuery) ([]models.Patient, int64, error) {
	return r.patients, int64(len(r.patients)), nil
}

func (r *memPatientRepo) GetAll(ctx context.Context) ([]models.Patient, error) {
	out := make([]models.Patient, len(r.patients))
	copy(out, r.patients)
	return out, nil
}

func (r *memPatientRepo) Search(ctx context.Context, query string, limit int) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range r.patients {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memPatientRepo) ListActive(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range r.patients {
		if p.Status == models.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatientRepo) ListRecent(ctx context.Context, limit int) ([]models.Patient, error) {
	out := make([]models.Patient, len(r.patients))
	copy(out, r.patients)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPatientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

func (r *memPatientRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	for _, p := range r.patients {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memPatientRepo) CountBySex(ctx context.Context, sex string) (int64, error) {
	var count int64
	for _, p := range r.patients {
		if p.Sex == sex {
			count++
		}
	}
	return count, nil
}

func (r *memPatientRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, p := range r.patients {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *memPatientRepo) CountCreatedInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return r.CountCreatedBetween(ctx, from, from.AddDate(0, 1, 0))
}

func (r *memPatientRepo) CountIncompleteProfiles(ctx context.Context) (int64, error) {
	var count int64
	for i := range r.patients {
		if r.patients[i].Status == models.StatusActive && !r.patients[i].ProfileComplete() {
			count++
		}
	}
	return count, nil
}

func (r *memPatientRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, p := range r.patients {
		if p.ID != excludeID && p.Email != nil && *p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPatientRepo) MedicalRecordNumberExists(ctx context.Context, number string, excludeID int64) (bool, error) {
	for _, p := range r.patients {
		if p.ID != excludeID && p.MedicalRecordNumber == number {
			return true, nil
		}
	}
	return false, nil
}

// memUserRepo is an in-memory UserRepository for service tests. The events
// slice records destructive calls so ordering can be asserted.
type memUserRepo struct {
	users  []models.User
	nextID int64
	events *[]string
}

func newMemUserRepo(users ...models.User) *memUserRepo {
	repo := &memUserRepo{nextID: 1, events: &[]string{}}
	for _, u := range users {
		u.ID = repo.nextID
		repo.nextID++
		repo.users = append(repo.users, u)
	}
	return repo
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			if name, ok := updates["name"].(string); ok {
				r.users[i].Name = name
			}
			if email, ok := updates["email"].(string); ok {
				r.users[i].Email = email
			}
			if password, ok := updates["password"].(string); ok {
				r.users[i].Password = password
			}
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int64) error {
	*r.events = append(*r.events, "delete")
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memUserRepo) ListByRole(ctx context.Context, role string, q repositories.UserQuery) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) ListRecent(ctx context.Context, limit int) ([]models.User, error) {
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// memSessionStore records revocations into the shared events slice.
type memSessionStore struct {
	live   map[int64]bool
	events *[]string
}

func newMemSessionStore(events *[]string) *memSessionStore {
	return &memSessionStore{live: map[int64]bool{}, events: events}
}

func (s *memSessionStore) Store(ctx context.Context, userID int64, ttl time.Duration) error {
	s.live[userID] = true
	return nil
}

func (s *memSessionStore) Has(ctx context.Context, userID int64) (bool, error) {
	return s.live[userID], nil
}

func (s *memSessionStore) Revoke(ctx context.Context, userID int64) error {
	*s.events = append(*s.events, "revoke")
	delete(s.live, userID)
	return nil
}
