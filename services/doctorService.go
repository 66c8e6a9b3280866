package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
	"github.com/yogimardilah/klinik-api/utils"
)

// DoctorService manages doctor accounts: role-filtered CRUD over the account
// store. Deleting an account revokes its sessions before the row is removed,
// so no usable token survives the deletion.
type DoctorService struct {
	repo     repositories.UserRepository
	sessions utils.SessionStore
}

func NewDoctorService(repo repositories.UserRepository, sessions utils.SessionStore) *DoctorService {
	return &DoctorService{repo: repo, sessions: sessions}
}

func (s *DoctorService) Create(ctx context.Context, req models.CreateDoctorRequest) (*models.User, error) {
	if err := utils.ValidateDoctorCreate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validation.Errors{"email": errors.New("has already been taken")}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	doctor := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Password:        hashed,
		Role:            models.RoleDoctor,
		EmailVerifiedAt: &now,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// GetByID returns the doctor account, or (nil, nil) when no doctor with that
// ID exists. Accounts with other roles are treated as not found.
func (s *DoctorService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasRole(models.RoleDoctor) {
		return nil, nil
	}
	return user, nil
}

func (s *DoctorService) List(ctx context.Context, q repositories.UserQuery) ([]models.User, int64, error) {
	return s.repo.ListByRole(ctx, models.RoleDoctor, q)
}

func (s *DoctorService) Update(ctx context.Context, id int64, req models.UpdateDoctorRequest) (*models.User, error) {
	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, nil
	}

	if err := utils.ValidateDoctorUpdate(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		exists, err := s.repo.EmailExists(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, validation.Errors{"email": errors.New("has already been taken")}
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = hashed
	}

	if _, err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the doctor account. Sessions are revoked first; when the
// revocation fails the account is left in place so no orphaned token can
// outlive its account.
func (s *DoctorService) Delete(ctx context.Context, id int64) error {
	doctor, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrNotFound
	}

	if err := s.sessions.Revoke(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// ErrNotFound signals a missing record to the handler layer.
var ErrNotFound = errors.New("record not found")
