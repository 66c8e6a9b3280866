package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
	"github.com/yogimardilah/klinik-api/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
)

// AuthService authenticates staff accounts and manages their sessions and
// password resets.
type AuthService struct {
	users    repositories.UserRepository
	sessions utils.SessionStore
}

func NewAuthService(users repositories.UserRepository, sessions utils.SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login checks the credentials, opens a session, and issues an access and
// refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.sessions.Store(ctx, user.ID, utils.RefreshTokenExpiry); err != nil {
		return nil, "", "", fmt.Errorf("failed to store session: %w", err)
	}
	return user, accessToken, refreshToken, nil
}

// Refresh validates the refresh token, confirms the session is still live,
// and issues a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid token subject: %w", err)
	}
	live, err := s.sessions.Has(ctx, userID)
	if err != nil {
		return "", err
	}
	if !live {
		return "", errors.New("session revoked")
	}

	return utils.GenerateAccessToken(claims.UserID, claims.Role)
}

// Logoff revokes the account's session so outstanding tokens stop working.
func (s *AuthService) Logoff(ctx context.Context, userID int64) error {
	return s.sessions.Revoke(ctx, userID)
}

// SendResetCode generates a short-lived reset code for the account and mails
// it. Unknown emails are reported so the handler can respond 404, matching
// the admin-facing nature of this API.
func (s *AuthService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(email, code); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ChangePassword verifies the reset code, stores the new password hash, and
// revokes any live session so old tokens cannot be replayed.
func (s *AuthService) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	stored, err := utils.GetResetCode(ctx, email)
	if err != nil || stored == "" || stored != code {
		return ErrInvalidResetCode
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.users.Update(ctx, user.ID, map[string]interface{}{"password": hashed}); err != nil {
		return err
	}

	if err := utils.DeleteResetCode(ctx, email); err != nil {
		return fmt.Errorf("failed to delete reset code: %w", err)
	}
	return s.sessions.Revoke(ctx, user.ID)
}
