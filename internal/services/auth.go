package services

import (
	"context"

	"gorm.io/gorm"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/security"
)

// AuthService resolves 5-digit access codes to users.
type AuthService struct {
	db     *gorm.DB
	hasher *security.PasswordHasher
}

func NewAuthService(db *gorm.DB, hasher *security.PasswordHasher) *AuthService {
	return &AuthService{db: db, hasher: hasher}
}

// Authenticate returns the first user whose stored hash matches code.
// Hashes are salted per format, so every row has to be compared.
func (s *AuthService) Authenticate(ctx context.Context, code string) (*models.User, error) {
	if !security.IsAccessCode(code) {
		return nil, invalid("code must be exactly %d digits", security.CodeLength)
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		if s.hasher.Verify(code, users[i].Password) {
			return &users[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// LoginAdmin authenticates code and requires the admin role.
func (s *AuthService) LoginAdmin(ctx context.Context, code string) (*models.User, error) {
	return s.loginAs(ctx, code, models.RoleAdmin)
}

// LoginDriver authenticates code and requires the driver role.
func (s *AuthService) LoginDriver(ctx context.Context, code string) (*models.User, error) {
	return s.loginAs(ctx, code, models.RoleDriver)
}

func (s *AuthService) loginAs(ctx context.Context, code string, role int) (*models.User, error) {
	user, err := s.Authenticate(ctx, code)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, ErrAccessDenied
	}
	return user, nil
}

// CodeInUse reports whether any user other than exceptID already uses code.
func (s *AuthService) CodeInUse(ctx context.Context, code string, exceptID uint) (bool, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Select("id", "password").Find(&users).Error; err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID != exceptID && s.hasher.Verify(code, u.Password) {
			return true, nil
		}
	}
	return false, nil
}
