package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/security"
)

// PasswordInput is a credential as submitted by an admin. Hashed tells the
// service the value is an already-stored hash to keep verbatim.
type PasswordInput struct {
	Value  string
	Hashed bool
}

type UserInput struct {
	Name     string
	Role     int
	Password PasswordInput
}

type UserService struct {
	db     *gorm.DB
	hasher *security.PasswordHasher
	auth   *AuthService
}

func NewUserService(db *gorm.DB, hasher *security.PasswordHasher) *UserService {
	return &UserService{db: db, hasher: hasher, auth: NewAuthService(db, hasher)}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

// ListDrivers returns users with the driver role.
func (s *UserService) ListDrivers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("role = ?", models.RoleDriver).Order("name").Find(&users).Error
	return users, err
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user", id)
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if strings.TrimSpace(in.Password.Value) == "" {
		return nil, invalid("password is required")
	}
	user := models.User{}
	if err := s.apply(ctx, &user, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate(err, "user", 0)
	}
	return &user, nil
}

// Update overwrites name and role. An empty password keeps the stored one.
func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, user, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, translate(err, "user", id)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error, "user", id)
	}
	if res.RowsAffected == 0 {
		return notFound("user", id)
	}
	return nil
}

func (s *UserService) apply(ctx context.Context, user *models.User, in UserInput) error {
	name := strings.TrimSpace(in.Name)
	v := &validation{}
	v.check(name != "", "name is required")
	v.check(utf8.RuneCountInString(name) <= 30, "name must be at most 30 characters")
	v.check(in.Role == models.RoleDriver || in.Role == models.RoleAdmin, "role must be 1 (driver) or 2 (admin)")
	if err := v.err(); err != nil {
		return err
	}
	user.Name = name
	user.Role = in.Role

	pw := strings.TrimSpace(in.Password.Value)
	if pw == "" {
		return nil
	}
	if in.Password.Hashed {
		if !security.IsSupportedHash(pw) {
			return invalid("password is not a supported hash")
		}
		user.Password = pw
		return nil
	}

	if !security.IsAccessCode(pw) {
		return invalid("password must be exactly %d digits", security.CodeLength)
	}
	taken, err := s.auth.CodeInUse(ctx, pw, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("code is already assigned to another user")
	}
	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return err
	}
	user.Password = hash
	return nil
}
