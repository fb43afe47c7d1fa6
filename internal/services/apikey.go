package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"glnc_delivery/internal/models"
)

type ApiKeyService struct {
	db *gorm.DB
}

func NewApiKeyService(db *gorm.DB) *ApiKeyService {
	return &ApiKeyService{db: db}
}

func (s *ApiKeyService) Generate(ctx context.Context) (*models.ApiKey, error) {
	key := models.ApiKey{Value: uuid.NewString()}
	if err := s.db.WithContext(ctx).Create(&key).Error; err != nil {
		return nil, translate(err, "api key", 0)
	}
	return &key, nil
}

func (s *ApiKeyService) List(ctx context.Context) ([]models.ApiKey, error) {
	var keys []models.ApiKey
	err := s.db.WithContext(ctx).Order("id DESC").Find(&keys).Error
	return keys, err
}

// Validate reports whether value exactly matches a stored key.
func (s *ApiKeyService) Validate(ctx context.Context, value string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ApiKey{}).Where("api_key_value = ?", value).Count(&count).Error
	return count > 0, err
}

func (s *ApiKeyService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.ApiKey{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("api key", id)
	}
	return nil
}
