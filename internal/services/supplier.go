package services

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"glnc_delivery/internal/models"
)

type SupplierInput struct {
	Name   string
	Mail   string
	Notify bool
}

type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.WithContext(ctx).Order("supplier_name").Find(&suppliers).Error
	return suppliers, err
}

func (s *SupplierService) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, translate(err, "supplier", id)
	}
	return &supplier, nil
}

func (s *SupplierService) Create(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	supplier := models.Supplier{}
	if err := applySupplier(&supplier, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, translate(err, "supplier", 0)
	}
	return &supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, in SupplierInput) (*models.Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySupplier(supplier, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, translate(err, "supplier", id)
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return translate(res.Error, "supplier", id)
	}
	if res.RowsAffected == 0 {
		return notFound("supplier", id)
	}
	return nil
}

func applySupplier(supplier *models.Supplier, in SupplierInput) error {
	name := strings.TrimSpace(in.Name)
	v := &validation{}
	v.check(name != "", "name is required")
	v.check(utf8.RuneCountInString(name) <= 30, "name must be at most 30 characters")
	v.check(utf8.RuneCountInString(in.Mail) <= 250, "mail must be at most 250 characters")

	addrs, err := ParseMailList(in.Mail)
	if err != nil {
		v.check(false, "%s", err.Error())
	}
	if err := v.err(); err != nil {
		return err
	}

	supplier.Name = name
	supplier.Mail = strings.Join(addrs, ",")
	supplier.Notify = in.Notify
	return nil
}

// ParseMailList validates a comma separated address list and returns the
// bare addresses.
func ParseMailList(raw string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := mail.ParseAddress(part)
		if err != nil {
			return nil, invalid("invalid email address %q", part)
		}
		out = append(out, addr.Address)
	}
	if len(out) == 0 {
		return nil, invalid("at least one email address is required")
	}
	return out, nil
}
