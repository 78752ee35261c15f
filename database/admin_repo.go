package database

import (
	"errors"
	"strings"

	"github.com/acamacho/portfolio-backend/models"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// FindByEmail returns the admin with the given email, or nil when none exists.
// Emails are matched case-insensitively.
func (r *AdminRepo) FindByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("lower(email) = ?", strings.ToLower(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Count returns the number of admin records.
func (r *AdminRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// Add inserts a new admin into the database
func (r *AdminRepo) Add(admin *models.Admin) error {
	return r.db.Create(admin).Error
}
