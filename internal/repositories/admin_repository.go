package repositories

import (
	"errors"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAdminNotFound = errors.New("admin account not found")

type AdminRepository interface {
	Create(db *gorm.DB, admin *models.AdminAccount) error
	FindByUsername(db *gorm.DB, username string) (*models.AdminAccount, error)
	Count(db *gorm.DB) (int64, error)
}

type AdminRepositoryImpl struct{}

func NewAdminRepository() AdminRepository {
	return &AdminRepositoryImpl{}
}

func (r *AdminRepositoryImpl) Create(db *gorm.DB, admin *models.AdminAccount) error {
	return db.Create(admin).Error
}

func (r *AdminRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	err := db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.AdminAccount{}).Count(&count).Error
	return count, err
}
