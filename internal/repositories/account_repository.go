package repositories

import (
	"errors"
	"time"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	Create(db *gorm.DB, account *models.Account) error
	FindByEmail(db *gorm.DB, email string) (*models.Account, error)
	FindByMemberID(db *gorm.DB, memberID string) (*models.Account, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	SetResetToken(db *gorm.DB, accountID uint, token string, expires time.Time) error
	FindByResetToken(db *gorm.DB, token string) (*models.Account, error)
	UpdatePasswordAndClearToken(db *gorm.DB, accountID uint, passwordHash string) error
	DeleteByID(db *gorm.DB, accountID uint) error
}

type AccountRepositoryImpl struct{}

func NewAccountRepository() AccountRepository {
	return &AccountRepositoryImpl{}
}

func (r *AccountRepositoryImpl) Create(db *gorm.DB, account *models.Account) error {
	return db.Create(account).Error
}

func (r *AccountRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	err := db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByMemberID(db *gorm.DB, memberID string) (*models.Account, error) {
	var account models.Account
	err := db.Where("member_id = ?", memberID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *AccountRepositoryImpl) SetResetToken(db *gorm.DB, accountID uint, token string, expires time.Time) error {
	return db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"reset_token":   token,
			"reset_expires": expires,
		}).Error
}

func (r *AccountRepositoryImpl) FindByResetToken(db *gorm.DB, token string) (*models.Account, error) {
	var account models.Account
	err := db.Where("reset_token = ?", token).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdatePasswordAndClearToken writes the new hash and clears the reset token
// in a single UPDATE so the token cannot survive a successful reset.
func (r *AccountRepositoryImpl) UpdatePasswordAndClearToken(db *gorm.DB, accountID uint, passwordHash string) error {
	return db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"reset_token":   nil,
			"reset_expires": nil,
		}).Error
}

func (r *AccountRepositoryImpl) DeleteByID(db *gorm.DB, accountID uint) error {
	return db.Delete(&models.Account{}, accountID).Error
}
