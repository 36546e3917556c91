package repositories

import (
	"errors"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company profile not found")

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.CompanyProfile) error
	FindByMemberID(db *gorm.DB, memberID string) (*models.CompanyProfile, error)
	FindByID(db *gorm.DB, id uint) (*models.CompanyProfile, error)
	UpdateScalars(db *gorm.DB, company *models.CompanyProfile) error
	ReplaceServices(db *gorm.DB, companyID uint, serviceIDs []uint) error
	ServiceIDs(db *gorm.DB, companyID uint) ([]uint, error)
	List(db *gorm.DB, limit, offset int) ([]models.CompanyProfile, error)
	Count(db *gorm.DB) (int64, error)
	FindOfferingService(db *gorm.DB, serviceID uint) ([]models.CompanyProfile, error)
	MatchBySharedServices(db *gorm.DB, excludeID uint, serviceIDs []uint) ([]models.CompanyProfile, error)
	AllIDs(db *gorm.DB) ([]uint, error)
	DeleteServices(db *gorm.DB, companyID uint) error
	DeleteByID(db *gorm.DB, id uint) error
}

type CompanyRepositoryImpl struct{}

func NewCompanyRepository() CompanyRepository {
	return &CompanyRepositoryImpl{}
}

func (r *CompanyRepositoryImpl) Create(db *gorm.DB, company *models.CompanyProfile) error {
	return db.Create(company).Error
}

func (r *CompanyRepositoryImpl) FindByMemberID(db *gorm.DB, memberID string) (*models.CompanyProfile, error) {
	var company models.CompanyProfile
	err := db.Where("member_id = ?", memberID).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.CompanyProfile, error) {
	var company models.CompanyProfile
	err := db.First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) UpdateScalars(db *gorm.DB, company *models.CompanyProfile) error {
	return db.Model(&models.CompanyProfile{}).
		Where("id = ?", company.ID).
		Select("company_name", "owner_name", "established_year", "employee_range",
			"city", "address", "map_url", "about", "logo_path", "logo_public_id",
			"email", "website_url", "linkedin_url", "contact_no").
		Updates(company).Error
}

// ReplaceServices deletes the company's current service rows and inserts the
// deduplicated new set.
func (r *CompanyRepositoryImpl) ReplaceServices(db *gorm.DB, companyID uint, serviceIDs []uint) error {
	if err := db.Where("company_id = ?", companyID).Delete(&models.CompanyService{}).Error; err != nil {
		return err
	}

	rows := dedupJoinRows(serviceIDs)
	if len(rows) == 0 {
		return nil
	}

	joins := make([]models.CompanyService, 0, len(rows))
	for _, id := range rows {
		joins = append(joins, models.CompanyService{CompanyID: companyID, ServiceID: id})
	}
	return db.Create(&joins).Error
}

func (r *CompanyRepositoryImpl) ServiceIDs(db *gorm.DB, companyID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.CompanyService{}).
		Where("company_id = ?", companyID).
		Pluck("service_id", &ids).Error
	return ids, err
}

func (r *CompanyRepositoryImpl) List(db *gorm.DB, limit, offset int) ([]models.CompanyProfile, error) {
	var companies []models.CompanyProfile
	err := db.Order("id").Limit(limit).Offset(offset).Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.CompanyProfile{}).Count(&count).Error
	return count, err
}

// FindOfferingService returns companies listing the profession among their
// services.
func (r *CompanyRepositoryImpl) FindOfferingService(db *gorm.DB, serviceID uint) ([]models.CompanyProfile, error) {
	var companies []models.CompanyProfile
	err := db.Model(&models.CompanyProfile{}).
		Distinct("companies.*").
		Joins("JOIN company_services cs ON cs.company_id = companies.id").
		Where("cs.service_id = ?", serviceID).
		Order("companies.id").
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) MatchBySharedServices(db *gorm.DB, excludeID uint, serviceIDs []uint) ([]models.CompanyProfile, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	var companies []models.CompanyProfile
	err := db.Model(&models.CompanyProfile{}).
		Distinct("companies.*").
		Joins("JOIN company_services cs ON cs.company_id = companies.id").
		Where("companies.id <> ?", excludeID).
		Where("cs.service_id IN ?", serviceIDs).
		Order("companies.id").
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) AllIDs(db *gorm.DB) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.CompanyProfile{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *CompanyRepositoryImpl) DeleteServices(db *gorm.DB, companyID uint) error {
	return db.Where("company_id = ?", companyID).Delete(&models.CompanyService{}).Error
}

func (r *CompanyRepositoryImpl) DeleteByID(db *gorm.DB, id uint) error {
	return db.Delete(&models.CompanyProfile{}, id).Error
}
