package repositories

import (
	"errors"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUnknownSuggestionKind = errors.New("unknown suggestion kind")

type TaxonomyRepository interface {
	ListCategories(db *gorm.DB) ([]models.Category, error)
	ListProfessions(db *gorm.DB) ([]models.Profession, error)
	ListSkills(db *gorm.DB) ([]models.Skill, error)
	CreateCategory(db *gorm.DB, name string) (*models.Category, error)
	CreateProfession(db *gorm.DB, name string, categoryID uint) (*models.Profession, error)
	CreateSkill(db *gorm.DB, name string) (*models.Skill, error)
	ProfessionNames(db *gorm.DB, ids []uint) ([]string, error)
	SkillNames(db *gorm.DB, ids []uint) ([]string, error)
	Suggest(db *gorm.DB, kind, query string, limit int) ([]string, error)
	CountCategories(db *gorm.DB) (int64, error)
}

type TaxonomyRepositoryImpl struct{}

func NewTaxonomyRepository() TaxonomyRepository {
	return &TaxonomyRepositoryImpl{}
}

func (r *TaxonomyRepositoryImpl) ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name").Find(&categories).Error
	return categories, err
}

func (r *TaxonomyRepositoryImpl) ListProfessions(db *gorm.DB) ([]models.Profession, error) {
	var professions []models.Profession
	err := db.Order("name").Find(&professions).Error
	return professions, err
}

func (r *TaxonomyRepositoryImpl) ListSkills(db *gorm.DB) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.Order("name").Find(&skills).Error
	return skills, err
}

func (r *TaxonomyRepositoryImpl) CreateCategory(db *gorm.DB, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *TaxonomyRepositoryImpl) CreateProfession(db *gorm.DB, name string, categoryID uint) (*models.Profession, error) {
	profession := &models.Profession{Name: name, CategoryID: categoryID}
	if err := db.Create(profession).Error; err != nil {
		return nil, err
	}
	return profession, nil
}

func (r *TaxonomyRepositoryImpl) CreateSkill(db *gorm.DB, name string) (*models.Skill, error) {
	skill := &models.Skill{Name: name}
	if err := db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

func (r *TaxonomyRepositoryImpl) ProfessionNames(db *gorm.DB, ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var names []string
	err := db.Model(&models.Profession{}).Where("id IN ?", ids).Order("name").Pluck("name", &names).Error
	return names, err
}

func (r *TaxonomyRepositoryImpl) SkillNames(db *gorm.DB, ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var names []string
	err := db.Model(&models.Skill{}).Where("id IN ?", ids).Order("name").Pluck("name", &names).Error
	return names, err
}

// Suggest runs a prefix search against a whitelisted lookup table. The kind
// is mapped to a model here; nothing caller-supplied reaches the SQL.
func (r *TaxonomyRepositoryImpl) Suggest(db *gorm.DB, kind, query string, limit int) ([]string, error) {
	var model interface{}
	switch kind {
	case "skills":
		model = &models.Skill{}
	case "professions":
		model = &models.Profession{}
	case "categories":
		model = &models.Category{}
	default:
		return nil, ErrUnknownSuggestionKind
	}

	var names []string
	err := db.Model(model).
		Where("name LIKE ?", query+"%").
		Order("name").
		Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

func (r *TaxonomyRepositoryImpl) CountCategories(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Category{}).Count(&count).Error
	return count, err
}
