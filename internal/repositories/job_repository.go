package repositories

import (
	"errors"
	"time"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// activeFilter: a job is active while expires_at is in the future; a NULL
// expires_at means the job never expires.
const activeFilter = "expires_at > ? OR expires_at IS NULL"

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id uint) (*models.Job, error)
	AddSkills(db *gorm.DB, jobID uint, skillIDs []uint) error
	SkillIDs(db *gorm.DB, jobID uint) ([]uint, error)
	ActiveByCompany(db *gorm.DB, companyID uint, now time.Time) ([]models.Job, error)
	ActiveMatchingSkills(db *gorm.DB, skillIDs []uint, now time.Time) ([]models.Job, error)
	ListActive(db *gorm.DB, now time.Time, limit, offset int) ([]models.Job, error)
	CountActive(db *gorm.DB, now time.Time) (int64, error)
	DeleteOwned(db *gorm.DB, jobID, companyID uint) (int64, error)
	DeleteSkillsByJob(db *gorm.DB, jobID uint) error
	IDsByCompany(db *gorm.DB, companyID uint) ([]uint, error)
	DeleteByCompany(db *gorm.DB, companyID uint) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) AddSkills(db *gorm.DB, jobID uint, skillIDs []uint) error {
	rows := dedupJoinRows(skillIDs)
	if len(rows) == 0 {
		return nil
	}
	joins := make([]models.JobSkill, 0, len(rows))
	for _, id := range rows {
		joins = append(joins, models.JobSkill{JobID: jobID, SkillID: id})
	}
	return db.Create(&joins).Error
}

func (r *JobRepositoryImpl) SkillIDs(db *gorm.DB, jobID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.JobSkill{}).
		Where("job_id = ?", jobID).
		Pluck("skill_id", &ids).Error
	return ids, err
}

func (r *JobRepositoryImpl) ActiveByCompany(db *gorm.DB, companyID uint, now time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("company_id = ?", companyID).
		Where(activeFilter, now).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// ActiveMatchingSkills returns active jobs requiring at least one of the
// skills. Distinct on the job row.
func (r *JobRepositoryImpl) ActiveMatchingSkills(db *gorm.DB, skillIDs []uint, now time.Time) ([]models.Job, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	var jobs []models.Job
	err := db.Model(&models.Job{}).
		Distinct("jobs.*").
		Joins("JOIN job_skills js ON js.job_id = jobs.id").
		Where("js.skill_id IN ?", skillIDs).
		Where(activeFilter, now).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) ListActive(db *gorm.DB, now time.Time, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where(activeFilter, now).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountActive(db *gorm.DB, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where(activeFilter, now).Count(&count).Error
	return count, err
}

// DeleteOwned deletes the job only when it belongs to the company. The
// returned row count lets the caller distinguish "deleted" from "not yours
// or missing" without a separate lookup.
func (r *JobRepositoryImpl) DeleteOwned(db *gorm.DB, jobID, companyID uint) (int64, error) {
	result := db.Where("id = ? AND company_id = ?", jobID, companyID).Delete(&models.Job{})
	return result.RowsAffected, result.Error
}

func (r *JobRepositoryImpl) DeleteSkillsByJob(db *gorm.DB, jobID uint) error {
	return db.Where("job_id = ?", jobID).Delete(&models.JobSkill{}).Error
}

func (r *JobRepositoryImpl) IDsByCompany(db *gorm.DB, companyID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Job{}).
		Where("company_id = ?", companyID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *JobRepositoryImpl) DeleteByCompany(db *gorm.DB, companyID uint) error {
	return db.Where("company_id = ?", companyID).Delete(&models.Job{}).Error
}
