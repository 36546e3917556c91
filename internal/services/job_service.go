package services

import (
	"errors"
	"fmt"
	"time"

	"technest_backend/database"
	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// JobService owns the job board. Postings expire ten days after creation;
// creating one notifies every individual holding at least one required
// skill, in the same transaction as the posting itself.
type JobService interface {
	Create(db *gorm.DB, companyMemberID string, req *dto.CreateJobRequest) (*dto.JobDTO, error)
	MyActiveJobs(db *gorm.DB, companyMemberID string) ([]dto.JobDTO, error)
	FeedForMember(db *gorm.DB, memberID string) ([]dto.JobDTO, error)
	ListPublic(db *gorm.DB, limit, offset int) (*dto.JobListResponse, error)
	Delete(db *gorm.DB, companyMemberID string, jobID uint) error
}

type JobServiceImpl struct {
	jobRepo          repositories.JobRepository
	memberRepo       repositories.MemberRepository
	companyRepo      repositories.CompanyRepository
	taxonomyRepo     repositories.TaxonomyRepository
	notificationRepo repositories.NotificationRepository
	now              func() time.Time
}

func NewJobService(
	jobRepo repositories.JobRepository,
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	notificationRepo repositories.NotificationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:          jobRepo,
		memberRepo:       memberRepo,
		companyRepo:      companyRepo,
		taxonomyRepo:     taxonomyRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

func (s *JobServiceImpl) Create(db *gorm.DB, companyMemberID string, req *dto.CreateJobRequest) (*dto.JobDTO, error) {
	company, err := s.companyRepo.FindByMemberID(db, companyMemberID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	now := s.now()
	expires := now.Add(models.JobLifetime)
	job := &models.Job{
		CompanyID:   company.ID,
		RoleTitle:   req.RoleTitle,
		Description: req.Description,
		JobType:     req.JobType,
		ApplyLink:   req.ApplyLink,
		CreatedAt:   now,
		ExpiresAt:   &expires,
	}

	err = database.RunInTransaction(db, "jobs.create", func(tx *gorm.DB) error {
		if err := s.jobRepo.Create(tx, job); err != nil {
			return err
		}
		if err := s.jobRepo.AddSkills(tx, job.ID, req.SkillIDs); err != nil {
			return err
		}

		// Notify every individual holding any of the required skills.
		memberIDs, err := s.memberRepo.IDsWithAnySkill(tx, req.SkillIDs)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("New job posted: %s at %s", req.RoleTitle, company.CompanyName)
		notifications := make([]models.Notification, 0, len(memberIDs))
		for _, id := range memberIDs {
			notifications = append(notifications, models.Notification{
				RecipientID:   id,
				RecipientRole: models.RoleIndividual,
				Type:          models.NotificationTypeJobMatch,
				Message:       message,
				CreatedAt:     now,
			})
		}
		return s.notificationRepo.InsertBulk(tx, notifications)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.jobDTO(db, job, company)
}

func (s *JobServiceImpl) MyActiveJobs(db *gorm.DB, companyMemberID string) ([]dto.JobDTO, error) {
	company, err := s.companyRepo.FindByMemberID(db, companyMemberID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	jobs, err := s.jobRepo.ActiveByCompany(db, company.ID, s.now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		item, err := s.jobDTO(db, &jobs[i], company)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

// FeedForMember returns active jobs matching any of the member's skills, and
// clears their pending job match notifications: viewing the feed is what the
// notifications point at.
func (s *JobServiceImpl) FeedForMember(db *gorm.DB, memberID string) ([]dto.JobDTO, error) {
	member, err := s.memberRepo.FindByMemberID(db, memberID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	skillIDs, err := s.memberRepo.SkillIDs(db, member.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobs, err := s.jobRepo.ActiveMatchingSkills(db, skillIDs, s.now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out, err := s.jobDTOs(db, jobs)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkJobMatchesRead(db, member.ID); err != nil {
		logger.WithError(err).Warn("failed to mark job match notifications read", "member_id", memberID)
	}
	return out, nil
}

func (s *JobServiceImpl) ListPublic(db *gorm.DB, limit, offset int) (*dto.JobListResponse, error) {
	now := s.now()
	jobs, err := s.jobRepo.ListActive(db, now, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.jobRepo.CountActive(db, now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, err := s.jobDTOs(db, jobs)
	if err != nil {
		return nil, err
	}
	return &dto.JobListResponse{Jobs: items, Total: total}, nil
}

// Delete removes the company's own posting. Whether the job belongs to
// someone else or does not exist at all, the caller gets the same error.
func (s *JobServiceImpl) Delete(db *gorm.DB, companyMemberID string, jobID uint) error {
	company, err := s.companyRepo.FindByMemberID(db, companyMemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.ErrJobUnauthorized
		}
		return apperrors.InternalError(err)
	}

	err = database.RunInTransaction(db, "jobs.delete", func(tx *gorm.DB) error {
		rows, err := s.jobRepo.DeleteOwned(tx, jobID, company.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperrors.ErrJobUnauthorized
		}
		return s.jobRepo.DeleteSkillsByJob(tx, jobID)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) jobDTO(db *gorm.DB, job *models.Job, company *models.CompanyProfile) (*dto.JobDTO, error) {
	skillIDs, err := s.jobRepo.SkillIDs(db, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	skillNames, err := s.taxonomyRepo.SkillNames(db, skillIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobDTO{
		ID:              job.ID,
		RoleTitle:       job.RoleTitle,
		Description:     job.Description,
		JobType:         job.JobType,
		ApplyLink:       job.ApplyLink,
		CompanyMemberID: company.MemberID,
		CompanyName:     company.CompanyName,
		CompanyLogoURL:  AvatarURL(company.LogoPath, company.CompanyName, models.RoleCompany),
		SkillNames:      skillNames,
		CreatedAt:       job.CreatedAt,
		ExpiresAt:       job.ExpiresAt,
		DaysLeft:        daysLeft(job.ExpiresAt, s.now()),
	}, nil
}

// jobDTOs resolves company rows once per company across the list.
func (s *JobServiceImpl) jobDTOs(db *gorm.DB, jobs []models.Job) ([]dto.JobDTO, error) {
	companies := make(map[uint]*models.CompanyProfile)
	out := make([]dto.JobDTO, 0, len(jobs))

	for i := range jobs {
		company, ok := companies[jobs[i].CompanyID]
		if !ok {
			var err error
			company, err = s.companyRepo.FindByID(db, jobs[i].CompanyID)
			if err != nil {
				return nil, profileLookupError(err)
			}
			companies[jobs[i].CompanyID] = company
		}

		item, err := s.jobDTO(db, &jobs[i], company)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

// daysLeft rounds up, so a posting expiring in 12 hours shows one day left.
// Postings without an expiry report zero.
func daysLeft(expiresAt *time.Time, now time.Time) int {
	if expiresAt == nil {
		return 0
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
