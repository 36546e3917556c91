package services

import (
	"context"
	"errors"
	"time"

	"technest_backend/database"
	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/storage"
	"technest_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService backs the admin console: login, platform stats, taxonomy
// management, member removal, and news/quiz publishing with notification
// fan-out.
type AdminService interface {
	Login(db *gorm.DB, req *dto.AdminLoginRequest) (*models.AdminAccount, error)
	Stats(db *gorm.DB) (*dto.AdminStats, error)
	AddProfession(db *gorm.DB, req *dto.AddProfessionRequest) (*dto.TaxonomyItem, error)
	AddSkill(db *gorm.DB, req *dto.AddSkillRequest) (*dto.TaxonomyItem, error)
	ListIndividuals(db *gorm.DB, limit, offset int) ([]dto.AdminMemberRow, int64, error)
	ListCompanies(db *gorm.DB, limit, offset int) ([]dto.AdminCompanyRow, int64, error)
	DeleteMember(ctx context.Context, db *gorm.DB, memberID string) error
	PublishNews(db *gorm.DB, req *dto.NewsRequest) error
	PublishQuiz(db *gorm.DB, req *dto.QuizRequest) error
	SeedAdmin(db *gorm.DB, username, email, password string) error
}

type AdminServiceImpl struct {
	adminRepo        repositories.AdminRepository
	accountRepo      repositories.AccountRepository
	memberRepo       repositories.MemberRepository
	companyRepo      repositories.CompanyRepository
	taxonomyRepo     repositories.TaxonomyRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
	contentRepo      repositories.ContentRepository
	store            storage.Storage
	now              func() time.Time
}

func NewAdminService(
	adminRepo repositories.AdminRepository,
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
	contentRepo repositories.ContentRepository,
	store storage.Storage,
) AdminService {
	return &AdminServiceImpl{
		adminRepo:        adminRepo,
		accountRepo:      accountRepo,
		memberRepo:       memberRepo,
		companyRepo:      companyRepo,
		taxonomyRepo:     taxonomyRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
		contentRepo:      contentRepo,
		store:            store,
		now:              time.Now,
	}
}

func (s *AdminServiceImpl) Login(db *gorm.DB, req *dto.AdminLoginRequest) (*models.AdminAccount, error) {
	admin, err := s.adminRepo.FindByUsername(db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return admin, nil
}

func (s *AdminServiceImpl) Stats(db *gorm.DB) (*dto.AdminStats, error) {
	members, err := s.memberRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	companies, err := s.companyRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	activeJobs, err := s.jobRepo.CountActive(db, s.now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	categories, err := s.taxonomyRepo.CountCategories(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AdminStats{
		Members:    members,
		Companies:  companies,
		ActiveJobs: activeJobs,
		Categories: categories,
	}, nil
}

// AddProfession attaches the profession to an existing category, creating
// the category first when only a name was given.
func (s *AdminServiceImpl) AddProfession(db *gorm.DB, req *dto.AddProfessionRequest) (*dto.TaxonomyItem, error) {
	if req.CategoryID == 0 && req.CategoryName == "" {
		return nil, apperrors.NewBadRequestError("Either category_id or category_name is required")
	}

	var item dto.TaxonomyItem
	err := database.RunInTransaction(db, "admin.add_profession", func(tx *gorm.DB) error {
		categoryID := req.CategoryID
		if categoryID == 0 {
			category, err := s.taxonomyRepo.CreateCategory(tx, req.CategoryName)
			if err != nil {
				return err
			}
			categoryID = category.ID
		}

		profession, err := s.taxonomyRepo.CreateProfession(tx, req.Name, categoryID)
		if err != nil {
			return err
		}
		item = dto.TaxonomyItem{ID: profession.ID, Name: profession.Name, CategoryID: profession.CategoryID}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &item, nil
}

func (s *AdminServiceImpl) AddSkill(db *gorm.DB, req *dto.AddSkillRequest) (*dto.TaxonomyItem, error) {
	skill, err := s.taxonomyRepo.CreateSkill(db, req.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TaxonomyItem{ID: skill.ID, Name: skill.Name}, nil
}

func (s *AdminServiceImpl) ListIndividuals(db *gorm.DB, limit, offset int) ([]dto.AdminMemberRow, int64, error) {
	members, err := s.memberRepo.List(db, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.memberRepo.Count(db)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	rows := make([]dto.AdminMemberRow, 0, len(members))
	for i := range members {
		m := &members[i]
		account, err := s.accountRepo.FindByMemberID(db, m.MemberID)
		if err != nil {
			return nil, 0, apperrors.InternalError(err)
		}
		rows = append(rows, dto.AdminMemberRow{
			MemberID:  m.MemberID,
			Name:      m.DisplayName(),
			Email:     account.Email,
			City:      m.City,
			CreatedAt: account.CreatedAt,
		})
	}
	return rows, total, nil
}

func (s *AdminServiceImpl) ListCompanies(db *gorm.DB, limit, offset int) ([]dto.AdminCompanyRow, int64, error) {
	companies, err := s.companyRepo.List(db, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.companyRepo.Count(db)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	rows := make([]dto.AdminCompanyRow, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		account, err := s.accountRepo.FindByMemberID(db, c.MemberID)
		if err != nil {
			return nil, 0, apperrors.InternalError(err)
		}
		rows = append(rows, dto.AdminCompanyRow{
			MemberID:    c.MemberID,
			CompanyName: c.CompanyName,
			Email:       account.Email,
			City:        c.City,
			CreatedAt:   account.CreatedAt,
		})
	}
	return rows, total, nil
}

// DeleteMember removes an account and everything hanging off it. Media
// destruction is best-effort and happens outside the transaction; the row
// deletions run as one unit.
func (s *AdminServiceImpl) DeleteMember(ctx context.Context, db *gorm.DB, memberID string) error {
	account, err := s.accountRepo.FindByMemberID(db, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if account.Role == models.RoleCompany {
		return s.deleteCompany(ctx, db, account)
	}
	return s.deleteIndividual(ctx, db, account)
}

func (s *AdminServiceImpl) deleteIndividual(ctx context.Context, db *gorm.DB, account *models.Account) error {
	member, err := s.memberRepo.FindByMemberID(db, account.MemberID)
	if err != nil {
		return profileLookupError(err)
	}

	if member.PicPublicID != "" {
		s.destroyMedia(ctx, member.PicPublicID)
	}

	err = database.RunInTransaction(db, "admin.delete_member", func(tx *gorm.DB) error {
		if err := s.memberRepo.DeleteSkills(tx, member.ID); err != nil {
			return err
		}
		if err := s.notificationRepo.DeleteAllForRecipient(tx, member.ID, models.RoleIndividual); err != nil {
			return err
		}
		if err := s.memberRepo.DeleteByID(tx, member.ID); err != nil {
			return err
		}
		return s.accountRepo.DeleteByID(tx, account.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) deleteCompany(ctx context.Context, db *gorm.DB, account *models.Account) error {
	company, err := s.companyRepo.FindByMemberID(db, account.MemberID)
	if err != nil {
		return profileLookupError(err)
	}

	if company.LogoPublicID != "" {
		s.destroyMedia(ctx, company.LogoPublicID)
	}

	err = database.RunInTransaction(db, "admin.delete_company", func(tx *gorm.DB) error {
		if err := s.companyRepo.DeleteServices(tx, company.ID); err != nil {
			return err
		}

		jobIDs, err := s.jobRepo.IDsByCompany(tx, company.ID)
		if err != nil {
			return err
		}
		for _, jobID := range jobIDs {
			if err := s.jobRepo.DeleteSkillsByJob(tx, jobID); err != nil {
				return err
			}
		}
		if err := s.jobRepo.DeleteByCompany(tx, company.ID); err != nil {
			return err
		}

		if err := s.notificationRepo.DeleteAllForRecipient(tx, company.ID, models.RoleCompany); err != nil {
			return err
		}
		if err := s.companyRepo.DeleteByID(tx, company.ID); err != nil {
			return err
		}
		return s.accountRepo.DeleteByID(tx, account.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) destroyMedia(ctx context.Context, publicID string) {
	err := s.store.Destroy(ctx, publicID, storage.KindImage)
	if err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		logger.WithError(err).Warn("failed to destroy profile media", "public_id", publicID)
	}
}

// PublishNews stores the post and notifies every member and company in the
// same transaction.
func (s *AdminServiceImpl) PublishNews(db *gorm.DB, req *dto.NewsRequest) error {
	now := s.now()
	err := database.RunInTransaction(db, "admin.publish_news", func(tx *gorm.DB) error {
		post := &models.NewsPost{Title: req.Title, Body: req.Body, CreatedAt: now}
		if err := s.contentRepo.CreateNews(tx, post); err != nil {
			return err
		}
		return s.broadcast(tx, models.NotificationTypeNews, "News: "+req.Title, now)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// PublishQuiz replaces the single quiz row and notifies everyone.
func (s *AdminServiceImpl) PublishQuiz(db *gorm.DB, req *dto.QuizRequest) error {
	now := s.now()
	err := database.RunInTransaction(db, "admin.publish_quiz", func(tx *gorm.DB) error {
		quiz := &models.DailyQuiz{
			Question: req.Question,
			OptionA:  req.OptionA,
			OptionB:  req.OptionB,
			OptionC:  req.OptionC,
			OptionD:  req.OptionD,
			Answer:   req.Answer,
		}
		if err := s.contentRepo.ReplaceQuiz(tx, quiz); err != nil {
			return err
		}
		return s.broadcast(tx, models.NotificationTypeQuiz, "A new daily quiz is available", now)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// broadcast fans a notification out to every member and company.
func (s *AdminServiceImpl) broadcast(tx *gorm.DB, notificationType, message string, now time.Time) error {
	memberIDs, err := s.memberRepo.AllIDs(tx)
	if err != nil {
		return err
	}
	companyIDs, err := s.companyRepo.AllIDs(tx)
	if err != nil {
		return err
	}

	notifications := make([]models.Notification, 0, len(memberIDs)+len(companyIDs))
	for _, id := range memberIDs {
		notifications = append(notifications, models.Notification{
			RecipientID:   id,
			RecipientRole: models.RoleIndividual,
			Type:          notificationType,
			Message:       message,
			CreatedAt:     now,
		})
	}
	for _, id := range companyIDs {
		notifications = append(notifications, models.Notification{
			RecipientID:   id,
			RecipientRole: models.RoleCompany,
			Type:          notificationType,
			Message:       message,
			CreatedAt:     now,
		})
	}
	return s.notificationRepo.InsertBulk(tx, notifications)
}

// SeedAdmin creates the first admin account. It is a no-op when any admin
// already exists.
func (s *AdminServiceImpl) SeedAdmin(db *gorm.DB, username, email, password string) error {
	count, err := s.adminRepo.Count(db)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.adminRepo.Create(db, &models.AdminAccount{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}
