package services

import (
	"bytes"
	"context"
	"errors"
	"time"

	"technest_backend/database"
	"technest_backend/internal/imageprocessor"
	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/storage"
	"technest_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile pictures are scaled to fit this box before storage.
const avatarMaxDimension = 512

const dashboardNewsLimit = 5

// ProfileService serves the dashboard and the profile read/update flows for
// both roles.
type ProfileService interface {
	Dashboard(db *gorm.DB, memberID string, role models.Role) (*dto.DashboardData, error)
	Detailed(db *gorm.DB, memberID string, role models.Role) (*dto.ProfileResponse, error)
	PublicProfile(db *gorm.DB, memberID string) (*dto.ProfileResponse, error)
	UpdateIndividual(ctx context.Context, db *gorm.DB, memberID string, req *dto.UpdateMemberProfileRequest, image *dto.ImageUpload) error
	UpdateCompany(ctx context.Context, db *gorm.DB, memberID string, req *dto.UpdateCompanyProfileRequest, image *dto.ImageUpload) error
}

type ProfileServiceImpl struct {
	memberRepo       repositories.MemberRepository
	companyRepo      repositories.CompanyRepository
	taxonomyRepo     repositories.TaxonomyRepository
	contentRepo      repositories.ContentRepository
	notificationRepo repositories.NotificationRepository
	store            storage.Storage
	processor        *imageprocessor.Processor
	maxImageSize     int64
}

func NewProfileService(
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	contentRepo repositories.ContentRepository,
	notificationRepo repositories.NotificationRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
	maxImageSize int64,
) ProfileService {
	return &ProfileServiceImpl{
		memberRepo:       memberRepo,
		companyRepo:      companyRepo,
		taxonomyRepo:     taxonomyRepo,
		contentRepo:      contentRepo,
		notificationRepo: notificationRepo,
		store:            store,
		processor:        processor,
		maxImageSize:     maxImageSize,
	}
}

func (s *ProfileServiceImpl) Dashboard(db *gorm.DB, memberID string, role models.Role) (*dto.DashboardData, error) {
	card, internalID, err := s.dashboardCard(db, memberID, role)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.UnreadCount(db, internalID, role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	posts, err := s.contentRepo.ListNews(db, dashboardNewsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	news := make([]dto.NewsItemDTO, 0, len(posts))
	for _, p := range posts {
		news = append(news, dto.NewsItemDTO{ID: p.ID, Title: p.Title, Body: p.Body, CreatedAt: p.CreatedAt})
	}

	var quiz *dto.QuizDTO
	q, err := s.contentRepo.GetQuiz(db)
	if err != nil && !errors.Is(err, repositories.ErrNoQuiz) {
		return nil, apperrors.InternalError(err)
	}
	if q != nil {
		quiz = &dto.QuizDTO{
			Question: q.Question,
			Options:  []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD},
			Answer:   q.Answer,
		}
	}

	return &dto.DashboardData{
		Card:                *card,
		UnreadNotifications: unread,
		News:                news,
		Quiz:                quiz,
	}, nil
}

func (s *ProfileServiceImpl) dashboardCard(db *gorm.DB, memberID string, role models.Role) (*dto.DashboardCard, uint, error) {
	if role == models.RoleCompany {
		company, err := s.companyRepo.FindByMemberID(db, memberID)
		if err != nil {
			return nil, 0, profileLookupError(err)
		}
		return &dto.DashboardCard{
			MemberID:  company.MemberID,
			Role:      models.RoleCompany,
			Name:      company.CompanyName,
			AvatarURL: AvatarURL(company.LogoPath, company.CompanyName, models.RoleCompany),
			City:      company.City,
		}, company.ID, nil
	}

	member, err := s.memberRepo.FindByMemberID(db, memberID)
	if err != nil {
		return nil, 0, profileLookupError(err)
	}
	return &dto.DashboardCard{
		MemberID:  member.MemberID,
		Role:      models.RoleIndividual,
		Name:      member.DisplayName(),
		AvatarURL: AvatarURL(member.PicPath, member.DisplayName(), models.RoleIndividual),
		Tagline:   member.Tagline,
		City:      member.City,
	}, member.ID, nil
}

func (s *ProfileServiceImpl) Detailed(db *gorm.DB, memberID string, role models.Role) (*dto.ProfileResponse, error) {
	if role == models.RoleCompany {
		company, err := s.companyRepo.FindByMemberID(db, memberID)
		if err != nil {
			return nil, profileLookupError(err)
		}
		out, err := s.companyDTO(db, company)
		if err != nil {
			return nil, err
		}
		return &dto.ProfileResponse{Role: models.RoleCompany, Company: out}, nil
	}

	member, err := s.memberRepo.FindByMemberID(db, memberID)
	if err != nil {
		return nil, profileLookupError(err)
	}
	out, err := s.memberDTO(db, member)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{Role: models.RoleIndividual, Member: out}, nil
}

// PublicProfile resolves a profile by external id without knowing the role
// up front: the prefix decides which table to hit.
func (s *ProfileServiceImpl) PublicProfile(db *gorm.DB, memberID string) (*dto.ProfileResponse, error) {
	role := models.RoleIndividual
	if len(memberID) >= 4 && memberID[:4] == models.RoleCompany.MemberIDPrefix() {
		role = models.RoleCompany
	}
	return s.Detailed(db, memberID, role)
}

func (s *ProfileServiceImpl) UpdateIndividual(ctx context.Context, db *gorm.DB, memberID string, req *dto.UpdateMemberProfileRequest, image *dto.ImageUpload) error {
	member, err := s.memberRepo.FindByMemberID(db, memberID)
	if err != nil {
		return profileLookupError(err)
	}

	var dob *datatypes.Date
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return apperrors.NewBadRequestError("Invalid date of birth, expected YYYY-MM-DD")
		}
		d := datatypes.Date(parsed)
		dob = &d
	}

	// Media upload happens before the transaction; on failure the old
	// picture stays referenced and the rest of the update proceeds.
	if image != nil {
		path, publicID, err := s.uploadImage(ctx, image, "profiles", member.MemberID)
		if err != nil {
			return err
		}
		if path != "" {
			member.PicPath = path
			member.PicPublicID = publicID
		}
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Gender = req.Gender
	member.ContactNo = req.ContactNo
	member.City = req.City
	member.DOB = dob
	member.Education = req.Education
	member.Experience = req.Experience
	member.ProfessionID = req.ProfessionID
	member.Tagline = req.Tagline
	member.LinkedinURL = req.LinkedinURL
	member.GithubURL = req.GithubURL

	err = database.RunInTransaction(db, "profile.update_member", func(tx *gorm.DB) error {
		if err := s.memberRepo.UpdateScalars(tx, member); err != nil {
			return err
		}
		return s.memberRepo.ReplaceSkills(tx, member.ID, req.SkillIDs)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) UpdateCompany(ctx context.Context, db *gorm.DB, memberID string, req *dto.UpdateCompanyProfileRequest, image *dto.ImageUpload) error {
	company, err := s.companyRepo.FindByMemberID(db, memberID)
	if err != nil {
		return profileLookupError(err)
	}

	if image != nil {
		path, publicID, err := s.uploadImage(ctx, image, "logos", company.MemberID)
		if err != nil {
			return err
		}
		if path != "" {
			company.LogoPath = path
			company.LogoPublicID = publicID
		}
	}

	company.CompanyName = req.CompanyName
	company.OwnerName = req.OwnerName
	company.EstablishedYear = req.EstablishedYear
	company.EmployeeRange = req.EmployeeRange
	company.City = req.City
	company.Address = req.Address
	company.MapURL = req.MapURL
	company.About = req.About
	company.Email = req.Email
	company.WebsiteURL = req.WebsiteURL
	company.LinkedinURL = req.LinkedinURL
	company.ContactNo = req.ContactNo

	err = database.RunInTransaction(db, "profile.update_company", func(tx *gorm.DB) error {
		if err := s.companyRepo.UpdateScalars(tx, company); err != nil {
			return err
		}
		return s.companyRepo.ReplaceServices(tx, company.ID, req.ServiceIDs)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// uploadImage validates, downscales and stores a profile image under a fixed
// id so re-uploads overwrite. A storage failure is logged and reported as
// empty results, never as an error: the profile update must not fail because
// the media host is down.
func (s *ProfileServiceImpl) uploadImage(ctx context.Context, image *dto.ImageUpload, folder, publicID string) (path, storedID string, err error) {
	if int64(len(image.Data)) > s.maxImageSize {
		return "", "", apperrors.ErrFileTooLarge
	}

	processed, contentType, err := s.processor.Fit(bytes.NewReader(image.Data), avatarMaxDimension, avatarMaxDimension)
	if err != nil {
		logger.WithError(err).Debug("image decode failed", "folder", folder)
		return "", "", apperrors.ErrInvalidFileType
	}

	result, err := s.store.Upload(ctx, bytes.NewReader(processed), contentType, storage.UploadParams{
		Folder:    folder,
		PublicID:  publicID,
		Kind:      storage.KindImage,
		Overwrite: true,
	})
	if err != nil {
		logger.WithError(err).Warn("image upload failed, keeping previous picture", "folder", folder, "public_id", publicID)
		return "", "", nil
	}

	return result.SecureURL, result.PublicID, nil
}

func (s *ProfileServiceImpl) memberDTO(db *gorm.DB, member *models.MemberProfile) (*dto.MemberProfileDTO, error) {
	skillIDs, err := s.memberRepo.SkillIDs(db, member.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	skillNames, err := s.taxonomyRepo.SkillNames(db, skillIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var professionName string
	if member.ProfessionID != nil {
		names, err := s.taxonomyRepo.ProfessionNames(db, []uint{*member.ProfessionID})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if len(names) > 0 {
			professionName = names[0]
		}
	}

	var dob string
	if member.DOB != nil {
		dob = time.Time(*member.DOB).Format("2006-01-02")
	}

	return &dto.MemberProfileDTO{
		MemberID:       member.MemberID,
		FirstName:      member.FirstName,
		LastName:       member.LastName,
		Gender:         member.Gender,
		ContactNo:      member.ContactNo,
		City:           member.City,
		DOB:            dob,
		Education:      member.Education,
		Experience:     member.Experience,
		ProfessionID:   member.ProfessionID,
		ProfessionName: professionName,
		Tagline:        member.Tagline,
		AvatarURL:      AvatarURL(member.PicPath, member.DisplayName(), models.RoleIndividual),
		LinkedinURL:    member.LinkedinURL,
		GithubURL:      member.GithubURL,
		SkillIDs:       skillIDs,
		SkillNames:     skillNames,
	}, nil
}

func (s *ProfileServiceImpl) companyDTO(db *gorm.DB, company *models.CompanyProfile) (*dto.CompanyProfileDTO, error) {
	serviceIDs, err := s.companyRepo.ServiceIDs(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	serviceNames, err := s.taxonomyRepo.ProfessionNames(db, serviceIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CompanyProfileDTO{
		MemberID:        company.MemberID,
		CompanyName:     company.CompanyName,
		OwnerName:       company.OwnerName,
		EstablishedYear: company.EstablishedYear,
		EmployeeRange:   company.EmployeeRange,
		City:            company.City,
		Address:         company.Address,
		MapURL:          company.MapURL,
		About:           company.About,
		AvatarURL:       AvatarURL(company.LogoPath, company.CompanyName, models.RoleCompany),
		Email:           company.Email,
		WebsiteURL:      company.WebsiteURL,
		LinkedinURL:     company.LinkedinURL,
		ContactNo:       company.ContactNo,
		ServiceIDs:      serviceIDs,
		ServiceNames:    serviceNames,
	}, nil
}

func profileLookupError(err error) error {
	if errors.Is(err, repositories.ErrMemberNotFound) || errors.Is(err, repositories.ErrCompanyNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
