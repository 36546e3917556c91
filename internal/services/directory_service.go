package services

import (
	"errors"

	"technest_backend/internal/email"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const suggestionLimit = 5

// DirectoryService serves the public member/company directory, the lookup
// suggestions behind the signup forms, and the contact relay.
type DirectoryService interface {
	ListMembers(db *gorm.DB, limit, offset int) (*dto.MemberListResponse, error)
	ListCompanies(db *gorm.DB, limit, offset int) (*dto.CompanyListResponse, error)
	Suggest(db *gorm.DB, kind, query string) ([]string, error)
	Taxonomy(db *gorm.DB) (*dto.TaxonomyResponse, error)
	Contact(req *dto.ContactRequest) error
}

type DirectoryServiceImpl struct {
	memberRepo   repositories.MemberRepository
	companyRepo  repositories.CompanyRepository
	taxonomyRepo repositories.TaxonomyRepository
	email        email.Provider
}

func NewDirectoryService(
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	provider email.Provider,
) DirectoryService {
	return &DirectoryServiceImpl{
		memberRepo:   memberRepo,
		companyRepo:  companyRepo,
		taxonomyRepo: taxonomyRepo,
		email:        provider,
	}
}

func (s *DirectoryServiceImpl) ListMembers(db *gorm.DB, limit, offset int) (*dto.MemberListResponse, error) {
	members, err := s.memberRepo.List(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.memberRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cards := make([]dto.MemberCard, 0, len(members))
	for i := range members {
		m := &members[i]
		skillIDs, err := s.memberRepo.SkillIDs(db, m.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		skillNames, err := s.taxonomyRepo.SkillNames(db, skillIDs)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		cards = append(cards, dto.MemberCard{
			MemberID:   m.MemberID,
			Name:       m.DisplayName(),
			AvatarURL:  AvatarURL(m.PicPath, m.DisplayName(), models.RoleIndividual),
			Tagline:    m.Tagline,
			City:       m.City,
			SkillNames: skillNames,
		})
	}

	return &dto.MemberListResponse{Members: cards, Total: total}, nil
}

func (s *DirectoryServiceImpl) ListCompanies(db *gorm.DB, limit, offset int) (*dto.CompanyListResponse, error) {
	companies, err := s.companyRepo.List(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.companyRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cards := make([]dto.CompanyCard, 0, len(companies))
	for i := range companies {
		c := &companies[i]
		serviceIDs, err := s.companyRepo.ServiceIDs(db, c.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		serviceNames, err := s.taxonomyRepo.ProfessionNames(db, serviceIDs)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		cards = append(cards, dto.CompanyCard{
			MemberID:     c.MemberID,
			CompanyName:  c.CompanyName,
			AvatarURL:    AvatarURL(c.LogoPath, c.CompanyName, models.RoleCompany),
			City:         c.City,
			About:        c.About,
			ServiceNames: serviceNames,
		})
	}

	return &dto.CompanyListResponse{Companies: cards, Total: total}, nil
}

// Suggest is a prefix search against a whitelisted lookup table.
func (s *DirectoryServiceImpl) Suggest(db *gorm.DB, kind, query string) ([]string, error) {
	names, err := s.taxonomyRepo.Suggest(db, kind, query, suggestionLimit)
	if err != nil {
		if errors.Is(err, repositories.ErrUnknownSuggestionKind) {
			return nil, apperrors.NewBadRequestError("Unknown suggestion kind")
		}
		return nil, apperrors.InternalError(err)
	}
	return names, nil
}

func (s *DirectoryServiceImpl) Taxonomy(db *gorm.DB) (*dto.TaxonomyResponse, error) {
	categories, err := s.taxonomyRepo.ListCategories(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	professions, err := s.taxonomyRepo.ListProfessions(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	skills, err := s.taxonomyRepo.ListSkills(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.TaxonomyResponse{
		Categories:  make([]dto.TaxonomyItem, 0, len(categories)),
		Professions: make([]dto.TaxonomyItem, 0, len(professions)),
		Skills:      make([]dto.TaxonomyItem, 0, len(skills)),
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, dto.TaxonomyItem{ID: c.ID, Name: c.Name})
	}
	for _, p := range professions {
		out.Professions = append(out.Professions, dto.TaxonomyItem{ID: p.ID, Name: p.Name, CategoryID: p.CategoryID})
	}
	for _, sk := range skills {
		out.Skills = append(out.Skills, dto.TaxonomyItem{ID: sk.ID, Name: sk.Name})
	}
	return out, nil
}

// Contact relays a visitor message to the site's contact inbox.
func (s *DirectoryServiceImpl) Contact(req *dto.ContactRequest) error {
	if err := s.email.SendContactMessage(req.Name, req.Email, req.Message); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
