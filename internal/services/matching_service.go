package services

import (
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MatchingService surfaces relevant members and companies:
//   - an individual matches members sharing their profession or any skill,
//     and companies offering their profession as a service;
//   - a company matches members whose profession is among its services, and
//     companies sharing at least one service.
//
// The requester never appears in their own results.
type MatchingService interface {
	MatchesForIndividual(db *gorm.DB, memberID string) (*dto.MatchResults, error)
	MatchesForCompany(db *gorm.DB, memberID string) (*dto.MatchResults, error)
}

type MatchingServiceImpl struct {
	memberRepo  repositories.MemberRepository
	companyRepo repositories.CompanyRepository
}

func NewMatchingService(memberRepo repositories.MemberRepository, companyRepo repositories.CompanyRepository) MatchingService {
	return &MatchingServiceImpl{
		memberRepo:  memberRepo,
		companyRepo: companyRepo,
	}
}

func (s *MatchingServiceImpl) MatchesForIndividual(db *gorm.DB, memberID string) (*dto.MatchResults, error) {
	member, err := s.memberRepo.FindByMemberID(db, memberID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	skillIDs, err := s.memberRepo.SkillIDs(db, member.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	members, err := s.memberRepo.MatchByProfessionOrSkills(db, member.ID, member.ProfessionID, skillIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var companies []models.CompanyProfile
	if member.ProfessionID != nil {
		companies, err = s.companyRepo.FindOfferingService(db, *member.ProfessionID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return buildMatchResults(members, companies), nil
}

func (s *MatchingServiceImpl) MatchesForCompany(db *gorm.DB, memberID string) (*dto.MatchResults, error) {
	company, err := s.companyRepo.FindByMemberID(db, memberID)
	if err != nil {
		return nil, profileLookupError(err)
	}

	serviceIDs, err := s.companyRepo.ServiceIDs(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	members, err := s.memberRepo.FindByProfessionIn(db, serviceIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	companies, err := s.companyRepo.MatchBySharedServices(db, company.ID, serviceIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildMatchResults(members, companies), nil
}

func buildMatchResults(members []models.MemberProfile, companies []models.CompanyProfile) *dto.MatchResults {
	out := &dto.MatchResults{
		Members:   make([]dto.MatchedMember, 0, len(members)),
		Companies: make([]dto.MatchedCompany, 0, len(companies)),
	}

	for _, m := range members {
		out.Members = append(out.Members, dto.MatchedMember{
			MemberID:  m.MemberID,
			Name:      m.DisplayName(),
			AvatarURL: AvatarURL(m.PicPath, m.DisplayName(), models.RoleIndividual),
			Tagline:   m.Tagline,
			City:      m.City,
		})
	}

	for _, c := range companies {
		out.Companies = append(out.Companies, dto.MatchedCompany{
			MemberID:    c.MemberID,
			CompanyName: c.CompanyName,
			AvatarURL:   AvatarURL(c.LogoPath, c.CompanyName, models.RoleCompany),
			City:        c.City,
			About:       c.About,
		})
	}

	return out
}
