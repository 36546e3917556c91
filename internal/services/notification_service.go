package services

import (
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// NotificationService serves the notification panel. Companies never see
// job match notifications; those target individuals only and are cleared by
// the job feed instead.
type NotificationService interface {
	UnreadCount(db *gorm.DB, memberID string, role models.Role) (int64, error)
	List(db *gorm.DB, memberID string, role models.Role) ([]dto.NotificationDTO, error)
	DeleteAll(db *gorm.DB, memberID string, role models.Role) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	memberRepo       repositories.MemberRepository
	companyRepo      repositories.CompanyRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
		companyRepo:      companyRepo,
	}
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, memberID string, role models.Role) (int64, error) {
	recipientID, err := s.resolveRecipient(db, memberID, role)
	if err != nil {
		return 0, err
	}

	count, err := s.notificationRepo.UnreadCount(db, recipientID, role)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// List returns the panel contents newest-first and marks everything read.
// The response still reports the read state as it was when the panel was
// opened.
func (s *NotificationServiceImpl) List(db *gorm.DB, memberID string, role models.Role) ([]dto.NotificationDTO, error) {
	recipientID, err := s.resolveRecipient(db, memberID, role)
	if err != nil {
		return nil, err
	}

	includeJobMatch := role == models.RoleIndividual
	notifications, err := s.notificationRepo.ListForRecipient(db, recipientID, role, includeJobMatch)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationDTO{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	if err := s.notificationRepo.MarkAllRead(db, recipientID, role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return out, nil
}

func (s *NotificationServiceImpl) DeleteAll(db *gorm.DB, memberID string, role models.Role) error {
	recipientID, err := s.resolveRecipient(db, memberID, role)
	if err != nil {
		return err
	}

	if err := s.notificationRepo.DeleteAllForRecipient(db, recipientID, role); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// resolveRecipient maps the external member id to the internal profile key
// notifications are addressed to.
func (s *NotificationServiceImpl) resolveRecipient(db *gorm.DB, memberID string, role models.Role) (uint, error) {
	if role == models.RoleCompany {
		company, err := s.companyRepo.FindByMemberID(db, memberID)
		if err != nil {
			return 0, profileLookupError(err)
		}
		return company.ID, nil
	}

	member, err := s.memberRepo.FindByMemberID(db, memberID)
	if err != nil {
		return 0, profileLookupError(err)
	}
	return member.ID, nil
}
