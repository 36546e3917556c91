package repositories

import (
	"technest_backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Insert(db *gorm.DB, n *models.Notification) error
	InsertBulk(db *gorm.DB, ns []models.Notification) error
	UnreadCount(db *gorm.DB, recipientID uint, role models.Role) (int64, error)
	ListForRecipient(db *gorm.DB, recipientID uint, role models.Role, includeJobMatch bool) ([]models.Notification, error)
	MarkAllRead(db *gorm.DB, recipientID uint, role models.Role) error
	MarkJobMatchesRead(db *gorm.DB, recipientID uint) error
	DeleteAllForRecipient(db *gorm.DB, recipientID uint, role models.Role) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Insert(db *gorm.DB, n *models.Notification) error {
	return db.Create(n).Error
}

func (r *NotificationRepositoryImpl) InsertBulk(db *gorm.DB, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return db.Create(&ns).Error
}

func (r *NotificationRepositoryImpl) UnreadCount(db *gorm.DB, recipientID uint, role models.Role) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_role = ? AND is_read = ?", recipientID, role, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) ListForRecipient(db *gorm.DB, recipientID uint, role models.Role, includeJobMatch bool) ([]models.Notification, error) {
	query := db.Where("recipient_id = ? AND recipient_role = ?", recipientID, role)
	if !includeJobMatch {
		query = query.Where("type <> ?", models.NotificationTypeJobMatch)
	}

	var ns []models.Notification
	err := query.Order("created_at DESC").Find(&ns).Error
	return ns, err
}

func (r *NotificationRepositoryImpl) MarkAllRead(db *gorm.DB, recipientID uint, role models.Role) error {
	return db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_role = ? AND is_read = ?", recipientID, role, false).
		Update("is_read", true).Error
}

// MarkJobMatchesRead clears the member's pending job match notifications.
// Job match notifications only ever target individuals.
func (r *NotificationRepositoryImpl) MarkJobMatchesRead(db *gorm.DB, recipientID uint) error {
	return db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_role = ? AND type = ? AND is_read = ?",
			recipientID, models.RoleIndividual, models.NotificationTypeJobMatch, false).
		Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) DeleteAllForRecipient(db *gorm.DB, recipientID uint, role models.Role) error {
	return db.Where("recipient_id = ? AND recipient_role = ?", recipientID, role).
		Delete(&models.Notification{}).Error
}
