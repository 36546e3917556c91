package repositories

import (
	"time"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

// ChatHistoryRow is a community message joined with its sender's display
// metadata. Exactly one of the member/company columns is populated,
// depending on the sender role.
type ChatHistoryRow struct {
	ID              uint
	SenderMemberID  string
	SenderRole      models.Role
	Body            string
	FilePath        string
	FileName        string
	FilePublicID    string
	CreatedAt       time.Time
	MemberFirstName string
	MemberLastName  string
	MemberPic       string
	CompanyName     string
	CompanyLogo     string
}

type ChatRepository interface {
	Insert(db *gorm.DB, msg *models.CommunityMessage) error
	History(db *gorm.DB, limit int) ([]ChatHistoryRow, error)
	OlderThan(db *gorm.DB, cutoff time.Time) ([]models.CommunityMessage, error)
	DeleteOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}

type ChatRepositoryImpl struct{}

func NewChatRepository() ChatRepository {
	return &ChatRepositoryImpl{}
}

func (r *ChatRepositoryImpl) Insert(db *gorm.DB, msg *models.CommunityMessage) error {
	return db.Create(msg).Error
}

// History returns the newest `limit` messages in ascending order, with the
// sender metadata resolved in the same query.
func (r *ChatRepositoryImpl) History(db *gorm.DB, limit int) ([]ChatHistoryRow, error) {
	var rows []ChatHistoryRow
	err := db.Table("community_messages AS cm").
		Select("cm.id, cm.sender_member_id, cm.sender_role, cm.body, cm.file_path, cm.file_name, cm.file_public_id, cm.created_at, " +
			"m.first_name AS member_first_name, m.last_name AS member_last_name, m.pic_path AS member_pic, " +
			"c.company_name AS company_name, c.logo_path AS company_logo").
		Joins("LEFT JOIN members m ON m.member_id = cm.sender_member_id").
		Joins("LEFT JOIN companies c ON c.member_id = cm.sender_member_id").
		Order("cm.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Newest-first from the query; clients render oldest-first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

func (r *ChatRepositoryImpl) OlderThan(db *gorm.DB, cutoff time.Time) ([]models.CommunityMessage, error) {
	var msgs []models.CommunityMessage
	err := db.Where("created_at < ?", cutoff).Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepositoryImpl) DeleteOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("created_at < ?", cutoff).Delete(&models.CommunityMessage{})
	return result.RowsAffected, result.Error
}
