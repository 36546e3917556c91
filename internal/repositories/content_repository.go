package repositories

import (
	"errors"

	"technest_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNoQuiz = errors.New("no quiz published")

type ContentRepository interface {
	CreateNews(db *gorm.DB, post *models.NewsPost) error
	ListNews(db *gorm.DB, limit int) ([]models.NewsPost, error)
	ReplaceQuiz(db *gorm.DB, quiz *models.DailyQuiz) error
	GetQuiz(db *gorm.DB) (*models.DailyQuiz, error)
}

type ContentRepositoryImpl struct{}

func NewContentRepository() ContentRepository {
	return &ContentRepositoryImpl{}
}

func (r *ContentRepositoryImpl) CreateNews(db *gorm.DB, post *models.NewsPost) error {
	return db.Create(post).Error
}

func (r *ContentRepositoryImpl) ListNews(db *gorm.DB, limit int) ([]models.NewsPost, error) {
	var posts []models.NewsPost
	err := db.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// ReplaceQuiz wipes the quiz table and inserts the new row under the fixed
// id, so there is never more than one quiz.
func (r *ContentRepositoryImpl) ReplaceQuiz(db *gorm.DB, quiz *models.DailyQuiz) error {
	if err := db.Where("1 = 1").Delete(&models.DailyQuiz{}).Error; err != nil {
		return err
	}
	quiz.ID = models.DailyQuizID
	return db.Create(quiz).Error
}

func (r *ContentRepositoryImpl) GetQuiz(db *gorm.DB) (*models.DailyQuiz, error) {
	var quiz models.DailyQuiz
	err := db.First(&quiz, models.DailyQuizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoQuiz
		}
		return nil, err
	}
	return &quiz, nil
}
