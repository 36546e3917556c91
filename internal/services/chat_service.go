package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"technest_backend/database"
	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/storage"
	"technest_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Attachment extensions allowed in the community chat, mapped to their
// storage kind.
var chatAttachmentKinds = map[string]storage.Kind{
	".png":  storage.KindImage,
	".jpg":  storage.KindImage,
	".jpeg": storage.KindImage,
	".gif":  storage.KindImage,
	".pdf":  storage.KindRaw,
	".docx": storage.KindRaw,
	".txt":  storage.KindRaw,
}

// ChatService backs the single shared community channel. Messages are
// persisted before being broadcast, and live for 24 hours.
type ChatService interface {
	PostMessage(db *gorm.DB, senderID string, role models.Role, req *dto.PostMessageRequest) (*dto.ChatMessageDTO, error)
	History(db *gorm.DB) ([]dto.ChatMessageDTO, error)
	UploadAttachment(ctx context.Context, filename string, reader io.Reader) (*dto.ChatAttachment, error)
	PruneExpired(ctx context.Context, db *gorm.DB) (int64, error)
}

type ChatServiceImpl struct {
	chatRepo    repositories.ChatRepository
	memberRepo  repositories.MemberRepository
	companyRepo repositories.CompanyRepository
	store       storage.Storage
	now         func() time.Time
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	memberRepo repositories.MemberRepository,
	companyRepo repositories.CompanyRepository,
	store storage.Storage,
) ChatService {
	return &ChatServiceImpl{
		chatRepo:    chatRepo,
		memberRepo:  memberRepo,
		companyRepo: companyRepo,
		store:       store,
		now:         time.Now,
	}
}

func (s *ChatServiceImpl) PostMessage(db *gorm.DB, senderID string, role models.Role, req *dto.PostMessageRequest) (*dto.ChatMessageDTO, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" && req.Attachment == nil {
		return nil, apperrors.ErrInvalidOperation("chat", "Message must have text or an attachment")
	}

	name, avatar, err := s.resolveSender(db, senderID, role)
	if err != nil {
		return nil, err
	}

	msg := &models.CommunityMessage{
		SenderMemberID: senderID,
		SenderRole:     role,
		Body:           body,
		CreatedAt:      s.now(),
	}
	if req.Attachment != nil {
		msg.FilePath = req.Attachment.URL
		msg.FileName = req.Attachment.Name
		msg.FilePublicID = req.Attachment.PublicID
	}

	if err := s.chatRepo.Insert(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.ChatMessageDTO{
		ID:              msg.ID,
		SenderID:        senderID,
		SenderRole:      role,
		SenderName:      name,
		SenderAvatarURL: avatar,
		Body:            msg.Body,
		CreatedAt:       msg.CreatedAt,
	}
	if req.Attachment != nil {
		att := *req.Attachment
		out.Attachment = &att
	}
	return out, nil
}

// History returns the newest messages in ascending order, capped at
// ChatHistoryLimit.
func (s *ChatServiceImpl) History(db *gorm.DB) ([]dto.ChatMessageDTO, error) {
	rows, err := s.chatRepo.History(db, models.ChatHistoryLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ChatMessageDTO, 0, len(rows))
	for _, row := range rows {
		name, pic := row.CompanyName, row.CompanyLogo
		if row.SenderRole == models.RoleIndividual {
			name = strings.TrimSpace(row.MemberFirstName + " " + row.MemberLastName)
			pic = row.MemberPic
		}

		item := dto.ChatMessageDTO{
			ID:              row.ID,
			SenderID:        row.SenderMemberID,
			SenderRole:      row.SenderRole,
			SenderName:      name,
			SenderAvatarURL: AvatarURL(pic, name, row.SenderRole),
			Body:            row.Body,
			CreatedAt:       row.CreatedAt,
		}
		if row.FilePath != "" {
			item.Attachment = &dto.ChatAttachment{
				URL:      row.FilePath,
				Name:     row.FileName,
				PublicID: row.FilePublicID,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// UploadAttachment stores a chat file under a fresh random id and returns
// the reference the client then posts with its message.
func (s *ChatServiceImpl) UploadAttachment(ctx context.Context, filename string, reader io.Reader) (*dto.ChatAttachment, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	kind, ok := chatAttachmentKinds[ext]
	if !ok {
		return nil, apperrors.ErrInvalidFileType
	}

	contentType := "application/octet-stream"
	if kind == storage.KindImage {
		contentType = "image/" + strings.TrimPrefix(ext, ".")
	}

	result, err := s.store.Upload(ctx, reader, contentType, storage.UploadParams{
		Folder: "chat",
		Kind:   kind,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ChatAttachment{
		URL:      result.SecureURL,
		Name:     filepath.Base(filename),
		PublicID: result.PublicID,
	}, nil
}

// PruneExpired deletes messages older than the retention window, destroying
// their attachments first. The attachment kind is not stored, so each asset
// is probed as an image first, then as a raw file. Storage failures are
// logged and never block the row deletion.
func (s *ChatServiceImpl) PruneExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	cutoff := s.now().Add(-models.ChatRetention)

	expired, err := s.chatRepo.OlderThan(db, cutoff)
	if err != nil {
		return 0, err
	}

	for _, msg := range expired {
		if msg.FilePublicID == "" {
			continue
		}
		s.destroyAttachment(ctx, msg.FilePublicID)
	}

	var deleted int64
	err = database.RunInTransaction(db, "chat.prune", func(tx *gorm.DB) error {
		deleted, err = s.chatRepo.DeleteOlderThan(tx, cutoff)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *ChatServiceImpl) destroyAttachment(ctx context.Context, publicID string) {
	err := s.store.Destroy(ctx, publicID, storage.KindImage)
	if errors.Is(err, storage.ErrObjectNotFound) {
		err = s.store.Destroy(ctx, publicID, storage.KindRaw)
	}
	if err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		logger.WithError(err).Warn("failed to destroy chat attachment", "public_id", publicID)
	}
}

func (s *ChatServiceImpl) resolveSender(db *gorm.DB, senderID string, role models.Role) (name, avatar string, err error) {
	if role == models.RoleCompany {
		company, err := s.companyRepo.FindByMemberID(db, senderID)
		if err != nil {
			return "", "", profileLookupError(err)
		}
		return company.CompanyName, AvatarURL(company.LogoPath, company.CompanyName, models.RoleCompany), nil
	}

	member, err := s.memberRepo.FindByMemberID(db, senderID)
	if err != nil {
		return "", "", profileLookupError(err)
	}
	return member.DisplayName(), AvatarURL(member.PicPath, member.DisplayName(), models.RoleIndividual), nil
}
