package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"technest_backend/internal/models"
	"technest_backend/internal/services/dto"
	"technest_backend/internal/storage"
	"technest_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(store *fakeStorage) *ChatServiceImpl {
	repos := newTestRepos()
	svc := NewChatService(repos.chat, repos.members, repos.companies, store)
	return svc.(*ChatServiceImpl)
}

func TestPostMessagePersistsBeforeReturning(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(newFakeStorage())

	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	msg, err := svc.PostMessage(db, member.MemberID, models.RoleIndividual, &dto.PostMessageRequest{Body: "hello"})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, "Alice", msg.SenderName)
	assert.Equal(t, "hello", msg.Body)

	var count int64
	require.NoError(t, db.Model(&models.CommunityMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPostMessageRejectsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(newFakeStorage())
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	_, err := svc.PostMessage(db, member.MemberID, models.RoleIndividual, &dto.PostMessageRequest{Body: "   "})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestHistoryCapAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(newFakeStorage())
	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)

	for i := 0; i < models.ChatHistoryLimit+10; i++ {
		_, err := svc.PostMessage(db, member.MemberID, models.RoleIndividual,
			&dto.PostMessageRequest{Body: fmt.Sprintf("msg %03d", i)})
		require.NoError(t, err)
	}

	history, err := svc.History(db)
	require.NoError(t, err)
	require.Len(t, history, models.ChatHistoryLimit)

	// Oldest of the surviving window first, newest last.
	assert.Equal(t, "msg 010", history[0].Body)
	assert.Equal(t, fmt.Sprintf("msg %03d", models.ChatHistoryLimit+9), history[len(history)-1].Body)
	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].ID, history[i].ID)
	}
}

func TestHistoryResolvesCompanySenders(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(newFakeStorage())
	company := seedCompany(t, db, "com-aaaaaa", "Acme")

	_, err := svc.PostMessage(db, company.MemberID, models.RoleCompany, &dto.PostMessageRequest{Body: "hiring!"})
	require.NoError(t, err)

	history, err := svc.History(db)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Acme", history[0].SenderName)
	assert.Equal(t, models.RoleCompany, history[0].SenderRole)
	assert.Contains(t, history[0].SenderAvatarURL, "ui-avatars.com")
}

func TestUploadAttachmentKinds(t *testing.T) {
	store := newFakeStorage()
	svc := newChatService(store)
	ctx := context.Background()

	img, err := svc.UploadAttachment(ctx, "photo.PNG", strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.PublicID, "chat/"))
	assert.True(t, store.has(img.PublicID, storage.KindImage))

	doc, err := svc.UploadAttachment(ctx, "cv.pdf", strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, store.has(doc.PublicID, storage.KindRaw))

	_, err = svc.UploadAttachment(ctx, "virus.exe", strings.NewReader("data"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestPruneExpired(t *testing.T) {
	db := newTestDB(t)
	store := newFakeStorage()
	svc := newChatService(store)
	ctx := context.Background()

	member := seedIndividual(t, db, "ind-aaaaaa", "Alice", nil)
	now := time.Now()
	svc.now = fixedClock(now)

	// Old message with a raw attachment, old plain message, and a fresh one.
	att, err := svc.UploadAttachment(ctx, "notes.txt", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.CommunityMessage{
		SenderMemberID: member.MemberID,
		SenderRole:     models.RoleIndividual,
		Body:           "old with file",
		FilePath:       att.URL,
		FileName:       att.Name,
		FilePublicID:   att.PublicID,
		CreatedAt:      now.Add(-25 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CommunityMessage{
		SenderMemberID: member.MemberID,
		SenderRole:     models.RoleIndividual,
		Body:           "old plain",
		CreatedAt:      now.Add(-30 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CommunityMessage{
		SenderMemberID: member.MemberID,
		SenderRole:     models.RoleIndividual,
		Body:           "fresh",
		CreatedAt:      now.Add(-time.Hour),
	}).Error)

	deleted, err := svc.PruneExpired(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	// The raw attachment was found on the second probe and destroyed.
	assert.False(t, store.has(att.PublicID, storage.KindRaw))

	var remaining []models.CommunityMessage
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Body)
}

func TestPruneExpiredNothingToDo(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(newFakeStorage())

	deleted, err := svc.PruneExpired(context.Background(), db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)
}
