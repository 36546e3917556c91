package dto

import (
	"time"

	"technest_backend/internal/models"
)

// ChatAttachment references an uploaded file by its stored URL and asset id.
type ChatAttachment struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	PublicID string `json:"public_id"`
}

// PostMessageRequest is an inbound community message. The attachment must
// have been uploaded beforehand via the upload endpoint.
type PostMessageRequest struct {
	Body       string          `json:"body"`
	Attachment *ChatAttachment `json:"attachment,omitempty"`
}

// ChatMessageDTO is a message as broadcast to clients, with the sender's
// display metadata resolved at publish time.
type ChatMessageDTO struct {
	ID              uint            `json:"id"`
	SenderID        string          `json:"sender_id"`
	SenderRole      models.Role     `json:"sender_role"`
	SenderName      string          `json:"sender_name"`
	SenderAvatarURL string          `json:"sender_avatar_url"`
	Body            string          `json:"body,omitempty"`
	Attachment      *ChatAttachment `json:"attachment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
