package handlers

import (
	"technest_backend/internal/services"
	"technest_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Chat attachments share the profile image ceiling.
const maxChatAttachmentSize = 10 << 20 // 10MB

// ChatHandler serves the community chat's HTTP side: history and attachment
// uploads. Live messaging goes over the websocket.
type ChatHandler struct {
	BaseHandler
	chat services.ChatService
}

func NewChatHandler(base BaseHandler, chat services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chat: chat}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.History)
	rg.POST("/upload", h.Upload)
}

func (h *ChatHandler) History(c *gin.Context) {
	if _, ok := h.RequireSession(c); !ok {
		return
	}

	messages, err := h.chat.History(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, messages)
}

func (h *ChatHandler) Upload(c *gin.Context) {
	if _, ok := h.RequireSession(c); !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing file"))
		return
	}
	if header.Size > maxChatAttachmentSize {
		h.HandleServiceError(c, apperrors.ErrFileTooLarge)
		return
	}

	f, err := header.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer f.Close()

	attachment, err := h.chat.UploadAttachment(c.Request.Context(), header.Filename, f)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, attachment)
}
