package handlers

import (
	"technest_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification panel.
type NotificationHandler struct {
	BaseHandler
	notifications services.NotificationService
}

func NewNotificationHandler(base BaseHandler, notifications services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/count", h.UnreadCount)
	rg.GET("", h.List)
	rg.DELETE("", h.DeleteAll)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(h.GetDB(c), s.UserID, s.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"unread": count})
}

// List returns the panel contents and marks everything read as a side
// effect of opening it.
func (h *NotificationHandler) List(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	items, err := h.notifications.List(h.GetDB(c), s.UserID, s.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, items)
}

func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	s, ok := h.RequireSession(c)
	if !ok {
		return
	}

	if err := h.notifications.DeleteAll(h.GetDB(c), s.UserID, s.Role); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Notifications cleared"})
}
