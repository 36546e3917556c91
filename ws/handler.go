package ws

import (
	"net/http"

	"technest_backend/internal/logger"
	"technest_backend/internal/services"
	"technest_backend/internal/session"
	"technest_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth rides on the session cookie; cross-origin pages cannot read
		// it, and the API already answers the configured frontend origin.
		return true
	},
}

// Handler upgrades authenticated members into the community channel.
type Handler struct {
	hub      *Hub
	chat     services.ChatService
	sessions *session.Manager
}

func NewHandler(hub *Hub, chat services.ChatService, sessions *session.Manager) *Handler {
	return &Handler{
		hub:      hub,
		chat:     chat,
		sessions: sessions,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/chat", h.ServeChat)
}

// ServeChat upgrades the connection and attaches the client to the hub.
func (h *Handler) ServeChat(c *gin.Context) {
	s := h.sessions.Read(c)
	if s == nil || s.UserID == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	db, _ := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed", "member_id", s.UserID)
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 32),
		chat:     h.chat,
		db:       db,
		memberID: s.UserID,
		role:     s.Role,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
