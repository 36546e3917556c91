package ws

import (
	"encoding/json"
	"time"

	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/services"
	"technest_backend/internal/services/dto"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Client is one websocket connection in the community channel.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	chat     services.ChatService
	db       *gorm.DB
	memberID string
	role     models.Role
}

// errorFrame is sent back to the sender only, when their message is
// rejected.
type errorFrame struct {
	Error string `json:"error"`
}

// readPump receives messages, persists them through the chat service, and
// broadcasts the stored result. Persist happens before broadcast: a message
// no other client can replay later is never shown.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("chat read error", "member_id", c.memberID)
			}
			return
		}

		var req dto.PostMessageRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.sendError("Malformed message")
			continue
		}

		msg, err := c.chat.PostMessage(c.db, c.memberID, c.role, &req)
		if err != nil {
			c.sendError("Message rejected")
			continue
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			logger.WithError(err).Error("failed to marshal chat message")
			continue
		}
		c.hub.Broadcast(payload)
	}
}

// writePump pushes broadcasts to the connection and keeps it alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(message string) {
	payload, err := json.Marshal(errorFrame{Error: message})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
