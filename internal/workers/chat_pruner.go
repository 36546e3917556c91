package workers

import (
	"context"
	"time"

	"technest_backend/internal/logger"
	"technest_backend/internal/services"

	"gorm.io/gorm"
)

const pruneInterval = time.Hour

// ChatPruner deletes community messages past their retention window,
// including stored attachments. One prune runs immediately at startup, then
// hourly.
type ChatPruner struct {
	db   *gorm.DB
	chat services.ChatService
}

func NewChatPruner(db *gorm.DB, chat services.ChatService) *ChatPruner {
	return &ChatPruner{db: db, chat: chat}
}

// Start runs the prune loop until the context is cancelled.
func (w *ChatPruner) Start(ctx context.Context) {
	logger.Info("chat pruner started", "interval", pruneInterval.String())

	w.prune(ctx)

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("chat pruner stopped")
			return
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *ChatPruner) prune(ctx context.Context) {
	deleted, err := w.chat.PruneExpired(ctx, w.db)
	logger.WorkerLog("chat_pruner", "prune_expired", err)
	if err == nil && deleted > 0 {
		logger.Info("pruned expired chat messages", "deleted", deleted)
	}
}
