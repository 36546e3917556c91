package database

import (
	"fmt"
	"time"

	"technest_backend/internal/logger"

	"gorm.io/gorm"
)

// RunInTransaction is the single write path for multi-step mutations.
// fn runs inside one transaction: commit on nil error; rollback, log with
// the operation name and return the error otherwise. A panic inside fn
// rolls back and re-raises. Transactions are never nested.
func RunInTransaction(db *gorm.DB, operation string, fn func(tx *gorm.DB) error) error {
	start := time.Now()

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin %s: %w", operation, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		logger.TxLog(operation, time.Since(start), err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.TxLog(operation, time.Since(start), err)
		return fmt.Errorf("commit %s: %w", operation, err)
	}

	logger.TxLog(operation, time.Since(start), nil)
	return nil
}
