package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"technest_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func countSkills(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Skill{}).Count(&count).Error)
	return count
}

func TestRunInTransactionCommits(t *testing.T) {
	db := newTestDB(t)

	err := RunInTransaction(db, "test.commit", func(tx *gorm.DB) error {
		return tx.Create(&models.Skill{Name: "Go"}).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countSkills(t, db))
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	boom := errors.New("boom")

	err := RunInTransaction(db, "test.rollback", func(tx *gorm.DB) error {
		if err := tx.Create(&models.Skill{Name: "Go"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, countSkills(t, db))
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)

	require.Panics(t, func() {
		_ = RunInTransaction(db, "test.panic", func(tx *gorm.DB) error {
			if err := tx.Create(&models.Skill{Name: "Go"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	})
	assert.EqualValues(t, 0, countSkills(t, db))
}
