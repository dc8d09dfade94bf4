package config

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "task-market.com/task-market/internal/models"
)

// New opens the database and migrates every coordination-core table.
// TranslateError lets repositories detect unique-constraint violations
// as gorm.ErrDuplicatedKey.
func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	err = db.AutoMigrate(
		&model.Task{},
		&model.StatusHistoryEntry{},
		&model.ChatRoom{},
		&model.ChatMembership{},
		&model.ChatMessage{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
