package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "kanban-board.com/kanban-board/internal/models"
)

// Models lists every table the service owns, in dependency order.
var Models = []any{
	&model.User{},
	&model.AuthToken{},
	&model.Board{},
	&model.BoardMember{},
	&model.Task{},
	&model.Comment{},
}

// SQLiteDSN builds a file DSN that waits on locks instead of failing with
// "database is locked" and lets readers run alongside a writer.
func SQLiteDSN(path string) string {
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := Open(dsn)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	return db
}

// Open connects to the sqlite database and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.SetupJoinTable(&model.Board{}, "Members", &model.BoardMember{}); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}

	return db, nil
}
