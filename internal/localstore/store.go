package localstore

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is the browser-local-storage analog: a single-file sqlite database
// of key/value entries. The session store keeps its two keys here.
type Store struct {
	db *gorm.DB
}

type Entry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// Open creates or opens the file at path. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value and whether the key exists. A missing key is not
// an error.
func (s *Store) Get(key string) (string, bool, error) {
	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *Store) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
}

func (s *Store) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
