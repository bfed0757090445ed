package kvstore

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one key of the store as a table row.
type Record struct {
	Key   string `gorm:"primaryKey;size:191"`
	Value string `gorm:"type:text;not null"`
}

func (Record) TableName() string {
	return "kv_records"
}

// SQLStore persists keys in a relational table through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the kv_records table and returns the store.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	var record Record
	err := s.db.Where(map[string]any{"key": key}).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Value, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Record{Key: key, Value: value}).Error
}

func (s *SQLStore) Remove(key string) error {
	return s.db.Where(map[string]any{"key": key}).Delete(&Record{}).Error
}
