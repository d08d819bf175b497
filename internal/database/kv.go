package database

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore persists learner values in kv_entries. It implements
// progress.Backend.
type KVStore struct {
	db *DB
}

// NewKVStore creates a KV store over db.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the raw value for learner/key and whether it exists.
func (s *KVStore) Get(ctx context.Context, learnerID, key string) ([]byte, bool, error) {
	var e KVEntry
	err := s.db.WithContext(ctx).
		First(&e, "learner_id = ? AND key = ?", learnerID, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(e.Value), true, nil
}

// Put stores value for learner/key, replacing any previous value.
func (s *KVStore) Put(ctx context.Context, learnerID, key string, value []byte) error {
	e := KVEntry{LearnerID: learnerID, Key: key, Value: datatypes.JSON(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

// Delete removes every value stored for a learner.
func (s *KVStore) Delete(ctx context.Context, learnerID string) error {
	return s.db.WithContext(ctx).Where("learner_id = ?", learnerID).Delete(&KVEntry{}).Error
}

// Learners lists every learner with stored data.
func (s *KVStore) Learners(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&KVEntry{}).
		Distinct("learner_id").Order("learner_id").Pluck("learner_id", &ids).Error
	return ids, err
}
