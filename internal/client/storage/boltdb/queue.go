package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/roomloft/roomsync/internal/models"
)

// SaveOperations replaces the persisted queue with ops, keyed by sequence
// number so the bucket cursor yields them back in enqueue order
func (s *Storage) SaveOperations(ctx context.Context, ops []models.Operation) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Пересоздаем bucket: очередь хранится целиком
		if err := tx.DeleteBucket(bucketQueue); err != nil {
			return fmt.Errorf("failed to clear queue bucket: %w", err)
		}

		bucket, err := tx.CreateBucket(bucketQueue)
		if err != nil {
			return fmt.Errorf("failed to recreate queue bucket: %w", err)
		}

		for i := range ops {
			data, err := json.Marshal(&ops[i])
			if err != nil {
				return fmt.Errorf("failed to marshal operation: %w", err)
			}

			// BigEndian ключ сохраняет порядок при обходе курсором
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, ops[i].Seq)

			if err := bucket.Put(key, data); err != nil {
				return fmt.Errorf("failed to save operation: %w", err)
			}
		}

		return nil
	})
}

// LoadOperations returns the persisted queue in enqueue order
func (s *Storage) LoadOperations(ctx context.Context) ([]models.Operation, error) {
	var ops []models.Operation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			ops = append(ops, op)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return ops, nil
}
