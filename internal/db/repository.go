package db

import (
	"encoding/json"

	"logsweep/internal/models"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// keyFormat keeps nanosecond precision with fixed width, so bucket keys sort
// chronologically.
const keyFormat = "2006-01-02T15:04:05.000000000"

type Repository interface {
	Record(result models.SweepResult) error
	List() ([]models.SweepResult, error)
}

type BoltRepository struct {
	db     *bolt.DB
	logger *zap.Logger
}

func NewRepository(db *bolt.DB, logger *zap.Logger) (Repository, error) {
	return &BoltRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Record appends one sweep result to the ledger, keyed by sweep time.
func (r *BoltRepository) Record(result models.SweepResult) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sweepsBucket)
		if err != nil {
			return err
		}

		marshalled, err := json.Marshal(&result)
		if err != nil {
			return err
		}

		key := []byte(result.SweptAt.UTC().Format(keyFormat))
		return bucket.Put(key, marshalled)
	})
}

// List returns all recorded sweeps in chronological order.
func (r *BoltRepository) List() ([]models.SweepResult, error) {
	var results []models.SweepResult

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sweepsBucket)
		if bucket == nil {
			// nothing recorded yet
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var result models.SweepResult
			if err := json.Unmarshal(v, &result); err != nil {
				r.logger.Warn("skipping unreadable ledger entry", zap.ByteString("key", k), zap.Error(err))
				return nil
			}

			results = append(results, result)
			return nil
		})
	})

	return results, err
}
