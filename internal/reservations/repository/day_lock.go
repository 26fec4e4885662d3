package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"venuebook/pkg/config"
	"venuebook/pkg/model"
)

const LockCollectionName = "Day_locks"

// DayLockRepository provides the advisory locks that serialize availability
// checks per canonical day. Creation relies on the unique _id index; a
// duplicate key means another request holds the day.
type DayLockRepository interface {
	Create(ctx context.Context, lock *model.DayLock) (*model.DayLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoDayLockRepository struct {
	collection *mongo.Collection
}

func NewDayLockRepository(cfg *config.Config) DayLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDayLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoDayLockRepository) Create(ctx context.Context, lock *model.DayLock) (*model.DayLock, error) {
	lock.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoDayLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
