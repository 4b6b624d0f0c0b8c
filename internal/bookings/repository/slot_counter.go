package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "gymbook/internal/bookings/errors"
	"gymbook/pkg/config"
	"gymbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SlotCounterCollectionName = "slot_counters"

// SlotCounterRepository reserves and releases seats in a slot.
type SlotCounterRepository interface {
	Reserve(ctx context.Context, date, timeSlot string, capacity int) error
	Release(ctx context.Context, date, timeSlot string) error
}

type mongoSlotCounterRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewSlotCounterRepository(cfg *config.Config) SlotCounterRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotCounterRepository{
		cfg:        cfg,
		collection: db.Collection(SlotCounterCollectionName),
	}
}

// Reserve takes one seat if fewer than capacity are taken. The filter only
// matches a counter with room left; when the counter is full the upsert
// collides with the existing _id and the duplicate key error means the slot
// is full.
func (r *mongoSlotCounterRepository) Reserve(ctx context.Context, date, timeSlot string, capacity int) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       model.SlotKey(date, timeSlot),
		"confirmed": bson.M{"$lt": capacity},
	}
	update := bson.M{
		"$inc":         bson.M{"confirmed": 1},
		"$set":         bson.M{"updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{"date": date, "timeSlot": timeSlot},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrSlotFull
		}
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	return nil
}

// Release gives back one seat. A counter already at zero is left alone.
func (r *mongoSlotCounterRepository) Release(ctx context.Context, date, timeSlot string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       model.SlotKey(date, timeSlot),
		"confirmed": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"confirmed": -1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return nil
}
