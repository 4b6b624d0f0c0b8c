package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gymbook/internal/bookings/repository"
	"gymbook/internal/migrations/mongo/validators"
	settingsrepo "gymbook/internal/hours/repository"
	"gymbook/pkg/logger"
	"gymbook/pkg/model"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "timeSlot", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "date", Value: -1},
		}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	SlotCountersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections is everything the bookings service expects to exist.
func Collections() map[string]collectionDef {
	return map[string]collectionDef{
		repository.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		repository.SlotCounterCollectionName: {
			Indexes:   SlotCountersIndexes,
			Validator: validators.SlotCounterValidator,
		},
		settingsrepo.CollectionName: {
			Validator: validators.SettingsValidator,
		},
	}
}

type Options struct {
	DatabaseName string
	// BackfillCounters rebuilds slot_counters from the confirmed bookings.
	// Needed once when bookings predate the counters collection.
	BackfillCounters bool
}

func RunMigration(ctx context.Context, client *mongo.Client, opts Options, log *logger.Logger) error {
	db := client.Database(opts.DatabaseName)
	log.Info("Running Mongo migrations", "database", opts.DatabaseName)

	defs := Collections()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	if opts.BackfillCounters {
		if err := backfillSlotCounters(ctx, db, log); err != nil {
			return fmt.Errorf("failed to backfill slot counters: %w", err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

// backfillSlotCounters rebuilds every counter from the confirmed bookings.
// Counters are zeroed first so slots with no confirmed bookings left do not
// keep a stale count; the merge then overwrites the rest.
func backfillSlotCounters(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	reset, err := db.Collection(repository.SlotCounterCollectionName).UpdateMany(ctx, bson.M{}, CounterResetUpdate())
	if err != nil {
		return fmt.Errorf("failed to reset slot counters: %w", err)
	}

	cursor, err := db.Collection(repository.CollectionName).Aggregate(ctx, BackfillPipeline())
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	log.Info("Backfilled slot counters",
		"collection", repository.SlotCounterCollectionName,
		"reset", reset.ModifiedCount,
	)
	return nil
}

func CounterResetUpdate() bson.M {
	return bson.M{"$set": bson.M{"confirmed": 0}, "$currentDate": bson.M{"updatedAt": true}}
}

func BackfillPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": model.StatusConfirmed}}},
		{{Key: "$group", Value: bson.M{
			"_id":       bson.M{"$concat": bson.A{"$date", "|", "$timeSlot"}},
			"date":      bson.M{"$first": "$date"},
			"timeSlot":  bson.M{"$first": "$timeSlot"},
			"confirmed": bson.M{"$sum": 1},
		}}},
		{{Key: "$set", Value: bson.M{"updatedAt": "$$NOW"}}},
		{{Key: "$merge", Value: bson.M{
			"into":           repository.SlotCounterCollectionName,
			"on":             "_id",
			"whenMatched":    "replace",
			"whenNotMatched": "insert",
		}}},
	}
}
