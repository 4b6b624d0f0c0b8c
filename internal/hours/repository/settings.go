package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	hourserrors "gymbook/internal/hours/errors"
	"gymbook/pkg/config"
	"gymbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "settings"

type SettingsRepository interface {
	FindOperatingHours(ctx context.Context) (*model.OperatingHours, error)
	SaveOperatingHours(ctx context.Context, hours *model.OperatingHours) error
}

type mongoSettingsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSettingsRepository(cfg *config.Config) SettingsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSettingsRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSettingsRepository) FindOperatingHours(ctx context.Context) (*model.OperatingHours, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var hours model.OperatingHours
	err := r.collection.FindOne(ctx, bson.M{"_id": model.OperatingHoursID}).Decode(&hours)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hourserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operating hours: %w", err)
	}
	return &hours, nil
}

// SaveOperatingHours replaces the whole schedule document, creating it on
// first save.
func (r *mongoSettingsRepository) SaveOperatingHours(ctx context.Context, hours *model.OperatingHours) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if hours.UpdatedAt != nil {
		stamped := hours.UpdatedAt.UTC().Truncate(time.Millisecond)
		hours.UpdatedAt = &stamped
	}

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": model.OperatingHoursID},
		hours,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save operating hours: %w", err)
	}
	return nil
}
