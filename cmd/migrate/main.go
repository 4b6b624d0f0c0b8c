package main

import (
	"context"
	"os"
	"strconv"
	"time"

	mongoMigration "gymbook/internal/migrations/mongo"
	"gymbook/pkg/config"
)

const (
	JobName             = "mongo-migration"
	EnvBackfillCounters = "MIGRATE_BACKFILL_COUNTERS"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")
	defer cfg.GracefulShutdown()

	backfill, _ := strconv.ParseBool(os.Getenv(EnvBackfillCounters))
	opts := mongoMigration.Options{
		DatabaseName:     cfg.MongoDatabaseName,
		BackfillCounters: backfill,
	}
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, opts, cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cancel()
		cfg.GracefulShutdown()
		os.Exit(1)
	}
	cfg.Log.Info("Migration completed successfully")
}
