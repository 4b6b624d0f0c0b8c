package main

import (
	"gymbook/internal/bookings/events"
	bookinghandler "gymbook/internal/bookings/handler"
	bookingrepo "gymbook/internal/bookings/repository"
	bookingservice "gymbook/internal/bookings/service"
	bookingvalidator "gymbook/internal/bookings/validator"
	"gymbook/internal/hours/cache"
	hourshandler "gymbook/internal/hours/handler"
	hoursrepo "gymbook/internal/hours/repository"
	hoursservice "gymbook/internal/hours/service"
	hoursvalidator "gymbook/internal/hours/validator"
	"gymbook/pkg/app"
	"gymbook/pkg/config"
	"gymbook/pkg/identity"
	"gymbook/pkg/kafka"
	kafka_config "gymbook/pkg/kafka/config"
	kafka_middleware "gymbook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")

	verifier, err := identity.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		cfg.Log.Fatal("Failed to create token verifier", "error", err)
	}

	serverApp := app.NewApplication(cfg)
	publisher := initPublisher(cfg, serverApp)
	bookingService := initBookingService(cfg, publisher)
	hoursService := initHoursService(cfg)

	serverApp.SetApp(verifier,
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		hourshandler.NewHoursHandler(hoursService, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	cfg.Log.Info("Kafka configuration loaded", kafkaCfg.LogArgs()...)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})
	return events.NewKafkaPublisher(producer)
}

func initBookingService(cfg *config.Config, publisher events.Publisher) bookingservice.BookingService {
	bookingValidator := bookingvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	counterRepo := bookingrepo.NewSlotCounterRepository(cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		counterRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"database", cfg.MongoDatabaseName,
		"slot_capacity", cfg.SlotCapacity,
	)
	return bookingService
}

func initHoursService(cfg *config.Config) hoursservice.HoursService {
	var hoursCache cache.HoursCache
	if cfg.Client.Redis != nil {
		hoursCache = cache.NewRedisHoursCache(cfg.Client.Redis)
	}

	hoursService := hoursservice.NewHoursService(
		hoursrepo.NewMongoSettingsRepository(cfg),
		hoursCache,
		hoursvalidator.NewHoursValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Hours service initialized", "cached", hoursCache != nil, "timezone", cfg.GymTimeZone)
	return hoursService
}
