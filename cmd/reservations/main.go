package main

import (
	"venuebook/internal/reservations/availability"
	"venuebook/internal/reservations/handler"
	"venuebook/internal/reservations/repository"
	"venuebook/internal/reservations/service"
	"venuebook/internal/reservations/validator"
	"venuebook/pkg/app"
	"venuebook/pkg/config"
	"venuebook/pkg/kafka"
	kafkaconfig "venuebook/pkg/kafka/config"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")
	reservationService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewDayLockRepository(cfg)
	checker := availability.NewChecker(reservationRepo, cfg.Location)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		checker,
		reservationValidator,
		cfg,
		initPublisher(cfg),
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}

// initPublisher returns nil when no brokers are configured; the service
// treats a nil publisher as events disabled.
func initPublisher(cfg *config.Config) service.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(kafkaconfig.New(cfg.KafkaBrokers), cfg.KafkaTopic, cfg.KafkaDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	return producer
}
