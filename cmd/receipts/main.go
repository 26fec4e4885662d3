package main

import (
	"venuebook/internal/receipts/handler"
	"venuebook/internal/receipts/repository"
	"venuebook/internal/receipts/service"
	"venuebook/internal/receipts/validator"
	reservationrepo "venuebook/internal/reservations/repository"
	"venuebook/pkg/app"
	"venuebook/pkg/config"
)

const ServiceName = "receipts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Receipts service")
	receiptService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReceiptHandler(receiptService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReceiptService {
	receiptValidator := validator.NewReceiptValidator(cfg.Log)
	receiptRepo := repository.NewMongoReceiptRepository(cfg)
	reservationRepo := reservationrepo.NewMongoReservationRepository(cfg)

	receiptService := service.NewReceiptService(
		receiptRepo,
		reservationRepo,
		receiptValidator,
		cfg,
	)

	cfg.Log.Info("Receipt service initialized", "database", cfg.MongoDatabaseName)
	return receiptService
}
