package main

import (
	"venuebook/internal/clients/handler"
	"venuebook/internal/clients/repository"
	"venuebook/internal/clients/service"
	"venuebook/internal/clients/validator"
	"venuebook/pkg/app"
	"venuebook/pkg/config"
)

const ServiceName = "clients"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Clients service")
	clientService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewClientHandler(clientService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ClientService {
	clientValidator := validator.NewClientValidator(cfg.Log)
	clientRepo := repository.NewMongoClientRepository(cfg)

	clientService := service.NewClientService(
		clientRepo,
		clientValidator,
		cfg,
	)

	cfg.Log.Info("Client service initialized", "database", cfg.MongoDatabaseName)
	return clientService
}
