package main

import (
	"venuebook/internal/inventory/handler"
	"venuebook/internal/inventory/repository"
	"venuebook/internal/inventory/service"
	"venuebook/internal/inventory/validator"
	"venuebook/pkg/app"
	"venuebook/pkg/config"
)

const ServiceName = "inventory"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Inventory service")
	productService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewProductHandler(productService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ProductService {
	productValidator := validator.NewProductValidator(cfg.Log)
	productRepo := repository.NewMongoProductRepository(cfg)

	productService := service.NewProductService(
		productRepo,
		productValidator,
		cfg,
	)

	cfg.Log.Info("Inventory service initialized", "database", cfg.MongoDatabaseName)
	return productService
}
