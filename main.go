package main

import (
	"go.uber.org/zap"

	"github.com/estoqueapp/estoque-api/app/categories"
	"github.com/estoqueapp/estoque-api/app/movements"
	"github.com/estoqueapp/estoque-api/app/products"
	"github.com/estoqueapp/estoque-api/app/reports"
	"github.com/estoqueapp/estoque-api/app/setup"
	"github.com/estoqueapp/estoque-api/config"
	"github.com/estoqueapp/estoque-api/models"
	"github.com/estoqueapp/estoque-api/routes"
	"github.com/estoqueapp/estoque-api/storage"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("database setup failed", zap.Error(err))
	}

	images, err := storage.NewImageStore(cfg.UploadsDir, log)
	if err != nil {
		log.Fatal("uploads dir setup failed", zap.Error(err))
	}

	router := routes.SetupRoutes(routes.Handlers{
		Setup:      setup.NewSetupHandler(models.NewInstallerRepository(db)),
		Categories: categories.NewCategoryHandler(models.NewCategoriesRepository(db)),
		Products:   products.NewProductHandler(models.NewProductsRepository(db), images),
		Movements:  movements.NewMovementHandler(models.NewMovementsRepository(db)),
		Reports:    reports.NewReportHandler(models.NewMovementsRepository(db)),
	}, images.Dir())

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
