package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/estoqueapp/estoque-api/app/categories"
	"github.com/estoqueapp/estoque-api/app/movements"
	"github.com/estoqueapp/estoque-api/app/products"
	"github.com/estoqueapp/estoque-api/app/reports"
	"github.com/estoqueapp/estoque-api/app/setup"
)

// Handlers bundles every endpoint handler the router mounts.
type Handlers struct {
	Setup      *setup.SetupHandler
	Categories *categories.CategoryHandler
	Products   *products.ProductHandler
	Movements  *movements.MovementHandler
	Reports    *reports.ReportHandler
}

// SetupRoutes assembles the gin engine: permissive CORS, static
// serving of uploaded images, and the /api surface.
func SetupRoutes(h Handlers, uploadsDir string) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Static("/uploads", uploadsDir)

	api := router.Group("/api")
	{
		api.GET("/setup/status", h.Setup.HandleStatus)
		api.POST("/setup/install", h.Setup.HandleInstall)

		api.GET("/categories", h.Categories.HandleGetAll)
		api.POST("/categories", h.Categories.HandleCreate)
		api.DELETE("/categories/:id", h.Categories.HandleDelete)

		api.GET("/products", h.Products.HandleList)
		api.POST("/products", h.Products.HandleCreate)
		api.PUT("/products/:id", h.Products.HandleUpdate)
		api.DELETE("/products/:id", h.Products.HandleDelete)

		api.POST("/movements", h.Movements.HandleCreate)

		api.GET("/reports", h.Reports.HandleGet)
	}

	return router
}
