package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/beaverchoice/fulfillment-backend/internal/handlers"
)

type RouterConfig struct {
	AllowOrigins     []string
	OrderHandler     *handlers.OrderHandler
	ReportHandler    *handlers.ReportHandler
	InventoryHandler *handlers.InventoryHandler
	QuoteHandler     *handlers.QuoteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/requests", cfg.OrderHandler.ProcessRequest)
		api.GET("/reports/:date", cfg.ReportHandler.GetReport)
		api.GET("/inventory", cfg.InventoryHandler.GetInventory)
		api.GET("/catalog", cfg.InventoryHandler.GetCatalog)
		api.GET("/quotes/search", cfg.QuoteHandler.SearchQuotes)
	}

	return router
}
