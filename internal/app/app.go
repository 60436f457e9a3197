package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/beaverchoice/fulfillment-backend/internal/data/db"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
	"github.com/beaverchoice/fulfillment-backend/internal/seed"
	"github.com/beaverchoice/fulfillment-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	dbService, err := db.Open(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(log, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	if cfg.SeedOnStart {
		seeder := seed.New(theDB, reposet.Ledger, reposet.Quotes, log)
		if err := seeder.Run(context.Background(), seed.Options{
			RequestsCSV: cfg.RequestsCSV,
			QuotesCSV:   cfg.QuotesCSV,
		}); err != nil {
			log.Sync()
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}

	handlerset := wireHandlers(log, reposet, serviceset)
	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:     cfg.AllowOrigins,
		OrderHandler:     handlerset.Order,
		ReportHandler:    handlerset.Report,
		InventoryHandler: handlerset.Inventory,
		QuoteHandler:     handlerset.Quote,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
