package db

import (
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/quotes"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/runs"
	"gorm.io/gorm"
)

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&ledger.Transaction{},
		&catalog.InventoryItem{},
		&quotes.QuoteRequest{},
		&quotes.Quote{},
		&runs.PipelineRun{},
	)
}
