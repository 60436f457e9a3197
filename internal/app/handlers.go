package app

import (
	"github.com/beaverchoice/fulfillment-backend/internal/handlers"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

type Handlers struct {
	Order     *handlers.OrderHandler
	Report    *handlers.ReportHandler
	Inventory *handlers.InventoryHandler
	Quote     *handlers.QuoteHandler
}

func wireHandlers(log *logger.Logger, reposet Repos, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Order:     handlers.NewOrderHandler(serviceset.Workflow),
		Report:    handlers.NewReportHandler(serviceset.Reporting),
		Inventory: handlers.NewInventoryHandler(reposet.Ledger),
		Quote:     handlers.NewQuoteHandler(reposet.Quotes),
	}
}
