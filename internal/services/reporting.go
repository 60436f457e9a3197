package services

import (
	"context"
	"fmt"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

// ItemPosition is one catalog item's stock and valuation in a report.
type ItemPosition struct {
	ItemName   string  `json:"item_name"`
	Category   string  `json:"category"`
	UnitPrice  float64 `json:"unit_price"`
	Stock      int     `json:"stock"`
	StockValue float64 `json:"stock_value"`
}

// FinancialReport is the point-in-time snapshot of the business: cash,
// inventory valuation, and the revenue-ranked top sellers.
type FinancialReport struct {
	AsOfDate       string                  `json:"as_of_date"`
	CashBalance    float64                 `json:"cash_balance"`
	InventoryValue float64                 `json:"inventory_value"`
	TotalAssets    float64                 `json:"total_assets"`
	InventoryItems []ItemPosition          `json:"inventory_items"`
	TopSellers     []ledgerrepo.SellerStat `json:"top_sellers"`
}

type ReportingService interface {
	Report(ctx context.Context, asOf string) (*FinancialReport, error)
}

type reportingService struct {
	ledgerRepo ledgerrepo.Repo
	cache      *ReportCache
	log        *logger.Logger
}

// NewReportingService builds the reporting service. cache may be nil, in
// which case every report is computed from the ledger.
func NewReportingService(ledgerRepo ledgerrepo.Repo, cache *ReportCache, baseLog *logger.Logger) ReportingService {
	return &reportingService{
		ledgerRepo: ledgerRepo,
		cache:      cache,
		log:        baseLog.With("service", "ReportingService"),
	}
}

func (s *reportingService) Report(ctx context.Context, asOf string) (*FinancialReport, error) {
	if cached, ok := s.cache.Get(ctx, asOf); ok {
		return cached, nil
	}

	stock, err := s.ledgerRepo.StockAsOf(ctx, nil, asOf)
	if err != nil {
		return nil, fmt.Errorf("report stock as of %s: %w", asOf, err)
	}

	report := &FinancialReport{
		AsOfDate:    asOf,
		CashBalance: s.ledgerRepo.CashAsOf(ctx, nil, asOf),
	}

	for _, item := range catalog.Items() {
		units := stock[item.Name]
		if units < 0 {
			// Negative nets never subtract from the valuation.
			units = 0
		}
		value := round2(float64(units) * item.UnitPrice)
		report.InventoryItems = append(report.InventoryItems, ItemPosition{
			ItemName:   item.Name,
			Category:   item.Category,
			UnitPrice:  item.UnitPrice,
			Stock:      units,
			StockValue: value,
		})
		report.InventoryValue += value
	}
	report.InventoryValue = round2(report.InventoryValue)
	report.TotalAssets = round2(report.CashBalance + report.InventoryValue)

	sellers, err := s.ledgerRepo.TopSellers(ctx, nil, asOf, 5)
	if err != nil {
		return nil, fmt.Errorf("report top sellers as of %s: %w", asOf, err)
	}
	report.TopSellers = sellers

	s.cache.Set(ctx, asOf, report)
	return report, nil
}
