package services

import (
	"context"
	"fmt"
	"time"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

// Restock outcomes.
const (
	RestockSkipped  = "skipped"
	RestockDeferred = "deferred"
	RestockOrdered  = "ordered"
)

// Any single restock is capped at this share of the current cash balance,
// with a one-dollar floor so a near-zero balance never blocks a trivial
// top-up.
const (
	restockCashFraction = 0.85
	restockCostFloor    = 1.0
)

// RestockPlan is the outcome of one replenishment decision.
type RestockPlan struct {
	Status        string  `json:"status"`
	ItemName      string  `json:"item_name"`
	Units         int     `json:"units"`
	EstimatedCost float64 `json:"estimated_cost"`
	CashAvailable float64 `json:"cash_available"`
	DeliveryDate  string  `json:"delivery_date"`
	TransactionID int64   `json:"transaction_id,omitempty"`
	Reason        string  `json:"reason"`
}

// ReorderService decides whether to place a replenishment order given the
// projected cost against available cash.
type ReorderService interface {
	PlanRestock(ctx context.Context, itemName string, units int, date string) (RestockPlan, error)
	SupplierDeliveryDate(startDate string, units int) string
}

type reorderService struct {
	ledgerRepo ledgerrepo.Repo
	log        *logger.Logger
}

func NewReorderService(ledgerRepo ledgerrepo.Repo, baseLog *logger.Logger) ReorderService {
	return &reorderService{
		ledgerRepo: ledgerRepo,
		log:        baseLog.With("service", "ReorderService"),
	}
}

// PlanRestock evaluates one replenishment request. Unresolvable items and
// non-positive quantities are skipped, not errored. A placed order appends
// a stock_orders row dated at the delivery date: stock is modeled as
// arriving, not as ordered, on that date.
func (s *reorderService) PlanRestock(ctx context.Context, itemName string, units int, date string) (RestockPlan, error) {
	sku := catalog.Canonicalize(itemName)
	if sku == "" {
		return RestockPlan{
			Status:   RestockSkipped,
			ItemName: itemName,
			Units:    units,
			Reason:   fmt.Sprintf("%q does not resolve to a catalog item", itemName),
		}, nil
	}
	if units <= 0 {
		return RestockPlan{
			Status:   RestockSkipped,
			ItemName: sku,
			Units:    units,
			Reason:   fmt.Sprintf("requested units %d is not positive", units),
		}, nil
	}
	unitPrice, ok := catalog.UnitPrice(sku)
	if !ok {
		return RestockPlan{
			Status:   RestockSkipped,
			ItemName: sku,
			Units:    units,
			Reason:   fmt.Sprintf("no catalog price for %q", sku),
		}, nil
	}

	cost := round2(unitPrice * float64(units))
	cash := s.ledgerRepo.CashAsOf(ctx, nil, date)
	budget := restockCashFraction * cash
	if budget < restockCostFloor {
		budget = restockCostFloor
	}

	if cost > budget {
		s.log.Info("restock deferred",
			"item", sku, "units", units, "cost", cost, "cash", cash)
		return RestockPlan{
			Status:        RestockDeferred,
			ItemName:      sku,
			Units:         units,
			EstimatedCost: cost,
			CashAvailable: cash,
			Reason: fmt.Sprintf(
				"estimated cost %.2f exceeds %.0f%% of available cash %.2f",
				cost, restockCashFraction*100, cash),
		}, nil
	}

	deliveryDate := s.SupplierDeliveryDate(date, units)
	id, err := s.ledgerRepo.Append(ctx, nil, &sku, ledger.TypeStockOrders, &units, cost, deliveryDate)
	if err != nil {
		return RestockPlan{}, fmt.Errorf("record restock for %q: %w", sku, err)
	}

	s.log.Info("restock ordered",
		"item", sku, "units", units, "cost", cost, "delivery_date", deliveryDate)
	return RestockPlan{
		Status:        RestockOrdered,
		ItemName:      sku,
		Units:         units,
		EstimatedCost: cost,
		CashAvailable: cash,
		DeliveryDate:  deliveryDate,
		TransactionID: id,
		Reason: fmt.Sprintf(
			"ordered %d units of %s for %.2f, arriving %s",
			units, sku, cost, deliveryDate),
	}, nil
}

// SupplierDeliveryDate applies the supplier's quantity-tiered lead time to
// a start date. An unparsable start date falls back to today.
func (s *reorderService) SupplierDeliveryDate(startDate string, units int) string {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		s.log.Warn("unparsable restock date, using today", "date", startDate)
		start = time.Now().UTC()
	}

	var leadDays int
	switch {
	case units <= 10:
		leadDays = 0
	case units <= 100:
		leadDays = 1
	case units <= 1000:
		leadDays = 4
	default:
		leadDays = 7
	}
	return start.AddDate(0, 0, leadDays).Format("2006-01-02")
}
