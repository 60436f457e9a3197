package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

var (
	ErrUnknownItem     = errors.New("item not in catalog")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Volume markup tiers applied over the catalog base price.
const (
	markupSmall  = 0.28 // under 500 units
	markupMedium = 0.18 // 500 to 1999 units
	markupLarge  = 0.12 // 2000 units and up

	maxDiscountPct = 15.0
	expediteFactor = 1.02

	// Discounts never push the unit price below this fraction of the
	// catalog base price.
	priceFloorFraction = 0.8
)

// PriceQuote is one deterministically priced line.
type PriceQuote struct {
	ItemName     string  `json:"item_name"`
	Quantity     int     `json:"quantity"`
	CatalogPrice float64 `json:"catalog_price"`
	MarkupRate   float64 `json:"markup_rate"`
	DiscountPct  float64 `json:"discount_pct"`
	Expedited    bool    `json:"expedited"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}

// PricingService turns an item name and quantity into an exact price.
// The name is canonicalized first, so synonyms and close variants price
// the same as the catalog SKU they resolve to. Pricing is pure
// arithmetic: same inputs, same price, no lookups beyond the static
// catalog.
type PricingService interface {
	Price(itemName string, quantity int, discountPct float64, expedited bool) (PriceQuote, error)
}

type pricingService struct {
	log *logger.Logger
}

func NewPricingService(baseLog *logger.Logger) PricingService {
	return &pricingService{log: baseLog.With("service", "PricingService")}
}

func (s *pricingService) Price(itemName string, quantity int, discountPct float64, expedited bool) (PriceQuote, error) {
	if quantity <= 0 {
		return PriceQuote{}, fmt.Errorf("price %q: %w", itemName, ErrInvalidQuantity)
	}
	sku := catalog.Canonicalize(itemName)
	if sku == "" {
		return PriceQuote{}, fmt.Errorf("price %q: %w", itemName, ErrUnknownItem)
	}
	base, ok := catalog.UnitPrice(sku)
	if !ok {
		return PriceQuote{}, fmt.Errorf("price %q: %w", sku, ErrUnknownItem)
	}

	markup := markupForQuantity(quantity)
	unit := base * (1 + markup)

	if discountPct < 0 {
		discountPct = 0
	}
	if discountPct > maxDiscountPct {
		discountPct = maxDiscountPct
	}
	unit *= 1 - discountPct/100

	if expedited {
		unit *= expediteFactor
	}

	if floor := base * priceFloorFraction; unit < floor {
		unit = floor
	}

	unit = round4(unit)
	total := round2(unit * float64(quantity))

	return PriceQuote{
		ItemName:     sku,
		Quantity:     quantity,
		CatalogPrice: base,
		MarkupRate:   markup,
		DiscountPct:  discountPct,
		Expedited:    expedited,
		UnitPrice:    unit,
		LineTotal:    total,
	}, nil
}

func markupForQuantity(quantity int) float64 {
	switch {
	case quantity >= 2000:
		return markupLarge
	case quantity >= 500:
		return markupMedium
	default:
		return markupSmall
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
