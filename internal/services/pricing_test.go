package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/testutil"
)

func TestPriceSmallOrderWithDiscount(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	// 0.05 * 1.28 = 0.064, 10% off = 0.0576; floor 0.04 untouched.
	quote, err := pricing.Price("A4 paper", 100, 10, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.28, quote.MarkupRate, 1e-9)
	assert.InDelta(t, 0.0576, quote.UnitPrice, 1e-9)
	assert.InDelta(t, 5.76, quote.LineTotal, 1e-9)
}

func TestPriceLargeOrderClampsDiscount(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	// 0.05 * 1.12 = 0.056, discount clamps from 50 to 15 = 0.0476;
	// floor 0.04 untouched.
	quote, err := pricing.Price("A4 paper", 2500, 50, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.12, quote.MarkupRate, 1e-9)
	assert.InDelta(t, 15.0, quote.DiscountPct, 1e-9)
	assert.InDelta(t, 0.0476, quote.UnitPrice, 1e-9)
	assert.InDelta(t, 119.0, quote.LineTotal, 1e-9)
}

func TestPriceMediumTier(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	quote, err := pricing.Price("A4 paper", 500, 0, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.18, quote.MarkupRate, 1e-9)
	assert.InDelta(t, 0.059, quote.UnitPrice, 1e-9)
}

func TestPriceExpediteSurcharge(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	plain, err := pricing.Price("Cardstock", 100, 0, false)
	require.NoError(t, err)
	rush, err := pricing.Price("Cardstock", 100, 0, true)
	require.NoError(t, err)
	assert.Greater(t, rush.UnitPrice, plain.UnitPrice)
	// 0.15 * 1.28 * 1.02 = 0.19584.
	assert.InDelta(t, 0.1958, rush.UnitPrice, 1e-9)
}

func TestPriceNegativeDiscountClampsToZero(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	quote, err := pricing.Price("A4 paper", 100, -20, false)
	require.NoError(t, err)
	assert.Zero(t, quote.DiscountPct)
	assert.InDelta(t, 0.064, quote.UnitPrice, 1e-9)
}

func TestPriceResolvesSynonymAndVariantNames(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	// Synonym table entry, priced as Cardstock: 0.15 * 1.28 = 0.192.
	quote, err := pricing.Price("heavy cardstock", 100, 0, false)
	require.NoError(t, err)
	assert.Equal(t, "Cardstock", quote.ItemName)
	assert.InDelta(t, 0.15, quote.CatalogPrice, 1e-9)
	assert.InDelta(t, 0.192, quote.UnitPrice, 1e-9)

	// A typo close enough for the fuzzy matcher prices the same as the
	// exact name.
	exact, err := pricing.Price("Glossy paper", 100, 0, false)
	require.NoError(t, err)
	fuzzy, err := pricing.Price("glossy papr", 100, 0, false)
	require.NoError(t, err)
	assert.Equal(t, exact, fuzzy)
}

func TestPriceErrors(t *testing.T) {
	pricing := NewPricingService(testutil.Logger(t))

	_, err := pricing.Price("unobtainium sheets", 100, 0, false)
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = pricing.Price("A4 paper", 0, 0, false)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = pricing.Price("A4 paper", -5, 0, false)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
