package ledgerrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/testutil"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
)

func TestAppendRejectsUnknownType(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))

	_, err := repo.Append(context.Background(), nil, testutil.StrPtr("A4 paper"), "refund", testutil.IntPtr(1), 9.99, "2025-02-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInvalidTransactionType)

	var count int64
	require.NoError(t, gormDB.Model(&ledger.Transaction{}).Count(&count).Error)
	assert.Zero(t, count, "rejected append must not write a row")
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))
	ctx := context.Background()

	first, err := repo.Append(ctx, nil, testutil.StrPtr("A4 paper"), ledger.TypeStockOrders, testutil.IntPtr(100), 5.0, "2025-01-02")
	require.NoError(t, err)
	second, err := repo.Append(ctx, nil, testutil.StrPtr("A4 paper"), ledger.TypeSales, testutil.IntPtr(10), 1.0, "2025-01-01")
	require.NoError(t, err)
	assert.Greater(t, second, first, "ids grow with insertion order, not transaction date")
}

func TestStockAsOfRespectsCutoffDate(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedStock(t, gormDB, "A4 paper", 500, 250.0, "2025-01-01")
	testutil.SeedSale(t, gormDB, "A4 paper", 200, 80.0, "2025-02-01")
	testutil.SeedSale(t, gormDB, "A4 paper", 100, 40.0, "2025-03-01")

	stock, err := repo.StockAsOf(ctx, nil, "2025-02-15")
	require.NoError(t, err)
	assert.Equal(t, 300, stock["A4 paper"])

	stock, err = repo.StockAsOf(ctx, nil, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 200, stock["A4 paper"])
}

func TestStockAsOfOmitsDepletedItems(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))

	testutil.SeedStock(t, gormDB, "Glossy paper", 50, 10.0, "2025-01-01")
	testutil.SeedSale(t, gormDB, "Glossy paper", 50, 12.5, "2025-01-05")
	testutil.SeedStock(t, gormDB, "Cardstock", 80, 12.0, "2025-01-01")

	stock, err := repo.StockAsOf(context.Background(), nil, "2025-06-01")
	require.NoError(t, err)
	assert.NotContains(t, stock, "Glossy paper")
	assert.Equal(t, 80, stock["Cardstock"])
}

func TestStockOfUnknownItemIsZero(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))

	stock, err := repo.StockOf(context.Background(), nil, "No such item", "2025-06-01")
	require.NoError(t, err)
	assert.Zero(t, stock)
}

func TestCashAsOfNetsSalesAgainstPurchases(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedCash(t, gormDB, 50000.0, "2025-01-01")
	testutil.SeedStock(t, gormDB, "A4 paper", 100, 15.0, "2025-01-10")
	testutil.SeedSale(t, gormDB, "A4 paper", 50, 20.0, "2025-01-20")

	assert.InDelta(t, 50000.0, repo.CashAsOf(ctx, nil, "2025-01-05"), 1e-9)
	assert.InDelta(t, 49985.0, repo.CashAsOf(ctx, nil, "2025-01-15"), 1e-9)
	assert.InDelta(t, 50005.0, repo.CashAsOf(ctx, nil, "2025-02-01"), 1e-9)
}

func TestCashAsOfEmptyLedgerIsZero(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))
	assert.Zero(t, repo.CashAsOf(context.Background(), nil, "2025-01-01"))
}

func TestTopSellersRanksByRevenueAndSkipsCashRows(t *testing.T) {
	gormDB := testutil.DB(t)
	repo := New(gormDB, testutil.Logger(t))

	testutil.SeedCash(t, gormDB, 50000.0, "2025-01-01")
	testutil.SeedSale(t, gormDB, "Cardstock", 10, 150.0, "2025-01-10")
	testutil.SeedSale(t, gormDB, "A4 paper", 500, 100.0, "2025-01-11")
	testutil.SeedSale(t, gormDB, "Cardstock", 5, 75.0, "2025-01-12")

	stats, err := repo.TopSellers(context.Background(), nil, "2025-06-01", 5)
	require.NoError(t, err)
	require.Len(t, stats, 2, "the opening cash row has no item and must not rank")
	assert.Equal(t, "Cardstock", stats[0].ItemName)
	assert.InDelta(t, 225.0, stats[0].TotalRevenue, 1e-9)
	assert.Equal(t, 15, stats[0].TotalUnits)
	assert.Equal(t, "A4 paper", stats[1].ItemName)
}
