package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/ledgerrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/quotesrepo"
	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/testutil"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/catalog"
)

func TestSampleInventoryIsDeterministic(t *testing.T) {
	first := SampleInventory()
	second := SampleInventory()
	require.Equal(t, first, second)

	wantCount := int(inventoryCoverage * float64(len(catalog.Items())))
	assert.Len(t, first, wantCount)

	for _, item := range first {
		assert.GreaterOrEqual(t, item.CurrentStock, stockMin)
		assert.Less(t, item.CurrentStock, stockMax)
		assert.GreaterOrEqual(t, item.MinStockLevel, minLevelMin)
		assert.Less(t, item.MinStockLevel, minLevelMax)
	}
}

func writeFixtureCSVs(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()

	requests := filepath.Join(dir, "quote_requests.csv")
	require.NoError(t, os.WriteFile(requests, []byte(
		"job,event,need_size,request,response,request_date\n"+
			"event planner,wedding,large,short,Need 2000 sheets of glossy paper,4/2/25\n"+
			"teacher,class project,small,short,Construction paper for a class of 30,4/1/25\n"+
			"printer,none,medium,short,Bulk cardstock order,not-a-date\n",
	), 0o644))

	quotesPath := filepath.Join(dir, "quotes.csv")
	require.NoError(t, os.WriteFile(quotesPath, []byte(
		"total_amount,quote_explanation,request_metadata\n"+
			`320.50,Bulk discount applied,"{'job_type': 'event planner', 'order_size': 'large', 'event_type': 'wedding'}"`+"\n"+
			"45.00,Standard pricing,\n"+
			`88.20,Cardstock reorder priced at standard rate,"{'job_type': 'printer', 'order_size': 'medium', 'event_type': 'none'}"`+"\n",
	), 0o644))

	return Options{RequestsCSV: requests, QuotesCSV: quotesPath}
}

func TestSeederRun(t *testing.T) {
	gormDB := testutil.DB(t)
	logg := testutil.Logger(t)
	ledgerRepo := ledgerrepo.New(gormDB, logg)
	quoteRepo := quotesrepo.New(gormDB, logg)
	seeder := New(gormDB, ledgerRepo, quoteRepo, logg)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx, writeFixtureCSVs(t)))

	// Bad-date rows are kept on the seed date so their quotes stay joined;
	// everything arrives sorted by request date.
	requests, err := quoteRepo.ListRequestsByDate(ctx, nil)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, SeedDate, requests[0].RequestDate)
	assert.Equal(t, "Bulk cardstock order", requests[0].Response)
	assert.Equal(t, "2025-04-01", requests[1].RequestDate)
	assert.Equal(t, "2025-04-02", requests[2].RequestDate)

	// Metadata unpacked from the Python-style dict literal.
	records, err := quoteRepo.Search(ctx, nil, []string{"bulk discount"}, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "wedding", records[0].EventType)

	// The quote tied positionally to the bad-date request is searchable and
	// joins back to that request's text.
	records, err = quoteRepo.Search(ctx, nil, []string{"cardstock reorder"}, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].RequestID)
	assert.Equal(t, "Bulk cardstock order", records[0].OriginalRequest)
	assert.InDelta(t, 88.20, records[0].TotalAmount, 1e-9)

	// Ledger opens with the cash float plus one stock order per item, and
	// the ledger-derived stock matches the reference table exactly.
	cash := ledgerRepo.CashAsOf(ctx, nil, SeedDate)
	inventory := SampleInventory()
	wantCash := openingCash
	for _, item := range inventory {
		wantCash -= float64(item.CurrentStock) * item.UnitPrice
	}
	assert.InDelta(t, wantCash, cash, 0.01)

	stock, err := ledgerRepo.StockAsOf(ctx, nil, SeedDate)
	require.NoError(t, err)
	require.Len(t, stock, len(inventory))
	for _, item := range inventory {
		assert.Equal(t, item.CurrentStock, stock[item.ItemName], "item %s", item.ItemName)
	}
}

func TestSeederRunIsIdempotent(t *testing.T) {
	gormDB := testutil.DB(t)
	logg := testutil.Logger(t)
	ledgerRepo := ledgerrepo.New(gormDB, logg)
	quoteRepo := quotesrepo.New(gormDB, logg)
	seeder := New(gormDB, ledgerRepo, quoteRepo, logg)
	ctx := context.Background()
	opts := writeFixtureCSVs(t)

	require.NoError(t, seeder.Run(ctx, opts))
	cashBefore := ledgerRepo.CashAsOf(ctx, nil, SeedDate)

	require.NoError(t, seeder.Run(ctx, opts))
	assert.InDelta(t, cashBefore, ledgerRepo.CashAsOf(ctx, nil, SeedDate), 1e-9)
}
