package quotesrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/testutil"
	"github.com/beaverchoice/fulfillment-backend/internal/domain/quotes"
)

func seedHistory(t *testing.T, repo Repo) {
	t.Helper()
	ctx := context.Background()

	reqs := []*quotes.QuoteRequest{
		{ID: 1, Response: "Need 2000 sheets of glossy paper for a wedding program", RequestDate: "2025-01-10"},
		{ID: 2, Response: "Large banner paper order for trade show booth", RequestDate: "2025-02-10"},
		{ID: 3, Response: "Glossy paper and cardstock for gallery opening", RequestDate: "2025-03-10"},
	}
	require.NoError(t, repo.CreateRequests(ctx, nil, reqs))

	rows := []*quotes.Quote{
		{RequestID: 1, TotalAmount: 320.50, QuoteExplanation: "Bulk discount applied for wedding stationery", OrderDate: "2025-01-12", JobType: "event planner", OrderSize: "large", EventType: "wedding"},
		{RequestID: 2, TotalAmount: 980.00, QuoteExplanation: "Standard pricing for banner stock", OrderDate: "2025-02-12", JobType: "marketing", OrderSize: "medium", EventType: "trade show"},
		{RequestID: 3, TotalAmount: 150.25, QuoteExplanation: "Small glossy order, no discount", OrderDate: "2025-03-12", JobType: "artist", OrderSize: "small", EventType: "gallery"},
	}
	require.NoError(t, repo.CreateQuotes(ctx, nil, rows))
}

func TestSearchMatchesAllKeywordsConjunctively(t *testing.T) {
	repo := New(testutil.DB(t), testutil.Logger(t))
	seedHistory(t, repo)

	// "glossy" alone hits requests 1 and 3.
	recs, err := repo.Search(context.Background(), nil, []string{"glossy"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Adding "wedding" narrows to request 1: each keyword may match either
	// the request text or the explanation, but every keyword must match.
	recs, err = repo.Search(context.Background(), nil, []string{"glossy", "wedding"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1), recs[0].RequestID)
	assert.Contains(t, recs[0].OriginalRequest, "wedding program")
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	repo := New(testutil.DB(t), testutil.Logger(t))
	seedHistory(t, repo)

	recs, err := repo.Search(context.Background(), nil, []string{"GLOSSY"}, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSearchOrdersByOrderDateDescending(t *testing.T) {
	repo := New(testutil.DB(t), testutil.Logger(t))
	seedHistory(t, repo)

	recs, err := repo.Search(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3, "no keywords matches everything")
	assert.Equal(t, "2025-03-12", recs[0].OrderDate)
	assert.Equal(t, "2025-02-12", recs[1].OrderDate)
	assert.Equal(t, "2025-01-12", recs[2].OrderDate)
}

func TestSearchHonorsLimit(t *testing.T) {
	repo := New(testutil.DB(t), testutil.Logger(t))
	seedHistory(t, repo)

	recs, err := repo.Search(context.Background(), nil, nil, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2025-03-12", recs[0].OrderDate)
}

func TestSearchNoMatchesReturnsEmpty(t *testing.T) {
	repo := New(testutil.DB(t), testutil.Logger(t))
	seedHistory(t, repo)

	recs, err := repo.Search(context.Background(), nil, []string{"vellum"}, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestListRequestsByDate(t *testing.T) {
	repo := New(testutil.DB(t), testutil.Logger(t))
	seedHistory(t, repo)

	reqs, err := repo.ListRequestsByDate(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "2025-01-10", reqs[0].RequestDate)
	assert.Equal(t, "2025-03-10", reqs[2].RequestDate)
}
