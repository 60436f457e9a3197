package ledgerrepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// SellerStat is one row of the top-sellers ranking.
type SellerStat struct {
	ItemName     string  `json:"item_name"`
	TotalUnits   int     `json:"total_units"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Repo is the append-only transaction ledger plus its point-in-time
// aggregations. Every derived quantity is recomputed by replaying rows up
// to a cutoff date; nothing is ever cached in a mutable column.
type Repo interface {
	Append(ctx context.Context, tx *gorm.DB, itemName *string, txType string, units *int, price float64, date string) (int64, error)
	StockAsOf(ctx context.Context, tx *gorm.DB, asOf string) (map[string]int, error)
	StockOf(ctx context.Context, tx *gorm.DB, itemName string, asOf string) (int, error)
	CashAsOf(ctx context.Context, tx *gorm.DB, asOf string) float64
	TopSellers(ctx context.Context, tx *gorm.DB, asOf string, limit int) ([]SellerStat, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger

	// Serializes appends: aggregates replay the full row set, so writers
	// follow a single-writer discipline.
	appendMu sync.Mutex
}

func New(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "LedgerRepo")}
}

func (r *repo) Append(ctx context.Context, tx *gorm.DB, itemName *string, txType string, units *int, price float64, date string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if !ledger.ValidType(txType) {
		return 0, fmt.Errorf("append %q: %w", txType, ledger.ErrInvalidTransactionType)
	}

	row := &ledger.Transaction{
		ItemName:        itemName,
		TransactionType: txType,
		Units:           units,
		Price:           price,
		TransactionDate: date,
	}

	r.appendMu.Lock()
	defer r.appendMu.Unlock()
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *repo) StockAsOf(ctx context.Context, tx *gorm.DB, asOf string) (map[string]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []struct {
		ItemName string `gorm:"column:item_name"`
		Stock    int    `gorm:"column:stock"`
	}
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			item_name,
			SUM(CASE
				WHEN transaction_type = 'stock_orders' THEN units
				WHEN transaction_type = 'sales' THEN -units
				ELSE 0
			END) AS stock
		FROM transactions
		WHERE item_name IS NOT NULL
		AND transaction_date <= ?
		GROUP BY item_name
		HAVING SUM(CASE
			WHEN transaction_type = 'stock_orders' THEN units
			WHEN transaction_type = 'sales' THEN -units
			ELSE 0
		END) > 0
	`, asOf).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ItemName] = row.Stock
	}
	return out, nil
}

func (r *repo) StockOf(ctx context.Context, tx *gorm.DB, itemName string, asOf string) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var stock int
	err := transaction.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(CASE
			WHEN transaction_type = 'stock_orders' THEN units
			WHEN transaction_type = 'sales' THEN -units
			ELSE 0
		END), 0) AS current_stock
		FROM transactions
		WHERE item_name = ?
		AND transaction_date <= ?
	`, itemName, asOf).Scan(&stock).Error
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// CashAsOf reports the net cash position up to and including asOf. Query
// failures are logged and reported as zero so one bad read never blocks a
// pipeline run; callers needing the error must use the ledger directly.
func (r *repo) CashAsOf(ctx context.Context, tx *gorm.DB, asOf string) float64 {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var cash float64
	err := transaction.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(CASE
			WHEN transaction_type = 'sales' THEN price
			WHEN transaction_type = 'stock_orders' THEN -price
			ELSE 0
		END), 0) AS cash
		FROM transactions
		WHERE transaction_date <= ?
	`, asOf).Scan(&cash).Error
	if err != nil {
		r.log.Warn("cash balance query failed, reporting zero", "as_of", asOf, "error", err)
		return 0
	}
	return cash
}

func (r *repo) TopSellers(ctx context.Context, tx *gorm.DB, asOf string, limit int) ([]SellerStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 5
	}

	var rows []SellerStat
	err := transaction.WithContext(ctx).Raw(`
		SELECT
			item_name,
			COALESCE(SUM(units), 0) AS total_units,
			SUM(price) AS total_revenue
		FROM transactions
		WHERE transaction_type = 'sales'
		AND item_name IS NOT NULL
		AND transaction_date <= ?
		GROUP BY item_name
		ORDER BY total_revenue DESC
		LIMIT ?
	`, asOf, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
