package ledger

import "errors"

const (
	TypeStockOrders = "stock_orders"
	TypeSales       = "sales"
)

// ErrInvalidTransactionType is a contract violation, not a data-quality
// problem: callers passing any other type get a hard failure.
var ErrInvalidTransactionType = errors.New("transaction type must be 'stock_orders' or 'sales'")

func ValidType(t string) bool {
	return t == TypeStockOrders || t == TypeSales
}

// Transaction is one append-only ledger row. Dates are ISO-8601 strings so
// lexicographic comparison matches chronological comparison; rows are never
// updated or deleted after insert.
type Transaction struct {
	ID              int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemName        *string `gorm:"column:item_name;index" json:"item_name"`
	TransactionType string  `gorm:"column:transaction_type;not null;index" json:"transaction_type"`
	Units           *int    `gorm:"column:units" json:"units"`
	Price           float64 `gorm:"column:price;not null" json:"price"`
	TransactionDate string  `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
}

func (Transaction) TableName() string { return "transactions" }
