package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/beaverchoice/fulfillment-backend/internal/domain/ledger"
)

// StrPtr and IntPtr exist because gorm nullable columns take pointers.
func StrPtr(s string) *string { return &s }
func IntPtr(i int) *int       { return &i }

// SeedCash inserts an opening sales row with no item so tests start from a
// known cash balance.
func SeedCash(t *testing.T, gormDB *gorm.DB, amount float64, date string) {
	t.Helper()
	row := &ledger.Transaction{
		TransactionType: ledger.TypeSales,
		Price:           amount,
		TransactionDate: date,
	}
	if err := gormDB.WithContext(context.Background()).Create(row).Error; err != nil {
		t.Fatalf("seed cash: %v", err)
	}
}

// SeedStock inserts a stock_orders row for one item.
func SeedStock(t *testing.T, gormDB *gorm.DB, itemName string, units int, cost float64, date string) {
	t.Helper()
	row := &ledger.Transaction{
		ItemName:        StrPtr(itemName),
		TransactionType: ledger.TypeStockOrders,
		Units:           IntPtr(units),
		Price:           cost,
		TransactionDate: date,
	}
	if err := gormDB.WithContext(context.Background()).Create(row).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

// SeedSale inserts a sales row for one item.
func SeedSale(t *testing.T, gormDB *gorm.DB, itemName string, units int, revenue float64, date string) {
	t.Helper()
	row := &ledger.Transaction{
		ItemName:        StrPtr(itemName),
		TransactionType: ledger.TypeSales,
		Units:           IntPtr(units),
		Price:           revenue,
		TransactionDate: date,
	}
	if err := gormDB.WithContext(context.Background()).Create(row).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}
