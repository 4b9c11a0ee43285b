package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minjae-ko/tableorder/internal/domain/model"
)

// ConfirmedOrderParams carries everything needed to persist a paid order.
type ConfirmedOrderParams struct {
	StoreID     int64
	TableNumber int32
	TotalAmount decimal.Decimal
	OrderCode   string
	PaymentKey  string
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateConfirmed atomically inserts a confirmed order and its items.
	// When an order with the same order code already exists the existing
	// order is returned and created is false; no second order is written.
	CreateConfirmed(ctx context.Context, params ConfirmedOrderParams, lines []model.PricedLine) (order *model.Order, created bool, err error)

	// GetByCode fetches an order by its order code.
	GetByCode(ctx context.Context, orderCode string) (*model.Order, error)

	// AccumulatePending appends priced lines to the table's pending order,
	// creating it when none exists, and bumps the running total by addTotal.
	// The find-then-append sequence is serialized against concurrent calls
	// for the same (store, table) pair.
	AccumulatePending(ctx context.Context, storeID int64, tableNumber int32, lines []model.PricedLine, addTotal decimal.Decimal) (*model.AccumulateResult, error)

	// ListByTable returns the table's orders, most recent first.
	ListByTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error)

	// ListItems returns the line items of one order.
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
