package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle. The only legal transition is
// pending -> confirmed; a confirmed order never changes again.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is a table order. OrderCode and PaymentKey are set only on orders
// created through payment confirmation; accumulated pending orders have
// neither until they are paid.
type Order struct {
	ID          int64
	StoreID     int64
	TableNumber int32
	TotalAmount decimal.Decimal
	Status      OrderStatus
	OrderCode   *string
	PaymentKey  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem is an append-only child of Order. PriceAtTime is the catalog
// price observed at reconciliation, never a client-supplied value.
type OrderItem struct {
	ID          int64
	OrderID     int64
	MenuItemID  int64
	Quantity    int32
	PriceAtTime decimal.Decimal
}

// AccumulateResult reports one accumulate call: whether a new pending order
// was created, how much this batch added, and the order's running total.
type AccumulateResult struct {
	CreatedNew      bool
	OrderID         int64
	AddedItemsCount int
	AddedTotal      decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          OrderStatus
}
