package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minjae-ko/tableorder/internal/domain/model"
)

// PaymentFacade describes the pre-payment operations required by handlers.
type PaymentFacade interface {
	PreparePayment(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, clientTotal decimal.Decimal) (*model.PaymentQuote, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	ConfirmOrder(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, paidAmount decimal.Decimal, orderCode, paymentKey string) (*model.Order, error)
	AccumulateOrder(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine) (*model.AccumulateResult, error)
	OrdersForTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error)
	OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	PaymentFacade
	OrderFacade
}
