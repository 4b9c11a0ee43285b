package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/usecase"
)

// OrderingFacade aggregates the ordering operations exposed over HTTP.
type OrderingFacade struct {
	payments *usecase.PaymentUseCase
	orders   *usecase.OrderUseCase
}

// NewOrderingFacade constructs OrderingFacade.
func NewOrderingFacade(payments *usecase.PaymentUseCase, orders *usecase.OrderUseCase) *OrderingFacade {
	return &OrderingFacade{payments: payments, orders: orders}
}

func (f *OrderingFacade) PreparePayment(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, clientTotal decimal.Decimal) (*model.PaymentQuote, error) {
	return f.payments.Prepare(ctx, storeID, tableNumber, lines, clientTotal)
}

func (f *OrderingFacade) ConfirmOrder(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, paidAmount decimal.Decimal, orderCode, paymentKey string) (*model.Order, error) {
	return f.orders.Confirm(ctx, storeID, tableNumber, lines, paidAmount, orderCode, paymentKey)
}

func (f *OrderingFacade) AccumulateOrder(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine) (*model.AccumulateResult, error) {
	return f.orders.Accumulate(ctx, storeID, tableNumber, lines)
}

func (f *OrderingFacade) OrdersForTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error) {
	return f.orders.OrdersForTable(ctx, storeID, tableNumber)
}

func (f *OrderingFacade) OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return f.orders.OrderItems(ctx, orderID)
}
