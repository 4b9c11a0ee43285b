package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minjae-ko/tableorder/internal/domain/model"
)

// OrderingFacadeStub lets handler tests script facade behaviour.
type OrderingFacadeStub struct {
	PrepareFn    func(context.Context, int64, int32, []model.CartLine, decimal.Decimal) (*model.PaymentQuote, error)
	ConfirmFn    func(context.Context, int64, int32, []model.CartLine, decimal.Decimal, string, string) (*model.Order, error)
	AccumulateFn func(context.Context, int64, int32, []model.CartLine) (*model.AccumulateResult, error)
	ListFn       func(context.Context, int64, int32) ([]model.Order, error)
	ItemsFn      func(context.Context, int64) ([]model.OrderItem, error)
}

func (s OrderingFacadeStub) PreparePayment(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, clientTotal decimal.Decimal) (*model.PaymentQuote, error) {
	if s.PrepareFn != nil {
		return s.PrepareFn(ctx, storeID, tableNumber, lines, clientTotal)
	}
	return &model.PaymentQuote{OK: true}, nil
}

func (s OrderingFacadeStub) ConfirmOrder(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, paidAmount decimal.Decimal, orderCode, paymentKey string) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, storeID, tableNumber, lines, paidAmount, orderCode, paymentKey)
	}
	return &model.Order{}, nil
}

func (s OrderingFacadeStub) AccumulateOrder(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine) (*model.AccumulateResult, error) {
	if s.AccumulateFn != nil {
		return s.AccumulateFn(ctx, storeID, tableNumber, lines)
	}
	return &model.AccumulateResult{}, nil
}

func (s OrderingFacadeStub) OrdersForTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, storeID, tableNumber)
	}
	return nil, nil
}

func (s OrderingFacadeStub) OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, orderID)
	}
	return nil, nil
}
