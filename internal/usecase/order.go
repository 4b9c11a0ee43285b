package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/domain/repository"
)

// OrderUseCase turns validated carts into durable orders.
type OrderUseCase struct {
	pricing *PricingUseCase
	orders  repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(pricing *PricingUseCase, orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{pricing: pricing, orders: orders}
}

// Confirm records an externally captured payment as a confirmed order.
// Pricing is re-run against the current catalog; a quote cached at prepare
// time is never trusted. Paid amount must equal the server total exactly.
// Confirming the same order code twice returns the already recorded order.
func (u *OrderUseCase) Confirm(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, paidAmount decimal.Decimal, orderCode, paymentKey string) (*model.Order, error) {
	if err := ValidateScope(storeID, tableNumber); err != nil {
		return nil, err
	}
	if orderCode == "" || paymentKey == "" {
		return nil, fmt.Errorf("order code and payment key are required: %w", domainErrors.ErrValidation)
	}

	quote, err := u.pricing.Reconcile(ctx, storeID, lines)
	if err != nil {
		return nil, err
	}

	if !quote.Total.Equal(paidAmount) {
		// The money already moved externally; accepting a different total
		// here would detach the order record from the captured payment.
		return nil, &domainErrors.PriceMismatchError{ServerTotal: quote.Total, PaidAmount: paidAmount}
	}

	order, _, err := u.orders.CreateConfirmed(ctx, repository.ConfirmedOrderParams{
		StoreID:     storeID,
		TableNumber: tableNumber,
		TotalAmount: quote.Total,
		OrderCode:   orderCode,
		PaymentKey:  paymentKey,
	}, quote.Lines)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Accumulate merges a cart batch into the table's open pending order,
// creating one when the table has none. Reconciliation failures are hard
// errors here: this flow runs after checkout where they indicate a race.
func (u *OrderUseCase) Accumulate(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine) (*model.AccumulateResult, error) {
	if err := ValidateScope(storeID, tableNumber); err != nil {
		return nil, err
	}

	quote, err := u.pricing.Reconcile(ctx, storeID, lines)
	if err != nil {
		return nil, err
	}

	return u.orders.AccumulatePending(ctx, storeID, tableNumber, quote.Lines, quote.Total)
}

// OrdersForTable lists the table's orders, most recent first.
func (u *OrderUseCase) OrdersForTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error) {
	if err := ValidateScope(storeID, tableNumber); err != nil {
		return nil, err
	}
	return u.orders.ListByTable(ctx, storeID, tableNumber)
}

// OrderItems lists the line items of one order.
func (u *OrderUseCase) OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, domainErrors.ErrValidation)
	}
	return u.orders.ListItems(ctx, orderID)
}
