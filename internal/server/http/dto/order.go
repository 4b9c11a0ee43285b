package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monetary fields use decimal so totals cross the wire as exact values;
// they serialize as strings and accept either strings or JSON numbers.

// CartLineRequest is one (item, quantity) pair of a submitted cart.
type CartLineRequest struct {
	ID  int64 `json:"id"`
	Qty int32 `json:"qty"`
}

// PrepareRequest asks for a pre-payment price check.
type PrepareRequest struct {
	StoreID     int64             `json:"storeId"`
	TableNumber int32             `json:"tableNumber"`
	Items       []CartLineRequest `json:"items"`
	Total       decimal.Decimal   `json:"total"`
}

// PrepareResponse reports the authoritative amount and, on success, the
// order code the client must present again at confirmation.
type PrepareResponse struct {
	OK      bool            `json:"ok"`
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"orderId,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// ConfirmRequest records an externally captured payment.
type ConfirmRequest struct {
	StoreID     int64             `json:"storeId"`
	TableNumber int32             `json:"tableNumber"`
	Items       []CartLineRequest `json:"items"`
	PaidAmount  decimal.Decimal   `json:"paidAmount"`
	OrderCode   string            `json:"orderCode"`
	PaymentKey  string            `json:"paymentKey"`
}

// ConfirmResponse describes the durable confirmed order.
type ConfirmResponse struct {
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
}

// AccumulateRequest appends a cart batch to the table's pending order.
// Total is accepted for symmetry with the other flows but carries no
// authority; the added amount is always recomputed from the catalog.
type AccumulateRequest struct {
	StoreID     int64             `json:"storeId"`
	TableNumber int32             `json:"tableNumber"`
	Items       []CartLineRequest `json:"items"`
	Total       decimal.Decimal   `json:"total"`
}

// AccumulateResponse reports the outcome of one accumulate call.
type AccumulateResponse struct {
	CreatedNewOrder bool            `json:"createdNewOrder"`
	OrderID         int64           `json:"orderId"`
	AddedItemsCount int             `json:"addedItemsCount"`
	AddTotal        decimal.Decimal `json:"addTotal"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
}

// OrderItemResponse is one line of a listed order.
type OrderItemResponse struct {
	MenuItemID  int64           `json:"menuItemId"`
	Quantity    int32           `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"priceAtTime"`
}

// OrderResponse is one order in the table's order list.
type OrderResponse struct {
	OrderID     int64               `json:"orderId"`
	TableNumber int32               `json:"tableNumber"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      string              `json:"status"`
	OrderCode   *string             `json:"orderCode,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Items       []OrderItemResponse `json:"items"`
}

// ErrorResponse carries an operator or storefront facing failure message.
// Amount is set on price mismatches so the client can re-quote.
type ErrorResponse struct {
	Message string           `json:"message"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}
