package model

import "github.com/shopspring/decimal"

// CartLine is a client-submitted (item, quantity) pair. It carries no price;
// prices always come from the catalog.
type CartLine struct {
	MenuItemID int64
	Quantity   int32
}

// PricedLine is a cart line with the catalog unit price captured at
// reconciliation time. Immutable once computed.
type PricedLine struct {
	MenuItemID  int64
	Quantity    int32
	PriceAtTime decimal.Decimal
}

// Subtotal returns quantity times the captured unit price.
func (l PricedLine) Subtotal() decimal.Decimal {
	return l.PriceAtTime.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quote is the authoritative result of pricing a cart against the catalog.
type Quote struct {
	Lines []PricedLine
	Total decimal.Decimal
}

// PaymentQuote is the outcome of the pre-payment check. Business failures
// are reported through OK/Reason rather than errors so the storefront can
// render them inline; Amount always holds the server total when known.
type PaymentQuote struct {
	OK        bool
	Amount    decimal.Decimal
	OrderCode string
	Reason    string
}
