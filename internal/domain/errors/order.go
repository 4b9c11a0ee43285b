package errors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemUnavailableError names the first sold-out or delisted item found in a
// cart so the storefront can point at the offending line.
type ItemUnavailableError struct {
	MenuItemID int64
	Name       string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("품절/비판매 메뉴 포함: %s", e.Name)
}

func (e *ItemUnavailableError) Is(target error) bool {
	return target == ErrItemUnavailable
}

// PriceMismatchError is raised when the externally paid amount differs from
// the server-computed total at confirmation time. It always carries the
// authoritative amount so the client can re-quote.
type PriceMismatchError struct {
	ServerTotal decimal.Decimal
	PaidAmount  decimal.Decimal
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("paid amount %s does not match server total %s", e.PaidAmount, e.ServerTotal)
}

func (e *PriceMismatchError) Is(target error) bool {
	return target == ErrPriceMismatch
}
