package usecase

import (
	"fmt"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
)

// ValidateCart checks that a cart is non-empty and every line references a
// menu item with a positive quantity.
func ValidateCart(lines []model.CartLine) error {
	if len(lines) == 0 {
		return domainErrors.ErrEmptyCart
	}
	for _, line := range lines {
		if line.MenuItemID <= 0 {
			return fmt.Errorf("line for item %d: %w", line.MenuItemID, domainErrors.ErrValidation)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("item %d: %w", line.MenuItemID, domainErrors.ErrInvalidQuantity)
		}
	}
	return nil
}

// ValidateScope checks the store/table pair addressing an order.
func ValidateScope(storeID int64, tableNumber int32) error {
	if storeID <= 0 || tableNumber <= 0 {
		return fmt.Errorf("store %d table %d: %w", storeID, tableNumber, domainErrors.ErrValidation)
	}
	return nil
}
