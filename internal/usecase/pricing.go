package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/domain/repository"
)

// PricingUseCase recomputes an order's authoritative price from live catalog
// data. Client-supplied prices never enter here.
type PricingUseCase struct {
	catalog repository.CatalogRepository
}

// NewPricingUseCase constructs PricingUseCase.
func NewPricingUseCase(catalog repository.CatalogRepository) *PricingUseCase {
	return &PricingUseCase{catalog: catalog}
}

// Reconcile prices the cart against the store's catalog snapshot. Every
// requested item must exist in the store and be available; the returned
// total is the exact decimal sum of quantity times unit price.
func (u *PricingUseCase) Reconcile(ctx context.Context, storeID int64, lines []model.CartLine) (*model.Quote, error) {
	if err := ValidateCart(lines); err != nil {
		return nil, err
	}

	ids := uniqueItemIDs(lines)
	items, err := u.catalog.GetByIDsInStore(ctx, storeID, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	// A shorter result set means some id either does not exist or belongs
	// to another store; both cases are indistinguishable to the caller.
	if len(items) != len(ids) {
		return nil, domainErrors.ErrItemNotFound
	}

	byID := make(map[int64]model.MenuItem, len(items))
	for _, item := range items {
		if !item.IsAvailable {
			return nil, &domainErrors.ItemUnavailableError{MenuItemID: item.ID, Name: item.Name}
		}
		byID[item.ID] = item
	}

	quote := &model.Quote{
		Lines: make([]model.PricedLine, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, line := range lines {
		item := byID[line.MenuItemID]
		priced := model.PricedLine{
			MenuItemID:  line.MenuItemID,
			Quantity:    line.Quantity,
			PriceAtTime: item.Price,
		}
		quote.Lines = append(quote.Lines, priced)
		quote.Total = quote.Total.Add(priced.Subtotal())
	}
	return quote, nil
}

func uniqueItemIDs(lines []model.CartLine) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}
	return ids
}
