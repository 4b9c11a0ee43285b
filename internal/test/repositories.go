package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/domain/repository"
)

// CatalogRepositoryStub serves menu items from memory, applying the same
// store scoping as the real catalog lookup.
type CatalogRepositoryStub struct {
	Items []model.MenuItem
	Err   error
}

// GetByIDsInStore filters stub items by store and requested ids.
func (s *CatalogRepositoryStub) GetByIDsInStore(ctx context.Context, storeID int64, itemIDs []int64) ([]model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	requested := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		requested[id] = struct{}{}
	}
	var result []model.MenuItem
	for _, item := range s.Items {
		if item.StoreID != storeID {
			continue
		}
		if _, ok := requested[item.ID]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateConfirmedFn   func(context.Context, repository.ConfirmedOrderParams, []model.PricedLine) (*model.Order, bool, error)
	GetByCodeFn         func(context.Context, string) (*model.Order, error)
	AccumulatePendingFn func(context.Context, int64, int32, []model.PricedLine, decimal.Decimal) (*model.AccumulateResult, error)
	ListByTableFn       func(context.Context, int64, int32) ([]model.Order, error)
	ListItemsFn         func(context.Context, int64) ([]model.OrderItem, error)
}

func (s *OrderRepositoryStub) CreateConfirmed(ctx context.Context, params repository.ConfirmedOrderParams, lines []model.PricedLine) (*model.Order, bool, error) {
	if s.CreateConfirmedFn != nil {
		return s.CreateConfirmedFn(ctx, params, lines)
	}
	return nil, false, nil
}

func (s *OrderRepositoryStub) GetByCode(ctx context.Context, orderCode string) (*model.Order, error) {
	if s.GetByCodeFn != nil {
		return s.GetByCodeFn(ctx, orderCode)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) AccumulatePending(ctx context.Context, storeID int64, tableNumber int32, lines []model.PricedLine, addTotal decimal.Decimal) (*model.AccumulateResult, error) {
	if s.AccumulatePendingFn != nil {
		return s.AccumulatePendingFn(ctx, storeID, tableNumber, lines, addTotal)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) ListByTable(ctx context.Context, storeID int64, tableNumber int32) ([]model.Order, error) {
	if s.ListByTableFn != nil {
		return s.ListByTableFn(ctx, storeID, tableNumber)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if s.ListItemsFn != nil {
		return s.ListItemsFn(ctx, orderID)
	}
	return nil, nil
}
