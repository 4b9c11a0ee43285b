package repository

import (
	"context"

	"github.com/minjae-ko/tableorder/internal/domain/model"
)

// CatalogRepository is the read-only view of the menu subsystem's data this
// core is allowed to see.
type CatalogRepository interface {
	// GetByIDsInStore returns the menu items with the given ids that belong
	// to the store. Ids absent from the store are simply not returned; the
	// caller compares set sizes to detect them.
	GetByIDsInStore(ctx context.Context, storeID int64, itemIDs []int64) ([]model.MenuItem, error)
}
