package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a catalog entry owned by the menu subsystem. This core only
// reads it; price and availability are the catalog truth at lookup time.
type MenuItem struct {
	ID          int64
	StoreID     int64
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
}
