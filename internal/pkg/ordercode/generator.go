package ordercode

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator mints correlation tokens that link a payment-provider callback
// back to a server-validated quote. Codes are globally unique and carry no
// guessable sequential part.
type Generator interface {
	Next(storeID int64, tableNumber int32) string
}

// UUIDGenerator prefixes a random UUID with the order scope for operator
// readability; the UUID alone provides uniqueness.
type UUIDGenerator struct{}

// NewUUIDGenerator constructs UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Next returns a fresh order code such as "order_1_3_4fbd...".
func (g *UUIDGenerator) Next(storeID int64, tableNumber int32) string {
	return fmt.Sprintf("order_%d_%d_%s", storeID, tableNumber, uuid.NewString())
}
