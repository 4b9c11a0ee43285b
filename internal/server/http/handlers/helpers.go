package handlers

import (
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/server/http/dto"
)

// toCartLines converts request cart lines into domain cart lines.
func toCartLines(items []dto.CartLineRequest) []model.CartLine {
	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.CartLine{MenuItemID: item.ID, Quantity: item.Qty})
	}
	return lines
}
