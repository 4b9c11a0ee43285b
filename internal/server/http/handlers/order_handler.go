package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/server/http/dto"
	"github.com/minjae-ko/tableorder/internal/usecase"
)

// OrderHandler manages ordering endpoints.
type OrderHandler struct {
	facade OrderingFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderingFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Prepare handles POST /api/orders/prepare. Business failures are part of
// the 200 response (ok=false) so the storefront renders them inline; only
// malformed payloads get a 400.
func (h *OrderHandler) Prepare(c *gin.Context) {
	var req dto.PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: usecase.MsgMissingFields})
		return
	}

	quote, err := h.facade.PreparePayment(c.Request.Context(), req.StoreID, req.TableNumber, toCartLines(req.Items), req.Total)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.PrepareResponse{
		OK:      quote.OK,
		Amount:  quote.Amount,
		OrderID: quote.OrderCode,
		Reason:  quote.Reason,
	})
}

// Confirm handles POST /api/orders/confirm, invoked after the payment
// provider redirects back with a payment key.
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: usecase.MsgMissingFields})
		return
	}

	order, err := h.facade.ConfirmOrder(c.Request.Context(), req.StoreID, req.TableNumber,
		toCartLines(req.Items), req.PaidAmount, req.OrderCode, req.PaymentKey)
	if err != nil {
		h.renderOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ConfirmResponse{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
	})
}

// Accumulate handles POST /api/orders/accumulate, the payment-less flow that
// grows the table's pending order.
func (h *OrderHandler) Accumulate(c *gin.Context) {
	var req dto.AccumulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: usecase.MsgMissingFields})
		return
	}

	result, err := h.facade.AccumulateOrder(c.Request.Context(), req.StoreID, req.TableNumber, toCartLines(req.Items))
	if err != nil {
		h.renderOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AccumulateResponse{
		CreatedNewOrder: result.CreatedNew,
		OrderID:         result.OrderID,
		AddedItemsCount: result.AddedItemsCount,
		AddTotal:        result.AddedTotal,
		TotalAmount:     result.TotalAmount,
		Status:          string(result.Status),
	})
}

// List handles GET /api/orders?store_id=&table_number=.
func (h *OrderHandler) List(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: usecase.MsgMissingFields})
		return
	}
	tableNumber, err := strconv.ParseInt(c.Query("table_number"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: usecase.MsgMissingFields})
		return
	}

	orders, err := h.facade.OrdersForTable(c.Request.Context(), storeID, int32(tableNumber))
	if err != nil {
		h.renderOrderError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := h.facade.OrderItems(c.Request.Context(), order.ID)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		response = append(response, toOrderResponse(order, items))
	}

	c.JSON(http.StatusOK, response)
}

func (h *OrderHandler) renderOrderError(c *gin.Context, err error) {
	var mismatch *domainErrors.PriceMismatchError
	switch {
	case errors.As(err, &mismatch):
		amount := mismatch.ServerTotal
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: usecase.MsgAmountChanged, Amount: &amount})
	case errors.Is(err, domainErrors.ErrItemNotFound):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: usecase.MsgItemNotFound})
	case errors.Is(err, domainErrors.ErrItemUnavailable):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: usecase.MsgMissingFields})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponse(order model.Order, items []model.OrderItem) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		OrderCode:   order.OrderCode,
		CreatedAt:   order.CreatedAt,
		Items:       make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			MenuItemID:  item.MenuItemID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		})
	}
	return resp
}
