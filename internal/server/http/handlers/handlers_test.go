package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/server/http/dto"
	testhelpers "github.com/minjae-ko/tableorder/internal/test"
	"github.com/minjae-ko/tableorder/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cartBody() []dto.CartLineRequest {
	return []dto.CartLineRequest{{ID: 10, Qty: 2}}
}

func TestPrepareReturnsQuote(t *testing.T) {
	facade := testhelpers.OrderingFacadeStub{
		PrepareFn: func(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, clientTotal decimal.Decimal) (*model.PaymentQuote, error) {
			if storeID != 1 || tableNumber != 3 {
				t.Fatalf("unexpected scope: store %d table %d", storeID, tableNumber)
			}
			if len(lines) != 1 || lines[0].MenuItemID != 10 || lines[0].Quantity != 2 {
				t.Fatalf("unexpected cart lines: %+v", lines)
			}
			if !clientTotal.Equal(decimal.NewFromInt(9000)) {
				t.Fatalf("expected client total 9000, got %s", clientTotal)
			}
			return &model.PaymentQuote{OK: true, Amount: clientTotal, OrderCode: "order_1_3_abc"}, nil
		},
	}

	body, _ := json.Marshal(dto.PrepareRequest{StoreID: 1, TableNumber: 3, Items: cartBody(), Total: decimal.NewFromInt(9000)})
	resp := performRequest(t, http.MethodPost, "/prepare", NewOrderHandler(facade).Prepare, body)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result dto.PrepareResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !result.OK || result.OrderID != "order_1_3_abc" {
		t.Fatalf("unexpected response: %+v", result)
	}
	if !result.Amount.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected amount 9000, got %s", result.Amount)
	}
}

func TestPrepareRendersBusinessFailureInline(t *testing.T) {
	facade := testhelpers.OrderingFacadeStub{
		PrepareFn: func(context.Context, int64, int32, []model.CartLine, decimal.Decimal) (*model.PaymentQuote, error) {
			return &model.PaymentQuote{Amount: decimal.NewFromInt(9000), Reason: usecase.MsgAmountChanged}, nil
		},
	}

	body, _ := json.Marshal(dto.PrepareRequest{StoreID: 1, TableNumber: 3, Items: cartBody(), Total: decimal.NewFromInt(8000)})
	resp := performRequest(t, http.MethodPost, "/prepare", NewOrderHandler(facade).Prepare, body)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected inline failure with status 200, got %d", resp.Code)
	}
	var result dto.PrepareResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.OK || result.Reason != usecase.MsgAmountChanged {
		t.Fatalf("unexpected response: %+v", result)
	}
}

func TestPrepareRejectsMalformedBody(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/prepare", NewOrderHandler(testhelpers.OrderingFacadeStub{}).Prepare, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestPrepareInternalError(t *testing.T) {
	facade := testhelpers.OrderingFacadeStub{
		PrepareFn: func(context.Context, int64, int32, []model.CartLine, decimal.Decimal) (*model.PaymentQuote, error) {
			return nil, errors.New("db down")
		},
	}
	body, _ := json.Marshal(dto.PrepareRequest{StoreID: 1, TableNumber: 3, Items: cartBody(), Total: decimal.NewFromInt(9000)})
	resp := performRequest(t, http.MethodPost, "/prepare", NewOrderHandler(facade).Prepare, body)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestConfirmCreatesOrder(t *testing.T) {
	code := "order_1_3_abc"
	facade := testhelpers.OrderingFacadeStub{
		ConfirmFn: func(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, paidAmount decimal.Decimal, orderCode, paymentKey string) (*model.Order, error) {
			if orderCode != code || paymentKey != "pay_y" {
				t.Fatalf("unexpected correlation values: %q %q", orderCode, paymentKey)
			}
			return &model.Order{
				ID:          7,
				StoreID:     storeID,
				TableNumber: tableNumber,
				TotalAmount: paidAmount,
				Status:      model.OrderStatusConfirmed,
				OrderCode:   &orderCode,
				CreatedAt:   time.Now(),
			}, nil
		},
	}

	body, _ := json.Marshal(dto.ConfirmRequest{
		StoreID: 1, TableNumber: 3, Items: cartBody(),
		PaidAmount: decimal.NewFromInt(9000), OrderCode: code, PaymentKey: "pay_y",
	})
	resp := performRequest(t, http.MethodPost, "/confirm", NewOrderHandler(facade).Confirm, body)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var result dto.ConfirmResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.OrderID != 7 || result.Status != "confirmed" {
		t.Fatalf("unexpected response: %+v", result)
	}
	if !result.TotalAmount.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected total 9000, got %s", result.TotalAmount)
	}
}

func TestConfirmErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"price mismatch", &domainErrors.PriceMismatchError{ServerTotal: decimal.NewFromInt(9000), PaidAmount: decimal.NewFromInt(8000)}, http.StatusConflict},
		{"item not found", domainErrors.ErrItemNotFound, http.StatusUnprocessableEntity},
		{"item unavailable", &domainErrors.ItemUnavailableError{MenuItemID: 10, Name: "공기밥"}, http.StatusUnprocessableEntity},
		{"validation", domainErrors.ErrValidation, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.OrderingFacadeStub{
				ConfirmFn: func(context.Context, int64, int32, []model.CartLine, decimal.Decimal, string, string) (*model.Order, error) {
					return nil, tc.err
				},
			}
			body, _ := json.Marshal(dto.ConfirmRequest{
				StoreID: 1, TableNumber: 3, Items: cartBody(),
				PaidAmount: decimal.NewFromInt(8000), OrderCode: "X", PaymentKey: "Y",
			})
			resp := performRequest(t, http.MethodPost, "/confirm", NewOrderHandler(facade).Confirm, body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestConfirmMismatchCarriesServerAmount(t *testing.T) {
	facade := testhelpers.OrderingFacadeStub{
		ConfirmFn: func(context.Context, int64, int32, []model.CartLine, decimal.Decimal, string, string) (*model.Order, error) {
			return nil, &domainErrors.PriceMismatchError{ServerTotal: decimal.NewFromInt(9000), PaidAmount: decimal.NewFromInt(8000)}
		},
	}
	body, _ := json.Marshal(dto.ConfirmRequest{
		StoreID: 1, TableNumber: 3, Items: cartBody(),
		PaidAmount: decimal.NewFromInt(8000), OrderCode: "X", PaymentKey: "Y",
	})
	resp := performRequest(t, http.MethodPost, "/confirm", NewOrderHandler(facade).Confirm, body)

	var result dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.Amount == nil || !result.Amount.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected authoritative amount 9000 in error body, got %+v", result)
	}
}

func TestAccumulateReportsBatchOutcome(t *testing.T) {
	facade := testhelpers.OrderingFacadeStub{
		AccumulateFn: func(context.Context, int64, int32, []model.CartLine) (*model.AccumulateResult, error) {
			return &model.AccumulateResult{
				CreatedNew:      false,
				OrderID:         21,
				AddedItemsCount: 1,
				AddedTotal:      decimal.NewFromInt(4500),
				TotalAmount:     decimal.NewFromInt(9000),
				Status:          model.OrderStatusPending,
			}, nil
		},
	}

	body, _ := json.Marshal(dto.AccumulateRequest{StoreID: 1, TableNumber: 3, Items: cartBody()})
	resp := performRequest(t, http.MethodPost, "/accumulate", NewOrderHandler(facade).Accumulate, body)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var result dto.AccumulateResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.CreatedNewOrder || result.OrderID != 21 || result.Status != "pending" {
		t.Fatalf("unexpected response: %+v", result)
	}
	if !result.TotalAmount.Equal(decimal.NewFromInt(9000)) || !result.AddTotal.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("unexpected totals: %+v", result)
	}
}

func TestAccumulateSurfacesItemErrors(t *testing.T) {
	facade := testhelpers.OrderingFacadeStub{
		AccumulateFn: func(context.Context, int64, int32, []model.CartLine) (*model.AccumulateResult, error) {
			return nil, domainErrors.ErrItemNotFound
		},
	}
	body, _ := json.Marshal(dto.AccumulateRequest{StoreID: 1, TableNumber: 3, Items: cartBody()})
	resp := performRequest(t, http.MethodPost, "/accumulate", NewOrderHandler(facade).Accumulate, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestListOrders(t *testing.T) {
	t.Run("missing query params", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(testhelpers.OrderingFacadeStub{}).List, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 without query params, got %d", resp.Code)
		}
	})

	t.Run("lists orders with items", func(t *testing.T) {
		code := "order_1_3_abc"
		facade := testhelpers.OrderingFacadeStub{
			ListFn: func(context.Context, int64, int32) ([]model.Order, error) {
				return []model.Order{{ID: 7, TableNumber: 3, TotalAmount: decimal.NewFromInt(9000), Status: model.OrderStatusConfirmed, OrderCode: &code}}, nil
			},
			ItemsFn: func(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
				return []model.OrderItem{{OrderID: orderID, MenuItemID: 10, Quantity: 2, PriceAtTime: decimal.NewFromInt(4500)}}, nil
			},
		}
		router := gin.New()
		router.GET("/orders", NewOrderHandler(facade).List)
		req := httptest.NewRequest(http.MethodGet, "/orders?store_id=1&table_number=3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var result []dto.OrderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(result) != 1 || result[0].OrderID != 7 || len(result[0].Items) != 1 {
			t.Fatalf("unexpected response: %+v", result)
		}
		if !result[0].Items[0].PriceAtTime.Equal(decimal.NewFromInt(4500)) {
			t.Fatalf("expected price-at-time 4500, got %s", result[0].Items[0].PriceAtTime)
		}
	})

	t.Run("no orders yields 204", func(t *testing.T) {
		router := gin.New()
		router.GET("/orders", NewOrderHandler(testhelpers.OrderingFacadeStub{}).List)
		req := httptest.NewRequest(http.MethodGet, "/orders?store_id=1&table_number=3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", w.Code)
		}
	})
}
