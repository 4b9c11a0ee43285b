package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/minjae-ko/tableorder/internal/domain/errors"
	"github.com/minjae-ko/tableorder/internal/domain/model"
	"github.com/minjae-ko/tableorder/internal/pkg/ordercode"
)

// Storefront-facing advisory messages, rendered inline before payment starts.
const (
	MsgMissingFields = "필수 정보가 누락되었습니다."
	MsgItemNotFound  = "존재하지 않거나 이 매장 소속이 아닌 메뉴가 포함되어 있습니다."
	MsgAmountChanged = "금액이 변경되었습니다. 금액을 확인해주세요."
)

// PaymentUseCase runs the pre-payment check: it verifies the client-declared
// total against the server-computed one and mints the order code that later
// links the payment-provider callback back to this quote.
type PaymentUseCase struct {
	pricing *PricingUseCase
	codes   ordercode.Generator
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(pricing *PricingUseCase, codes ordercode.Generator) *PaymentUseCase {
	return &PaymentUseCase{pricing: pricing, codes: codes}
}

// Prepare validates the cart and the declared total. Expected business
// failures come back as OK=false with a reason, never as an error; only
// infrastructure faults are returned as errors. Nothing is persisted, so
// repeated calls are safe and each success mints an independent order code.
func (u *PaymentUseCase) Prepare(ctx context.Context, storeID int64, tableNumber int32, lines []model.CartLine, clientTotal decimal.Decimal) (*model.PaymentQuote, error) {
	if err := ValidateScope(storeID, tableNumber); err != nil {
		return &model.PaymentQuote{Reason: MsgMissingFields}, nil
	}
	if err := ValidateCart(lines); err != nil {
		return &model.PaymentQuote{Reason: MsgMissingFields}, nil
	}

	quote, err := u.pricing.Reconcile(ctx, storeID, lines)
	if err != nil {
		if reason, ok := reasonFor(err); ok {
			return &model.PaymentQuote{Reason: reason}, nil
		}
		return nil, err
	}

	if !quote.Total.Equal(clientTotal) {
		// Still report the authoritative amount so the UI can re-quote.
		return &model.PaymentQuote{Amount: quote.Total, Reason: MsgAmountChanged}, nil
	}

	return &model.PaymentQuote{
		OK:        true,
		Amount:    quote.Total,
		OrderCode: u.codes.Next(storeID, tableNumber),
	}, nil
}

// reasonFor maps expected reconciliation failures to storefront messages.
func reasonFor(err error) (string, bool) {
	switch {
	case errors.Is(err, domainErrors.ErrItemNotFound):
		return MsgItemNotFound, true
	case errors.Is(err, domainErrors.ErrItemUnavailable):
		return err.Error(), true
	case errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrValidation):
		return MsgMissingFields, true
	}
	return "", false
}
