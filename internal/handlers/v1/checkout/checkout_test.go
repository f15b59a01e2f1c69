package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/purchase"
	"github.com/carson-networks/vending-server/internal/service"
)

type mockPurchaseService struct {
	mock.Mock
}

func (m *mockPurchaseService) Evaluate(ctx context.Context, productID uuid.UUID, inserted int64) (service.Evaluation, error) {
	args := m.Called(ctx, productID, inserted)
	return args.Get(0).(service.Evaluation), args.Error(1)
}

func (m *mockPurchaseService) Confirm(ctx context.Context, attemptID uuid.UUID) (purchase.Outcome, error) {
	args := m.Called(ctx, attemptID)
	return args.Get(0).(purchase.Outcome), args.Error(1)
}

func (m *mockPurchaseService) Cancel(attemptID uuid.UUID) (purchase.Outcome, error) {
	args := m.Called(attemptID)
	return args.Get(0).(purchase.Outcome), args.Error(1)
}

func newTestAPI(t *testing.T, svc purchaseService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	f := currency.DefaultFormatter()
	NewEvaluatePurchaseHandler(svc, f).Register(api)
	NewConfirmPurchaseHandler(svc, f).Register(api)
	NewCancelPurchaseHandler(svc, f).Register(api)
	return api
}

func decode(t *testing.T, body io.Reader) PurchaseResult {
	t.Helper()
	var result PurchaseResult
	require.NoError(t, json.NewDecoder(body).Decode(&result))
	return result
}

// -- evaluate --

func TestHTTP_Evaluate_AwaitingConfirmation(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())
	attemptID := uuid.Must(uuid.NewV4())
	expiresAt := time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC)

	svc := new(mockPurchaseService)
	outcome, err := purchase.Evaluate(purchase.Product{ID: productID, Name: "Coca Cola", Price: 5000, Stock: 10}, 10000)
	require.NoError(t, err)
	svc.On("Evaluate", mock.Anything, productID, int64(10000)).
		Return(service.Evaluation{AttemptID: attemptID, ExpiresAt: expiresAt, Outcome: outcome})

	resp := newTestAPI(t, svc).Post("/v1/purchase/evaluate", EvaluatePurchaseBody{
		ProductID:     productID.String(),
		InsertedMoney: 10000,
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	result := decode(t, resp.Body)
	assert.Equal(t, "AWAITING_CONFIRMATION", result.State)
	assert.Equal(t, attemptID.String(), result.AttemptID)
	assert.Equal(t, "2025-03-01T09:05:00Z", result.ExpiresAt)
	assert.Equal(t, int64(5000), result.Change)
	assert.Equal(t, "Rp 5.000", result.ChangeLabel)
	require.NotNil(t, result.Product)
	assert.Equal(t, "Coca Cola", result.Product.Name)
	svc.AssertExpectations(t)
}

func TestHTTP_Evaluate_InsufficientFunds(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())

	svc := new(mockPurchaseService)
	svc.On("Evaluate", mock.Anything, productID, int64(5000)).
		Return(service.Evaluation{Outcome: purchase.Outcome{
			State:     purchase.StateRejected,
			Reason:    purchase.ReasonInsufficientFunds,
			Shortfall: 3000,
		}})

	resp := newTestAPI(t, svc).Post("/v1/purchase/evaluate", EvaluatePurchaseBody{
		ProductID:     productID.String(),
		InsertedMoney: 5000,
	})

	assert.Equal(t, http.StatusOK, resp.Code, "rejections are outcomes, not errors")
	result := decode(t, resp.Body)
	assert.Equal(t, "REJECTED", result.State)
	assert.Equal(t, "INSUFFICIENT_FUNDS", result.Reason)
	assert.Equal(t, int64(3000), result.Shortfall)
	assert.Contains(t, result.Message, "Rp 3.000")
	assert.Empty(t, result.AttemptID)
}

func TestHTTP_Evaluate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"negative money", purchase.ErrNegativeMoney, http.StatusBadRequest},
		{"unknown product", purchase.ErrProductNotFound, http.StatusNotFound},
		{"store down", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPurchaseService)
			svc.On("Evaluate", mock.Anything, mock.Anything, mock.Anything).Return(service.Evaluation{}, tt.err)

			resp := newTestAPI(t, svc).Post("/v1/purchase/evaluate", EvaluatePurchaseBody{
				ProductID:     uuid.Must(uuid.NewV4()).String(),
				InsertedMoney: -1,
			})

			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestHTTP_Evaluate_InvalidProductID(t *testing.T) {
	svc := new(mockPurchaseService)

	// Huma's format:"uuid" schema validation rejects this before the handler runs.
	resp := newTestAPI(t, svc).Post("/v1/purchase/evaluate", EvaluatePurchaseBody{
		ProductID:     "not-a-uuid",
		InsertedMoney: 5000,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Evaluate")
}

// -- confirm --

func TestHTTP_Confirm_Completed(t *testing.T) {
	attemptID := uuid.Must(uuid.NewV4())
	productID := uuid.Must(uuid.NewV4())
	ts := time.Date(2025, 3, 1, 9, 1, 0, 0, time.UTC)

	svc := new(mockPurchaseService)
	svc.On("Confirm", mock.Anything, attemptID).Return(purchase.Outcome{
		State:   purchase.StateCompleted,
		Product: &purchase.Product{ID: productID, Name: "Sprite", Price: 5000, Stock: 7},
		Transaction: &purchase.Transaction{
			ID:            uuid.Must(uuid.NewV4()),
			ProductID:     productID,
			ProductName:   "Sprite",
			Quantity:      1,
			TotalPrice:    5000,
			MoneyInserted: 5000,
			Timestamp:     ts,
		},
	})

	resp := newTestAPI(t, svc).Post(fmt.Sprintf("/v1/purchase/%s/confirm", attemptID))

	assert.Equal(t, http.StatusOK, resp.Code)
	result := decode(t, resp.Body)
	assert.Equal(t, "COMPLETED", result.State)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, int64(5000), result.Transaction.TotalPrice)
	assert.Equal(t, "2025-03-01T09:01:00Z", result.Transaction.Timestamp)
	require.NotNil(t, result.Product)
	assert.Equal(t, int64(7), result.Product.Stock)
	svc.AssertExpectations(t)
}

func TestHTTP_Confirm_OutOfStockAfterRetry(t *testing.T) {
	attemptID := uuid.Must(uuid.NewV4())

	svc := new(mockPurchaseService)
	svc.On("Confirm", mock.Anything, attemptID).Return(purchase.Outcome{
		State:   purchase.StateRejected,
		Reason:  purchase.ReasonOutOfStock,
		Retried: true,
	})

	resp := newTestAPI(t, svc).Post(fmt.Sprintf("/v1/purchase/%s/confirm", attemptID))

	assert.Equal(t, http.StatusOK, resp.Code)
	result := decode(t, resp.Body)
	assert.Equal(t, "OUT_OF_STOCK", result.Reason)
	assert.True(t, result.Retried)
}

func TestHTTP_Confirm_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown attempt", service.ErrAttemptNotFound, http.StatusNotFound},
		{"commit failed", fmt.Errorf("%w: %w", purchase.ErrCommitFailed, errors.New("disk full")), http.StatusServiceUnavailable},
		{"product deleted", purchase.ErrProductNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPurchaseService)
			svc.On("Confirm", mock.Anything, mock.Anything).
				Return(purchase.Outcome{State: purchase.StateFailed}, tt.err)

			resp := newTestAPI(t, svc).Post(fmt.Sprintf("/v1/purchase/%s/confirm", uuid.Must(uuid.NewV4())))

			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

// -- cancel --

func TestHTTP_Cancel(t *testing.T) {
	attemptID := uuid.Must(uuid.NewV4())

	svc := new(mockPurchaseService)
	svc.On("Cancel", attemptID).Return(purchase.Outcome{State: purchase.StateIdle}, nil).Once()
	svc.On("Cancel", attemptID).Return(purchase.Outcome{}, service.ErrAttemptNotFound).Once()

	api := newTestAPI(t, svc)

	resp := api.Post(fmt.Sprintf("/v1/purchase/%s/cancel", attemptID))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "IDLE", decode(t, resp.Body).State)

	resp = api.Post(fmt.Sprintf("/v1/purchase/%s/cancel", attemptID))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	svc.AssertExpectations(t)
}
