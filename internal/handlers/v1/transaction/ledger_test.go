package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/service"
)

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Summary(ctx context.Context) (service.LedgerSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.LedgerSummary), args.Error(1)
}

func (m *mockLedgerService) ClearTransactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newLedgerTestAPI(t *testing.T, svc *mockLedgerService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSummaryHandler(svc, currency.DefaultFormatter()).Register(api)
	NewClearTransactionsHandler(svc).Register(api)
	return api
}

func TestHTTP_Summary(t *testing.T) {
	svc := new(mockLedgerService)
	svc.On("Summary", mock.Anything).Return(service.LedgerSummary{
		TotalTransactions:       3,
		TotalRevenue:            16000,
		AverageTransactionValue: decimal.RequireFromString("5333.33"),
	}, nil)

	resp := newLedgerTestAPI(t, svc).Get("/v1/transaction/summary")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummaryResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(3), body.TotalTransactions)
	assert.Equal(t, int64(16000), body.TotalRevenue)
	assert.Equal(t, "Rp 16.000", body.TotalRevenueLabel)
	assert.Equal(t, "5333.33", body.AverageTransactionValue)
}

func TestHTTP_Summary_EmptyLedger(t *testing.T) {
	svc := new(mockLedgerService)
	svc.On("Summary", mock.Anything).Return(service.LedgerSummary{}, nil)

	resp := newLedgerTestAPI(t, svc).Get("/v1/transaction/summary")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummaryResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0.00", body.AverageTransactionValue)
}

func TestHTTP_Summary_ServiceError(t *testing.T) {
	svc := new(mockLedgerService)
	svc.On("Summary", mock.Anything).Return(service.LedgerSummary{}, errors.New("database unavailable"))

	resp := newLedgerTestAPI(t, svc).Get("/v1/transaction/summary")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_ClearTransactions(t *testing.T) {
	svc := new(mockLedgerService)
	svc.On("ClearTransactions", mock.Anything).Return(int64(4), nil)

	resp := newLedgerTestAPI(t, svc).Delete("/v1/transaction")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ClearTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(4), body.Deleted)
	svc.AssertExpectations(t)
}

func TestHTTP_ClearTransactions_ServiceError(t *testing.T) {
	svc := new(mockLedgerService)
	svc.On("ClearTransactions", mock.Anything).Return(int64(0), errors.New("tx aborted"))

	resp := newLedgerTestAPI(t, svc).Delete("/v1/transaction")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
