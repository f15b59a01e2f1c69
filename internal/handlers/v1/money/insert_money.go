package money

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/currency"
)

// InsertMoneyBody is the request body for inserting one note.
type InsertMoneyBody struct {
	Current      int64 `json:"current" minimum:"0" doc:"Money inserted so far"`
	Denomination int64 `json:"denomination" required:"true" doc:"Face value of the inserted note"`
}

// InsertMoneyInput is the Huma input for inserting one note.
type InsertMoneyInput struct {
	Body InsertMoneyBody
}

// InsertMoneyResponseBody carries the new running total.
type InsertMoneyResponseBody struct {
	Total      int64  `json:"total" doc:"Money inserted including this note"`
	TotalLabel string `json:"totalLabel" doc:"Formatted total"`
}

// InsertMoneyOutput is the Huma output for inserting one note.
type InsertMoneyOutput struct {
	Body InsertMoneyResponseBody
}

// InsertMoneyHandler handles POST /v1/money/insert. The total lives with the caller; the
// server only validates and sums.
type InsertMoneyHandler struct {
	Formatter *currency.Formatter
}

func NewInsertMoneyHandler(f *currency.Formatter) *InsertMoneyHandler {
	return &InsertMoneyHandler{Formatter: f}
}

func (h *InsertMoneyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "insert-money",
		Method:      http.MethodPost,
		Path:        "/v1/money/insert",
		Summary:     "Insert money",
		Description: "Adds one accepted denomination to a running total.",
		Tags:        []string{"Money"},
	}, h.handle)
}

func (h *InsertMoneyHandler) handle(_ context.Context, input *InsertMoneyInput) (*InsertMoneyOutput, error) {
	total, err := currency.Insert(input.Body.Current, input.Body.Denomination)
	if errors.Is(err, currency.ErrUnknownDenomination) || errors.Is(err, currency.ErrNegativeAmount) ||
		errors.Is(err, currency.ErrAmountOverflow) {
		return nil, huma.NewError(http.StatusBadRequest, err.Error(), err)
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to insert money", err)
	}

	return &InsertMoneyOutput{Body: InsertMoneyResponseBody{
		Total:      total,
		TotalLabel: h.Formatter.Format(total),
	}}, nil
}
