package money

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/currency"
)

// Denomination is one accepted note or coin.
type Denomination struct {
	Value int64  `json:"value" doc:"Face value in the smallest currency unit"`
	Label string `json:"label" doc:"Formatted face value"`
}

// DenominationsResponseBody is the response body for listing denominations.
type DenominationsResponseBody struct {
	Currency      string         `json:"currency" doc:"ISO 4217 currency code"`
	Denominations []Denomination `json:"denominations" doc:"Accepted denominations, ascending"`
}

// DenominationsOutput is the Huma output for listing denominations.
type DenominationsOutput struct {
	Body DenominationsResponseBody
}

// DenominationsHandler handles GET /v1/denominations.
type DenominationsHandler struct {
	Formatter *currency.Formatter
}

func NewDenominationsHandler(f *currency.Formatter) *DenominationsHandler {
	return &DenominationsHandler{Formatter: f}
}

func (h *DenominationsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-denominations",
		Method:      http.MethodGet,
		Path:        "/v1/denominations",
		Summary:     "List denominations",
		Description: "Returns the notes the machine accepts.",
		Tags:        []string{"Money"},
	}, h.handle)
}

func (h *DenominationsHandler) handle(_ context.Context, _ *struct{}) (*DenominationsOutput, error) {
	denominations := h.Formatter.Denominations()
	resp := DenominationsResponseBody{
		Currency:      h.Formatter.Code(),
		Denominations: make([]Denomination, len(denominations)),
	}
	for i, d := range denominations {
		resp.Denominations[i] = Denomination{Value: d.Value, Label: d.Label}
	}
	return &DenominationsOutput{Body: resp}, nil
}
