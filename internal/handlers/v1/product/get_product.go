package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/service"
)

type productFinder interface {
	FindProduct(ctx context.Context, id uuid.UUID) (service.Product, error)
}

// GetProductHandler handles GET /v1/products/{id}.
type GetProductHandler struct {
	CatalogService productFinder
	Formatter      *currency.Formatter
}

func NewGetProductHandler(svc productFinder, f *currency.Formatter) *GetProductHandler {
	return &GetProductHandler{CatalogService: svc, Formatter: f}
}

func (h *GetProductHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/v1/products/{id}",
		Summary:     "Get product",
		Tags:        []string{"Products"},
	}, h.handle)
}

func (h *GetProductHandler) handle(ctx context.Context, input *ProductIDInput) (*ProductOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	p, err := h.CatalogService.FindProduct(ctx, id)
	if err != nil {
		return nil, catalogError(err, "get product")
	}
	return &ProductOutput{Body: convertProduct(p, h.Formatter)}, nil
}
