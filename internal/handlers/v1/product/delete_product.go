package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

type productDeleter interface {
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// DeleteProductHandler handles DELETE /v1/products/{id}. Ledger history of the product is kept.
type DeleteProductHandler struct {
	CatalogService productDeleter
}

func NewDeleteProductHandler(svc productDeleter) *DeleteProductHandler {
	return &DeleteProductHandler{CatalogService: svc}
}

func (h *DeleteProductHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-product",
		Method:        http.MethodDelete,
		Path:          "/v1/products/{id}",
		Summary:       "Delete product",
		Tags:          []string{"Products"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteProductHandler) handle(ctx context.Context, input *ProductIDInput) (*struct{}, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.CatalogService.DeleteProduct(ctx, id); err != nil {
		return nil, catalogError(err, "delete product")
	}
	return nil, nil
}
