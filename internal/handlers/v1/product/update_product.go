package product

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/service"
)

// UpdateProductBody is the request body for updating a product. Absent fields are left unchanged.
type UpdateProductBody struct {
	Name  *string `json:"name,omitempty" minLength:"1" doc:"Product name"`
	Price *int64  `json:"price,omitempty" minimum:"1" doc:"Price in the smallest currency unit"`
	Stock *int64  `json:"stock,omitempty" minimum:"0" doc:"Units in stock"`
	Image *string `json:"image,omitempty" doc:"Image URL"`
}

// UpdateProductInput is the Huma input for updating a product.
type UpdateProductInput struct {
	ID   string `path:"id" format:"uuid" doc:"Product UUID"`
	Body UpdateProductBody
}

type productUpdater interface {
	UpdateProduct(ctx context.Context, id uuid.UUID, patch service.ProductPatch) (service.Product, error)
}

// UpdateProductHandler handles PUT /v1/products/{id}.
type UpdateProductHandler struct {
	CatalogService productUpdater
	Formatter      *currency.Formatter
}

func NewUpdateProductHandler(svc productUpdater, f *currency.Formatter) *UpdateProductHandler {
	return &UpdateProductHandler{CatalogService: svc, Formatter: f}
}

func (h *UpdateProductHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPut,
		Path:        "/v1/products/{id}",
		Summary:     "Update product",
		Description: "Changes the given fields of a product.",
		Tags:        []string{"Products"},
	}, h.handle)
}

func optional[T any](v *T) omit.Val[T] {
	if v == nil {
		return omit.Val[T]{}
	}
	return omit.From(*v)
}

func parseUpdateProductInput(input *UpdateProductInput) (uuid.UUID, service.ProductPatch, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, service.ProductPatch{}, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return id, service.ProductPatch{
		Name:  optional(input.Body.Name),
		Price: optional(input.Body.Price),
		Stock: optional(input.Body.Stock),
		Image: optional(input.Body.Image),
	}, nil
}

func (h *UpdateProductHandler) handle(ctx context.Context, input *UpdateProductInput) (*ProductOutput, error) {
	id, patch, err := parseUpdateProductInput(input)
	if err != nil {
		return nil, err
	}

	p, err := h.CatalogService.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, catalogError(err, "update product")
	}
	return &ProductOutput{Body: convertProduct(p, h.Formatter)}, nil
}
