package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/logging"
	"github.com/carson-networks/vending-server/internal/service"
)

// CreateProductBody is the request body for creating a product.
type CreateProductBody struct {
	Name  string `json:"name" required:"true" minLength:"1" doc:"Product name"`
	Price int64  `json:"price" required:"true" minimum:"1" doc:"Price in the smallest currency unit"`
	Stock int64  `json:"stock" required:"true" minimum:"0" doc:"Initial stock"`
	Image string `json:"image,omitempty" doc:"Image URL"`
}

// CreateProductInput is the Huma input for creating a product.
type CreateProductInput struct {
	Body CreateProductBody
}

type productCreator interface {
	CreateProduct(ctx context.Context, input service.ProductInput) (service.Product, error)
}

// CreateProductHandler handles POST /v1/products.
type CreateProductHandler struct {
	CatalogService productCreator
	Formatter      *currency.Formatter
}

func NewCreateProductHandler(svc productCreator, f *currency.Formatter) *CreateProductHandler {
	return &CreateProductHandler{CatalogService: svc, Formatter: f}
}

func (h *CreateProductHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/v1/products",
		Summary:       "Create product",
		Description:   "Adds a product to the catalog.",
		Tags:          []string{"Products"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateProductHandler) handle(ctx context.Context, input *CreateProductInput) (*ProductOutput, error) {
	p, err := h.CatalogService.CreateProduct(ctx, service.ProductInput{
		Name:  input.Body.Name,
		Price: input.Body.Price,
		Stock: input.Body.Stock,
		Image: input.Body.Image,
	})
	if err != nil {
		return nil, catalogError(err, "create product")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("productID", p.ID.String())
	}
	return &ProductOutput{Body: convertProduct(p, h.Formatter)}, nil
}
