package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/logging"
	"github.com/carson-networks/vending-server/internal/service"
)

// ListProductsInput is the Huma input for listing products. Position and limit come from
// a previous response's nextCursor.
type ListProductsInput struct {
	Position int `query:"position" minimum:"0" doc:"Offset of the page"`
	Limit    int `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 0 for the default"`
}

// ListProductsCursor points at the next page.
type ListProductsCursor struct {
	Position int `json:"position" doc:"Offset of the next page"`
	Limit    int `json:"limit" doc:"Page size used for this cursor"`
}

// ListProductsResponseBody is the response body for listing products.
type ListProductsResponseBody struct {
	Products   []Product           `json:"products" doc:"Page of products, oldest first"`
	NextCursor *ListProductsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListProductsOutput is the Huma output for listing products.
type ListProductsOutput struct {
	Body ListProductsResponseBody
}

type productLister interface {
	ListProducts(ctx context.Context, cursor *service.ProductCursor) ([]service.Product, *service.ProductCursor, error)
}

// ListProductsHandler handles GET /v1/products.
type ListProductsHandler struct {
	CatalogService productLister
	Formatter      *currency.Formatter
}

func NewListProductsHandler(svc productLister, f *currency.Formatter) *ListProductsHandler {
	return &ListProductsHandler{CatalogService: svc, Formatter: f}
}

func (h *ListProductsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/v1/products",
		Summary:     "List products",
		Description: "Returns the catalog in creation order.",
		Tags:        []string{"Products"},
	}, h.handle)
}

func parseListProductsInput(input *ListProductsInput) *service.ProductCursor {
	if input.Position == 0 && input.Limit == 0 {
		return nil
	}
	cursor := &service.ProductCursor{Position: input.Position, Limit: input.Limit}
	if cursor.Limit == 0 {
		cursor.Limit = 20
	}
	return cursor
}

func (h *ListProductsHandler) handle(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listProductsMs")
	}
	products, nextCursor, err := h.CatalogService.ListProducts(ctx, parseListProductsInput(input))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, catalogError(err, "list products")
	}

	if logData != nil {
		logData.AddData("productCount", len(products))
	}

	resp := ListProductsResponseBody{Products: make([]Product, len(products))}
	for i, p := range products {
		resp.Products[i] = convertProduct(p, h.Formatter)
	}
	if nextCursor != nil {
		resp.NextCursor = &ListProductsCursor{Position: nextCursor.Position, Limit: nextCursor.Limit}
	}

	return &ListProductsOutput{Body: resp}, nil
}
