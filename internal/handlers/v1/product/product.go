package product

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/service"
)

// Product is the API response model for a catalog product.
type Product struct {
	ID         string `json:"id" doc:"Product UUID"`
	Name       string `json:"name" doc:"Product name"`
	Price      int64  `json:"price" doc:"Price in the smallest currency unit"`
	PriceLabel string `json:"priceLabel" doc:"Formatted price"`
	Stock      int64  `json:"stock" doc:"Units left"`
	Image      string `json:"image" doc:"Image URL"`
	CreatedAt  string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt  string `json:"updatedAt" doc:"RFC3339 last update time"`
}

// ProductOutput is the Huma output for endpoints returning one product.
type ProductOutput struct {
	Body Product
}

// ProductIDInput addresses a single product.
type ProductIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Product UUID"`
}

func convertProduct(p service.Product, f *currency.Formatter) Product {
	return Product{
		ID:         p.ID.String(),
		Name:       p.Name,
		Price:      p.Price,
		PriceLabel: f.Format(p.Price),
		Stock:      p.Stock,
		Image:      p.Image,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}

func catalogError(err error, action string) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return huma.NewError(http.StatusNotFound, "product not found", err)
	case errors.Is(err, service.ErrInvalidProduct):
		return huma.NewError(http.StatusBadRequest, err.Error(), err)
	}
	return huma.NewError(http.StatusInternalServerError, "failed to "+action, err)
}
