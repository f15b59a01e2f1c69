package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/purchase"
	"github.com/carson-networks/vending-server/internal/storage/product"
)

const defaultProductLimit = 20

var (
	ErrInvalidProduct = errors.New("invalid product")
	// ErrProductNotFound is shared with the purchase workflow so both layers report the same sentinel.
	ErrProductNotFound = purchase.ErrProductNotFound
)

// CatalogService handles product business logic. Reads go straight to storage; writes
// are queued on the operator.
type CatalogService struct {
	reader    ProductReader
	processor Processor
}

func NewCatalogService(reader ProductReader, processor Processor) *CatalogService {
	return &CatalogService{reader: reader, processor: processor}
}

// ListProducts returns a page of products, oldest first.
func (s *CatalogService) ListProducts(ctx context.Context, cursor *ProductCursor) ([]Product, *ProductCursor, error) {
	filter := &product.ProductFilter{Limit: defaultProductLimit}
	if cursor != nil {
		filter.Limit = cursor.Limit
		filter.Offset = cursor.Position
	}

	result, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	products := make([]Product, len(result.Products))
	for i, row := range result.Products {
		products[i] = convertProduct(row)
	}

	var next *ProductCursor
	if result.NextCursor != nil {
		next = &ProductCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}
	return products, next, nil
}

func (s *CatalogService) FindProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	row, err := s.reader.FindByID(ctx, id)
	if errors.Is(err, product.ErrNotFound) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return convertProduct(row), nil
}

// GetProduct returns the snapshot the purchase workflow evaluates against.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (purchase.Product, error) {
	p, err := s.FindProduct(ctx, id)
	if err != nil {
		return purchase.Product{}, err
	}
	return purchase.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
		Image: p.Image,
	}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateProduct(omit.From(input.Name), omit.From(input.Price), omit.From(input.Stock), omit.From(input.Image)); err != nil {
		return Product{}, err
	}

	action := &actions.CreateProduct{
		Create: product.ProductCreate{
			Name:  input.Name,
			Price: input.Price,
			Stock: input.Stock,
			Image: input.Image,
		},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return Product{}, err
	}
	return convertProduct(action.Product), nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (Product, error) {
	if name, ok := patch.Name.Get(); ok {
		patch.Name = omit.From(strings.TrimSpace(name))
	}
	if err := validateProduct(patch.Name, patch.Price, patch.Stock, patch.Image); err != nil {
		return Product{}, err
	}

	action := &actions.UpdateProduct{
		ID: id,
		Update: product.ProductUpdate{
			Name:  patch.Name,
			Price: patch.Price,
			Stock: patch.Stock,
			Image: patch.Image,
		},
	}
	err := s.processor.Process(ctx, action)
	if errors.Is(err, product.ErrNotFound) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return convertProduct(action.Product), nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.processor.Process(ctx, &actions.DeleteProduct{ID: id})
	if errors.Is(err, product.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func validateProduct(name omit.Val[string], price, stock omit.Val[int64], image omit.Val[string]) error {
	var errs []error
	if v, ok := name.Get(); ok && v == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if v, ok := price.Get(); ok && v <= 0 {
		errs = append(errs, fmt.Errorf("price must be positive, got %d", v))
	}
	if v, ok := stock.Get(); ok && v < 0 {
		errs = append(errs, fmt.Errorf("stock must not be negative, got %d", v))
	}
	if v, ok := image.Get(); ok && v != "" && !validImage(v) {
		errs = append(errs, fmt.Errorf("image must be an absolute http(s) URL or a path, got %q", v))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidProduct, errors.Join(errs...))
}

func validImage(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return strings.HasPrefix(raw, "/")
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func convertProduct(row *product.Product) Product {
	return Product{
		ID:        row.ID,
		Name:      row.Name,
		Price:     row.Price,
		Stock:     row.Stock,
		Image:     row.Image,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
