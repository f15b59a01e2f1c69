package product

import (
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

const tableName = "products"

var columns = []any{"id", "name", "price", "stock", "image", "created_at", "updated_at"}

var (
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyZero means a conditional stock decrement found less stock than requested.
	ErrAlreadyZero = errors.New("product stock already zero")
)

// Product represents a product record.
type Product struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Price     int64     `db:"price"`
	Stock     int64     `db:"stock"`
	Image     string    `db:"image"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProductCreate is the input for creating a new product.
type ProductCreate struct {
	Name  string
	Price int64
	Stock int64
	Image string
}

// ProductUpdate is a partial update. Unset fields keep their stored value.
type ProductUpdate struct {
	Name  omit.Val[string]
	Price omit.Val[int64]
	Stock omit.Val[int64]
	Image omit.Val[string]
}

// ProductFilter specifies filters for listing products.
type ProductFilter struct {
	Limit  int
	Offset int
}

// ProductCursor identifies a position in a paginated result set.
type ProductCursor struct {
	Position int
	Limit    int
}

// ProductListResult contains a page of products and an optional next cursor.
type ProductListResult struct {
	Products   []*Product
	NextCursor *ProductCursor
}
