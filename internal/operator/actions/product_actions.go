package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/storage"
	"github.com/carson-networks/vending-server/internal/storage/product"
)

type CreateProduct struct {
	Create product.ProductCreate

	Product *product.Product
}

func (c *CreateProduct) Name() string {
	return "CreateProduct"
}

func (c *CreateProduct) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Product.Create(ctx, &c.Create)
	if err != nil {
		return err
	}
	c.Product = created
	return nil
}

type UpdateProduct struct {
	ID     uuid.UUID
	Update product.ProductUpdate

	Product *product.Product
}

func (u *UpdateProduct) Name() string {
	return "UpdateProduct"
}

func (u *UpdateProduct) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Product.Update(ctx, u.ID, &u.Update)
	if err != nil {
		return err
	}
	u.Product = updated
	return nil
}

type DeleteProduct struct {
	ID uuid.UUID
}

func (d *DeleteProduct) Name() string {
	return "DeleteProduct"
}

func (d *DeleteProduct) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Product.Delete(ctx, d.ID)
}
