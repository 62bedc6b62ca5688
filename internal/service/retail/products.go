package retail

import (
	"context"
	"net/http"

	"retailgenie/gateway/internal/model"
)

func (c *Client) GetProducts(ctx context.Context) ([]model.Product, error) {
	return list[model.Product](ctx, c, "/api/products", "products")
}

func (c *Client) CreateProduct(ctx context.Context, input model.Product) (model.Product, error) {
	return call[model.Product](ctx, c, http.MethodPost, "/api/products", input)
}

// UpdateProduct sends only the fields set in patch. The id is placed in the
// path as given.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error) {
	return call[model.Product](ctx, c, http.MethodPut, "/api/products/"+id, patch)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/products/"+id, nil)
	return err
}
