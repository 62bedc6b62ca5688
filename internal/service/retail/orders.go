package retail

import (
	"context"
	"net/http"

	"retailgenie/gateway/internal/model"
)

func (c *Client) GetOrders(ctx context.Context) ([]model.Order, error) {
	return list[model.Order](ctx, c, "/api/orders", "orders")
}

func (c *Client) CreateOrder(ctx context.Context, input model.Order) (model.Order, error) {
	return call[model.Order](ctx, c, http.MethodPost, "/api/orders", input)
}

func (c *Client) UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (model.Order, error) {
	return call[model.Order](ctx, c, http.MethodPut, "/api/orders/"+id, patch)
}
