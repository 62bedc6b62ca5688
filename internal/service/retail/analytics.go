package retail

import (
	"context"
	"net/http"
)

func (c *Client) GetDashboard(ctx context.Context) (DashboardData, error) {
	return call[DashboardData](ctx, c, http.MethodGet, "/api/analytics/dashboard", nil)
}
