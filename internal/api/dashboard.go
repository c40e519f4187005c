package api

import (
	"context"
	"net/http"
)

// Dashboard fetches the aggregate counts shown on the dashboard.
func (c *Client) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health checks platform reachability. Unauthenticated.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
