package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListLeads fetches all leads for the authenticated user. The platform
// returns a bare JSON array here, unlike the enveloped campaign routes.
func (c *Client) ListLeads(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := c.do(ctx, http.MethodGet, "/api/leads", nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// UpdateLeadStatus moves a lead between cold, warm, and hot. The platform
// responds with a confirmation message only, not the updated record.
func (c *Client) UpdateLeadStatus(ctx context.Context, id, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	path := fmt.Sprintf("/api/leads/%s/status", id)
	return c.do(ctx, http.MethodPut, path, body, nil)
}
