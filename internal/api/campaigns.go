package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// The campaign routes wrap their payloads in a success envelope; generate
// uses its own key for the new campaign.
type campaignListEnvelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []Campaign `json:"data"`
}

type campaignEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    Campaign `json:"data"`
}

type generateCampaignResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Campaign Campaign `json:"campaign"`
}

// ListCampaigns fetches all campaigns for the authenticated user.
func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var resp campaignListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/campaigns", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetCampaign fetches a single campaign by ID.
func (c *Client) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	var resp campaignEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/campaigns/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GenerateCampaign asks the platform to generate a new campaign.
// Generation can take a while on the server side; the request shares the
// client timeout, and a rate-limited attempt is retried once like any other.
func (c *Client) GenerateCampaign(ctx context.Context, req GenerateCampaignRequest) (*Campaign, error) {
	var resp generateCampaignResponse
	if err := c.do(ctx, http.MethodPost, "/api/campaigns/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Campaign, nil
}

// UpdateCampaign changes a campaign's title and/or content. The platform
// takes both as query parameters and returns only a confirmation; empty
// values are omitted and leave the field unchanged.
func (c *Client) UpdateCampaign(ctx context.Context, id, title, content string) error {
	q := url.Values{}
	if title != "" {
		q.Set("title", title)
	}
	if content != "" {
		q.Set("content", content)
	}

	path := "/api/campaigns/" + id
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// DeleteCampaign removes a campaign.
func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/campaigns/"+id, nil, nil)
}

// SendEmailCampaign sends an email campaign to the given recipients.
func (c *Client) SendEmailCampaign(ctx context.Context, id string, recipients []string) error {
	body := struct {
		Recipients []string `json:"recipients"`
	}{Recipients: recipients}

	path := fmt.Sprintf("/api/campaigns/%s/send-email", id)
	return c.do(ctx, http.MethodPost, path, body, nil)
}
