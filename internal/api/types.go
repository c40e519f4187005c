package api

import "time"

// User is the platform user record. It is replaced wholesale on every
// successful profile fetch; the session controller never patches it
// field-by-field from an untrusted source.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`

	// Business profile, filled in by onboarding
	BusinessType   string `json:"business_type,omitempty"`
	Industry       string `json:"industry,omitempty"`
	ProductService string `json:"product_service,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	CampaignGoal   string `json:"campaign_goal,omitempty"`

	OnboardingCompleted bool `json:"onboarding_completed"`
}

// Credentials is the input to login and register. The platform accepts both
// password-based and passwordless (email-only) flows; which one applies is
// the integrating command's choice.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
}

// AuthResult is the login/register response: a freshly minted token plus the
// server's own user record from the same round trip.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Onboarding carries the business profile collected by the onboarding wizard.
type Onboarding struct {
	BusinessType   string `json:"business_type"`
	Industry       string `json:"industry"`
	ProductService string `json:"product_service"`
	TargetAudience string `json:"target_audience"`
	CampaignGoal   string `json:"campaign_goal"`
}

// Campaign types accepted by the platform.
const (
	CampaignTypeEmail         = "email"
	CampaignTypeSocialMedia   = "social_media"
	CampaignTypeDirectMessage = "direct_message"
)

// Campaign styles accepted by the platform.
const (
	CampaignStylePersuasive  = "persuasive"
	CampaignStyleInformative = "informative"
	CampaignStyleCasual      = "casual"
)

// Campaign is a generated marketing campaign.
type Campaign struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Title        string         `json:"title"`
	CampaignType string         `json:"campaign_type"`
	Content      string         `json:"content"`
	Style        string         `json:"style"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	ScheduledAt  *time.Time     `json:"scheduled_at,omitempty"`
	Performance  map[string]any `json:"performance,omitempty"`
}

// GenerateCampaignRequest asks the platform to generate campaign content.
// The generation itself is server-side and opaque to this client.
type GenerateCampaignRequest struct {
	CampaignType string `json:"campaign_type"`
	Style        string `json:"style,omitempty"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// Lead statuses used by the platform.
const (
	LeadStatusCold = "cold"
	LeadStatusWarm = "warm"
	LeadStatusHot  = "hot"
)

// Lead is a tracked campaign lead.
type Lead struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CampaignID      string    `json:"campaign_id"`
	Email           string    `json:"email,omitempty"`
	Name            string    `json:"name,omitempty"`
	InteractionType string    `json:"interaction_type"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	Notes           string    `json:"notes,omitempty"`
}

// DashboardStats is the aggregate view the dashboard renders.
type DashboardStats struct {
	CampaignsCount int            `json:"campaigns_count"`
	LeadsCount     int            `json:"leads_count"`
	TotalSent      int            `json:"total_sent"`
	LeadsByStatus  map[string]int `json:"leads_by_status"`
}
