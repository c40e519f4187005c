package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against srv with sleeps disabled.
func newTestClient(srv *httptest.Server, opts ...Option) (*Client, *[]time.Duration) {
	var slept []time.Duration
	client := NewClient(srv.URL, opts...)
	client.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}
	return client, &slept
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv, WithTokenSource(StaticToken("tok-123")))
	err := client.do(context.Background(), http.MethodGet, "/api/health", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID, "every request carries an X-Request-ID")
}

func TestClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	var gotAuth string
	var sawHeader bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv, WithTokenSource(StaticToken("")))
	err := client.do(context.Background(), http.MethodGet, "/api/health", nil, nil)
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader, "empty token must not produce an Authorization header")
}

func TestClient_RetriesRateLimitOnce(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, slept := newTestClient(srv)
	err := client.do(context.Background(), http.MethodGet, "/api/dashboard", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, *slept, 1)
	assert.Equal(t, 3*time.Second, (*slept)[0], "Retry-After seconds are honored")
}

func TestClient_SecondRateLimitSurfaces(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, slept := newTestClient(srv)
	err := client.do(context.Background(), http.MethodGet, "/api/dashboard", nil, nil)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Equal(t, int32(2), calls.Load(), "exactly one retry, never more")
	require.Len(t, *slept, 1)
	assert.Equal(t, defaultRetryAfter, (*slept)[0], "missing Retry-After falls back to the default")
}

func TestClient_RetryAfterHTTPDate(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", time.Now().Add(30*time.Second).UTC().Format(http.TimeFormat))
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, slept := newTestClient(srv)
	err := client.do(context.Background(), http.MethodGet, "/api/dashboard", nil, nil)
	require.NoError(t, err)

	require.Len(t, *slept, 1)
	assert.Greater(t, (*slept)[0], 20*time.Second)
	assert.LessOrEqual(t, (*slept)[0], 30*time.Second)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "401 is unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"detail":"token expired"}`,
			wantKind: KindUnauthorized,
			wantMsg:  "token expired",
		},
		{
			name:     "422 is validation",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail":"email already registered"}`,
			wantKind: KindValidation,
			wantMsg:  "email already registered",
		},
		{
			name:     "500 is server",
			status:   http.StatusInternalServerError,
			body:     `{"error":"boom"}`,
			wantKind: KindServer,
			wantMsg:  "boom",
		},
		{
			name:     "non-JSON body becomes the message",
			status:   http.StatusBadGateway,
			body:     "upstream timeout",
			wantKind: KindServer,
			wantMsg:  "upstream timeout",
		},
		{
			name:     "message field is honored",
			status:   http.StatusBadRequest,
			body:     `{"message":"missing campaign type"}`,
			wantKind: KindValidation,
			wantMsg:  "missing campaign type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, _ := newTestClient(srv)
			err := client.do(context.Background(), http.MethodGet, "/api/x", nil, nil)

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotEmpty(t, apiErr.RequestID)
		})
	}
}

func TestClient_ValidationFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"invalid input","errors":{"email":"invalid format"}}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	err := client.do(context.Background(), http.MethodPost, "/api/auth/register", nil, nil)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "invalid format", apiErr.Fields["email"])
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client, _ := newTestClient(srv)
	err := client.do(context.Background(), http.MethodGet, "/api/health", nil, nil)

	require.Error(t, err)
	assert.True(t, IsNetwork(err))

	apiErr, _ := AsError(err)
	assert.Zero(t, apiErr.Status)
	assert.Error(t, apiErr.Cause)
}

func TestClient_LoginDecodesAuthResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","email":"a@example.com","onboarding_completed":true}}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	result, err := client.Login(context.Background(), Credentials{Email: "a@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, "u1", result.User.ID)
	assert.True(t, result.User.OnboardingCompleted)
}

func TestClient_ListCampaignsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"Campaigns retrieved successfully",` +
			`"timestamp":"2026-08-29T10:00:00Z",` +
			`"data":[{"id":"c1","title":"Spring launch","campaign_type":"email"}]}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	campaigns, err := client.ListCampaigns(context.Background())
	require.NoError(t, err)

	require.Len(t, campaigns, 1)
	assert.Equal(t, "Spring launch", campaigns[0].Title)
	assert.Equal(t, CampaignTypeEmail, campaigns[0].CampaignType)
}

func TestClient_GetCampaignUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/campaigns/c1", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Campaign retrieved successfully",` +
			`"data":{"id":"c1","title":"Spring launch","content":"Hello"}}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	campaign, err := client.GetCampaign(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "c1", campaign.ID)
	assert.Equal(t, "Hello", campaign.Content)
}

func TestClient_GenerateCampaignDecodesCampaignKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"campaign":{"id":"c9","title":"Generated","campaign_type":"email"},` +
			`"message":"Campaign generated successfully"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	campaign, err := client.GenerateCampaign(context.Background(), GenerateCampaignRequest{CampaignType: "email"})
	require.NoError(t, err)

	assert.Equal(t, "c9", campaign.ID)
	assert.Equal(t, "Generated", campaign.Title)
}

func TestClient_UpdateCampaignSendsQueryParams(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/campaigns/c1", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"message":"Campaign updated successfully"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	err := client.UpdateCampaign(context.Background(), "c1", "New title", "")
	require.NoError(t, err)

	assert.Equal(t, "title=New+title", gotQuery)
}

func TestClient_ListLeadsDecodesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/leads", r.URL.Path)
		w.Write([]byte(`[{"id":"l1","name":"Ada","email":"ada@example.com","status":"warm"}]`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	leads, err := client.ListLeads(context.Background())
	require.NoError(t, err)

	require.Len(t, leads, 1)
	assert.Equal(t, "Ada", leads[0].Name)
	assert.Equal(t, LeadStatusWarm, leads[0].Status)
}

func TestClient_UpdateLeadStatusAcceptsMessageOnlyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/leads/l1/status", r.URL.Path)
		w.Write([]byte(`{"message":"Lead status updated successfully"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	err := client.UpdateLeadStatus(context.Background(), "l1", LeadStatusHot)
	require.NoError(t, err)
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "seconds", header: "5", want: 5 * time.Second},
		{name: "zero seconds", header: "0", want: 0},
		{name: "missing header", header: "", want: defaultRetryAfter},
		{name: "garbage", header: "soon", want: defaultRetryAfter},
		{name: "date in the past", header: time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			assert.Equal(t, tt.want, retryAfter(resp))
		})
	}
}
