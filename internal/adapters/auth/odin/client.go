package odin

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-reminders/internal/platform/httpclient"
	"pet-care-reminders/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
)

// Config del cliente Odin (servicio de identidad del equipo).
// BaseURL y APIKey vienen de env vars en quien lo instancie.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// VerifyToken llama a Odin para verificar un token y traer claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}

	var out verifyResponse
	headers := map[string]string{c.apiKeyHeader: c.apiKey}
	if err := c.http.DoJSON(ctx, "POST", "/v1/tokens/verify", headers, verifyRequest{Token: token}, &out); err != nil {
		return auth.Claims{}, err
	}

	return auth.Claims{
		UserID:   out.UserID,
		Email:    out.Email,
		TenantID: out.TenantID,
		Role:     out.Role,
	}, nil
}
