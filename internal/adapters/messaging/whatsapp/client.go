// Package whatsapp implementa notify.Notifier contra el gateway HTTP
// de WhatsApp que usa la guardería. El circuit breaker evita martillar
// el gateway cuando está caído: el sweep reporta el fallo y reintenta
// recién en el próximo barrido.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"pet-care-reminders/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("whatsapp client not configured")
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type Client struct {
	http  *httpclient.Client
	token string
	cb    *gobreaker.CircuitBreaker
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "whatsapp-gateway",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		http:  hc,
		token: strings.TrimSpace(cfg.Token),
		cb:    cb,
	}, nil
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send entrega un mensaje de texto al gateway. At-least-once: el id
// devuelto se usa solo para logging.
func (c *Client) Send(ctx context.Context, recipient, text string) (string, error) {
	if c == nil || c.http == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(recipient) == "" {
		return "", errors.New("whatsapp: empty recipient")
	}

	headers := map[string]string{}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	out, err := c.cb.Execute(func() (any, error) {
		var resp sendResponse
		if err := c.http.DoJSON(ctx, "POST", "/v1/messages/text", headers, sendRequest{
			Phone:   recipient,
			Message: text,
		}, &resp); err != nil {
			return nil, err
		}
		return resp.ID, nil
	})
	if err != nil {
		return "", fmt.Errorf("whatsapp send: %w", err)
	}

	id, _ := out.(string)
	return id, nil
}
