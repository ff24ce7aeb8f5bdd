package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/config"
	domainErrors "github.com/skillforge/checkout-service/internal/domain/errors"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// Client confirms payments against the external gateway. The client
// secret is opaque; the gateway resolves it to a payment intent and
// answers with a terminal status. Idempotency keys make retried
// confirms safe.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(cfg config.GatewayConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log,
	}
}

type confirmRequest struct {
	ClientSecret string `json:"client_secret"`
}

type confirmResponse struct {
	PaymentIntentID string `json:"payment_intent"`
	Status          string `json:"status"`
	Message         string `json:"message"`
}

func (c *Client) Confirm(ctx context.Context, clientSecret, idempotencyKey string) (*ports.Confirmation, error) {
	end := monitoring.TimeUpstreamRequest("gateway", "confirm")

	payload, err := json.Marshal(confirmRequest{ClientSecret: clientSecret})
	if err != nil {
		end("error")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/confirm", bytes.NewReader(payload))
	if err != nil {
		end("error")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Gateway confirm request failed", "error", err)
		end("error")
		return nil, domainErrors.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Error("Gateway returned server error", "status", resp.StatusCode)
		end("error")
		return nil, domainErrors.ErrGatewayUnavailable
	}

	var body confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		end("error")
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	end(body.Status)
	return &ports.Confirmation{
		PaymentIntentID: body.PaymentIntentID,
		Status:          body.Status,
		Message:         body.Message,
	}, nil
}
