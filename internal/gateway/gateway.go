package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/akshatgg/E--Library-sub002/internal/config"
	"github.com/akshatgg/E--Library-sub002/pkg/clients"
)

var ErrUnavailable = errors.New("payment gateway unavailable")

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Client talks to the hosted checkout gateway over its REST API with
// basic auth on the key pair. Responses are treated as untrusted input.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	currency  string
	client    clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		baseURL:   cfg.GatewayAddress,
		keyID:     cfg.GatewayKeyID,
		keySecret: cfg.GatewayKeySecret,
		currency:  cfg.GatewayCurrency,
		client:    client,
	}
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) Currency() string {
	return c.currency
}

// CreateOrder registers an order for amount minor units and returns the
// gateway order reference the client needs to open hosted checkout.
func (c *Client) CreateOrder(ctx context.Context, amount int64, receipt string) (*Order, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": c.currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("can't marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("can't build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		zap.L().Error("gateway order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		zap.L().Error("gateway returned unexpected status",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("can't parse order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: empty order id in response", ErrUnavailable)
	}
	return &order, nil
}

// OrderPayments lists the payments the gateway knows for an order. The
// reconciliation sweep uses it as the authoritative source when no
// callback ever arrived.
func (c *Client) OrderPayments(ctx context.Context, orderID string) ([]Payment, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Basic "+basicAuth(c.keyID, c.keySecret))

	statusCode, body, _, err := c.client.Get(ctx, c.baseURL+"/v1/orders/"+orderID+"/payments", headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, statusCode)
	}

	var payments struct {
		Items []Payment `json:"items"`
	}
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("can't parse payments response: %w", err)
	}
	return payments.Items, nil
}
