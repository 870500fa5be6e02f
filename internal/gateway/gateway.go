package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Order is the payment intent created with the provider before the user pays.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Client is the surface the booking flow needs from the payment provider.
type Client interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

type HTTPClient struct {
	cfg   Config
	httpc *http.Client
	log   *zerolog.Logger
}

func NewHTTPClient(cfg Config, log *zerolog.Logger) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPClient{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// The provider limits receipt labels to 40 characters.
const maxReceiptLen = 40

// Receipt builds the deterministic order label from event, user and time.
func Receipt(eventID, userID int64, ts time.Time) string {
	receipt := fmt.Sprintf("evt%d-usr%d-%d", eventID, userID, ts.Unix())
	if len(receipt) > maxReceiptLen {
		receipt = receipt[:maxReceiptLen]
	}
	return receipt
}

func (c *HTTPClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error().Int("status", resp.StatusCode).Str("body", string(payload)).Msg("gateway rejected order creation")
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode gateway order: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway order has no id")
	}
	return &order, nil
}

// VerifySignature checks the provider's payment confirmation: an HMAC-SHA256
// over "orderID|paymentID" keyed with the account secret. No booking may be
// confirmed unless this passes.
func (c *HTTPClient) VerifySignature(orderID, paymentID, signature string) bool {
	expected := Sign(c.cfg.KeySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the hex HMAC the provider attaches to payment confirmations.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
