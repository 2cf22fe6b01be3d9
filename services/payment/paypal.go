package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"doit/models"

	"go.uber.org/zap"
)

const paypalTimeout = 15 * time.Second

// HTTPPayPalClient talks to the PayPal Orders v2 API.
type HTTPPayPalClient struct {
	BaseURL  string
	ClientID string
	Secret   string
	Logger   *zap.Logger

	client *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalClient builds a client against the given API base (live or sandbox).
func NewPayPalClient(baseURL, clientID, secret string, logger *zap.Logger) *HTTPPayPalClient {
	return &HTTPPayPalClient{
		BaseURL:  baseURL,
		ClientID: clientID,
		Secret:   secret,
		Logger:   logger,
		client:   &http.Client{Timeout: paypalTimeout},
	}
}

// token returns a cached client-credentials token, refreshing when expired.
func (p *HTTPPayPalClient) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(p.ClientID, p.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode paypal token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("paypal token response missing access_token")
	}

	p.accessToken = body.AccessToken
	// Refresh a minute early so in-flight calls never race expiry.
	p.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return p.accessToken, nil
}

func (p *HTTPPayPalClient) doJSON(ctx context.Context, path string, payload any, out any) error {
	token, err := p.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal paypal request: %w", err)
		}
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create paypal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("paypal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		p.Logger.Warn("paypal call failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("paypal returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode paypal response: %w", err)
	}
	return nil
}

// CreateOrder registers a CAPTURE-intent order for the cart total.
func (p *HTTPPayPalClient) CreateOrder(ctx context.Context, cart models.Cart) (string, error) {
	total := cart.Total()
	description := ""
	if len(cart.Items) > 0 {
		description = cart.Items[0].Name
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"description": description,
			"amount": map[string]any{
				"currency_code": "USD",
				"value":         total.DecimalString(),
			},
		}},
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := p.doJSON(ctx, "/v2/checkout/orders", payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("no order ID returned from paypal")
	}

	p.Logger.Info("paypal order created", zap.String("orderId", resp.ID))
	return resp.ID, nil
}

// CaptureOrder captures an approved order.
func (p *HTTPPayPalClient) CaptureOrder(ctx context.Context, orderID string) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := p.doJSON(ctx, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "COMPLETED" {
		return fmt.Errorf("paypal capture finished with status %q", resp.Status)
	}

	p.Logger.Info("paypal order captured", zap.String("orderId", orderID))
	return nil
}
