package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"doit/models"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// HTTPClient is the default Client implementation over the backend's REST API.
type HTTPClient struct {
	BaseURL string
	Logger  *zap.Logger
	client  *http.Client
}

// NewHTTPClient builds a backend client for the given base URL.
func NewHTTPClient(baseURL string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Logger:  logger,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// doJSON performs a request with an optional JSON body and bearer token and
// decodes the response into out (when out is non-nil). Non-2xx responses
// become *StatusError.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		msg := ""
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil {
			if json.Unmarshal(data, &errBody) == nil {
				msg = errBody.Message
				if msg == "" {
					msg = errBody.Error
				}
			}
		}
		c.Logger.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

type tokenUserResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, mobNumber, password, role string) (string, models.User, error) {
	req := map[string]string{"mobnumber": mobNumber, "password": password, "role": role}
	var resp tokenUserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return "", models.User{}, err
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (string, models.User, error) {
	var resp tokenUserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", "", req, &resp); err != nil {
		return "", models.User{}, err
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) FetchUser(ctx context.Context, token string) (models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/user", token, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FetchAdmin resolves an admin credential. The backend exposes admin
// identity through the user-counts namespace rather than /api/auth.
func (c *HTTPClient) FetchAdmin(ctx context.Context, token string) (models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user-counts/admin", token, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) AdminLogin(ctx context.Context, adminID, password string) (string, models.User, error) {
	req := map[string]string{"adminId": adminID, "password": password}
	var resp tokenUserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/admin-login", "", req, &resp); err != nil {
		return "", models.User{}, err
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

type bookingListResponse struct {
	Success bool             `json:"success"`
	Data    []models.Booking `json:"data"`
}

func (c *HTTPClient) UserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	path := "/api/bookings/getbookingdata?userId=" + url.QueryEscape(userID)
	var resp bookingListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return []models.Booking{}, nil
	}
	return resp.Data, nil
}

func (c *HTTPClient) ProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	path := "/api/bookings/getProviderbookings?providerId=" + url.QueryEscape(providerID)
	var resp bookingListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return []models.Booking{}, nil
	}
	return resp.Data, nil
}

// CreateBooking persists a booking. The backend signals success with
// HTTP 201; anything else surfaces as an error.
func (c *HTTPClient) CreateBooking(ctx context.Context, payload models.BookingPayload) error {
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	return c.doJSON(ctx, http.MethodPost, "/api/bookings/createBooking", "", payload, &resp)
}

func (c *HTTPClient) UpdateBooking(ctx context.Context, bookingID string, patch map[string]any) error {
	return c.doJSON(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(bookingID), "", patch, nil)
}

func (c *HTTPClient) CancelBooking(ctx context.Context, bookingID string) error {
	return c.doJSON(ctx, http.MethodPut, "/api/bookings/cancel/"+url.PathEscape(bookingID), "", nil, nil)
}

func (c *HTTPClient) ServicePrices(ctx context.Context) ([]models.ServiceCatalogEntry, error) {
	var entries []models.ServiceCatalogEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/price/serviceprice", "", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) UserCounts(ctx context.Context) (models.UserCounts, error) {
	var counts models.UserCounts
	if err := c.doJSON(ctx, http.MethodGet, "/api/user-counts/data", "", nil, &counts); err != nil {
		return models.UserCounts{}, err
	}
	return counts, nil
}

func (c *HTTPClient) UserDetails(ctx context.Context) (models.UserDetails, error) {
	var details models.UserDetails
	if err := c.doJSON(ctx, http.MethodGet, "/api/user-counts/user-details", "", nil, &details); err != nil {
		return models.UserDetails{}, err
	}
	return details, nil
}

func (c *HTTPClient) TotalBookings(ctx context.Context) (models.BookingTotals, error) {
	var totals models.BookingTotals
	if err := c.doJSON(ctx, http.MethodGet, "/api/user-counts/TotalBookings", "", nil, &totals); err != nil {
		return models.BookingTotals{}, err
	}
	return totals, nil
}
