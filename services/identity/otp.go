// Package identity delegates one-time-passcode email sign-in to the
// third-party auth service. The gateway only relays; the provider owns the
// codes and the verification state.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const otpTimeout = 10 * time.Second

// OTPService sends and verifies email passcodes through the Supabase auth API.
type OTPService struct {
	BaseURL    string
	AnonKey    string
	RedirectTo string
	Logger     *zap.Logger
	client     *http.Client
}

func NewOTPService(baseURL, anonKey, redirectTo string, logger *zap.Logger) *OTPService {
	return &OTPService{
		BaseURL:    baseURL,
		AnonKey:    anonKey,
		RedirectTo: redirectTo,
		Logger:     logger,
		client:     &http.Client{Timeout: otpTimeout},
	}
}

func (s *OTPService) post(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal otp request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("create otp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.AnonKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("otp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.Logger.Warn("otp provider call failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("otp provider returned %d", resp.StatusCode)
	}
	return nil
}

// SendCode emails a one-time passcode. On successful sign-in the provider
// redirects the user to the configured dashboard URL.
func (s *OTPService) SendCode(ctx context.Context, email string) error {
	return s.post(ctx, "/auth/v1/otp", map[string]any{
		"email":       email,
		"create_user": true,
		"options":     map[string]any{"email_redirect_to": s.RedirectTo},
	})
}

// VerifyCode confirms the emailed passcode.
func (s *OTPService) VerifyCode(ctx context.Context, email, token string) error {
	return s.post(ctx, "/auth/v1/verify", map[string]any{
		"type":  "email",
		"email": email,
		"token": token,
	})
}
