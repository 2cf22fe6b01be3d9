package payment

import (
	"context"
	"fmt"

	"doit/models"
)

// PayPalClient drives the button-driven order/capture protocol.
type PayPalClient interface {
	// CreateOrder registers the cart and returns the processor's order ID.
	// It fails loudly when the processor response lacks one; the payment
	// widget must never proceed to approval without a valid order ID.
	CreateOrder(ctx context.Context, cart models.Cart) (string, error)

	// CaptureOrder captures an approved order. Capture is not safe to
	// retry blindly; callers surface failures instead of retrying.
	CaptureOrder(ctx context.Context, orderID string) error
}

// CheckoutSessions drives the redirect-based card protocol. Creating a
// session hands control to the processor's hosted page; the charge amount
// is recomputed there from {service, price}, not trusted from any
// client-side total.
type CheckoutSessions interface {
	Create(ctx context.Context, service string, amount models.Money) (models.CheckoutRedirect, error)
}

// ProviderError is a failure reported by a payment processor. Stage tells
// the surface apart: order creation and session creation are retriable by
// the user; capture is not.
type ProviderError struct {
	Stage string // "create_order", "capture", "checkout_session"
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider failure during %s: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
