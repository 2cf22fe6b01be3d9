package payment

import (
	"context"
	"fmt"

	"doit/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeCheckout creates hosted Checkout Sessions for the card flow. The
// processor's page takes over from here; the browser comes back through
// /payment-status with a bare success/cancel marker.
type StripeCheckout struct {
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

// NewStripeCheckout derives the return URLs from the gateway's public base.
// The global stripe.Key is set at startup, mirroring the SDK's own examples.
func NewStripeCheckout(publicBaseURL string, logger *zap.Logger) *StripeCheckout {
	return &StripeCheckout{
		SuccessURL: publicBaseURL + "/payment-status?status=success",
		CancelURL:  publicBaseURL + "/payment-status?status=cancel",
		Logger:     logger,
	}
}

// Create opens a one-item payment session for the selected service. The
// charge amount comes from the resolved catalog price in minor units.
func (s *StripeCheckout) Create(ctx context.Context, service string, amount models.Money) (models.CheckoutRedirect, error) {
	if amount.Cents <= 0 {
		return models.CheckoutRedirect{}, fmt.Errorf("no resolved price for service %q", service)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(service),
				},
				UnitAmount: stripe.Int64(amount.Cents),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(s.SuccessURL),
		CancelURL:  stripe.String(s.CancelURL),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return models.CheckoutRedirect{}, fmt.Errorf("create checkout session: %w", err)
	}

	s.Logger.Info("checkout session created",
		zap.String("sessionId", sess.ID),
		zap.String("service", service))
	return models.CheckoutRedirect{SessionID: sess.ID, URL: sess.URL}, nil
}
