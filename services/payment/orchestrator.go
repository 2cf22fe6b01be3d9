// Package payment drives the two mutually exclusive payment protocols and
// converts a paid-for draft into a persisted booking.
package payment

import (
	"context"
	"errors"
	"fmt"

	"doit/models"
	"doit/services/booking"
	"doit/services/catalog"
	"doit/services/draft"
	"doit/services/session"
	"doit/utils"

	"go.uber.org/zap"
)

// Orchestrator is the checkout state machine. PayPal runs in-flow
// (create order, approve, capture, finalize); the card path ends at a
// redirect, after which only the durable draft carries the flow forward —
// no in-memory state survives that boundary.
type Orchestrator struct {
	Sessions  session.Service
	Drafts    *draft.Service
	Catalog   *catalog.Service
	Finalizer *booking.Finalizer
	PayPal    PayPalClient
	Checkout  CheckoutSessions
	Store     utils.KV
	Logger    *zap.Logger
}

func methodKey(scope string) string { return utils.PaymentMethodPrefix + scope }

// Method returns the selected payment method, defaulting to PayPal.
func (o *Orchestrator) Method(ctx context.Context, scope string) string {
	m, err := o.Store.Get(ctx, methodKey(scope))
	if err != nil || (m != models.MethodPayPal && m != models.MethodCard) {
		return models.MethodPayPal
	}
	return m
}

// SelectMethod records the method choice. This is pure state; the card
// flow's side effects start only at CreateCheckoutSession.
func (o *Orchestrator) SelectMethod(ctx context.Context, scope, method string) error {
	if method != models.MethodPayPal && method != models.MethodCard {
		return fmt.Errorf("unknown payment method %q", method)
	}
	return o.Store.Set(ctx, methodKey(scope), method, utils.DraftTTL)
}

// Cart derives the single-line order summary from the working draft,
// resolving the price from the catalog when the draft has none yet.
func (o *Orchestrator) Cart(ctx context.Context, scope string) (models.Cart, error) {
	d, err := o.Drafts.Get(ctx, scope)
	if err != nil {
		return models.Cart{}, err
	}
	if d.SelectedService == "" {
		return models.Cart{}, booking.ErrDraftIncomplete
	}

	price := d.Price
	if price.IsZero() {
		resolved, ok, err := o.Catalog.ResolvePrice(ctx, d.SelectedService)
		if err != nil {
			return models.Cart{}, err
		}
		if ok {
			price = resolved
			if err := o.Drafts.SetPrice(ctx, scope, price); err != nil {
				o.Logger.Warn("failed to store resolved price", zap.Error(err))
			}
		}
	}

	return models.Cart{Items: []models.CartItem{{Name: d.SelectedService, Price: price}}}, nil
}

// CreateOrder starts the PayPal flow for the current cart.
func (o *Orchestrator) CreateOrder(ctx context.Context, scope string) (string, error) {
	cart, err := o.Cart(ctx, scope)
	if err != nil {
		return "", err
	}

	orderID, err := o.PayPal.CreateOrder(ctx, cart)
	if err != nil {
		return "", &ProviderError{Stage: "create_order", Err: err}
	}
	return orderID, nil
}

// Approve runs after the buyer approves the order in the PayPal widget:
// capture the payment, then finalize the booking in the same flow. A failed
// capture is terminal here — it must not be retried blindly.
func (o *Orchestrator) Approve(ctx context.Context, scope, orderID string) error {
	if err := o.PayPal.CaptureOrder(ctx, orderID); err != nil {
		return &ProviderError{Stage: "capture", Err: err}
	}

	sess, err := o.Sessions.Current(ctx, scope)
	if err != nil {
		return err
	}
	d, err := o.Drafts.Get(ctx, scope)
	if err != nil {
		return err
	}
	return o.Finalizer.Finalize(ctx, scope, sess, d, true)
}

// CreateCheckoutSession starts the card flow. The draft is staged durably
// first: once the processor redirect happens this process holds nothing,
// and the completion handler resumes from the pending draft alone.
func (o *Orchestrator) CreateCheckoutSession(ctx context.Context, scope string) (models.CheckoutRedirect, error) {
	cart, err := o.Cart(ctx, scope)
	if err != nil {
		return models.CheckoutRedirect{}, err
	}
	if _, err := o.Drafts.Stage(ctx, scope); err != nil {
		return models.CheckoutRedirect{}, err
	}

	item := cart.Items[0]
	redirect, err := o.Checkout.Create(ctx, item.Name, item.Price)
	if err != nil {
		return models.CheckoutRedirect{}, &ProviderError{Stage: "checkout_session", Err: err}
	}
	return redirect, nil
}

// IsProviderFailure reports whether err came from a payment processor.
func IsProviderFailure(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsCaptureFailure reports whether err is a failed capture specifically;
// those direct the user to support instead of a retry.
func IsCaptureFailure(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Stage == "capture"
}
