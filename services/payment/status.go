package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doit/models"
	"doit/services/booking"
	"doit/services/draft"
	"doit/services/session"

	"go.uber.org/zap"
)

// Return-URL status markers from the card processor.
const (
	StatusSuccess = "success"
	StatusCancel  = "cancel"
)

// Redirect targets after completion. Delays are seconds the UI should wait
// so the user can read the outcome before navigating.
const (
	targetDashboard = "/dashboard"
	targetIntake    = "/booking"
	targetPayment   = "/payment"
)

// CompletionHandler resumes the card flow after the browser returns from
// the processor. The in-memory orchestrator state did not survive the
// redirect; everything here is rebuilt from the durable pending draft.
type CompletionHandler struct {
	Sessions  session.Service
	Drafts    *draft.Service
	Finalizer *booking.Finalizer
	Logger    *zap.Logger
}

// Complete reconciles the persisted draft with the payment outcome named in
// the return URL and decides where the user goes next.
func (h *CompletionHandler) Complete(ctx context.Context, scope, status string) models.RedirectOutcome {
	switch status {
	case StatusSuccess:
		return h.completeSuccess(ctx, scope)

	case StatusCancel:
		// The user backed out on the processor page. Keep the draft so a
		// retry does not mean re-entering every field.
		return models.RedirectOutcome{
			Result:       "canceled",
			Title:        "Payment Not Completed",
			Message:      "Your payment process was cancelled. You can try again or select a different payment method.",
			RedirectTo:   targetPayment,
			DelaySeconds: 3,
		}

	default:
		h.Logger.Warn("unknown payment return status", zap.String("status", status))
		return models.RedirectOutcome{
			Result:       "unknown",
			Title:        "Payment Status Unknown",
			Message:      "We couldn't determine the status of your payment. Please check your dashboard for booking status.",
			RedirectTo:   targetDashboard,
			DelaySeconds: 3,
		}
	}
}

func (h *CompletionHandler) completeSuccess(ctx context.Context, scope string) models.RedirectOutcome {
	d, ok, err := h.Drafts.Pending(ctx, scope)
	if err != nil || !ok {
		if err != nil {
			h.Logger.Error("failed to read pending draft", zap.Error(err))
		}
		return h.missingDetails()
	}

	sess, err := h.Sessions.Current(ctx, scope)
	if err != nil {
		h.Logger.Error("failed to read session", zap.Error(err))
		return h.missingDetails()
	}

	err = h.Finalizer.Finalize(ctx, scope, sess, d, true)
	switch {
	case err == nil:
		return models.RedirectOutcome{
			Result: "confirmed",
			Title:  "Appointment Confirmed!",
			Message: fmt.Sprintf("Your %s is scheduled for %s at %s. You can view your booking details in your dashboard.",
				d.SelectedService, displayDate(d.Date), d.TimeSlot),
			RedirectTo:   targetDashboard,
			DelaySeconds: 3,
		}

	case errors.Is(err, booking.ErrSessionMissing),
		errors.Is(err, booking.ErrDraftIncomplete):
		return h.missingDetails()

	default:
		// Money moved but no booking exists. Support has already been
		// alerted by the finalizer; tell the user plainly.
		var pe *booking.PersistenceError
		if errors.As(err, &pe) {
			return models.RedirectOutcome{
				Result:       "failed",
				Title:        "Booking Confirmation Failed",
				Message:      "Your payment was successful, but we couldn't confirm your booking. Our team has been notified and will contact you shortly.",
				RedirectTo:   targetDashboard,
				DelaySeconds: 5,
			}
		}
		h.Logger.Error("redirect completion failed", zap.Error(err))
		return models.RedirectOutcome{
			Result:       "failed",
			Title:        "Booking Confirmation Failed",
			Message:      "We couldn't finalize your booking. Please check your dashboard or try again.",
			RedirectTo:   targetDashboard,
			DelaySeconds: 5,
		}
	}
}

// missingDetails is the fail-fast path: no draft, no session, or required
// fields absent. Back to intake; nothing was posted.
func (h *CompletionHandler) missingDetails() models.RedirectOutcome {
	return models.RedirectOutcome{
		Result:       "failed",
		Title:        "Booking Information Missing",
		Message:      "We couldn't retrieve your booking details. Please return to the booking form and try again.",
		RedirectTo:   targetIntake,
		DelaySeconds: 3,
	}
}

func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
