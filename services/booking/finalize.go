package booking

import (
	"context"

	"doit/backend"
	"doit/models"
	"doit/services/draft"

	"go.uber.org/zap"
)

// SupportAlerter raises an out-of-band alert when a captured payment could
// not be matched with a persisted booking.
type SupportAlerter interface {
	PaymentWithoutBooking(ctx context.Context, scope string, payload models.BookingPayload, cause error) error
}

// Finalizer converts a paid-for draft into a persisted booking. Both
// payment flows end here: the PayPal path calls it in-flow after capture,
// and the redirect completion handler calls it after the browser returns
// from the card processor.
type Finalizer struct {
	Backend backend.Client
	Drafts  *draft.Service
	Alerter SupportAlerter
	Logger  *zap.Logger
}

// Finalize validates the draft, posts the booking, and clears the draft on
// confirmed creation. paymentCaptured marks that money has already moved,
// which upgrades a persistence failure to a PersistenceError and alerts
// support.
func (f *Finalizer) Finalize(ctx context.Context, scope string, sess *models.Session, d models.BookingDraft, paymentCaptured bool) error {
	if sess == nil || sess.User.UserID == "" {
		return ErrSessionMissing
	}
	if !d.IsComplete() {
		// Never hit the backend with a partial draft.
		return ErrDraftIncomplete
	}

	payload := models.NewBookingPayload(sess.User, d)
	if err := f.Backend.CreateBooking(ctx, payload); err != nil {
		if paymentCaptured {
			f.Logger.Error("booking persistence failed after captured payment",
				zap.String("scope", scope),
				zap.String("service", d.SelectedService),
				zap.Error(err))
			if f.Alerter != nil {
				if alertErr := f.Alerter.PaymentWithoutBooking(ctx, scope, payload, err); alertErr != nil {
					f.Logger.Error("failed to raise support alert", zap.Error(alertErr))
				}
			}
			return &PersistenceError{Err: err}
		}
		return err
	}

	// Confirmed created: delete the durable draft exactly once and reset
	// the working fields so a new attempt starts clean.
	if err := f.Drafts.Clear(ctx, scope); err != nil {
		f.Logger.Error("failed to clear draft after booking", zap.Error(err))
	}
	if err := f.Drafts.CheckPendingBooking(ctx, scope); err != nil {
		f.Logger.Error("failed to reset draft fields after booking", zap.Error(err))
	}

	f.Logger.Info("booking created",
		zap.String("scope", scope),
		zap.String("service", d.SelectedService),
		zap.String("date", d.Date))
	return nil
}
