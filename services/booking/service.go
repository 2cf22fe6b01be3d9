package booking

import (
	"context"

	"doit/backend"
	"doit/models"

	"go.uber.org/zap"
)

// Service covers the booking operations outside the payment pipeline:
// listings for both roles and the provider-side lifecycle updates. All of
// it is pass-through to the backend, which owns the records.
type Service struct {
	Backend backend.Client
	Logger  *zap.Logger
}

// ForUser lists a homeowner's bookings.
func (s *Service) ForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Backend.UserBookings(ctx, userID)
	if err != nil {
		s.Logger.Warn("failed to fetch user bookings", zap.String("userId", userID), zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

// ForProvider lists the bookings routed to a provider.
func (s *Service) ForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	bookings, err := s.Backend.ProviderBookings(ctx, providerID)
	if err != nil {
		s.Logger.Warn("failed to fetch provider bookings", zap.String("providerId", providerID), zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

// Accept assigns the provider to a pending booking.
func (s *Service) Accept(ctx context.Context, bookingID string, provider models.ProviderDetails) error {
	return s.Backend.UpdateBooking(ctx, bookingID, map[string]any{
		"status":          models.BookingPending,
		"providerDetails": provider,
	})
}

// Decline marks a booking declined by the provider.
func (s *Service) Decline(ctx context.Context, bookingID string) error {
	return s.Backend.UpdateBooking(ctx, bookingID, map[string]any{
		"status": models.BookingDeclined,
	})
}

// Complete marks the work done.
func (s *Service) Complete(ctx context.Context, bookingID string) error {
	return s.Backend.UpdateBooking(ctx, bookingID, map[string]any{
		"status": models.BookingCompleted,
	})
}

// Update applies an arbitrary patch; the backend validates it.
func (s *Service) Update(ctx context.Context, bookingID string, patch map[string]any) error {
	return s.Backend.UpdateBooking(ctx, bookingID, patch)
}

// Cancel cancels a booking through the dedicated endpoint.
func (s *Service) Cancel(ctx context.Context, bookingID string) error {
	return s.Backend.CancelBooking(ctx, bookingID)
}
