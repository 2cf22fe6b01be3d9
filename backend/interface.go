package backend

import (
	"context"
	"errors"
	"fmt"

	"doit/models"
)

// Client is the marketplace backend collaborator: authentication, booking
// persistence, the price catalog, and the admin statistics endpoints.
// Everything behind it is owned by the backend; the gateway only consumes.
type Client interface {
	// Auth.
	Login(ctx context.Context, mobNumber, password, role string) (string, models.User, error)
	Signup(ctx context.Context, req SignupRequest) (string, models.User, error)
	FetchUser(ctx context.Context, token string) (models.User, error)
	FetchAdmin(ctx context.Context, token string) (models.User, error)
	AdminLogin(ctx context.Context, adminID, password string) (string, models.User, error)
	Logout(ctx context.Context, token string) error

	// Bookings.
	UserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, payload models.BookingPayload) error
	UpdateBooking(ctx context.Context, bookingID string, patch map[string]any) error
	CancelBooking(ctx context.Context, bookingID string) error

	// Catalog.
	ServicePrices(ctx context.Context) ([]models.ServiceCatalogEntry, error)

	// Admin statistics.
	UserCounts(ctx context.Context) (models.UserCounts, error)
	UserDetails(ctx context.Context) (models.UserDetails, error)
	TotalBookings(ctx context.Context) (models.BookingTotals, error)
}

// SignupRequest carries a new-account registration.
type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	MobNumber string `json:"mobnumber"`
	Role      string `json:"role"`
}

// StatusError reports a non-2xx backend response. Callers branch on Code to
// tell authentication rejections (401/403, destructive) apart from transient
// server failures (non-destructive).
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

// IsAuthRejected reports whether err is a 401/403 backend response.
func IsAuthRejected(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == 401 || se.Code == 403
}
