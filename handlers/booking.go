package handlers

import (
	"net/http"
	"time"

	"doit/middleware"
	"doit/models"
	"doit/services/booking"
	"doit/services/catalog"
	"doit/services/draft"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the intake flow and the booking listings.
type BookingHandler struct {
	Drafts   *draft.Service
	Catalog  *catalog.Service
	Bookings *booking.Service
}

func NewBookingHandler(drafts *draft.Service, cat *catalog.Service, bookings *booking.Service) *BookingHandler {
	return &BookingHandler{Drafts: drafts, Catalog: cat, Bookings: bookings}
}

// draftUpdateInput carries partial edits; only non-nil fields are applied,
// so every field stays independently settable.
type draftUpdateInput struct {
	SelectedService *string `json:"selectedService"`
	Date            *string `json:"date"`
	TimeSlot        *string `json:"timeSlot"`
	Address         *string `json:"address"`
	Details         *string `json:"details"`
}

// GetDraftHandler returns the working draft with its display price.
func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	d, err := h.Drafts.Get(c.Request.Context(), scope)
	if err != nil {
		getLogger(c).Error("Failed to load draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "displayPrice": d.Price.Display()})
}

// UpdateDraftHandler applies field edits. Changing the service re-resolves
// the price against the catalog; no match leaves the price empty.
func (h *BookingHandler) UpdateDraftHandler(c *gin.Context) {
	logger := getLogger(c)

	var input draftUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	scope := middleware.ClientScope(c)

	if input.Date != nil && *input.Date != "" {
		if _, err := time.Parse("2006-01-02", *input.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
	}

	apply := func(err error) bool {
		if err != nil {
			logger.Error("Draft update failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return false
		}
		return true
	}

	if input.SelectedService != nil {
		if !apply(h.Drafts.SetService(ctx, scope, *input.SelectedService)) {
			return
		}
		price, _, err := h.Catalog.ResolvePrice(ctx, *input.SelectedService)
		if err != nil {
			logger.Warn("Price resolution failed", zap.Error(err))
		}
		if !apply(h.Drafts.SetPrice(ctx, scope, price)) {
			return
		}
	}
	if input.Date != nil && !apply(h.Drafts.SetDate(ctx, scope, *input.Date)) {
		return
	}
	if input.TimeSlot != nil && !apply(h.Drafts.SetTimeSlot(ctx, scope, *input.TimeSlot)) {
		return
	}
	if input.Address != nil && !apply(h.Drafts.SetAddress(ctx, scope, *input.Address)) {
		return
	}
	if input.Details != nil && !apply(h.Drafts.SetDetails(ctx, scope, *input.Details)) {
		return
	}

	d, err := h.Drafts.Get(ctx, scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "displayPrice": d.Price.Display()})
}

// ProceedToPaymentHandler is the one-way hand-off: serialize the whole
// draft durably and point the client at the payment screen. Completeness
// is enforced downstream at finalization, not here.
func (h *BookingHandler) ProceedToPaymentHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	d, err := h.Drafts.Stage(c.Request.Context(), scope)
	if err != nil {
		getLogger(c).Error("Failed to stage draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save booking details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "next": "/payment"})
}

// CheckPendingHandler resets stale working fields when no pending draft
// exists anymore.
func (h *BookingHandler) CheckPendingHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	if err := h.Drafts.CheckPendingBooking(c.Request.Context(), scope); err != nil {
		getLogger(c).Error("Pending check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check pending booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UserBookingsHandler lists a homeowner's bookings.
func (h *BookingHandler) UserBookingsHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	bookings, err := h.Bookings.ForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

// ProviderBookingsHandler lists the bookings routed to a provider.
func (h *BookingHandler) ProviderBookingsHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId is required"})
		return
	}
	bookings, err := h.Bookings.ForProvider(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

// statusUpdateInput is the provider-side lifecycle action on a booking.
type statusUpdateInput struct {
	Status          string                  `json:"status" binding:"required"`
	ProviderDetails *models.ProviderDetails `json:"providerDetails"`
}

// UpdateStatusHandler applies accept/decline/complete transitions.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	bookingID := c.Param("id")

	var input statusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var err error
	switch input.Status {
	case models.BookingPending:
		if input.ProviderDetails == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "providerDetails required to accept a booking"})
			return
		}
		err = h.Bookings.Accept(ctx, bookingID, *input.ProviderDetails)
	case models.BookingDeclined:
		err = h.Bookings.Decline(ctx, bookingID)
	case models.BookingCompleted:
		err = h.Bookings.Complete(ctx, bookingID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported status transition: " + input.Status})
		return
	}

	if err != nil {
		getLogger(c).Error("Booking update failed", zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateBookingHandler forwards an arbitrary booking patch.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Bookings.Update(c.Request.Context(), bookingID, patch); err != nil {
		getLogger(c).Error("Booking patch failed", zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CancelBookingHandler cancels a booking.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	if err := h.Bookings.Cancel(c.Request.Context(), bookingID); err != nil {
		getLogger(c).Error("Booking cancel failed", zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to cancel booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
