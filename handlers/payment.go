package handlers

import (
	"errors"
	"net/http"

	"doit/middleware"
	"doit/services/booking"
	"doit/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the checkout state machine and the redirect
// completion endpoint.
type PaymentHandler struct {
	Orchestrator *payment.Orchestrator
	Completion   *payment.CompletionHandler
}

func NewPaymentHandler(orc *payment.Orchestrator, completion *payment.CompletionHandler) *PaymentHandler {
	return &PaymentHandler{Orchestrator: orc, Completion: completion}
}

// GetCheckoutHandler returns the order summary and the selected method.
func (h *PaymentHandler) GetCheckoutHandler(c *gin.Context) {
	ctx := c.Request.Context()
	scope := middleware.ClientScope(c)

	cart, err := h.Orchestrator.Cart(ctx, scope)
	if err != nil {
		if errors.Is(err, booking.ErrDraftIncomplete) {
			c.JSON(http.StatusConflict, gin.H{"error": "No service selected. Please return to the booking form."})
			return
		}
		getLogger(c).Error("Failed to build cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout"})
		return
	}

	total := cart.Total()
	c.JSON(http.StatusOK, gin.H{
		"cart":   cart,
		"total":  total.Display(),
		"method": h.Orchestrator.Method(ctx, scope),
	})
}

// SelectMethodHandler records the payment method choice.
func (h *PaymentHandler) SelectMethodHandler(c *gin.Context) {
	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	scope := middleware.ClientScope(c)
	if err := h.Orchestrator.SelectMethod(c.Request.Context(), scope, input.Method); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"method": input.Method})
}

// CreateOrderHandler starts the PayPal flow. The payment widget requires a
// valid order ID before it proceeds to approval, so failures here are loud.
func (h *PaymentHandler) CreateOrderHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	orderID, err := h.Orchestrator.CreateOrder(c.Request.Context(), scope)
	if err != nil {
		getLogger(c).Error("Order creation failed", zap.Error(err))
		if errors.Is(err, booking.ErrDraftIncomplete) {
			c.JSON(http.StatusConflict, gin.H{"error": "No service selected. Please return to the booking form."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create order. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": orderID})
}

// CaptureOrderHandler runs after buyer approval: capture, then finalize the
// booking in the same flow and send the user to the dashboard.
func (h *PaymentHandler) CaptureOrderHandler(c *gin.Context) {
	logger := getLogger(c)
	scope := middleware.ClientScope(c)
	orderID := c.Param("orderID")

	err := h.Orchestrator.Approve(c.Request.Context(), scope, orderID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"title":   "Payment Successful",
			"next":    "/dashboard",
		})

	case payment.IsCaptureFailure(err):
		// Captured-but-unconfirmed money must not be retried blindly.
		logger.Error("Payment capture failed", zap.String("orderId", orderID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment capture failed. Please contact support."})

	case errors.Is(err, booking.ErrDraftIncomplete), errors.Is(err, booking.ErrSessionMissing):
		logger.Warn("Finalization refused", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "Booking details are incomplete. Please return to the booking form.", "next": "/booking"})

	default:
		var pe *booking.PersistenceError
		if errors.As(err, &pe) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Your payment was successful, but we couldn't confirm your booking. Our team has been notified and will contact you shortly.",
			})
			return
		}
		logger.Error("Payment approval failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed. Please try again."})
	}
}

// CreateCheckoutSessionHandler starts the card flow. The response hands the
// client the processor URL; following it leaves this application entirely.
func (h *PaymentHandler) CreateCheckoutSessionHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	redirect, err := h.Orchestrator.CreateCheckoutSession(c.Request.Context(), scope)
	if err != nil {
		getLogger(c).Error("Checkout session creation failed", zap.Error(err))
		if errors.Is(err, booking.ErrDraftIncomplete) {
			c.JSON(http.StatusConflict, gin.H{"error": "No service selected. Please return to the booking form."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": redirect.SessionID, "url": redirect.URL})
}

// PaymentStatusHandler is where the browser lands after the card processor
// redirect. The outcome tells the client what to show and where to go next.
func (h *PaymentHandler) PaymentStatusHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	status := c.Query("status")

	outcome := h.Completion.Complete(c.Request.Context(), scope, status)
	c.JSON(http.StatusOK, outcome)
}
