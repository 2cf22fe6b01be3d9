package handlers

import (
	"net/http"

	"doit/services/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityHandler relays one-time-passcode email sign-in to the external
// identity provider.
type IdentityHandler struct {
	OTP *identity.OTPService
}

func NewIdentityHandler(otp *identity.OTPService) *IdentityHandler {
	return &IdentityHandler{OTP: otp}
}

// SendOTPHandler emails a sign-in code.
func (h *IdentityHandler) SendOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.OTP.SendCode(c.Request.Context(), req.Email); err != nil {
		getLogger(c).Error("OTP send failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send sign-in code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyOTPHandler confirms an emailed code.
func (h *IdentityHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.OTP.VerifyCode(c.Request.Context(), req.Email, req.Token); err != nil {
		getLogger(c).Error("OTP verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
