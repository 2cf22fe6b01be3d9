package handlers

import (
	"net/http"

	"doit/backend"
	"doit/middleware"
	"doit/services/session"
	"doit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin dashboard statistics. The backend owns the
// numbers; the gateway gates access on an admin session.
type AdminHandler struct {
	Backend  backend.Client
	Sessions session.Service
}

func NewAdminHandler(be backend.Client, sessions session.Service) *AdminHandler {
	return &AdminHandler{Backend: be, Sessions: sessions}
}

// requireAdmin rejects callers without an admin credential.
func (h *AdminHandler) requireAdmin(c *gin.Context) bool {
	scope := middleware.ClientScope(c)
	sess, err := h.Sessions.Current(c.Request.Context(), scope)
	if err != nil {
		getLogger(c).Error("Failed to resolve session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
		return false
	}
	if !sess.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return false
	}
	return true
}

// UserCountsHandler returns the headline user numbers.
func (h *AdminHandler) UserCountsHandler(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	counts, err := h.Backend.UserCounts(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch user counts", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch user counts", err.Error())
		return
	}
	c.JSON(http.StatusOK, counts)
}

// UserDetailsHandler returns the registered-user listings.
func (h *AdminHandler) UserDetailsHandler(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	details, err := h.Backend.UserDetails(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch user details", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch user details", err.Error())
		return
	}
	c.JSON(http.StatusOK, details)
}

// TotalBookingsHandler returns the booking statistics.
func (h *AdminHandler) TotalBookingsHandler(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	totals, err := h.Backend.TotalBookings(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch booking totals", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch booking totals", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "totalBookings": totals.TotalBookings,
		"completedBookings": totals.CompletedBookings,
		"pendingBookings":   totals.PendingBookings,
		"allBookings":       totals.AllBookings})
}
