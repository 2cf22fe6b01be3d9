package handlers

import (
	"net/http"

	"doit/middleware"
	"doit/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the session store over HTTP.
type AuthHandler struct {
	Sessions session.Service
}

func NewAuthHandler(sessions session.Service) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

// RestoreSessionHandler resolves the stored credential on app start.
// 200 with a session, 204 when anonymous, 503 when the backend was
// unreachable (the credential is preserved for a retry).
func (h *AuthHandler) RestoreSessionHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	sess, err := h.Sessions.Restore(c.Request.Context(), scope)
	if err != nil {
		getLogger(c).Warn("Session restore failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not reach authentication service. Please retry."})
		return
	}
	if sess == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":            sess.User,
		"isAuthenticated": sess.IsAuthenticated(),
		"isAdmin":         sess.IsAdmin(),
	})
}

// LoginHandler authenticates a homeowner or provider.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		MobNumber string `json:"mobnumber" binding:"required"`
		Password  string `json:"password" binding:"required"`
		Role      string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	scope := middleware.ClientScope(c)
	sess, err := h.Sessions.Login(c.Request.Context(), scope, req.MobNumber, req.Password, req.Role)
	if err != nil {
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User})
}

// SignupHandler registers a new account and opens a session.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := getLogger(c)

	var req session.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	scope := middleware.ClientScope(c)
	sess, err := h.Sessions.Signup(c.Request.Context(), scope, req)
	if err != nil {
		logger.Error("Signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": sess.User})
}

// AdminLoginHandler authenticates an admin. Failure is a plain rejection,
// never a 5xx; the session service reports it as a boolean.
func (h *AuthHandler) AdminLoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		AdminID  string `json:"adminId" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid admin login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	scope := middleware.ClientScope(c)
	if !h.Sessions.AdminLogin(c.Request.Context(), scope, req.AdminID, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogoutHandler clears the durable credential.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	scope := middleware.ClientScope(c)
	if err := h.Sessions.Logout(c.Request.Context(), scope); err != nil {
		getLogger(c).Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
