package routes

import (
	"net/http"
	"time"

	"doit/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.GET("/session", hb.Auth.RestoreSessionHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/signup", hb.Auth.SignupHandler)
		api.POST("/admin-login", hb.Auth.AdminLoginHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterBookingRoutes sets up the intake flow and the booking listings.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("/draft", hb.Booking.GetDraftHandler)
		api.PATCH("/draft", hb.Booking.UpdateDraftHandler)
		api.POST("/draft/proceed", hb.Booking.ProceedToPaymentHandler)
		api.POST("/draft/check", hb.Booking.CheckPendingHandler)

		api.GET("/getbookingdata", hb.Booking.UserBookingsHandler)
		api.GET("/getProviderbookings", hb.Booking.ProviderBookingsHandler)
		api.POST("/:id/status", hb.Booking.UpdateStatusHandler)
		api.PUT("/cancel/:id", hb.Booking.CancelBookingHandler)
		api.PUT("/:id", hb.Booking.UpdateBookingHandler)
	}
}

// RegisterPaymentRoutes sets up the checkout state machine endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payment")
	{
		api.GET("/checkout", hb.Payment.GetCheckoutHandler)
		api.POST("/method", hb.Payment.SelectMethodHandler)
		api.POST("/orders", hb.Payment.CreateOrderHandler)
		api.POST("/orders/:orderID/capture", hb.Payment.CaptureOrderHandler)
		api.POST("/create-checkout-session", hb.Payment.CreateCheckoutSessionHandler)
	}

	// The card processor sends the browser back here.
	r.GET("/payment-status", hb.Payment.PaymentStatusHandler)
}

// RegisterCatalogRoutes serves services, prices and time slots.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/price")
	{
		api.GET("/serviceprice", hb.Catalog.ServicePricesHandler)
		api.GET("/timeslots", hb.Catalog.TimeSlotsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin statistics.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/user-counts")
	{
		api.GET("/data", hb.Admin.UserCountsHandler)
		api.GET("/user-details", hb.Admin.UserDetailsHandler)
		api.GET("/TotalBookings", hb.Admin.TotalBookingsHandler)
	}
}

// RegisterIdentityRoutes relays the email one-time-passcode sign-in.
func RegisterIdentityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/identity")
	{
		api.POST("/send-otp", hb.Identity.SendOTPHandler)
		api.POST("/verify-otp", hb.Identity.VerifyOTPHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm DoIt"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Client-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterIdentityRoutes(r, hb)
	RegisterHealthRoute(r)
}
