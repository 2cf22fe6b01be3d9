// File: doit/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doit/backend"
	"doit/config"
	"doit/cron"
	"doit/handlers"
	"doit/middleware"
	"doit/routes"
	"doit/services/booking"
	"doit/services/catalog"
	"doit/services/draft"
	"doit/services/identity"
	"doit/services/payment"
	"doit/services/session"
	"doit/services/tasks"
	"doit/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.ClientScopeMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// stores.
	authStore := &utils.RedisKV{Client: utils.GetAuthStoreClient()}
	draftStore := &utils.RedisKV{Client: utils.GetDraftStoreClient()}
	catalogCache := &utils.RedisKV{Client: utils.GetCatalogCacheClient()}

	backendClient := backend.NewHTTPClient(config.AppConfig.BackendBaseURL, logger)

	// services.
	sessionService := &session.DefaultSessionService{
		Backend: backendClient,
		Store:   authStore,
		Logger:  logger,
	}
	draftService := &draft.Service{
		Store:  draftStore,
		Logger: logger,
	}
	catalogService := &catalog.Service{
		Backend: backendClient,
		Cache:   catalogCache,
		Logger:  logger,
	}
	bookingService := &booking.Service{
		Backend: backendClient,
		Logger:  logger,
	}

	taskClient := tasks.NewClient()
	defer taskClient.Close()
	cron.InitSupportWorker(logger)

	finalizer := &booking.Finalizer{
		Backend: backendClient,
		Drafts:  draftService,
		Alerter: taskClient,
		Logger:  logger,
	}

	paypalClient := payment.NewPayPalClient(
		config.AppConfig.PayPalBaseURL,
		config.AppConfig.PayPalClientID,
		config.AppConfig.PayPalSecret,
		logger,
	)
	checkout := payment.NewStripeCheckout(config.AppConfig.PublicBaseURL, logger)

	orchestrator := &payment.Orchestrator{
		Sessions:  sessionService,
		Drafts:    draftService,
		Catalog:   catalogService,
		Finalizer: finalizer,
		PayPal:    paypalClient,
		Checkout:  checkout,
		Store:     draftStore,
		Logger:    logger,
	}
	completion := &payment.CompletionHandler{
		Sessions:  sessionService,
		Drafts:    draftService,
		Finalizer: finalizer,
		Logger:    logger,
	}

	otpService := identity.NewOTPService(
		config.AppConfig.SupabaseURL,
		config.AppConfig.SupabaseAnonKey,
		config.AppConfig.PublicBaseURL+config.AppConfig.DashboardRedirectTo,
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     handlers.NewAuthHandler(sessionService),
		Booking:  handlers.NewBookingHandler(draftService, catalogService, bookingService),
		Payment:  handlers.NewPaymentHandler(orchestrator, completion),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Admin:    handlers.NewAdminHandler(backendClient, sessionService),
		Identity: handlers.NewIdentityHandler(otpService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
