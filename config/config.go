package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// PublicBaseURL is the externally reachable address of this gateway;
	// payment processors redirect the browser back to it.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	// Marketplace backend (auth, bookings, prices, admin stats).
	BackendBaseURL string `mapstructure:"BACKEND_BASE_URL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`
	RedisDraftDB   int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisCatalogDB int    `mapstructure:"REDIS_CATALOG_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// PayPal Orders v2.
	PayPalBaseURL  string `mapstructure:"PAYPAL_BASE_URL"`
	PayPalClientID string `mapstructure:"PAYPAL_CLIENT_ID"`
	PayPalSecret   string `mapstructure:"PAYPAL_SECRET"`

	// Stripe Checkout.
	StripeKey string `mapstructure:"STRIPE_SECRET_KEY"`

	// Supabase one-time-passcode email identity.
	SupabaseURL         string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey     string `mapstructure:"SUPABASE_ANON_KEY"`
	DashboardRedirectTo string `mapstructure:"DASHBOARD_REDIRECT_TO"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:5000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 0)
	viper.SetDefault("REDIS_DRAFT_DB", 1)
	viper.SetDefault("REDIS_CATALOG_DB", 2)
	viper.SetDefault("REDIS_TASK_DB", 3)
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("DASHBOARD_REDIRECT_TO", "/dashboard")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
