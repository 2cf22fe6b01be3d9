// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"doit/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthStoreClient holds the durable credential slot per client scope.
	AuthStoreClient *redis.Client
	// DraftStoreClient holds working and pending booking drafts.
	DraftStoreClient *redis.Client
	// CatalogCacheClient holds the fetched service catalog.
	CatalogCacheClient *redis.Client
)

func newClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitRedis initializes all Redis clients used by the gateway.
func InitRedis() {
	AuthStoreClient = newClient(config.AppConfig.RedisAuthDB)
	DraftStoreClient = newClient(config.AppConfig.RedisDraftDB)
	CatalogCacheClient = newClient(config.AppConfig.RedisCatalogDB)
}

// GetAuthStoreClient returns the Redis client for credential storage.
func GetAuthStoreClient() *redis.Client {
	if AuthStoreClient == nil {
		AuthStoreClient = newClient(config.AppConfig.RedisAuthDB)
	}
	return AuthStoreClient
}

// GetDraftStoreClient returns the Redis client for draft storage.
func GetDraftStoreClient() *redis.Client {
	if DraftStoreClient == nil {
		DraftStoreClient = newClient(config.AppConfig.RedisDraftDB)
	}
	return DraftStoreClient
}

// GetCatalogCacheClient returns the Redis client for the catalog cache.
func GetCatalogCacheClient() *redis.Client {
	if CatalogCacheClient == nil {
		CatalogCacheClient = newClient(config.AppConfig.RedisCatalogDB)
	}
	return CatalogCacheClient
}
