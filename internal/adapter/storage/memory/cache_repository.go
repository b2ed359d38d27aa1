package memory

import (
	"context"
	"fmt"
	"time"

	"uns-resolution/internal/config"
	"uns-resolution/internal/domain/entity"
	domainRepo "uns-resolution/internal/domain/repository"
	"uns-resolution/internal/metrics"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

const tokenMetadataKeyPrefix = "token_metadata_v1_"

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
type CacheRepository struct {
	cache      *cache.Cache
	logger     *zap.Logger
	defaultTTL time.Duration
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:      c,
		logger:     logger.Named("MemoryCacheStorage"),
		defaultTTL: defaultExpiration,
	}
}

// GetTokenMetadata retrieves the cached metadata document for uri, returning found status.
func (r *CacheRepository) GetTokenMetadata(_ context.Context, uri string) (entity.TokenMetadata, bool, error) {
	key := tokenMetadataKeyPrefix + uri
	if x, found := r.cache.Get(key); found {
		if md, ok := x.(entity.TokenMetadata); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", key))
			metrics.MetadataCacheLookups.WithLabelValues("hit").Inc()
			return md, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", key), zap.Any("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", key))
	metrics.MetadataCacheLookups.WithLabelValues("miss").Inc()
	return entity.TokenMetadata{}, false, nil
}

// SetTokenMetadata caches md for uri. A non-positive ttl uses the configured default.
func (r *CacheRepository) SetTokenMetadata(
	_ context.Context,
	uri string,
	md entity.TokenMetadata,
	ttl time.Duration,
) error {
	key := tokenMetadataKeyPrefix + uri
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	r.cache.Set(key, md, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}
