package metadata

import (
	"context"
	"time"

	"uns-resolution/internal/domain/entity"
	domainRepo "uns-resolution/internal/domain/repository"

	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.MetadataRepository = (*CachedRepository)(nil)

// CachedRepository serves metadata documents from a cache before falling
// back to the wrapped repository.
type CachedRepository struct {
	next   domainRepo.MetadataRepository
	cache  domainRepo.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRepository wraps next with cache. Entries live for ttl; zero uses the cache default.
func NewCachedRepository(
	next domainRepo.MetadataRepository,
	cache domainRepo.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *CachedRepository {
	return &CachedRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("CachedMetadataStorage"),
	}
}

func (r *CachedRepository) GetTokenMetadata(ctx context.Context, uri string) (entity.TokenMetadata, error) {
	md, found, err := r.cache.GetTokenMetadata(ctx, uri)
	if err != nil {
		r.logger.Warn("Metadata cache lookup failed", zap.String("uri", uri), zap.Error(err))
	} else if found {
		return md, nil
	}

	md, err = r.next.GetTokenMetadata(ctx, uri)
	if err != nil {
		return entity.TokenMetadata{}, err
	}

	if err := r.cache.SetTokenMetadata(ctx, uri, md, r.ttl); err != nil {
		r.logger.Warn("Failed to cache token metadata", zap.String("uri", uri), zap.Error(err))
	}
	return md, nil
}
