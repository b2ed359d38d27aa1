package repository

import (
	"context"
	"time"

	"uns-resolution/internal/domain/entity"
)

// CacheRepository defines the interface for caching fetched token metadata documents.
type CacheRepository interface {
	// GetTokenMetadata retrieves the cached document for a token URI.
	GetTokenMetadata(ctx context.Context, uri string) (entity.TokenMetadata, bool, error)

	// SetTokenMetadata stores the document for a token URI with a specified TTL.
	SetTokenMetadata(ctx context.Context, uri string, metadata entity.TokenMetadata, ttl time.Duration) error
}
