package repository

import (
	"context"

	"uns-resolution/internal/domain/entity"
)

// MetadataRepository fetches token metadata documents from their token URI.
type MetadataRepository interface {
	GetTokenMetadata(ctx context.Context, uri string) (entity.TokenMetadata, error)
}
