package service

import (
	"context"

	"uns-resolution/internal/domain/entity"
)

// NamingService is the read API of a single registry layer.
type NamingService interface {
	Layer() entity.Layer
	Info() entity.LayerInfo

	// IsSupported reports whether the layer serves the domain's TLD. It may
	// query the registry and is evaluated on every call.
	IsSupported(ctx context.Context, domain string) bool

	Owner(ctx context.Context, domain string) (string, error)
	Resolver(ctx context.Context, domain string) (string, error)
	Record(ctx context.Context, domain, key string) (string, error)
	Records(ctx context.Context, domain string, keys []string) (map[string]string, error)
	AllRecords(ctx context.Context, domain string) (map[string]string, error)
	Addr(ctx context.Context, domain, ticker string) (string, error)
	MultiChainAddr(ctx context.Context, domain, network, token string) (string, error)

	TokenURI(ctx context.Context, tokenID string) (string, error)
	DomainName(ctx context.Context, tokenID string) (string, error)
	ReverseTokenID(ctx context.Context, address string) (string, error)

	// Locations and BatchOwners answer for every domain, in input order for BatchOwners.
	Locations(ctx context.Context, domains []string) (map[string]entity.Location, error)
	BatchOwners(ctx context.Context, domains []string) ([]string, error)
}
