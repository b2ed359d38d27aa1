package port

import (
	"context"

	"uns-resolution/internal/domain/entity"
)

// ResolutionService resolves domains across every configured naming layer.
type ResolutionService interface {
	// IsSupported reports whether ZNS or layer 2 serves the domain.
	IsSupported(ctx context.Context, domain string) bool

	// Namehash returns the registry identifier of the normalized domain.
	Namehash(domain string) (string, error)

	Owner(ctx context.Context, domain string) (string, error)
	Resolver(ctx context.Context, domain string) (string, error)
	Record(ctx context.Context, domain, key string) (string, error)
	Records(ctx context.Context, domain string, keys []string) (map[string]string, error)
	AllRecords(ctx context.Context, domain string) (map[string]string, error)
	Addr(ctx context.Context, domain, ticker string) (string, error)
	MultiChainAddr(ctx context.Context, domain, network, token string) (string, error)
	DNS(ctx context.Context, domain string, types []string) ([]entity.DNSRecord, error)

	TokenURI(ctx context.Context, tokenID string) (string, error)
	DomainName(ctx context.Context, tokenID string) (string, error)

	// ReverseTokenID returns the reverse token of address. A nil location
	// prefers layer 1 and falls back to layer 2.
	ReverseTokenID(ctx context.Context, address string, location *entity.Layer) (string, error)
	Reverse(ctx context.Context, address string, location *entity.Layer) (string, error)

	Locations(ctx context.Context, domains []string) (map[string]entity.Location, error)
	// BatchOwners maps every domain to its owner; unowned domains map to "".
	BatchOwners(ctx context.Context, domains []string) (map[string]string, error)

	Layers() []entity.LayerInfo
}
