package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"uns-resolution/internal/application/port"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	domainService "uns-resolution/internal/domain/service"
	"uns-resolution/internal/pkg/apperrors"
	"uns-resolution/internal/pkg/dnsrecords"
	"uns-resolution/internal/pkg/namehash"

	"go.uber.org/zap"
)

// Compile-time check to ensure resolutionService implements ResolutionService
var _ port.ResolutionService = (*resolutionService)(nil)

var domainPattern = regexp.MustCompile(`^[.a-z\d-]+$`)

// uns covers the EVM layers; batch operations and token lookups only run there.
var uns = []entity.Layer{entity.Layer2, entity.Layer1}

// resolutionService fans every operation out to the naming layers and merges their answers.
type resolutionService struct {
	services map[entity.Layer]domainService.NamingService
	logger   *zap.Logger
}

// NewResolutionService builds the orchestrator. Layer 1 and layer 2 are
// required; ZNS is optional.
func NewResolutionService(logger *zap.Logger, services ...domainService.NamingService) (port.ResolutionService, error) {
	s := &resolutionService{
		services: make(map[entity.Layer]domainService.NamingService, len(services)),
		logger:   logger.Named("ResolutionService"),
	}
	for _, svc := range services {
		if _, dup := s.services[svc.Layer()]; dup {
			return nil, fmt.Errorf("%w: layer %s configured twice", apperrors.ErrInvalidInput, svc.Layer())
		}
		s.services[svc.Layer()] = svc
	}
	for _, required := range uns {
		if _, ok := s.services[required]; !ok {
			return nil, fmt.Errorf("%w: %s resolver is required", apperrors.ErrInvalidInput, required)
		}
	}
	return s, nil
}

func normalize(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !domainPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDomainName, name)
	}
	return name, nil
}

// prepare normalizes name and rejects domains no layer serves.
func (s *resolutionService) prepare(ctx context.Context, name string) (string, error) {
	name, err := normalize(name)
	if err != nil {
		return "", err
	}
	if !s.isSupported(ctx, name) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedDomain, name)
	}
	return name, nil
}

func (s *resolutionService) isSupported(ctx context.Context, name string) bool {
	if zns, ok := s.services[entity.ZNSLayer]; ok && zns.IsSupported(ctx, name) {
		return true
	}
	return s.services[entity.Layer2].IsSupported(ctx, name)
}

func isZil(name string) bool {
	return strings.HasSuffix(name, ".zil")
}

func (s *resolutionService) IsSupported(ctx context.Context, name string) bool {
	name, err := normalize(name)
	if err != nil {
		return false
	}
	return s.isSupported(ctx, name)
}

func (s *resolutionService) Namehash(name string) (string, error) {
	name, err := normalize(name)
	if err != nil {
		return "", err
	}
	if isZil(name) {
		return namehash.Hex(name, namehash.SHA256), nil
	}
	return namehash.Hex(name, namehash.Keccak), nil
}

func (s *resolutionService) Owner(ctx context.Context, name string) (string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return "", err
	}
	return resolve(ctx, s, "owner", name, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.Owner(ctx, name)
	})
}

func (s *resolutionService) Resolver(ctx context.Context, name string) (string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return "", err
	}
	return resolve(ctx, s, "resolver", name, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.Resolver(ctx, name)
	})
}

func (s *resolutionService) Record(ctx context.Context, name, key string) (string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return "", err
	}
	return resolve(ctx, s, "record", name, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.Record(ctx, name, key)
	})
}

func (s *resolutionService) Records(ctx context.Context, name string, keys []string) (map[string]string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return nil, err
	}
	return resolve(ctx, s, "records", name, func(ctx context.Context, svc domainService.NamingService) (map[string]string, error) {
		return svc.Records(ctx, name, keys)
	})
}

func (s *resolutionService) AllRecords(ctx context.Context, name string) (map[string]string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return nil, err
	}
	return resolve(ctx, s, "allRecords", name, func(ctx context.Context, svc domainService.NamingService) (map[string]string, error) {
		return svc.AllRecords(ctx, name)
	})
}

func (s *resolutionService) Addr(ctx context.Context, name, ticker string) (string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return "", err
	}
	return resolve(ctx, s, "addr", name, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.Addr(ctx, name, ticker)
	})
}

func (s *resolutionService) MultiChainAddr(ctx context.Context, name, network, token string) (string, error) {
	name, err := s.prepare(ctx, name)
	if err != nil {
		return "", err
	}
	return resolve(ctx, s, "multiChainAddr", name, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.MultiChainAddr(ctx, name, network, token)
	})
}

// DNS reads the dns.* records of the requested types and expands them into
// one entry per value.
func (s *resolutionService) DNS(ctx context.Context, name string, types []string) ([]entity.DNSRecord, error) {
	keys, err := dnsrecords.Keys(types)
	if err != nil {
		return nil, err
	}
	records, err := s.Records(ctx, name, keys)
	if err != nil {
		return nil, err
	}
	return dnsrecords.ToList(records)
}

func (s *resolutionService) TokenURI(ctx context.Context, tokenID string) (string, error) {
	results := dispatch(ctx, s, "tokenURI", uns, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.TokenURI(ctx, tokenID)
	})
	return priorityFallback(results)
}

func (s *resolutionService) DomainName(ctx context.Context, tokenID string) (string, error) {
	results := dispatch(ctx, s, "domainName", uns, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.DomainName(ctx, tokenID)
	})
	return priorityFallback(results)
}

func (s *resolutionService) ReverseTokenID(ctx context.Context, address string, location *entity.Layer) (string, error) {
	layers := uns
	if location != nil {
		if _, ok := s.services[*location]; !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedServiceName, *location)
		}
		if *location == entity.ZNSLayer {
			layers = []entity.Layer{entity.ZNSLayer}
		}
	}

	results := dispatch(ctx, s, "reverseTokenID", layers, func(ctx context.Context, svc domainService.NamingService) (string, error) {
		return svc.ReverseTokenID(ctx, address)
	})

	if location != nil {
		result := results[*location]
		return result.Value, result.Err
	}

	l1 := results[entity.Layer1]
	if l1.Err == nil {
		return l1.Value, nil
	}
	if !errors.Is(l1.Err, domain.ErrReverseResolutionNotSpecified) {
		return "", l1.Err
	}
	l2 := results[entity.Layer2]
	return l2.Value, l2.Err
}

// Reverse resolves address to the domain named by its reverse token.
func (s *resolutionService) Reverse(ctx context.Context, address string, location *entity.Layer) (string, error) {
	tokenID, err := s.ReverseTokenID(ctx, address, location)
	if err != nil {
		return "", err
	}
	return s.DomainName(ctx, tokenID)
}

// prepareBatch normalizes every domain and reports whether the batch is ZNS
// only. Mixing .zil with UNS domains is rejected.
func (s *resolutionService) prepareBatch(ctx context.Context, names []string) ([]string, bool, error) {
	prepared := make([]string, len(names))
	zil := 0
	for i, name := range names {
		p, err := s.prepare(ctx, name)
		if err != nil {
			return nil, false, err
		}
		prepared[i] = p
		if isZil(p) {
			zil++
		}
	}
	if zil > 0 && zil < len(prepared) {
		return nil, false, fmt.Errorf("%w: .zil domains cannot be mixed with UNS domains", domain.ErrInconsistentDomainArray)
	}
	return prepared, zil > 0, nil
}

func (s *resolutionService) batchLayers(znsOnly bool) ([]entity.Layer, error) {
	if !znsOnly {
		return uns, nil
	}
	if _, ok := s.services[entity.ZNSLayer]; !ok {
		return nil, fmt.Errorf("%w: no ZNS layer configured", domain.ErrUnsupportedDomain)
	}
	return []entity.Layer{entity.ZNSLayer}, nil
}

func (s *resolutionService) Locations(ctx context.Context, names []string) (map[string]entity.Location, error) {
	names, znsOnly, err := s.prepareBatch(ctx, names)
	if err != nil {
		return nil, err
	}
	layers, err := s.batchLayers(znsOnly)
	if err != nil {
		return nil, err
	}

	results := dispatch(ctx, s, "locations", layers, func(ctx context.Context, svc domainService.NamingService) (map[string]entity.Location, error) {
		return svc.Locations(ctx, names)
	})
	if err := firstError(results); err != nil {
		return nil, err
	}
	if znsOnly {
		return results[entity.ZNSLayer].Value, nil
	}

	l1, l2 := results[entity.Layer1].Value, results[entity.Layer2].Value
	locations := make(map[string]entity.Location, len(names))
	for _, name := range names {
		fromL1, ok1 := l1[name]
		fromL2, ok2 := l2[name]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: no location for %s", domain.ErrInconsistentDomainArray, name)
		}
		if fromL2.Owner != "" {
			locations[name] = fromL2
		} else {
			locations[name] = fromL1
		}
	}
	return locations, nil
}

func (s *resolutionService) BatchOwners(ctx context.Context, names []string) (map[string]string, error) {
	names, znsOnly, err := s.prepareBatch(ctx, names)
	if err != nil {
		return nil, err
	}
	layers, err := s.batchLayers(znsOnly)
	if err != nil {
		return nil, err
	}

	results := dispatch(ctx, s, "batchOwners", layers, func(ctx context.Context, svc domainService.NamingService) ([]string, error) {
		return svc.BatchOwners(ctx, names)
	})
	if err := firstError(results); err != nil {
		return nil, err
	}

	owners := make(map[string]string, len(names))
	if znsOnly {
		answer := results[entity.ZNSLayer].Value
		if len(answer) != len(names) {
			return nil, fmt.Errorf("%w: %d owners for %d domains", domain.ErrInconsistentDomainArray, len(answer), len(names))
		}
		for i, name := range names {
			owners[name] = answer[i]
		}
		return owners, nil
	}

	l1, l2 := results[entity.Layer1].Value, results[entity.Layer2].Value
	if len(l1) != len(names) || len(l2) != len(names) {
		return nil, fmt.Errorf("%w: layers answered %d and %d owners for %d domains",
			domain.ErrInconsistentDomainArray, len(l1), len(l2), len(names),
		)
	}
	for i, name := range names {
		if l2[i] != "" {
			owners[name] = l2[i]
		} else {
			owners[name] = l1[i]
		}
	}
	return owners, nil
}

// Layers describes every configured layer in priority order.
func (s *resolutionService) Layers() []entity.LayerInfo {
	infos := make([]entity.LayerInfo, 0, len(s.services))
	for _, layer := range entity.PriorityOrder {
		if svc, ok := s.services[layer]; ok {
			infos = append(infos, svc.Info())
		}
	}
	return infos
}
