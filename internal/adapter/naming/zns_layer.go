package naming

import (
	"context"
	"fmt"
	"strings"

	"uns-resolution/internal/adapter/contract"
	"uns-resolution/internal/adapter/rpc"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	"uns-resolution/internal/domain/service"
	"uns-resolution/internal/pkg/namehash"

	"go.uber.org/zap"
)

// Compile-time check
var _ service.NamingService = (*ZNSLayer)(nil)

// ZNSRegistries maps Zilliqa networks to their registry contract.
var ZNSRegistries = map[string]string{
	"mainnet": "0x9611c53be6d1b32058b2747bdececed7e1216793",
	"testnet": "0xB925adD1d5EaF13f40efD43451bF97A22aB3d727",
}

const znsRecordsField = "records"

// ZNSLayer resolves .zil domains against the Zilliqa registry.
type ZNSLayer struct {
	network     string
	providerURL string
	caller      contract.Caller
	registry    *contract.ZNSContract
	logger      *zap.Logger
}

// NewZNSLayer binds a resolver to the registry of cfg.Network. The first
// of cfg.RegistryAddresses overrides the built-in registry.
func NewZNSLayer(cfg entity.NamingServiceConfig, caller contract.Caller, logger *zap.Logger) (*ZNSLayer, error) {
	registry := ZNSRegistries[cfg.Network]
	if len(cfg.RegistryAddresses) > 0 {
		registry = cfg.RegistryAddresses[0]
	}
	if registry == "" {
		return nil, fmt.Errorf("%w: zns network %q", domain.ErrRegistryAddressIsNotProvided, cfg.Network)
	}

	named := logger.Named("ZNSLayer").With(zap.String("network", cfg.Network))
	named.Info("ZNS layer initialized", zap.String("registry", registry))

	return &ZNSLayer{
		network:     cfg.Network,
		providerURL: cfg.ProviderURL.String(),
		caller:      caller,
		registry:    contract.NewZNS(registry, caller),
		logger:      named,
	}, nil
}

// Layer always reports ZNSLayer.
func (z *ZNSLayer) Layer() entity.Layer {
	return entity.ZNSLayer
}

// Info lists the registry as a 0x-prefixed address.
func (z *ZNSLayer) Info() entity.LayerInfo {
	return entity.LayerInfo{
		Layer:       entity.ZNSLayer,
		Network:     z.network,
		ProviderURL: z.providerURL,
		Registries:  []string{"0x" + z.registry.Address()},
	}
}

// IsSupported accepts .zil domains only.
func (z *ZNSLayer) IsSupported(_ context.Context, name string) bool {
	return strings.HasSuffix(name, ".zil")
}

// Owner returns the owner stored in the registry record of the domain.
func (z *ZNSLayer) Owner(ctx context.Context, name string) (string, error) {
	owner, _, err := z.recordAddresses(ctx, name)
	if err != nil {
		return "", err
	}
	if !isNotEmpty(owner) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	return owner, nil
}

// Resolver returns the resolver stored in the registry record of the domain.
func (z *ZNSLayer) Resolver(ctx context.Context, name string) (string, error) {
	_, resolver, err := z.recordAddresses(ctx, name)
	if err != nil {
		return "", err
	}
	if !isNotEmpty(resolver) {
		return "", domain.UnspecifiedResolver(entity.ZNSLayer.String())
	}
	return resolver, nil
}

// Record returns one record held by the domain's resolver.
func (z *ZNSLayer) Record(ctx context.Context, name, key string) (string, error) {
	records, err := z.Records(ctx, name, []string{key})
	if err != nil {
		return "", err
	}
	value, ok := records[key]
	if !ok {
		return "", domain.RecordNotFound(entity.ZNSLayer.String())
	}
	return value, nil
}

// Records returns the requested keys the resolver holds. Missing keys are
// absent from the result.
func (z *ZNSLayer) Records(ctx context.Context, name string, keys []string) (map[string]string, error) {
	all, err := z.AllRecords(ctx, name)
	if err != nil {
		return nil, err
	}
	records := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := all[key]; ok {
			records[key] = value
		}
	}
	return records, nil
}

// AllRecords returns every string record held by the domain's resolver.
func (z *ZNSLayer) AllRecords(ctx context.Context, name string) (map[string]string, error) {
	resolver, err := z.Resolver(ctx, name)
	if err != nil {
		return nil, err
	}

	state, err := contract.NewZNS(resolver, z.caller).FetchSubState(ctx, znsRecordsField, []string{})
	if err != nil {
		return nil, err
	}
	if state.Kind != rpc.KindMap {
		return nil, domain.UnspecifiedResolver(entity.ZNSLayer.String())
	}

	records := make(map[string]string, len(state.Map))
	for key, value := range state.Map {
		if s, ok := value.AsString(); ok {
			records[key] = s
		}
	}
	return records, nil
}

// Addr reads the crypto.<TICKER>.address record.
func (z *ZNSLayer) Addr(ctx context.Context, name, ticker string) (string, error) {
	return z.Record(ctx, name, "crypto."+strings.ToUpper(ticker)+".address")
}

func (z *ZNSLayer) MultiChainAddr(context.Context, string, string, string) (string, error) {
	return "", z.notSupported("multiChainAddr")
}

func (z *ZNSLayer) TokenURI(context.Context, string) (string, error) {
	return "", z.notSupported("tokenURI")
}

func (z *ZNSLayer) DomainName(context.Context, string) (string, error) {
	return "", z.notSupported("domainName")
}

func (z *ZNSLayer) ReverseTokenID(context.Context, string) (string, error) {
	return "", z.notSupported("reverseTokenID")
}

func (z *ZNSLayer) Locations(context.Context, []string) (map[string]entity.Location, error) {
	return nil, z.notSupported("locations")
}

func (z *ZNSLayer) BatchOwners(context.Context, []string) ([]string, error) {
	return nil, z.notSupported("batchOwners")
}

func (z *ZNSLayer) notSupported(method string) error {
	return fmt.Errorf("%w: %s on %s", domain.ErrMethodNotSupported, method, entity.ZNSLayer)
}

// recordAddresses reads the (owner, resolver) pair the registry stores
// under the domain's namehash.
func (z *ZNSLayer) recordAddresses(ctx context.Context, name string) (string, string, error) {
	if !z.IsSupported(ctx, name) {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnsupportedDomain, name)
	}

	node := namehash.Hex(name, namehash.SHA256)
	state, err := z.registry.FetchSubState(ctx, znsRecordsField, []string{node})
	if err != nil {
		return "", "", err
	}

	record, ok := state.Field(node)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	args, ok := record.Field("arguments")
	if !ok || args.Kind != rpc.KindArray || len(args.Array) != 2 {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	owner, ownerOK := args.Array[0].AsString()
	resolver, resolverOK := args.Array[1].AsString()
	if !ownerOK || !resolverOK {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	z.logger.Debug("ZNS record addresses", zap.String("domain", name), zap.String("owner", owner))
	return owner, resolver, nil
}
