// Package naming implements the per-layer resolvers: the UNS proxy reader
// on Ethereum and Polygon, and the legacy ZNS registry on Zilliqa.
package naming

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"uns-resolution/internal/adapter/contract"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/domain/entity"
	"uns-resolution/internal/domain/repository"
	"uns-resolution/internal/domain/service"
	"uns-resolution/internal/pkg/abi"
	"uns-resolution/internal/pkg/apperrors"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Compile-time check
var _ service.NamingService = (*UNSLayer)(nil)

// TLDs that UNS never serves: ENS names and the ENS reverse tree.
var unsExcludedTLD = regexp.MustCompile(`^[^-]*[^-]*\.(eth|luxe|xyz|kred|addr\.reverse)$`)

const (
	methodExists         = "exists"
	methodGetDataForMany = "getDataForMany"
	methodGetAddress     = "getAddress"
	methodRegistryOf     = "registryOf"
	methodTokenURI       = "tokenURI"
	methodReverseOf      = "reverseOf"
)

// UNSLayer resolves domains through the UNS proxy reader of one network.
type UNSLayer struct {
	layer       entity.Layer
	network     string
	networkID   string
	blockchain  string
	providerURL string
	registries  []string
	proxyReader *contract.Contract
	resources   repository.ResourceRepository
	metadata    repository.MetadataRepository
	logger      *zap.Logger
}

// NewUNSLayer binds a UNS resolver to the network behind caller. An empty
// cfg.Network is discovered with net_version. Contract addresses come from
// the bundled registry table unless cfg overrides them.
func NewUNSLayer(
	ctx context.Context,
	layer entity.Layer,
	cfg entity.NamingServiceConfig,
	caller contract.Caller,
	resources repository.ResourceRepository,
	metadata repository.MetadataRepository,
	logger *zap.Logger,
) (*UNSLayer, error) {
	network := cfg.Network
	if network == "" {
		discovered, err := DiscoverNetwork(ctx, caller)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", layer, err)
		}
		network = discovered
	}

	networkID, ok := NetworkIDs[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedNetwork, network)
	}
	contracts, _ := resources.NetworkContracts(networkID)

	proxyReader := cfg.ProxyReader
	if proxyReader == "" {
		proxyReader = contracts[entity.ContractProxyReader].Address
	}
	if proxyReader == "" {
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrProxyReaderNonInitialized, layer, network)
	}

	registries := cfg.RegistryAddresses
	if len(registries) == 0 {
		uns, ok := contracts[entity.ContractUNSRegistry]
		if !ok {
			return nil, domain.ContractNotInitialized("UNSContract")
		}
		cns, ok := contracts[entity.ContractCNSRegistry]
		if !ok {
			return nil, domain.ContractNotInitialized("CNSContract")
		}
		registries = []string{uns.Address, cns.Address}
	}

	named := logger.Named("UNSLayer").With(zap.String("layer", layer.String()), zap.String("network", network))
	named.Info("UNS layer initialized", zap.String("proxyReader", proxyReader))

	return &UNSLayer{
		layer:       layer,
		network:     network,
		networkID:   networkID,
		blockchain:  networkBlockchains[network],
		providerURL: cfg.ProviderURL.String(),
		registries:  registries,
		proxyReader: contract.New(proxyReader, resources.ProxyReaderABI(), caller, named),
		resources:   resources,
		metadata:    metadata,
		logger:      named,
	}, nil
}

// Layer reports which UNS registry this resolver reads.
func (l *UNSLayer) Layer() entity.Layer {
	return l.layer
}

// Info lists the bound contracts. Null registry placeholders are omitted.
func (l *UNSLayer) Info() entity.LayerInfo {
	registries := make([]string, 0, len(l.registries))
	for _, r := range l.registries {
		if isNotEmpty(r) {
			registries = append(registries, r)
		}
	}
	return entity.LayerInfo{
		Layer:       l.layer,
		Network:     l.network,
		Blockchain:  l.blockchain,
		ProviderURL: l.providerURL,
		ProxyReader: l.proxyReader.Address(),
		Registries:  registries,
	}
}

// IsSupported rejects ENS names and .zil, then asks the registry whether
// the TLD exists. Registry failures count as unsupported.
func (l *UNSLayer) IsSupported(ctx context.Context, name string) bool {
	if unsExcludedTLD.MatchString(name) {
		return false
	}
	tld := name[strings.LastIndex(name, ".")+1:]
	if tld == "zil" {
		return false
	}

	values, err := l.proxyReader.CallMethod(ctx, methodExists, tokenIDOf(tld))
	if err != nil {
		l.logger.Debug("TLD existence check failed", zap.String("tld", tld), zap.Error(err))
		return false
	}
	exists, _ := values.At(0)
	ok, _ := exists.(bool)
	return ok
}

// Owner returns the owner of the domain token. Unowned or undecodable
// answers mean the domain is unregistered.
func (l *UNSLayer) Owner(ctx context.Context, name string) (string, error) {
	data, err := l.getDataForMany(ctx, nil, []*big.Int{tokenIDOf(name)})
	if err != nil {
		if abi.IsCoderError(err) {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrUnregisteredDomain, name, err)
		}
		return "", err
	}
	owner := data.owner(0)
	if !isNotEmpty(owner) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	return owner, nil
}

// Resolver returns the resolver contract of a registered domain.
func (l *UNSLayer) Resolver(ctx context.Context, name string) (string, error) {
	data, err := l.getDataForMany(ctx, nil, []*big.Int{tokenIDOf(name)})
	if err != nil {
		return "", l.resolverError(err)
	}
	if !isNotEmpty(data.owner(0)) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	resolver := data.resolver(0)
	if !isNotEmpty(resolver) {
		return "", domain.UnspecifiedResolver(l.layer.String())
	}
	return resolver, nil
}

// Record returns a single record value. An empty value is recordNotFound.
func (l *UNSLayer) Record(ctx context.Context, name, key string) (string, error) {
	data, err := l.getDataForMany(ctx, []string{key}, []*big.Int{tokenIDOf(name)})
	if err != nil {
		return "", l.resolverError(err)
	}
	if !isNotEmpty(data.owner(0)) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	if !isNotEmpty(data.resolver(0)) || len(data.values) == 0 || len(data.values[0]) == 0 {
		return "", domain.UnspecifiedResolver(l.layer.String())
	}
	value := data.values[0][0]
	if !isNotEmpty(value) {
		return "", domain.RecordNotFound(l.layer.String())
	}
	return value, nil
}

// Records returns one entry per key; unset keys map to "".
func (l *UNSLayer) Records(ctx context.Context, name string, keys []string) (map[string]string, error) {
	data, err := l.getDataForMany(ctx, keys, []*big.Int{tokenIDOf(name)})
	if err != nil {
		if abi.IsCoderError(err) {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnregisteredDomain, name, err)
		}
		return nil, err
	}
	if !isNotEmpty(data.owner(0)) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	if len(data.values) == 0 || len(data.values[0]) != len(keys) {
		return nil, fmt.Errorf("%w: %d values for %d keys", apperrors.ErrDecode, len(data.values), len(keys))
	}

	records := make(map[string]string, len(keys))
	for i, key := range keys {
		records[key] = data.values[0][i]
	}
	return records, nil
}

// AllRecords queries every known record key and keeps the non-empty ones.
func (l *UNSLayer) AllRecords(ctx context.Context, name string) (map[string]string, error) {
	records, err := l.Records(ctx, name, l.resources.RecordKeys())
	if err != nil {
		return nil, err
	}
	for key, value := range records {
		if value == "" {
			delete(records, key)
		}
	}
	return records, nil
}

// Addr reads the crypto.<TICKER>.address record.
func (l *UNSLayer) Addr(ctx context.Context, name, ticker string) (string, error) {
	return l.Record(ctx, name, "crypto."+strings.ToUpper(ticker)+".address")
}

// MultiChainAddr reads the address of token on network through the
// resolver's getAddress, after the ownership checks Record performs.
func (l *UNSLayer) MultiChainAddr(ctx context.Context, name, network, token string) (string, error) {
	tokenID := tokenIDOf(name)
	data, err := l.getDataForMany(ctx, nil, []*big.Int{tokenID})
	if err != nil {
		return "", l.resolverError(err)
	}
	if !isNotEmpty(data.owner(0)) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnregisteredDomain, name)
	}
	if !isNotEmpty(data.resolver(0)) {
		return "", domain.UnspecifiedResolver(l.layer.String())
	}

	values, err := l.proxyReader.CallMethod(ctx, methodGetAddress, network, token, tokenID)
	if err != nil {
		return "", l.resolverError(err)
	}
	first, _ := values.At(0)
	addr, _ := first.(string)
	if addr == "" {
		return "", domain.RecordNotFound(l.layer.String())
	}
	return addr, nil
}

// TokenURI returns the metadata URI of a token. A reverted call or an
// empty URI means the token was never minted.
func (l *UNSLayer) TokenURI(ctx context.Context, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}

	values, err := l.proxyReader.CallMethod(ctx, methodTokenURI, id)
	if err != nil {
		if errors.Is(err, domain.ErrExecutionReverted) {
			return "", fmt.Errorf("%w: token %s", domain.ErrUnregisteredDomain, tokenID)
		}
		return "", err
	}
	first, _ := values.At(0)
	uri, _ := first.(string)
	if uri == "" {
		return "", fmt.Errorf("%w: token %s", domain.ErrUnregisteredDomain, tokenID)
	}
	return uri, nil
}

// DomainName reads the token URI and takes the name from its metadata.
func (l *UNSLayer) DomainName(ctx context.Context, tokenID string) (string, error) {
	uri, err := l.TokenURI(ctx, tokenID)
	if err != nil {
		return "", err
	}
	meta, err := l.metadata.GetTokenMetadata(ctx, uri)
	if err != nil {
		return "", err
	}
	if meta.Name == "" {
		return "", fmt.Errorf("%w: token %s has no name", domain.ErrUnregisteredDomain, tokenID)
	}
	return meta.Name, nil
}

// ReverseTokenID returns the token ID of the reverse record of address as
// 0x-prefixed, 64-digit hex.
func (l *UNSLayer) ReverseTokenID(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: address %q", apperrors.ErrInvalidInput, address)
	}

	values, err := l.proxyReader.CallMethod(ctx, methodReverseOf, address)
	if err != nil {
		return "", err
	}
	first, _ := values.At(0)
	id, ok := first.(*big.Int)
	if !ok || id.Sign() == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrReverseResolutionNotSpecified, address)
	}
	return fmt.Sprintf("0x%064x", id), nil
}

// Locations fetches the registry of every domain plus owners and resolvers
// in one multicall. Domains without an owner map to a zero Location.
func (l *UNSLayer) Locations(ctx context.Context, names []string) (map[string]entity.Location, error) {
	tokenIDs := make([]*big.Int, len(names))
	calls := make([]contract.Call, 0, len(names)+1)
	for i, name := range names {
		tokenIDs[i] = tokenIDOf(name)
		calls = append(calls, contract.Call{Method: methodRegistryOf, Args: []any{tokenIDs[i]}})
	}
	calls = append(calls, contract.Call{Method: methodGetDataForMany, Args: []any{[]string{}, tokenIDs}})

	results, err := l.proxyReader.MultiCall(ctx, calls)
	if err != nil {
		return nil, err
	}

	registries := make([]string, len(names))
	for i := range names {
		values, err := l.proxyReader.Decode(methodRegistryOf, results[i])
		if err != nil {
			return nil, err
		}
		first, _ := values.At(0)
		registry, ok := first.(common.Address)
		if !ok {
			return nil, fmt.Errorf("%w: registryOf returned %T", apperrors.ErrDecode, first)
		}
		registries[i] = registry.Hex()
	}

	values, err := l.proxyReader.Decode(methodGetDataForMany, results[len(names)])
	if err != nil {
		return nil, err
	}
	data, err := parseDataForMany(values)
	if err != nil {
		return nil, err
	}
	if len(data.owners) != len(names) || len(data.resolvers) != len(names) {
		return nil, fmt.Errorf("%w: %d owners for %d domains", domain.ErrInconsistentDomainArray, len(data.owners), len(names))
	}

	locations := make(map[string]entity.Location, len(names))
	for i, name := range names {
		if !isNotEmpty(data.owners[i]) {
			locations[name] = entity.Location{}
			continue
		}
		locations[name] = entity.Location{
			RegistryAddress: registries[i],
			ResolverAddress: data.resolvers[i],
			NetworkID:       l.networkID,
			Blockchain:      l.blockchain,
			Owner:           data.owners[i],
			ProviderURL:     l.providerURL,
		}
	}
	return locations, nil
}

// BatchOwners returns owners in input order, "" for unowned domains.
func (l *UNSLayer) BatchOwners(ctx context.Context, names []string) ([]string, error) {
	tokenIDs := make([]*big.Int, len(names))
	for i, name := range names {
		tokenIDs[i] = tokenIDOf(name)
	}

	data, err := l.getDataForMany(ctx, nil, tokenIDs)
	if err != nil {
		return nil, err
	}
	if len(data.owners) != len(names) {
		return nil, fmt.Errorf("%w: %d owners for %d domains", domain.ErrInconsistentDomainArray, len(data.owners), len(names))
	}

	owners := make([]string, len(names))
	for i, owner := range data.owners {
		if isNotEmpty(owner) {
			owners[i] = owner
		}
	}
	return owners, nil
}

func (l *UNSLayer) resolverError(err error) error {
	if abi.IsCoderError(err) {
		l.logger.Debug("Registry answer could not be decoded", zap.Error(err))
		return domain.UnspecifiedResolver(l.layer.String())
	}
	return err
}

type dataForMany struct {
	resolvers []string
	owners    []string
	values    [][]string
}

func (d dataForMany) owner(i int) string {
	if i < len(d.owners) {
		return d.owners[i]
	}
	return ""
}

func (d dataForMany) resolver(i int) string {
	if i < len(d.resolvers) {
		return d.resolvers[i]
	}
	return ""
}

func (l *UNSLayer) getDataForMany(ctx context.Context, keys []string, tokenIDs []*big.Int) (dataForMany, error) {
	if keys == nil {
		keys = []string{}
	}
	values, err := l.proxyReader.CallMethod(ctx, methodGetDataForMany, keys, tokenIDs)
	if err != nil {
		return dataForMany{}, err
	}
	return parseDataForMany(values)
}

func parseDataForMany(values abi.Values) (dataForMany, error) {
	rawResolvers, _ := values.At(0)
	rawOwners, _ := values.At(1)
	rawValues, _ := values.At(2)

	resolvers, err := addressStrings(rawResolvers)
	if err != nil {
		return dataForMany{}, err
	}
	owners, err := addressStrings(rawOwners)
	if err != nil {
		return dataForMany{}, err
	}
	matrix, err := stringMatrix(rawValues)
	if err != nil {
		return dataForMany{}, err
	}
	return dataForMany{resolvers: resolvers, owners: owners, values: matrix}, nil
}
