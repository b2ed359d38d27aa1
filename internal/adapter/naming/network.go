package naming

import (
	"context"
	"fmt"

	"uns-resolution/internal/adapter/contract"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/pkg/apperrors"
)

// NetworkIDs maps the supported network names to their chain IDs.
var NetworkIDs = map[string]string{
	"mainnet":         "1",
	"ropsten":         "3",
	"goerli":          "5",
	"polygon-mumbai":  "80001",
	"polygon-mainnet": "137",
}

// networkBlockchains maps network names to the blockchain tag reported in locations.
var networkBlockchains = map[string]string{
	"mainnet":         "ETH",
	"goerli":          "ETH",
	"polygon-mumbai":  "MATIC",
	"polygon-mainnet": "MATIC",
}

// NetworkName returns the network name for a chain ID.
func NetworkName(id string) (string, bool) {
	for name, networkID := range NetworkIDs {
		if networkID == id {
			return name, true
		}
	}
	return "", false
}

// DiscoverNetwork asks the provider for its chain ID with net_version and
// maps it to a network name.
func DiscoverNetwork(ctx context.Context, caller contract.Caller) (string, error) {
	res, err := caller.Call(ctx, "net_version")
	if err != nil {
		return "", fmt.Errorf("net_version: %w", err)
	}
	id, ok := res.AsString()
	if !ok {
		return "", fmt.Errorf("%w: net_version returned a non-string result", apperrors.ErrDecode)
	}
	name, ok := NetworkName(id)
	if !ok {
		return "", fmt.Errorf("%w: chain id %s", domain.ErrUnsupportedNetwork, id)
	}
	return name, nil
}
