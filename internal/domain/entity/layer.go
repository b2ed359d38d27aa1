package entity

import (
	"fmt"

	"uns-resolution/internal/domain"
)

// Layer identifies one of the naming registries a domain can live on.
type Layer string

// Known layers.
const (
	Layer1   Layer = "layer1"
	Layer2   Layer = "layer2"
	ZNSLayer Layer = "znsLayer"
)

// PriorityOrder is the order in which layer answers are consulted.
var PriorityOrder = []Layer{Layer2, Layer1, ZNSLayer}

// ParseLayer maps a layer name to a Layer.
func ParseLayer(name string) (Layer, error) {
	switch Layer(name) {
	case Layer1, Layer2, ZNSLayer:
		return Layer(name), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedServiceName, name)
	}
}

func (l Layer) String() string {
	return string(l)
}

// LayerResult carries the outcome of one layer call: a value or an error, never both.
type LayerResult[T any] struct {
	Value T
	Err   error
}

// LayerInfo describes the contracts a layer resolver is bound to.
type LayerInfo struct {
	Layer       Layer    `json:"layer"`
	Network     string   `json:"network"`
	Blockchain  string   `json:"blockchain,omitempty"`
	ProviderURL string   `json:"providerUrl"`
	ProxyReader string   `json:"proxyReader,omitempty"`
	Registries  []string `json:"registries"`
}

// Location is where a domain lives on one layer. Empty fields mean the
// domain was not found there.
type Location struct {
	RegistryAddress string `json:"registryAddress,omitempty"`
	ResolverAddress string `json:"resolverAddress,omitempty"`
	NetworkID       string `json:"networkId,omitempty"`
	Blockchain      string `json:"blockchain,omitempty"`
	Owner           string `json:"owner,omitempty"`
	ProviderURL     string `json:"providerUrl,omitempty"`
}

// ContractAddress is a registry table entry for one contract on one network.
type ContractAddress struct {
	Address         string
	LegacyAddresses []string
	DeploymentBlock string
}

// Contract names used in the registry tables.
const (
	ContractUNSRegistry = "UNSRegistry"
	ContractCNSRegistry = "CNSRegistry"
	ContractProxyReader = "ProxyReader"
)
