// Package resources loads the registry tables, the record-key dictionary and
// the proxy reader ABI that ship with the binary.
package resources

import (
	_ "embed"
	"fmt"
	"sort"

	"uns-resolution/internal/domain/entity"
	"uns-resolution/internal/domain/repository"
	"uns-resolution/internal/pkg/abi"

	"gopkg.in/yaml.v3"
)

//go:embed files/uns-config.yaml
var networkConfigFile []byte

//go:embed files/resolver-keys.yaml
var recordKeysFile []byte

//go:embed files/uns-proxy-reader.json
var proxyReaderABIFile []byte

// Compile-time check
var _ repository.ResourceRepository = (*Repository)(nil)

type networkConfig struct {
	Version  string                  `yaml:"version"`
	Networks map[string]networkEntry `yaml:"networks"`
}

type networkEntry struct {
	Contracts map[string]contractEntry `yaml:"contracts"`
}

type contractEntry struct {
	Address         string   `yaml:"address"`
	LegacyAddresses []string `yaml:"legacyAddresses"`
	DeploymentBlock string   `yaml:"deploymentBlock"`
}

type recordKeysConfig struct {
	Version string                    `yaml:"version"`
	Keys    map[string]recordKeyEntry `yaml:"keys"`
}

type recordKeyEntry struct {
	DeprecatedKeyName string `yaml:"deprecatedKeyName"`
	Deprecated        bool   `yaml:"deprecated"`
	ValidationRegex   string `yaml:"validationRegex"`
}

// Repository is an immutable, in-memory view of the embedded resources.
type Repository struct {
	networks       map[string]map[string]entity.ContractAddress
	recordKeys     []string
	proxyReaderABI *abi.ABI
}

// NewRepository parses the embedded resources.
func NewRepository() (*Repository, error) {
	return Load(networkConfigFile, recordKeysFile, proxyReaderABIFile)
}

// Load parses resources from the given documents.
func Load(networkYAML, recordKeysYAML, proxyReaderJSON []byte) (*Repository, error) {
	var networks networkConfig
	if err := yaml.Unmarshal(networkYAML, &networks); err != nil {
		return nil, fmt.Errorf("parse network config: %w", err)
	}

	var keys recordKeysConfig
	if err := yaml.Unmarshal(recordKeysYAML, &keys); err != nil {
		return nil, fmt.Errorf("parse record keys: %w", err)
	}

	proxyReader, err := abi.ParseJSON(proxyReaderJSON)
	if err != nil {
		return nil, fmt.Errorf("parse proxy reader abi: %w", err)
	}

	repo := &Repository{
		networks:       make(map[string]map[string]entity.ContractAddress, len(networks.Networks)),
		recordKeys:     make([]string, 0, len(keys.Keys)),
		proxyReaderABI: proxyReader,
	}
	for id, network := range networks.Networks {
		contracts := make(map[string]entity.ContractAddress, len(network.Contracts))
		for name, c := range network.Contracts {
			contracts[name] = entity.ContractAddress{
				Address:         c.Address,
				LegacyAddresses: c.LegacyAddresses,
				DeploymentBlock: c.DeploymentBlock,
			}
		}
		repo.networks[id] = contracts
	}
	for key := range keys.Keys {
		repo.recordKeys = append(repo.recordKeys, key)
	}
	sort.Strings(repo.recordKeys)

	return repo, nil
}

func (r *Repository) NetworkContracts(networkID string) (map[string]entity.ContractAddress, bool) {
	contracts, ok := r.networks[networkID]
	if !ok {
		return nil, false
	}
	out := make(map[string]entity.ContractAddress, len(contracts))
	for name, c := range contracts {
		out[name] = c
	}
	return out, true
}

func (r *Repository) RecordKeys() []string {
	return append([]string(nil), r.recordKeys...)
}

func (r *Repository) ProxyReaderABI() *abi.ABI {
	return r.proxyReaderABI
}
