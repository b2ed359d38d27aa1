package repository

import (
	"uns-resolution/internal/domain/entity"
	"uns-resolution/internal/pkg/abi"
)

// ResourceRepository exposes the static registry tables and record-key dictionary.
// Contents are loaded once and never change.
type ResourceRepository interface {
	// NetworkContracts returns the contracts deployed on the network with the given chain ID.
	NetworkContracts(networkID string) (map[string]entity.ContractAddress, bool)

	// RecordKeys returns every canonical record key, sorted.
	RecordKeys() []string

	// ProxyReaderABI returns the parsed interface of the UNS proxy reader.
	ProxyReaderABI() *abi.ABI
}
