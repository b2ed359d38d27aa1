package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnregisteredDomain means the domain has no owner on the queried registry.
	ErrUnregisteredDomain = errors.New("domain is not registered")

	// ErrUnsupportedDomain means no registry serves the domain's TLD.
	ErrUnsupportedDomain = errors.New("domain is not supported")

	// ErrRecordNotFound means the domain is registered but the requested record is empty.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordNotSupported means the requested record kind is not known.
	ErrRecordNotSupported = errors.New("record is not supported")

	// ErrUnsupportedNetwork means the provider reports a network without known registries.
	ErrUnsupportedNetwork = errors.New("network is not supported")

	// ErrUnspecifiedResolver means the domain is registered but has no resolver set.
	ErrUnspecifiedResolver = errors.New("resolver is not specified")

	// ErrUnknown is returned for failures that fit no other kind.
	ErrUnknown = errors.New("unknown resolution error")

	// ErrProxyReaderNonInitialized means no proxy reader contract could be configured.
	ErrProxyReaderNonInitialized = errors.New("proxy reader is not initialized")

	// ErrRegistryAddressIsNotProvided means the ZNS registry address is missing for the network.
	ErrRegistryAddressIsNotProvided = errors.New("registry address is not provided")

	// ErrInconsistentDomainArray means a batch of domains or its per-domain answers do not line up.
	ErrInconsistentDomainArray = errors.New("inconsistent domain array")

	// ErrMethodNotSupported means the operation is not meaningful for the registry.
	ErrMethodNotSupported = errors.New("method is not supported")

	// ErrTooManyResponses means the provider rejected the call with a rate-limit code.
	ErrTooManyResponses = errors.New("too many responses")

	// ErrExecutionReverted means the contract rejected the call.
	ErrExecutionReverted = errors.New("execution reverted")

	// ErrBadRequestOrResponse means the provider rejected the request or sent an unusable response.
	ErrBadRequestOrResponse = errors.New("bad request or response")

	// ErrUnsupportedServiceName means a naming layer name could not be recognized.
	ErrUnsupportedServiceName = errors.New("naming service is not supported")

	// ErrInvalidDomainName means the domain contains characters no registry accepts.
	ErrInvalidDomainName = errors.New("invalid domain name")

	// ErrContractNotInitialized means a required registry contract has no address.
	ErrContractNotInitialized = errors.New("contract is not initialized")

	// ErrReverseResolutionNotSpecified means the address has no reverse record.
	ErrReverseResolutionNotSpecified = errors.New("reverse resolution is not specified")

	// ErrUnauthenticatedRequest means the provider refused the credentials (HTTP 401/403).
	ErrUnauthenticatedRequest = errors.New("unauthenticated request")

	// ErrRequestBeingRateLimited means the provider answered HTTP 429.
	ErrRequestBeingRateLimited = errors.New("request is being rate limited")
)

// LayerError attaches the name of the registry layer that produced err.
type LayerError struct {
	Layer string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Layer, e.Err)
}

func (e *LayerError) Unwrap() error {
	return e.Err
}

// RecordNotFound returns ErrRecordNotFound tagged with layer.
func RecordNotFound(layer string) error {
	return &LayerError{Layer: layer, Err: ErrRecordNotFound}
}

// UnspecifiedResolver returns ErrUnspecifiedResolver tagged with layer.
func UnspecifiedResolver(layer string) error {
	return &LayerError{Layer: layer, Err: ErrUnspecifiedResolver}
}

// ContractNotInitialized returns ErrContractNotInitialized naming the missing contract.
func ContractNotInitialized(name string) error {
	return fmt.Errorf("%w: %s", ErrContractNotInitialized, name)
}
