// Package contract issues read-only calls against deployed registry contracts.
package contract

import (
	"context"
	"fmt"

	"uns-resolution/internal/adapter/rpc"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/pkg/abi"
	"uns-resolution/internal/pkg/apperrors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

const (
	methodEthCall   = "eth_call"
	methodMultiCall = "multicall"
	blockLatest     = "latest"
)

// Caller performs a JSON-RPC call.
type Caller interface {
	Call(ctx context.Context, method string, params ...rpc.ParamElement) (rpc.ParamElement, error)
}

// Call is one entry of a multicall batch.
type Call struct {
	Method string
	Args   []any
}

// Contract is an EVM contract reachable through eth_call.
type Contract struct {
	address string
	abi     *abi.ABI
	caller  Caller
	logger  *zap.Logger
}

// New binds contractABI to address.
func New(address string, contractABI *abi.ABI, caller Caller, logger *zap.Logger) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
		caller:  caller,
		logger:  logger.Named("Contract").With(zap.String("address", address)),
	}
}

// Address returns the contract address.
func (c *Contract) Address() string {
	return c.address
}

// ABI returns the interface the contract was bound with.
func (c *Contract) ABI() *abi.ABI {
	return c.abi
}

// CallMethod encodes a call to method, executes it at the latest block and
// decodes the return data.
func (c *Contract) CallMethod(ctx context.Context, method string, args ...any) (abi.Values, error) {
	payload, err := c.abi.EncodeCall(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}

	raw, err := c.ethCall(ctx, payload)
	if err != nil {
		return nil, err
	}

	values, err := c.abi.DecodeHexOutputs(method, raw)
	if err != nil {
		c.logger.Debug("Failed to decode call result", zap.String("method", method), zap.Error(err))
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	return values, nil
}

// MultiCall executes calls in one round trip through the contract's
// multicall(bytes[]) method and returns the raw results in call order.
func (c *Contract) MultiCall(ctx context.Context, calls []Call) ([][]byte, error) {
	payloads := make([][]byte, len(calls))
	for i, call := range calls {
		payload, err := c.abi.EncodeCall(call.Method, call.Args...)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", call.Method, err)
		}
		payloads[i] = payload
	}

	values, err := c.CallMethod(ctx, methodMultiCall, payloads)
	if err != nil {
		return nil, err
	}

	first, _ := values.At(0)
	results, ok := first.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: multicall returned %T", apperrors.ErrDecode, first)
	}
	if len(results) != len(calls) {
		return nil, fmt.Errorf("%w: multicall returned %d results for %d calls",
			domain.ErrInconsistentDomainArray, len(results), len(calls),
		)
	}

	out := make([][]byte, len(results))
	for i, result := range results {
		data, ok := result.([]byte)
		if !ok {
			return nil, fmt.Errorf("%w: multicall result %d is %T", apperrors.ErrDecode, i, result)
		}
		out[i] = data
	}
	return out, nil
}

// Decode decodes data as the return value of method.
func (c *Contract) Decode(method string, data []byte) (abi.Values, error) {
	values, err := c.abi.DecodeOutputs(method, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", method, err)
	}
	return values, nil
}

func (c *Contract) ethCall(ctx context.Context, payload []byte) (string, error) {
	res, err := c.caller.Call(ctx, methodEthCall,
		rpc.Call(hexutil.Encode(payload), c.address),
		rpc.String(blockLatest),
	)
	if err != nil {
		return "", err
	}
	raw, ok := res.AsString()
	if !ok {
		return "", fmt.Errorf("%w: eth_call returned a non-string result", apperrors.ErrDecode)
	}
	return raw, nil
}
