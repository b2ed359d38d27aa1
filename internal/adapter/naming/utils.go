package naming

import (
	"fmt"
	"math/big"
	"strings"

	"uns-resolution/internal/pkg/abi"
	"uns-resolution/internal/pkg/apperrors"
	"uns-resolution/internal/pkg/namehash"

	"github.com/ethereum/go-ethereum/common"
)

var nullValues = map[string]struct{}{
	"":  {},
	"0": {},
	"0x0000000000000000000000000000000000000000":                         {},
	"0x0000000000000000000000000000000000000000000000000000000000000000": {},
}

// isNotEmpty reports whether a registry value is set. Registries return
// zero words rather than nothing for absent entries.
func isNotEmpty(value string) bool {
	_, null := nullValues[strings.ToLower(value)]
	return !null
}

// tokenIDOf returns the UNS token ID of domain.
func tokenIDOf(domain string) *big.Int {
	return namehash.Compute(domain, namehash.Keccak).Big()
}

// parseTokenID accepts a 0x-prefixed hex or a decimal token ID.
func parseTokenID(tokenID string) (*big.Int, error) {
	n, ok := new(big.Int), false
	if strings.HasPrefix(tokenID, "0x") || strings.HasPrefix(tokenID, "0X") {
		n, ok = n.SetString(tokenID[2:], 16)
	} else {
		n, ok = n.SetString(tokenID, 10)
	}
	if !ok || n.Sign() < 0 || n.BitLen() > 256 {
		return nil, fmt.Errorf("%w: token id %q", apperrors.ErrInvalidInput, tokenID)
	}
	return n, nil
}

// addressStrings renders decoded address[] values in checksum case.
func addressStrings(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected address list, got %T", abi.ErrDecode, v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		addr, ok := item.(common.Address)
		if !ok {
			return nil, fmt.Errorf("%w: expected address, got %T", abi.ErrDecode, item)
		}
		out[i] = addr.Hex()
	}
	return out, nil
}

// stringMatrix converts a decoded string[][] value.
func stringMatrix(v any) ([][]string, error) {
	rows, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected string matrix, got %T", abi.ErrDecode, v)
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected string list, got %T", abi.ErrDecode, row)
		}
		out[i] = make([]string, len(cells))
		for j, cell := range cells {
			s, ok := cell.(string)
			if !ok {
				return nil, fmt.Errorf("%w: expected string, got %T", abi.ErrDecode, cell)
			}
			out[i][j] = s
		}
	}
	return out, nil
}
