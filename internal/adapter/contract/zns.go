package contract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uns-resolution/internal/adapter/rpc"
	"uns-resolution/internal/domain"
	"uns-resolution/internal/pkg/apperrors"
)

const methodGetSubState = "GetSmartContractSubState"

// ZNSContract reads state fields of a Zilliqa smart contract.
type ZNSContract struct {
	address string
	caller  Caller
}

// NewZNS binds a Zilliqa contract. A leading 0x on address is dropped.
func NewZNS(address string, caller Caller) *ZNSContract {
	return &ZNSContract{
		address: strings.TrimPrefix(address, "0x"),
		caller:  caller,
	}
}

func (z *ZNSContract) Address() string {
	return z.address
}

// FetchSubState returns the map stored under field, narrowed to keys. When
// the result holds no such field the whole result is returned. Zilliqa
// answers null for keys that are not set; that surfaces as
// domain.ErrUnregisteredDomain.
func (z *ZNSContract) FetchSubState(ctx context.Context, field string, keys []string) (rpc.ParamElement, error) {
	res, err := z.caller.Call(ctx, methodGetSubState,
		rpc.String(z.address),
		rpc.String(field),
		rpc.Strings(keys...),
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrDecode) {
			return rpc.ParamElement{}, fmt.Errorf("%w: %s has no %s state", domain.ErrUnregisteredDomain, z.address, field)
		}
		return rpc.ParamElement{}, err
	}

	if state, ok := res.Field(field); ok && state.Kind == rpc.KindMap {
		return state, nil
	}
	return res, nil
}
