package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func toBigInt(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil *big.Int", ErrEncode)
		}
		return new(big.Int).Set(x), nil
	case big.Int:
		return new(big.Int).Set(&x), nil
	case string:
		return parseNumeric(x)
	case []byte:
		return new(big.Int).SetBytes(x), nil
	case common.Hash:
		return new(big.Int).SetBytes(x[:]), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as a number", ErrEncode, v)
	}
}

func parseNumeric(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	n := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if len(s) == 2 {
			return n, nil
		}
		_, ok = n.SetString(s[2:], 16)
	} else {
		_, ok = n.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a number", ErrEncode, s)
	}
	return n, nil
}

func toAddress(v any) (common.Address, error) {
	switch x := v.(type) {
	case common.Address:
		return x, nil
	case *common.Address:
		if x == nil {
			return common.Address{}, fmt.Errorf("%w: nil address", ErrEncode)
		}
		return *x, nil
	case string:
		if !common.IsHexAddress(x) {
			return common.Address{}, fmt.Errorf("%w: %q is not a hex address", ErrEncode, x)
		}
		return common.HexToAddress(x), nil
	case []byte:
		if len(x) != common.AddressLength {
			return common.Address{}, fmt.Errorf("%w: address must be %d bytes, got %d",
				ErrEncode, common.AddressLength, len(x),
			)
		}
		return common.BytesToAddress(x), nil
	default:
		return common.Address{}, fmt.Errorf("%w: cannot use %T as an address", ErrEncode, v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		if strings.HasPrefix(x, "0x") || strings.HasPrefix(x, "0X") {
			b, err := hexutil.Decode("0x" + x[2:])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid hex %q: %v", ErrEncode, x, err)
			}
			return b, nil
		}
		return []byte(x), nil
	case common.Hash:
		return x.Bytes(), nil
	case common.Address:
		return x.Bytes(), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, nil
	}
	return nil, fmt.Errorf("%w: cannot use %T as bytes", ErrEncode, v)
}

func toBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: cannot use %T as bool", ErrEncode, v)
	}
	return b, nil
}

func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	default:
		return "", fmt.Errorf("%w: cannot use %T as string", ErrEncode, v)
	}
}

// toSlice flattens []any and any other Go slice or array into []any.
func toSlice(v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: cannot use %T as a list", ErrEncode, v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
