package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Encode lays out args against types using the head/tail scheme of the contract ABI.
func Encode(types []ParameterType, args []any) ([]byte, error) {
	if len(types) != len(args) {
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", ErrEncode, len(types), len(args))
	}
	return encodeSequence(types, args)
}

func encodeSequence(types []ParameterType, values []any) ([]byte, error) {
	headSize := 0
	for _, t := range types {
		headSize += t.MemoryUsage()
	}

	head := make([]byte, 0, headSize)
	var tail []byte
	for i, t := range types {
		enc, err := encodeValue(t, values[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, t, err)
		}
		if t.IsStatic() {
			head = append(head, enc...)
			continue
		}
		head = append(head, encodeLength(headSize+len(tail))...)
		tail = append(tail, enc...)
	}
	return append(head, tail...), nil
}

func encodeValue(t ParameterType, v any) ([]byte, error) {
	switch t.Kind {
	case KindUint:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 || n.BitLen() > t.Bits {
			return nil, fmt.Errorf("%w: %s out of range for uint%d", ErrEncode, n, t.Bits)
		}
		return math.PaddedBigBytes(n, wordSize), nil

	case KindInt:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits-1))
		minValue := new(big.Int).Neg(limit)
		if n.Cmp(minValue) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%w: %s out of range for int%d", ErrEncode, n, t.Bits)
		}
		return math.U256Bytes(n), nil

	case KindAddress:
		addr, err := toAddress(v)
		if err != nil {
			return nil, err
		}
		return common.LeftPadBytes(addr.Bytes(), wordSize), nil

	case KindBool:
		b, err := toBool(v)
		if err != nil {
			return nil, err
		}
		word := make([]byte, wordSize)
		if b {
			word[wordSize-1] = 1
		}
		return word, nil

	case KindFixedBytes, KindFunction:
		size := t.Length
		if t.Kind == KindFunction {
			size = 24
		}
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) > size {
			return nil, fmt.Errorf("%w: %d bytes do not fit in %s", ErrEncode, len(b), t)
		}
		return common.RightPadBytes(b, wordSize), nil

	case KindDynamicBytes:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		return encodeDynamic(b), nil

	case KindString:
		s, err := toText(v)
		if err != nil {
			return nil, err
		}
		return encodeDynamic([]byte(s)), nil

	case KindArray:
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		if t.Length > 0 && len(items) != t.Length {
			return nil, fmt.Errorf("%w: %s expects %d elements, got %d", ErrEncode, t, t.Length, len(items))
		}
		elems := make([]ParameterType, len(items))
		for i := range elems {
			elems[i] = *t.Elem
		}
		body, err := encodeSequence(elems, items)
		if err != nil {
			return nil, err
		}
		if t.Length == 0 {
			return append(encodeLength(len(items)), body...), nil
		}
		return body, nil

	case KindTuple:
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		if len(items) != len(t.Members) {
			return nil, fmt.Errorf("%w: %s expects %d members, got %d", ErrEncode, t, len(t.Members), len(items))
		}
		return encodeSequence(t.Members, items)

	default:
		return nil, fmt.Errorf("%w: unsupported kind %d", ErrEncode, t.Kind)
	}
}

func encodeLength(n int) []byte {
	return math.PaddedBigBytes(big.NewInt(int64(n)), wordSize)
}

func encodeDynamic(b []byte) []byte {
	padded := (len(b) + wordSize - 1) / wordSize * wordSize
	out := encodeLength(len(b))
	return append(out, common.RightPadBytes(b, padded)...)
}
