package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Decode reads values of the given types from an ABI encoded payload.
func Decode(types []ParameterType, data []byte) ([]any, error) {
	return decodeSequence(types, data)
}

func decodeSequence(types []ParameterType, data []byte) ([]any, error) {
	values := make([]any, len(types))
	cursor := 0
	for i, t := range types {
		if t.IsStatic() {
			size := t.MemoryUsage()
			if cursor+size > len(data) {
				return nil, fmt.Errorf("%w: %s at %d needs %d bytes, payload has %d",
					ErrDecode, t, cursor, size, len(data),
				)
			}
			v, err := decodeValue(t, data[cursor:cursor+size])
			if err != nil {
				return nil, fmt.Errorf("output %d (%s): %w", i, t, err)
			}
			values[i] = v
			cursor += size
			continue
		}

		offset, err := readSize(data, cursor)
		if err != nil {
			return nil, fmt.Errorf("output %d (%s) offset: %w", i, t, err)
		}
		if offset > len(data) {
			return nil, fmt.Errorf("%w: offset %d beyond payload of %d bytes", ErrDecode, offset, len(data))
		}
		v, err := decodeValue(t, data[offset:])
		if err != nil {
			return nil, fmt.Errorf("output %d (%s): %w", i, t, err)
		}
		values[i] = v
		cursor += wordSize
	}
	return values, nil
}

// decodeValue decodes a single value whose encoding starts at data[0].
func decodeValue(t ParameterType, data []byte) (any, error) {
	switch t.Kind {
	case KindUint:
		word, err := readWord(data, 0)
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(word)
		if n.BitLen() > t.Bits {
			return nil, fmt.Errorf("%w: value exceeds uint%d", ErrDecode, t.Bits)
		}
		return n, nil

	case KindInt:
		word, err := readWord(data, 0)
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(word)
		if word[0]&0x80 != 0 {
			n.Sub(n, tt256)
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits-1))
		if n.Cmp(new(big.Int).Neg(limit)) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%w: value exceeds int%d", ErrDecode, t.Bits)
		}
		return n, nil

	case KindAddress:
		word, err := readWord(data, 0)
		if err != nil {
			return nil, err
		}
		return common.BytesToAddress(word[wordSize-common.AddressLength:]), nil

	case KindBool:
		word, err := readWord(data, 0)
		if err != nil {
			return nil, err
		}
		// Any non-zero word is accepted as true.
		for _, b := range word {
			if b != 0 {
				return true, nil
			}
		}
		return false, nil

	case KindFixedBytes, KindFunction:
		size := t.Length
		if t.Kind == KindFunction {
			size = 24
		}
		word, err := readWord(data, 0)
		if err != nil {
			return nil, err
		}
		out := make([]byte, size)
		copy(out, word[:size])
		return out, nil

	case KindDynamicBytes:
		return readDynamic(data)

	case KindString:
		b, err := readDynamic(data)
		if err != nil {
			return nil, err
		}
		return string(b), nil

	case KindArray:
		length := t.Length
		body := data
		if length == 0 {
			n, err := readSize(data, 0)
			if err != nil {
				return nil, err
			}
			body = data[wordSize:]
			// Every element needs at least one word, which bounds hostile lengths.
			if n > len(body)/wordSize {
				return nil, fmt.Errorf("%w: array length %d exceeds payload", ErrDecode, n)
			}
			length = n
		}
		elems := make([]ParameterType, length)
		for i := range elems {
			elems[i] = *t.Elem
		}
		return decodeSequence(elems, body)

	case KindTuple:
		return decodeSequence(t.Members, data)

	default:
		return nil, fmt.Errorf("%w: unsupported kind %d", ErrDecode, t.Kind)
	}
}

func readWord(data []byte, at int) ([]byte, error) {
	if at < 0 || at+wordSize > len(data) {
		return nil, fmt.Errorf("%w: word at %d out of bounds (payload %d bytes)", ErrDecode, at, len(data))
	}
	return data[at : at+wordSize], nil
}

// readSize reads a word that must fit a non-negative int (offsets and lengths).
func readSize(data []byte, at int) (int, error) {
	word, err := readWord(data, at)
	if err != nil {
		return 0, err
	}
	n := new(big.Int).SetBytes(word)
	if !n.IsInt64() || n.Int64() > int64(len(data)) {
		return 0, fmt.Errorf("%w: size %s out of bounds", ErrDecode, n)
	}
	return int(n.Int64()), nil
}

func readDynamic(data []byte) ([]byte, error) {
	n, err := readSize(data, 0)
	if err != nil {
		return nil, err
	}
	if wordSize+n > len(data) {
		return nil, fmt.Errorf("%w: %d content bytes exceed payload of %d", ErrDecode, n, len(data))
	}
	out := make([]byte, n)
	copy(out, data[wordSize:wordSize+n])
	return out, nil
}
