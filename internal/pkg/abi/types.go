package abi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Kind enumerates the ABI parameter type families.
type Kind int

// Known ABI kinds.
const (
	KindUint Kind = iota
	KindInt
	KindAddress
	KindBool
	KindFixedBytes
	KindDynamicBytes
	KindString
	KindArray
	KindTuple
	KindFunction
)

const wordSize = 32

// tt256 is 2**256, the modulus of a two's complement word.
var tt256 = new(big.Int).Lsh(big.NewInt(1), 256)

// ParameterType describes a single ABI type. Arrays and tuples reference their
// element and member types directly, so the structure is a recursive tree.
type ParameterType struct {
	Kind Kind
	// Bits is the width of uint and int types.
	Bits int
	// Length is the size of a fixed bytes type, or the length of an array (0 for dynamic arrays).
	Length  int
	Elem    *ParameterType
	Members []ParameterType
}

// Uint returns a uint<bits> type.
func Uint(bits int) ParameterType { return ParameterType{Kind: KindUint, Bits: bits} }

// Int returns an int<bits> type.
func Int(bits int) ParameterType { return ParameterType{Kind: KindInt, Bits: bits} }

// Address returns the address type.
func Address() ParameterType { return ParameterType{Kind: KindAddress} }

// Bool returns the bool type.
func Bool() ParameterType { return ParameterType{Kind: KindBool} }

// FixedBytes returns a bytes<n> type.
func FixedBytes(n int) ParameterType { return ParameterType{Kind: KindFixedBytes, Length: n} }

// DynamicBytes returns the bytes type.
func DynamicBytes() ParameterType { return ParameterType{Kind: KindDynamicBytes} }

// String returns the string type.
func String() ParameterType { return ParameterType{Kind: KindString} }

// Function returns the function type (an address followed by a selector).
func Function() ParameterType { return ParameterType{Kind: KindFunction} }

// Array returns elem[length], or elem[] when length is zero.
func Array(elem ParameterType, length int) ParameterType {
	return ParameterType{Kind: KindArray, Elem: &elem, Length: length}
}

// Tuple returns a tuple of the given members.
func Tuple(members ...ParameterType) ParameterType {
	return ParameterType{Kind: KindTuple, Members: members}
}

// IsStatic reports whether the type is encoded in place in the head region.
func (t ParameterType) IsStatic() bool {
	switch t.Kind {
	case KindString, KindDynamicBytes:
		return false
	case KindArray:
		if t.Length == 0 || t.Elem == nil {
			return false
		}
		return t.Elem.IsStatic()
	case KindTuple:
		for _, m := range t.Members {
			if !m.IsStatic() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MemoryUsage returns the number of head bytes the type occupies.
func (t ParameterType) MemoryUsage() int {
	if !t.IsStatic() {
		return wordSize
	}
	switch t.Kind {
	case KindArray:
		return t.Length * t.Elem.MemoryUsage()
	case KindTuple:
		total := 0
		for _, m := range t.Members {
			total += m.MemoryUsage()
		}
		return total
	default:
		return wordSize
	}
}

// String returns the canonical ABI representation used in signatures.
func (t ParameterType) String() string {
	switch t.Kind {
	case KindUint:
		return "uint" + strconv.Itoa(t.Bits)
	case KindInt:
		return "int" + strconv.Itoa(t.Bits)
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Length)
	case KindDynamicBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindArray:
		if t.Elem == nil {
			return "invalid[]"
		}
		if t.Length == 0 {
			return t.Elem.String() + "[]"
		}
		return t.Elem.String() + "[" + strconv.Itoa(t.Length) + "]"
	case KindTuple:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return "tuple(" + strings.Join(parts, ",") + ")"
	default:
		return "unknown"
	}
}

// signatureString is the form used inside function signatures, where tuples
// are written as bare parenthesised lists.
func (t ParameterType) signatureString() string {
	switch t.Kind {
	case KindTuple:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.signatureString()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case KindArray:
		if t.Elem == nil {
			return t.String()
		}
		suffix := "[]"
		if t.Length > 0 {
			suffix = "[" + strconv.Itoa(t.Length) + "]"
		}
		return t.Elem.signatureString() + suffix
	default:
		return t.String()
	}
}

// Validate checks bit widths, byte lengths and nested types.
func (t ParameterType) Validate() error {
	switch t.Kind {
	case KindUint, KindInt:
		if t.Bits < 8 || t.Bits > 256 || t.Bits%8 != 0 {
			return fmt.Errorf("%w: integer width %d", ErrInvalidType, t.Bits)
		}
	case KindFixedBytes:
		if t.Length < 1 || t.Length > 32 {
			return fmt.Errorf("%w: bytes length %d", ErrInvalidType, t.Length)
		}
	case KindArray:
		if t.Elem == nil {
			return fmt.Errorf("%w: array without element type", ErrInvalidType)
		}
		if t.Length < 0 {
			return fmt.Errorf("%w: negative array length %d", ErrInvalidType, t.Length)
		}
		return t.Elem.Validate()
	case KindTuple:
		if len(t.Members) == 0 {
			return fmt.Errorf("%w: empty tuple", ErrInvalidType)
		}
		for i, m := range t.Members {
			if err := m.Validate(); err != nil {
				return fmt.Errorf("tuple member %d: %w", i, err)
			}
		}
	case KindAddress, KindBool, KindDynamicBytes, KindString, KindFunction:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidType, t.Kind)
	}
	return nil
}

// IsValid is a boolean form of Validate.
func (t ParameterType) IsValid() bool {
	return t.Validate() == nil
}
