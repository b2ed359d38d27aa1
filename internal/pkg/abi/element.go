package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ElementType distinguishes the entries of a contract ABI.
type ElementType int

const (
	ElementFunction ElementType = iota
	ElementEvent
	ElementConstructor
	ElementFallback
)

func (e ElementType) String() string {
	switch e {
	case ElementFunction:
		return "function"
	case ElementEvent:
		return "event"
	case ElementConstructor:
		return "constructor"
	case ElementFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Argument is a named, typed input or output.
type Argument struct {
	Name    string
	Type    ParameterType
	Indexed bool
}

// Element is one entry of a parsed contract ABI.
type Element struct {
	Type      ElementType
	Name      string
	Inputs    []Argument
	Outputs   []Argument
	Constant  bool
	Payable   bool
	Anonymous bool
}

// Signature returns name(type1,type2,...).
func (e Element) Signature() string {
	parts := make([]string, len(e.Inputs))
	for i, in := range e.Inputs {
		parts[i] = in.Type.signatureString()
	}
	return e.Name + "(" + strings.Join(parts, ",") + ")"
}

// Selector returns the first four bytes of the signature hash.
func (e Element) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(e.Signature()))[:4])
	return sel
}

// Topic returns the full signature hash, used as the first log topic of events.
func (e Element) Topic() common.Hash {
	return crypto.Keccak256Hash([]byte(e.Signature()))
}

// InputTypes returns the declared input types in order.
func (e Element) InputTypes() []ParameterType {
	return argumentTypes(e.Inputs)
}

// OutputTypes returns the declared output types in order.
func (e Element) OutputTypes() []ParameterType {
	return argumentTypes(e.Outputs)
}

func argumentTypes(args []Argument) []ParameterType {
	types := make([]ParameterType, len(args))
	for i, a := range args {
		types[i] = a.Type
	}
	return types
}
