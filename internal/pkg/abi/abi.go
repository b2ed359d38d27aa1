// Package abi implements the subset of the Ethereum contract ABI needed to
// call read-only registry methods: type descriptors, ABI JSON parsing, and the
// head/tail binary encoding of call payloads and return data.
package abi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ABI is a parsed contract interface.
type ABI struct {
	elements []Element
}

// Values holds decoded outputs keyed by stringified position and, for named
// outputs, also by name.
type Values map[string]any

// At returns the value at position i.
func (v Values) At(i int) (any, bool) {
	x, ok := v[strconv.Itoa(i)]
	return x, ok
}

// New builds an ABI from already parsed elements.
func New(elements []Element) *ABI {
	return &ABI{elements: elements}
}

// Elements returns every entry of the ABI.
func (a *ABI) Elements() []Element {
	return a.elements
}

// Method returns the single function named name.
func (a *ABI) Method(name string) (Element, error) {
	var (
		found Element
		count int
	)
	for _, el := range a.elements {
		if el.Type == ElementFunction && el.Name == name {
			found = el
			count++
		}
	}
	switch count {
	case 0:
		return Element{}, fmt.Errorf("%w: %q not found", ErrUnknownMethod, name)
	case 1:
		return found, nil
	default:
		return Element{}, fmt.Errorf("%w: %q is overloaded %d times", ErrUnknownMethod, name, count)
	}
}

// Event returns the event named name.
func (a *ABI) Event(name string) (Element, error) {
	for _, el := range a.elements {
		if el.Type == ElementEvent && el.Name == name {
			return el, nil
		}
	}
	return Element{}, fmt.Errorf("%w: event %q not found", ErrUnknownMethod, name)
}

// EncodeCall returns selector ++ head ++ tail for a call to method.
func (a *ABI) EncodeCall(method string, args ...any) ([]byte, error) {
	el, err := a.Method(method)
	if err != nil {
		return nil, err
	}
	body, err := Encode(el.InputTypes(), args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", el.Signature(), err)
	}
	sel := el.Selector()
	return append(sel[:], body...), nil
}

// DecodeOutputs decodes the return data of method.
func (a *ABI) DecodeOutputs(method string, data []byte) (Values, error) {
	el, err := a.Method(method)
	if err != nil {
		return nil, err
	}
	decoded, err := Decode(el.OutputTypes(), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", el.Signature(), err)
	}

	values := make(Values, len(decoded)*2)
	for i, v := range decoded {
		values[strconv.Itoa(i)] = v
		if name := el.Outputs[i].Name; name != "" {
			values[name] = v
		}
	}
	return values, nil
}

// DecodeHexOutputs is DecodeOutputs for a 0x-prefixed hex payload.
func (a *ABI) DecodeHexOutputs(method, hexData string) (Values, error) {
	data, err := DecodeHex(hexData)
	if err != nil {
		return nil, err
	}
	return a.DecodeOutputs(method, data)
}

// DecodeHex decodes a 0x-prefixed hex string. "0x" yields an empty slice.
func DecodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("%w: missing 0x prefix in %q", ErrDecode, s)
	}
	if len(s) == 2 {
		return []byte{}, nil
	}
	b, err := hexutil.Decode("0x" + s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}
