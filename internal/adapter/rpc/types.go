package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind tags the shape held by a ParamElement.
type Kind int

const (
	KindString Kind = iota
	KindCall
	KindArray
	KindMap
)

// CallObject is the {data, to} argument of eth_call.
type CallObject struct {
	Data string `json:"data"`
	To   string `json:"to"`
}

// ParamElement is a JSON-RPC parameter or result: a string, a call object,
// an array or a string-keyed map. Numbers and booleans decode as their
// literal text.
type ParamElement struct {
	Kind  Kind
	Str   string
	Call  CallObject
	Array []ParamElement
	Map   map[string]ParamElement
}

func String(s string) ParamElement {
	return ParamElement{Kind: KindString, Str: s}
}

func Call(data, to string) ParamElement {
	return ParamElement{Kind: KindCall, Call: CallObject{Data: data, To: to}}
}

func Array(items ...ParamElement) ParamElement {
	if items == nil {
		items = []ParamElement{}
	}
	return ParamElement{Kind: KindArray, Array: items}
}

func Map(m map[string]ParamElement) ParamElement {
	if m == nil {
		m = map[string]ParamElement{}
	}
	return ParamElement{Kind: KindMap, Map: m}
}

// Strings builds an array of string elements.
func Strings(values ...string) ParamElement {
	items := make([]ParamElement, len(values))
	for i, v := range values {
		items[i] = String(v)
	}
	return Array(items...)
}

// AsString returns the text of a string element.
func (p ParamElement) AsString() (string, bool) {
	if p.Kind != KindString {
		return "", false
	}
	return p.Str, true
}

// Field returns the named member of a map element.
func (p ParamElement) Field(name string) (ParamElement, bool) {
	if p.Kind != KindMap {
		return ParamElement{}, false
	}
	v, ok := p.Map[name]
	return v, ok
}

// Interface converts the element to plain Go values.
func (p ParamElement) Interface() any {
	switch p.Kind {
	case KindCall:
		return map[string]any{"data": p.Call.Data, "to": p.Call.To}
	case KindArray:
		out := make([]any, len(p.Array))
		for i, item := range p.Array {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(p.Map))
		for k, v := range p.Map {
			out[k] = v.Interface()
		}
		return out
	default:
		return p.Str
	}
}

func (p ParamElement) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindString:
		return json.Marshal(p.Str)
	case KindCall:
		return json.Marshal(p.Call)
	case KindArray:
		if p.Array == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(p.Array)
	case KindMap:
		if p.Map == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(p.Map)
	default:
		return nil, fmt.Errorf("unknown param element kind %d", p.Kind)
	}
}

func (p *ParamElement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty param element")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = String(s)
	case '[':
		var items []ParamElement
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = Array(items...)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if call, ok := asCallObject(raw); ok {
			*p = ParamElement{Kind: KindCall, Call: call}
			return nil
		}
		m := make(map[string]ParamElement, len(raw))
		for k, v := range raw {
			var elem ParamElement
			if err := elem.UnmarshalJSON(v); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = elem
		}
		*p = Map(m)
	case 'n':
		return fmt.Errorf("unexpected null param element")
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err == nil {
			*p = String(num.String())
			return nil
		}
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("unsupported param element %s", data)
		}
		*p = String(fmt.Sprint(b))
	}
	return nil
}

// asCallObject recognizes a map holding exactly string data and to members.
func asCallObject(raw map[string]json.RawMessage) (CallObject, bool) {
	if len(raw) != 2 {
		return CallObject{}, false
	}
	var call CallObject
	dataRaw, okData := raw["data"]
	toRaw, okTo := raw["to"]
	if !okData || !okTo {
		return CallObject{}, false
	}
	if json.Unmarshal(dataRaw, &call.Data) != nil || json.Unmarshal(toRaw, &call.To) != nil {
		return CallObject{}, false
	}
	return call, true
}

// Keys returns the sorted keys of a map element.
func (p ParamElement) Keys() []string {
	keys := make([]string, 0, len(p.Map))
	for k := range p.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      string         `json:"id"`
	Method  string         `json:"method"`
	Params  []ParamElement `json:"params"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	ID      json.RawMessage `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  *ParamElement   `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the error member of a JSON-RPC response.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}
