// Package jsondoc provides the typed-value surface the validator needs over
// a decoded JSON document: kind inspection, checked accessors, and
// mathematical equality. Objects decode into *orderedmap.OrderedMap so that
// key iteration order matches the source document.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/iancoleman/orderedmap"
)

// Kind identifies the dynamic type of a decoded JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf classifies a decoded value. A float64 with no fractional part is
// reported as KindInteger, matching JSON Schema's distinction between
// "integer" and "number" (a JSON document has no separate integer literal
// type once decoded through encoding/json).
func KindOf(v any) Kind {
	switch x := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case float64:
		if _, frac := math.Modf(x); frac == 0 {
			return KindInteger
		}
		return KindFloat
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return KindInteger
		}
		return KindFloat
	case []any:
		return KindArray
	case *orderedmap.OrderedMap:
		return KindObject
	case orderedmap.OrderedMap:
		return KindObject
	default:
		return KindInvalid
	}
}

// TypeTags returns the JSON Schema "type" keyword tags that this value
// satisfies. Integers satisfy both "integer" and "number".
func TypeTags(v any) []string {
	switch KindOf(v) {
	case KindNull:
		return []string{"null"}
	case KindBool:
		return []string{"boolean"}
	case KindInteger:
		return []string{"integer", "number"}
	case KindFloat:
		return []string{"number"}
	case KindString:
		return []string{"string"}
	case KindArray:
		return []string{"array"}
	case KindObject:
		return []string{"object"}
	default:
		return nil
	}
}

// AsObject returns v's object view, if v is an object.
func AsObject(v any) (*orderedmap.OrderedMap, bool) {
	switch x := v.(type) {
	case *orderedmap.OrderedMap:
		return x, true
	case orderedmap.OrderedMap:
		return &x, true
	default:
		return nil, false
	}
}

// AsArray returns v's element slice, if v is an array.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// AsString returns v's string value, if v is a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsFloat returns v's numeric value as a float64, if v is a number of
// either subtype.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// AsBool returns v's boolean value, if v is a boolean.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Len reports the length of a string, array, or object value, following
// the same unit as Go's len() on the decoded representation: byte length
// (UTF-8 code units) for strings. The string validator's minLength and
// maxLength checks count in the same unit, so a multi-byte character
// counts as more than one.
func Len(v any) (int, bool) {
	switch KindOf(v) {
	case KindString:
		s, _ := AsString(v)
		return len(s), true
	case KindArray:
		a, _ := AsArray(v)
		return len(a), true
	case KindObject:
		o, _ := AsObject(v)
		return len(o.Keys()), true
	default:
		return 0, false
	}
}

// Equal reports whether x and y are equal under JSON Schema's "enum"/"const"
// equality rule: deep structural equality, with numbers compared
// mathematically rather than by Go type.
func Equal(x, y any) bool {
	kx, ky := KindOf(x), KindOf(y)
	if (kx == KindInteger || kx == KindFloat) && (ky == KindInteger || ky == KindFloat) {
		fx, _ := AsFloat(x)
		fy, _ := AsFloat(y)
		return fx == fy
	}
	if kx != ky {
		return false
	}
	switch kx {
	case KindNull:
		return true
	case KindBool:
		bx, _ := AsBool(x)
		by, _ := AsBool(y)
		return bx == by
	case KindString:
		sx, _ := AsString(x)
		sy, _ := AsString(y)
		return sx == sy
	case KindArray:
		ax, _ := AsArray(x)
		ay, _ := AsArray(y)
		if len(ax) != len(ay) {
			return false
		}
		for i := range ax {
			if !Equal(ax[i], ay[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ox, _ := AsObject(x)
		oy, _ := AsObject(y)
		xk, yk := ox.Keys(), oy.Keys()
		if len(xk) != len(yk) {
			return false
		}
		for _, k := range xk {
			vx, _ := ox.Get(k)
			vy, ok := oy.Get(k)
			if !ok || !Equal(vx, vy) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Parse decodes a JSON document into the tree representation used
// throughout this module: objects as *orderedmap.OrderedMap (at every
// nesting level, never by value), arrays as []any, and scalars as their
// natural Go types. Decoding token-by-token, rather than delegating to
// encoding/json.Unmarshal or to orderedmap's own Unmarshal, guarantees
// this uniformly for nested objects and for top-level arrays/scalars
// alike: a value-typed orderedmap.OrderedMap anywhere in the tree would
// silently drop writes made through a copy of it (see AsObject), so every
// object node here is built and returned as a pointer.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, isDelim := tok.(json.Delim)
	if !isDelim {
		// Decoder.Token without UseNumber already yields the natural Go
		// type for every scalar: nil, bool, float64, or string.
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	default:
		return nil, fmt.Errorf("jsondoc: unexpected delimiter %q", delim)
	}
}

func decodeObject(dec *json.Decoder) (*orderedmap.OrderedMap, error) {
	om := orderedmap.New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("jsondoc: expected object key, got %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		om.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return om, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
