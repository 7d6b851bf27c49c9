package layer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Value is a sealed interface representing an untyped structured value.
// Only Bool, Int, Float, String, Array, and Object implement this.
// Value is the interchange form on both sides of the codec: callers
// supply documents as Values, and encoded layers are returned as Values.
type Value interface {
	value() // Sealed - only these types implement it
}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Int represents an integer value. Always int64 to avoid float64
// precision loss for values above 2^53.
type Int int64

func (Int) value() {}

// Float represents a floating-point value.
type Float float64

func (Float) value() {}

// String represents a string value.
type String string

func (String) value() {}

// Array represents an ordered sequence of Values.
type Array []Value

func (Array) value() {}

// Field is one key-value entry of an Object.
type Field struct {
	Key string
	Val Value
}

// Object represents an ordered mapping of string keys to Values.
// Order is insertion order (or document order when parsed from JSON);
// the text serializer relies on it being stable.
type Object []Field

func (Object) value() {}

// Get returns the value for key and whether it was present.
func (obj Object) Get(key string) (Value, bool) {
	for _, f := range obj {
		if f.Key == key {
			return f.Val, true
		}
	}
	return nil, false
}

// Keys returns the object's keys in order.
func (obj Object) Keys() []string {
	keys := make([]string, len(obj))
	for i, f := range obj {
		keys[i] = f.Key
	}
	return keys
}

// F is a shorthand for Field for ergonomic construction.
// Example: Object{F("type", String("span")), F("base", String("text"))}
func F(key string, val Value) Field {
	return Field{Key: key, Val: val}
}

// MarshalValue renders a Value as compact JSON. A nil Value renders as
// the null literal. Object keys keep their stored order; no HTML
// escaping is applied, so the output is safe to embed in the text
// format verbatim.
func MarshalValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
		return nil
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case Float:
		buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
		return nil
	case String:
		return marshalString(buf, string(val))
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalValue(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case Object:
		buf.WriteByte('{')
		for i, f := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalString(buf, f.Key); err != nil {
				return fmt.Errorf("object key %q: %w", f.Key, err)
			}
			buf.WriteByte(':')
			if err := marshalValue(buf, f.Val); err != nil {
				return fmt.Errorf("object[%q]: %w", f.Key, err)
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
}

// marshalString writes a JSON string without HTML escaping.
func marshalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder adds a trailing newline, strip it
	b := tmp.Bytes()
	buf.Write(b[:len(b)-1])
	return nil
}

// UnmarshalValue parses JSON bytes into a Value. Numbers without a
// fraction or exponent become Int; all others become Float. Object key
// order follows document order. JSON null becomes a nil Value.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the first value
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("unexpected trailing content in JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return nil, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return numberToValue(t)
	case json.Delim:
		switch t {
		case '[':
			arr := Array{}
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := Object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("object[%q]: %w", key, err)
				}
				obj = append(obj, Field{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token: %v", tok)
}

func numberToValue(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON number: %s", n)
	}
	return Float(f), nil
}

// FromGo converts a plain Go value (as produced by encoding/json or
// yaml.v3 into interface{} containers) to a Value. Map key order is not
// defined by Go maps, so keys are emitted in sorted order; parse with
// UnmarshalValue when document order matters.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		// yaml.v3 decodes integers above MaxInt64 as uint64
		if val > math.MaxInt64 {
			return nil, NewInvalidNumberError(-1, fmt.Sprintf("integer %d overflows int64", val))
		}
		return Int(val), nil
	case float64:
		// yaml.v3 and encoding/json both deliver integral numbers as
		// float64 when decoding into interface{}
		if val == float64(int64(val)) {
			return Int(int64(val)), nil
		}
		return Float(val), nil
	case json.Number:
		return numberToValue(val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := make(Object, 0, len(val))
		for _, k := range keys {
			conv, err := FromGo(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj = append(obj, Field{Key: k, Val: conv})
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
