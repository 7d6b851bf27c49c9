package layer

import (
	"fmt"
	"math"
)

// Decode infers a concrete Layer from the shape of an untyped Value.
//
// Dispatch is evaluated in a fixed order on the outermost value:
//
//	string            -> Characters
//	[]                -> empty L1
//	[number, ...]     -> L1 (every element numeric)
//	[[a,b], ...]      -> L2 (every element an array of arity 2)
//	[[a,b,c], ...]    -> L3 (every element an array of arity 3)
//	[string, ...]     -> LS (every element a string)
//
// For nested arrays the arity is committed from the first element and
// enforced uniformly on every later element. Anything else is rejected
// with a typed DecodeError; Decode never panics on malformed input.
//
// The L1S, L2S, L3S and Meta variants are producible by Encode but are
// deliberately not reachable here: they carry information an untyped
// value cannot disambiguate without a schema hint. Stores that persist
// those variants use DecodeKind with an explicit tag instead.
func Decode(v Value) (Layer, error) {
	switch val := v.(type) {
	case String:
		return Characters(val), nil
	case Array:
		return decodeArray(val)
	default:
		return nil, NewUnsupportedShapeError(-1, fmt.Sprintf("unsupported value type: %T", v))
	}
}

func decodeArray(arr Array) (Layer, error) {
	if len(arr) == 0 {
		return L1{}, nil
	}

	switch first := arr[0].(type) {
	case Int, Float:
		return decodeL1(arr)
	case String:
		return decodeLS(arr)
	case Array:
		switch len(first) {
		case 2:
			return decodeL2(arr)
		case 3:
			return decodeL3(arr)
		default:
			return nil, NewUnsupportedShapeError(0,
				fmt.Sprintf("inner array of length %d matches no layer shape", len(first)))
		}
	default:
		return nil, NewUnsupportedShapeError(0,
			fmt.Sprintf("unsupported array element type: %T", arr[0]))
	}
}

func decodeL1(arr Array) (L1, error) {
	out := make(L1, len(arr))
	for i, elem := range arr {
		if !isNumeric(elem) {
			return nil, NewShapeMismatchError(i,
				fmt.Sprintf("expected number, got %T", elem))
		}
		n, err := asIndex(elem, i)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeLS(arr Array) (LS, error) {
	out := make(LS, len(arr))
	for i, elem := range arr {
		str, ok := elem.(String)
		if !ok {
			return nil, NewShapeMismatchError(i,
				fmt.Sprintf("expected string, got %T", elem))
		}
		out[i] = string(str)
	}
	return out, nil
}

func decodeL2(arr Array) (L2, error) {
	out := make(L2, len(arr))
	for i, elem := range arr {
		inner, err := innerArray(elem, i, 2)
		if err != nil {
			return nil, err
		}
		start, err := asIndex(inner[0], i)
		if err != nil {
			return nil, err
		}
		end, err := asIndex(inner[1], i)
		if err != nil {
			return nil, err
		}
		out[i] = Span{Start: start, End: end}
	}
	return out, nil
}

func decodeL3(arr Array) (L3, error) {
	out := make(L3, len(arr))
	for i, elem := range arr {
		inner, err := innerArray(elem, i, 3)
		if err != nil {
			return nil, err
		}
		start, err := asIndex(inner[0], i)
		if err != nil {
			return nil, err
		}
		end, err := asIndex(inner[1], i)
		if err != nil {
			return nil, err
		}
		idx, err := asIndex(inner[2], i)
		if err != nil {
			return nil, err
		}
		out[i] = Triple{Start: start, End: end, Idx: idx}
	}
	return out, nil
}

// innerArray checks that elem is an array of exactly the committed arity.
func innerArray(elem Value, index, arity int) (Array, error) {
	inner, ok := elem.(Array)
	if !ok {
		return nil, NewShapeMismatchError(index,
			fmt.Sprintf("expected array of %d indices, got %T", arity, elem))
	}
	if len(inner) != arity {
		return nil, NewArityMismatchError(index,
			fmt.Sprintf("expected array of %d indices, got %d", arity, len(inner)))
	}
	return inner, nil
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}

// asIndex converts a Value in an index position to uint32. Floats are
// rejected outright rather than coerced; negative and out-of-range
// integers fail closed.
func asIndex(v Value, index int) (uint32, error) {
	switch n := v.(type) {
	case Int:
		if n < 0 {
			return 0, NewInvalidNumberError(index, fmt.Sprintf("negative index: %d", int64(n)))
		}
		if int64(n) > math.MaxUint32 {
			return 0, NewInvalidNumberError(index, fmt.Sprintf("index out of uint32 range: %d", int64(n)))
		}
		return uint32(n), nil
	case Float:
		return 0, NewInvalidNumberError(index, fmt.Sprintf("fractional index: %v", float64(n)))
	default:
		return 0, NewInvalidNumberError(index, fmt.Sprintf("expected number, got %T", v))
	}
}

// DecodeKind decodes a Value into the specific Layer variant named by
// kind. Unlike Decode, this path is schema-hinted: it can produce every
// variant, including L1S, L2S, L3S and Meta. It is used by stores that
// persist layers alongside an explicit variant tag.
func DecodeKind(kind Kind, v Value) (Layer, error) {
	switch kind {
	case KindCharacters:
		str, ok := v.(String)
		if !ok {
			return nil, NewUnsupportedShapeError(-1, fmt.Sprintf("characters layer requires a string, got %T", v))
		}
		return Characters(str), nil
	case KindL1:
		arr, err := requireArray(v)
		if err != nil {
			return nil, err
		}
		if len(arr) == 0 {
			return L1{}, nil
		}
		return decodeL1(arr)
	case KindL2:
		arr, err := requireArray(v)
		if err != nil {
			return nil, err
		}
		return decodeL2(arr)
	case KindL3:
		arr, err := requireArray(v)
		if err != nil {
			return nil, err
		}
		return decodeL3(arr)
	case KindLS:
		arr, err := requireArray(v)
		if err != nil {
			return nil, err
		}
		return decodeLS(arr)
	case KindL1S:
		return decodeL1S(v)
	case KindL2S:
		return decodeL2S(v)
	case KindL3S:
		return decodeL3S(v)
	case KindMeta:
		return Meta{Val: v}, nil
	default:
		return nil, NewUnsupportedShapeError(-1, fmt.Sprintf("unknown layer kind: %s", kind))
	}
}

func requireArray(v Value) (Array, error) {
	arr, ok := v.(Array)
	if !ok {
		return nil, NewUnsupportedShapeError(-1, fmt.Sprintf("expected array, got %T", v))
	}
	return arr, nil
}

func decodeL1S(v Value) (L1S, error) {
	arr, err := requireArray(v)
	if err != nil {
		return nil, err
	}
	out := make(L1S, len(arr))
	for i, elem := range arr {
		inner, err := taggedInner(elem, i, 2)
		if err != nil {
			return nil, err
		}
		idx, err := asIndex(inner[0], i)
		if err != nil {
			return nil, err
		}
		val, err := trailingString(inner[1], i)
		if err != nil {
			return nil, err
		}
		out[i] = IdxVal{Idx: idx, Val: val}
	}
	return out, nil
}

func decodeL2S(v Value) (L2S, error) {
	arr, err := requireArray(v)
	if err != nil {
		return nil, err
	}
	out := make(L2S, len(arr))
	for i, elem := range arr {
		inner, err := taggedInner(elem, i, 3)
		if err != nil {
			return nil, err
		}
		start, err := asIndex(inner[0], i)
		if err != nil {
			return nil, err
		}
		end, err := asIndex(inner[1], i)
		if err != nil {
			return nil, err
		}
		val, err := trailingString(inner[2], i)
		if err != nil {
			return nil, err
		}
		out[i] = SpanVal{Start: start, End: end, Val: val}
	}
	return out, nil
}

func decodeL3S(v Value) (L3S, error) {
	arr, err := requireArray(v)
	if err != nil {
		return nil, err
	}
	out := make(L3S, len(arr))
	for i, elem := range arr {
		inner, err := taggedInner(elem, i, 4)
		if err != nil {
			return nil, err
		}
		start, err := asIndex(inner[0], i)
		if err != nil {
			return nil, err
		}
		end, err := asIndex(inner[1], i)
		if err != nil {
			return nil, err
		}
		idx, err := asIndex(inner[2], i)
		if err != nil {
			return nil, err
		}
		val, err := trailingString(inner[3], i)
		if err != nil {
			return nil, err
		}
		out[i] = TripleVal{Start: start, End: end, Idx: idx, Val: val}
	}
	return out, nil
}

func taggedInner(elem Value, index, arity int) (Array, error) {
	inner, ok := elem.(Array)
	if !ok {
		return nil, NewShapeMismatchError(index,
			fmt.Sprintf("expected array of length %d, got %T", arity, elem))
	}
	if len(inner) != arity {
		return nil, NewArityMismatchError(index,
			fmt.Sprintf("expected array of length %d, got %d", arity, len(inner)))
	}
	return inner, nil
}

func trailingString(v Value, index int) (string, error) {
	str, ok := v.(String)
	if !ok {
		return "", NewShapeMismatchError(index,
			fmt.Sprintf("expected trailing string value, got %T", v))
	}
	return string(str), nil
}
