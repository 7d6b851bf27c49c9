package layer

// Encode converts a Layer back into its untyped structural form. It is
// total: every variant has a defined representation and no input can
// fail. For the shape-inference-reachable variants (Characters, L1, L2,
// L3, LS) the output round-trips through Decode value-for-value.
//
// The string-bearing variants encode each annotation as an array whose
// trailing element is the string value; Meta encodes as its literal
// Value, with nil standing for null.
func Encode(l Layer) Value {
	switch v := l.(type) {
	case Characters:
		return String(v)
	case L1:
		arr := make(Array, len(v))
		for i, n := range v {
			arr[i] = Int(n)
		}
		return arr
	case L2:
		arr := make(Array, len(v))
		for i, s := range v {
			arr[i] = Array{Int(s.Start), Int(s.End)}
		}
		return arr
	case L3:
		arr := make(Array, len(v))
		for i, t := range v {
			arr[i] = Array{Int(t.Start), Int(t.End), Int(t.Idx)}
		}
		return arr
	case LS:
		arr := make(Array, len(v))
		for i, s := range v {
			arr[i] = String(s)
		}
		return arr
	case L1S:
		arr := make(Array, len(v))
		for i, e := range v {
			arr[i] = Array{Int(e.Idx), String(e.Val)}
		}
		return arr
	case L2S:
		arr := make(Array, len(v))
		for i, e := range v {
			arr[i] = Array{Int(e.Start), Int(e.End), String(e.Val)}
		}
		return arr
	case L3S:
		arr := make(Array, len(v))
		for i, e := range v {
			arr[i] = Array{Int(e.Start), Int(e.End), Int(e.Idx), String(e.Val)}
		}
		return arr
	case Meta:
		return v.Val
	default:
		// Sealed interface - unreachable for values constructed
		// through this package
		return nil
	}
}
