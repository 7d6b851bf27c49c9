package layer

import (
	"fmt"
)

// LayerType classifies the annotation structure of a layer.
type LayerType string

const (
	// TypeCharacters is the root text content layer.
	TypeCharacters LayerType = "characters"

	// TypeSpan annotates (start, end) ranges over a base layer.
	TypeSpan LayerType = "span"

	// TypeSeq attaches one annotation per element of the base layer.
	TypeSeq LayerType = "seq"

	// TypeDiv divides the base layer at single boundary indices.
	TypeDiv LayerType = "div"

	// TypeElement annotates individual elements of the base layer by index.
	TypeElement LayerType = "element"
)

// ParseLayerType validates a layer type string.
func ParseLayerType(s string) (LayerType, error) {
	switch LayerType(s) {
	case TypeCharacters, TypeSpan, TypeSeq, TypeDiv, TypeElement:
		return LayerType(s), nil
	default:
		return "", NewDescriptorError("layer_type", fmt.Sprintf("invalid layer type: %s", s))
	}
}

// DataKind refines the values attached to each annotation of a layer.
type DataKind string

const (
	// DataString attaches a free text value per annotation.
	DataString DataKind = "string"

	// DataLink makes each annotation reference an index into its base.
	DataLink DataKind = "link"

	// DataEnum constrains each annotation's value to a closed label set.
	DataEnum DataKind = "enum"
)

// DataType is the optional data refinement of a LayerDesc. For
// DataEnum the Enum field carries the ordered, duplicate-free label
// set; for the other kinds it is nil.
type DataType struct {
	Kind DataKind
	Enum []string
}

// ParseDataType parses the string surface form of a data type:
// "string", "link", or a JSON list literal such as ["a","b"] for an
// enum. A malformed list literal fails with a descriptor error rather
// than silently defaulting.
func ParseDataType(s string) (*DataType, error) {
	switch {
	case s == string(DataString):
		return &DataType{Kind: DataString}, nil
	case s == string(DataLink):
		return &DataType{Kind: DataLink}, nil
	case len(s) > 0 && s[0] == '[':
		values, err := parseEnumList(s)
		if err != nil {
			return nil, err
		}
		return &DataType{Kind: DataEnum, Enum: values}, nil
	default:
		return nil, NewDescriptorError("data", fmt.Sprintf("invalid data type: %s", s))
	}
}

// parseEnumList parses a JSON list literal into an enum label set,
// rejecting non-string elements and duplicate labels.
func parseEnumList(s string) ([]string, error) {
	v, err := UnmarshalValue([]byte(s))
	if err != nil {
		return nil, NewDescriptorError("data", fmt.Sprintf("invalid enum list: %v", err))
	}
	arr, ok := v.(Array)
	if !ok {
		return nil, NewDescriptorError("data", fmt.Sprintf("enum list is not an array: %s", s))
	}
	values := make([]string, 0, len(arr))
	seen := make(map[string]bool, len(arr))
	for i, elem := range arr {
		str, ok := elem.(String)
		if !ok {
			return nil, NewDescriptorError("data", fmt.Sprintf("enum value at index %d is not a string", i))
		}
		if seen[string(str)] {
			return nil, NewDescriptorError("data", fmt.Sprintf("duplicate enum value: %s", str))
		}
		seen[string(str)] = true
		values = append(values, string(str))
	}
	return values, nil
}

// LayerDesc is the static schema metadata for one named layer.
//
// Base names the layer this one indexes into; it is required for every
// non-characters layer and must form an acyclic dependency chain
// (enforced by the corpus, not here). The trailing optional fields are
// carried for compatibility with the full Teanga descriptor surface;
// they are stored and round-tripped but carry no semantics in this
// module.
type LayerDesc struct {
	Type LayerType
	Base string
	Data *DataType

	// LinkTypes, Target and Default are accepted and preserved from
	// full Teanga schemas; nothing in this module interprets them.
	LinkTypes []string
	Target    string
	Default   Value
}

// NewLayerDesc builds a LayerDesc from the string surface used by the
// boundary layer: a layer type name, an optional base layer name, and
// an optional data type string (see ParseDataType). Empty strings mean
// absent.
func NewLayerDesc(layerType, base, dataType string) (LayerDesc, error) {
	lt, err := ParseLayerType(layerType)
	if err != nil {
		return LayerDesc{}, err
	}
	desc := LayerDesc{Type: lt, Base: base}
	if dataType != "" {
		data, err := ParseDataType(dataType)
		if err != nil {
			return LayerDesc{}, err
		}
		desc.Data = data
	}
	return desc, nil
}

// EncodeDesc renders a LayerDesc as an untyped Object in the same form
// the boundary layer exposes: type, then base and data when present.
// Enum data renders as its label list.
func EncodeDesc(desc LayerDesc) Object {
	obj := Object{F("type", String(desc.Type))}
	if desc.Base != "" {
		obj = append(obj, F("base", String(desc.Base)))
	}
	if desc.Data != nil {
		obj = append(obj, F("data", encodeData(desc.Data)))
	}
	if len(desc.LinkTypes) > 0 {
		arr := make(Array, len(desc.LinkTypes))
		for i, v := range desc.LinkTypes {
			arr[i] = String(v)
		}
		obj = append(obj, F("link_types", arr))
	}
	if desc.Target != "" {
		obj = append(obj, F("target", String(desc.Target)))
	}
	if desc.Default != nil {
		obj = append(obj, F("default", desc.Default))
	}
	return obj
}

// DecodeDesc parses an untyped descriptor Object back into a
// LayerDesc. It is the inverse of EncodeDesc and accepts the same
// field surface, rejecting unknown types and malformed data
// refinements.
func DecodeDesc(obj Object) (LayerDesc, error) {
	var desc LayerDesc
	for _, field := range obj {
		switch field.Key {
		case "type":
			s, ok := field.Val.(String)
			if !ok {
				return LayerDesc{}, NewDescriptorError("type", "layer type is not a string")
			}
			lt, err := ParseLayerType(string(s))
			if err != nil {
				return LayerDesc{}, err
			}
			desc.Type = lt
		case "base":
			s, ok := field.Val.(String)
			if !ok {
				return LayerDesc{}, NewDescriptorError("base", "base is not a string")
			}
			desc.Base = string(s)
		case "data":
			data, err := decodeData(field.Val)
			if err != nil {
				return LayerDesc{}, err
			}
			desc.Data = data
		case "link_types":
			arr, ok := field.Val.(Array)
			if !ok {
				return LayerDesc{}, NewDescriptorError("link_types", "link_types is not a list")
			}
			names := make([]string, len(arr))
			for i, elem := range arr {
				s, ok := elem.(String)
				if !ok {
					return LayerDesc{}, NewDescriptorError("link_types", fmt.Sprintf("link type at index %d is not a string", i))
				}
				names[i] = string(s)
			}
			desc.LinkTypes = names
		case "target":
			s, ok := field.Val.(String)
			if !ok {
				return LayerDesc{}, NewDescriptorError("target", "target is not a string")
			}
			desc.Target = string(s)
		case "default":
			desc.Default = field.Val
		default:
			return LayerDesc{}, NewDescriptorError(field.Key, fmt.Sprintf("unknown descriptor field: %s", field.Key))
		}
	}
	if desc.Type == "" {
		return LayerDesc{}, NewDescriptorError("layer_type", "descriptor has no type")
	}
	return desc, nil
}

func decodeData(v Value) (*DataType, error) {
	switch val := v.(type) {
	case String:
		return ParseDataType(string(val))
	case Array:
		encoded, err := MarshalValue(val)
		if err != nil {
			return nil, NewDescriptorError("data", err.Error())
		}
		return ParseDataType(string(encoded))
	default:
		return nil, NewDescriptorError("data", "data refinement is neither a string nor a list")
	}
}

func encodeData(data *DataType) Value {
	switch data.Kind {
	case DataEnum:
		arr := make(Array, len(data.Enum))
		for i, v := range data.Enum {
			arr[i] = String(v)
		}
		return arr
	default:
		return String(data.Kind)
	}
}
