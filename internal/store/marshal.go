package store

import (
	"fmt"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// marshalLayer converts a layer to its (kind tag, JSON content) storage
// form. Encode is total, so the only failure mode is a malformed
// string that JSON cannot represent, which Go strings rule out.
func marshalLayer(l layer.Layer) (kind, content string, err error) {
	data, err := layer.MarshalValue(layer.Encode(l))
	if err != nil {
		return "", "", fmt.Errorf("marshal layer: %w", err)
	}
	return string(layer.KindOf(l)), string(data), nil
}

// unmarshalLayer parses the (kind tag, JSON content) storage form back
// into a typed layer via the schema-hinted decode path.
func unmarshalLayer(kind, content string) (layer.Layer, error) {
	v, err := layer.UnmarshalValue([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("unmarshal layer content: %w", err)
	}
	l, err := layer.DecodeKind(layer.Kind(kind), v)
	if err != nil {
		return nil, fmt.Errorf("unmarshal layer: %w", err)
	}
	return l, nil
}

// marshalDesc flattens a LayerDesc to its column values. The data
// refinement is stored in its string surface form so ParseDataType
// reads it back unchanged.
func marshalDesc(desc layer.LayerDesc) (layerType, base, data, linkTypes, target, dflt string, err error) {
	layerType = string(desc.Type)
	base = desc.Base

	if desc.Data != nil {
		switch desc.Data.Kind {
		case layer.DataEnum:
			arr := make(layer.Array, len(desc.Data.Enum))
			for i, v := range desc.Data.Enum {
				arr[i] = layer.String(v)
			}
			raw, merr := layer.MarshalValue(arr)
			if merr != nil {
				return "", "", "", "", "", "", fmt.Errorf("marshal enum: %w", merr)
			}
			data = string(raw)
		default:
			data = string(desc.Data.Kind)
		}
	}

	if len(desc.LinkTypes) > 0 {
		arr := make(layer.Array, len(desc.LinkTypes))
		for i, v := range desc.LinkTypes {
			arr[i] = layer.String(v)
		}
		raw, merr := layer.MarshalValue(arr)
		if merr != nil {
			return "", "", "", "", "", "", fmt.Errorf("marshal link types: %w", merr)
		}
		linkTypes = string(raw)
	}

	target = desc.Target

	if desc.Default != nil {
		raw, merr := layer.MarshalValue(desc.Default)
		if merr != nil {
			return "", "", "", "", "", "", fmt.Errorf("marshal default: %w", merr)
		}
		dflt = string(raw)
	}

	return layerType, base, data, linkTypes, target, dflt, nil
}

// unmarshalDesc rebuilds a LayerDesc from its column values.
func unmarshalDesc(layerType, base, data, linkTypes, target, dflt string) (layer.LayerDesc, error) {
	lt, err := layer.ParseLayerType(layerType)
	if err != nil {
		return layer.LayerDesc{}, err
	}
	desc := layer.LayerDesc{Type: lt, Base: base, Target: target}

	if data != "" {
		dt, err := layer.ParseDataType(data)
		if err != nil {
			return layer.LayerDesc{}, err
		}
		desc.Data = dt
	}

	if linkTypes != "" {
		v, err := layer.UnmarshalValue([]byte(linkTypes))
		if err != nil {
			return layer.LayerDesc{}, fmt.Errorf("unmarshal link types: %w", err)
		}
		arr, ok := v.(layer.Array)
		if !ok {
			return layer.LayerDesc{}, fmt.Errorf("link types column is not a JSON list: %s", linkTypes)
		}
		for _, elem := range arr {
			s, ok := elem.(layer.String)
			if !ok {
				return layer.LayerDesc{}, fmt.Errorf("link type is not a string: %v", elem)
			}
			desc.LinkTypes = append(desc.LinkTypes, string(s))
		}
	}

	if dflt != "" {
		v, err := layer.UnmarshalValue([]byte(dflt))
		if err != nil {
			return layer.LayerDesc{}, fmt.Errorf("unmarshal default: %w", err)
		}
		desc.Default = v
	}

	return desc, nil
}
