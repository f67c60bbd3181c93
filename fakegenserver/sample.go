package main

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/valyala/fastjson"
)

const maxSampleDepth = 32

const fillerText = "Sample copy produced by the fake generation backend for local development."

// sampleValue synthesizes a JSON value conforming to schema. Objects get every
// declared property in sorted name order so repeated calls produce identical
// bytes.
func sampleValue(a *fastjson.Arena, schema *openapi3.Schema, depth int) *fastjson.Value {
	if schema == nil || depth > maxSampleDepth {
		return a.NewString("sample")
	}

	switch schema.Type {
	case openapi3.TypeObject:
		obj := a.NewObject()
		names := make([]string, 0, len(schema.Properties))
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ref := schema.Properties[name]
			if ref == nil {
				continue
			}
			obj.Set(name, sampleValue(a, ref.Value, depth+1))
		}
		return obj
	case openapi3.TypeArray:
		arr := a.NewArray()
		var item *openapi3.Schema
		if schema.Items != nil {
			item = schema.Items.Value
		}
		n := int(schema.MinItems)
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			arr.SetArrayItem(i, sampleValue(a, item, depth+1))
		}
		return arr
	case openapi3.TypeString:
		return a.NewString(sampleString(schema))
	case openapi3.TypeNumber, openapi3.TypeInteger:
		return a.NewNumberFloat64(sampleNumber(schema))
	case openapi3.TypeBoolean:
		return a.NewTrue()
	}
	return a.NewString("sample")
}

func sampleString(schema *openapi3.Schema) string {
	if len(schema.Enum) > 0 {
		if s, ok := schema.Enum[0].(string); ok {
			return s
		}
	}

	text := fillerText
	for uint64(len(text)) < schema.MinLength {
		text += " " + fillerText
	}
	if schema.MaxLength != nil && uint64(len(text)) > *schema.MaxLength {
		text = strings.TrimSpace(text[:*schema.MaxLength])
	}
	return text
}

func sampleNumber(schema *openapi3.Schema) float64 {
	if len(schema.Enum) > 0 {
		if f, ok := schema.Enum[0].(float64); ok {
			return f
		}
	}

	n := float64(42)
	if schema.Min != nil && n < *schema.Min {
		n = *schema.Min
	}
	if schema.Max != nil && n > *schema.Max {
		n = *schema.Max
	}
	return n
}
