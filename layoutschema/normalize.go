package layoutschema

import (
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
)

// Normalize converts a compiled node into the schema document shape the
// generation API accepts: every object closed, every array typed, no unknown
// leaves. A nil or unknown top-level node yields the fallback document.
func Normalize(node Node) *openapi3.Schema {
	if node == nil || node.Kind() == KindUnknown {
		slog.Warn("schema did not normalize, using fallback")
		return FallbackDocument()
	}
	return normalizeNode(node)
}

func normalizeNode(node Node) *openapi3.Schema {
	switch node.Kind() {
	case KindString:
		return stringSchema(node.AsString())
	case KindNumber:
		return numberSchema(node.AsNumber())
	case KindBool:
		return &openapi3.Schema{Type: openapi3.TypeBoolean}
	case KindEnum:
		return enumSchema(node.AsEnum())
	case KindArray:
		return arraySchema(node.AsArray())
	case KindObject:
		return objectSchema(node.AsObject())
	}
	// Unknown leaves inside an object admit any value, but the generation API
	// rejects open subschemas, so they tighten to an empty closed object.
	return closedObject(nil, nil)
}

func stringSchema(n *StringNode) *openapi3.Schema {
	s := &openapi3.Schema{Type: openapi3.TypeString}
	if n.MinLength != nil && *n.MinLength >= 0 {
		s.MinLength = uint64(*n.MinLength)
	}
	if n.MaxLength != nil && *n.MaxLength >= 0 {
		s.MaxLength = openapi3.Uint64Ptr(uint64(*n.MaxLength))
	}
	return s
}

func numberSchema(n *NumberNode) *openapi3.Schema {
	return &openapi3.Schema{
		Type: openapi3.TypeNumber,
		Min:  n.Minimum,
		Max:  n.Maximum,
	}
}

func enumSchema(n *EnumNode) *openapi3.Schema {
	s := &openapi3.Schema{Type: openapi3.TypeString}
	for _, v := range n.Values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

// arraySchema always emits an item type. An absent or unknown element
// expression means the generation API would see an untyped array, so items
// default to a bare string.
func arraySchema(n *ArrayNode) *openapi3.Schema {
	items := &openapi3.Schema{Type: openapi3.TypeString}
	if n.Items != nil && n.Items.Kind() != KindUnknown {
		items = normalizeNode(n.Items)
	}
	s := &openapi3.Schema{
		Type:  openapi3.TypeArray,
		Items: items.NewRef(),
	}
	if n.MinItems != nil && *n.MinItems >= 0 {
		s.MinItems = uint64(*n.MinItems)
	}
	if n.MaxItems != nil && *n.MaxItems >= 0 {
		s.MaxItems = openapi3.Uint64Ptr(uint64(*n.MaxItems))
	}
	return s
}

func objectSchema(n *ObjectNode) *openapi3.Schema {
	props := make(openapi3.Schemas, len(n.Fields))
	var required []string
	for _, f := range n.Fields {
		props[f.Name] = normalizeNode(f.Value).NewRef()
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return closedObject(props, required)
}

// closedObject builds an object schema with additionalProperties false, the
// shape the generation API requires of every object it sees.
func closedObject(props openapi3.Schemas, required []string) *openapi3.Schema {
	if props == nil {
		props = openapi3.Schemas{}
	}
	return &openapi3.Schema{
		Type:       openapi3.TypeObject,
		Properties: props,
		Required:   required,
		AdditionalProperties: openapi3.AdditionalProperties{
			Has: openapi3.BoolPtr(false),
		},
	}
}

// FallbackDocument returns the document substituted when a layout source
// yields nothing usable: a closed object asking for a short title and a body
// of prose, which any slide renderer can display.
func FallbackDocument() *openapi3.Schema {
	title := &openapi3.Schema{
		Type:      openapi3.TypeString,
		MinLength: 3,
		MaxLength: openapi3.Uint64Ptr(100),
	}
	content := &openapi3.Schema{
		Type:      openapi3.TypeString,
		MinLength: 10,
		MaxLength: openapi3.Uint64Ptr(500),
	}
	return closedObject(
		openapi3.Schemas{
			"title":   title.NewRef(),
			"content": content.NewRef(),
		},
		[]string{"title", "content"},
	)
}
