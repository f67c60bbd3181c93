// Package layoutschema compiles layout component source text into the strict
// schema document a structured-output generation call requires.
//
// The pipeline is CompileSource: declscan recovers the declaration table and
// the entry-point expression, the expressions compile into a small node tree,
// and the tree normalizes into an openapi3 schema with every object closed.
// Compilation never fails; anything unrecognizable degrades to UnknownNode
// and an unusable document is replaced by the fallback.
package layoutschema

// NodeKind discriminates the compiled node variants.
type NodeKind int

const (
	KindString NodeKind = iota + 1
	KindNumber
	KindBool
	KindEnum
	KindArray
	KindObject
	KindUnknown
)

// Node is one compiled type expression. Concrete variants carry the payload
// for their kind and the As accessors panic when asked for the wrong one.
type Node interface {
	Kind() NodeKind
	AsString() *StringNode
	AsNumber() *NumberNode
	AsEnum() *EnumNode
	AsArray() *ArrayNode
	AsObject() *ObjectNode
}

// StringNode is a string with optional length bounds.
type StringNode struct {
	MinLength *int
	MaxLength *int
}

func (n *StringNode) Kind() NodeKind        { return KindString }
func (n *StringNode) AsString() *StringNode { return n }
func (n *StringNode) AsNumber() *NumberNode { panic("string is not a number") }
func (n *StringNode) AsEnum() *EnumNode     { panic("string is not an enum") }
func (n *StringNode) AsArray() *ArrayNode   { panic("string is not an array") }
func (n *StringNode) AsObject() *ObjectNode { panic("string is not an object") }

// NumberNode is a number with optional value bounds.
type NumberNode struct {
	Minimum *float64
	Maximum *float64
}

func (n *NumberNode) Kind() NodeKind        { return KindNumber }
func (n *NumberNode) AsString() *StringNode { panic("number is not a string") }
func (n *NumberNode) AsNumber() *NumberNode { return n }
func (n *NumberNode) AsEnum() *EnumNode     { panic("number is not an enum") }
func (n *NumberNode) AsArray() *ArrayNode   { panic("number is not an array") }
func (n *NumberNode) AsObject() *ObjectNode { panic("number is not an object") }

// BoolNode is a boolean.
type BoolNode struct{}

func (n *BoolNode) Kind() NodeKind        { return KindBool }
func (n *BoolNode) AsString() *StringNode { panic("bool is not a string") }
func (n *BoolNode) AsNumber() *NumberNode { panic("bool is not a number") }
func (n *BoolNode) AsEnum() *EnumNode     { panic("bool is not an enum") }
func (n *BoolNode) AsArray() *ArrayNode   { panic("bool is not an array") }
func (n *BoolNode) AsObject() *ObjectNode { panic("bool is not an object") }

// EnumNode is a string restricted to a fixed set of values, in declaration
// order.
type EnumNode struct {
	Values []string
}

func (n *EnumNode) Kind() NodeKind        { return KindEnum }
func (n *EnumNode) AsString() *StringNode { panic("enum is not a string") }
func (n *EnumNode) AsNumber() *NumberNode { panic("enum is not a number") }
func (n *EnumNode) AsEnum() *EnumNode     { return n }
func (n *EnumNode) AsArray() *ArrayNode   { panic("enum is not an array") }
func (n *EnumNode) AsObject() *ObjectNode { panic("enum is not an object") }

// ArrayNode is an array with optional element type and count bounds. Items is
// nil when the element expression was absent.
type ArrayNode struct {
	Items    Node
	MinItems *int
	MaxItems *int
}

func (n *ArrayNode) Kind() NodeKind        { return KindArray }
func (n *ArrayNode) AsString() *StringNode { panic("array is not a string") }
func (n *ArrayNode) AsNumber() *NumberNode { panic("array is not a number") }
func (n *ArrayNode) AsEnum() *EnumNode     { panic("array is not an enum") }
func (n *ArrayNode) AsArray() *ArrayNode   { return n }
func (n *ArrayNode) AsObject() *ObjectNode { panic("array is not an object") }

// ObjectNode is an object with named fields in declaration order. Required
// membership lives on the field, so a required name always has a matching
// property.
type ObjectNode struct {
	Fields []ObjectField
}

// ObjectField is one property of an ObjectNode.
type ObjectField struct {
	Name     string
	Value    Node
	Required bool
}

func (n *ObjectNode) Kind() NodeKind        { return KindObject }
func (n *ObjectNode) AsString() *StringNode { panic("object is not a string") }
func (n *ObjectNode) AsNumber() *NumberNode { panic("object is not a number") }
func (n *ObjectNode) AsEnum() *EnumNode     { panic("object is not an enum") }
func (n *ObjectNode) AsArray() *ArrayNode   { panic("object is not an array") }
func (n *ObjectNode) AsObject() *ObjectNode { return n }

// UnknownNode marks an expression the compiler could not interpret.
type UnknownNode struct{}

func (n *UnknownNode) Kind() NodeKind        { return KindUnknown }
func (n *UnknownNode) AsString() *StringNode { panic("unknown is not a string") }
func (n *UnknownNode) AsNumber() *NumberNode { panic("unknown is not a number") }
func (n *UnknownNode) AsEnum() *EnumNode     { panic("unknown is not an enum") }
func (n *UnknownNode) AsArray() *ArrayNode   { panic("unknown is not an array") }
func (n *UnknownNode) AsObject() *ObjectNode { panic("unknown is not an object") }
