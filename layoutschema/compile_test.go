package layoutschema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilansari261/ai-slides-sub000/declscan"
)

func compileToJSON(t *testing.T, source string) string {
	t.Helper()
	res := CompileSource(source)
	bs, err := json.Marshal(res.Doc)
	require.NoError(t, err)
	return string(bs)
}

func TestCompileSimpleObject(t *testing.T) {
	src := `const Schema = z.object({ title: z.string(), count: z.number() });`
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"count": {"type": "number"}
		},
		"required": ["title", "count"],
		"additionalProperties": false
	}`, compileToJSON(t, src))
}

func TestCompileStripsDefaults(t *testing.T) {
	src := `const Schema = z.object({ title: z.string().min(3).default("Untitled") });`
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 3}
		},
		"required": ["title"],
		"additionalProperties": false
	}`, compileToJSON(t, src))
}

func TestCompileDefaultThenOptional(t *testing.T) {
	src := `const Schema = z.object({ title: z.string().min(3).default("Untitled").optional() });`
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 3}
		},
		"additionalProperties": false
	}`, compileToJSON(t, src))
}

func TestCompileOptionality(t *testing.T) {
	src := `const Schema = z.object({ title: z.string(), subtitle: z.string().optional() });`
	res := CompileSource(src)

	bs, err := json.Marshal(res.Doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"subtitle": {"type": "string"}
		},
		"required": ["title"],
		"additionalProperties": false
	}`, string(bs))
}

func TestCompileInlinesReferences(t *testing.T) {
	src := `
const ItemSchema = z.object({label: z.string()})
const Schema = z.object({items: z.array(ItemSchema)})
`
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {"label": {"type": "string"}},
					"required": ["label"],
					"additionalProperties": false
				}
			}
		},
		"required": ["items"],
		"additionalProperties": false
	}`, compileToJSON(t, src))
}

func TestCompileReferenceDeclaredAfterUse(t *testing.T) {
	src := `
const Schema = z.object({ items: z.array(ItemSchema) });
const ItemSchema = z.object({ label: z.string() });
`
	res := CompileSource(src)
	items := res.Doc.Properties["items"].Value.Items.Value
	assert.Equal(t, openapi3.TypeObject, items.Type)
	assert.Contains(t, items.Properties, "label")
}

func TestCompileSharedReference(t *testing.T) {
	src := `
const CellSchema = z.object({ text: z.string() });
const Schema = z.object({ header: CellSchema, footer: CellSchema });
`
	res := CompileSource(src)
	assert.False(t, res.Fallback)
	assert.Equal(t, openapi3.TypeObject, res.Doc.Properties["header"].Value.Type)
	assert.Equal(t, openapi3.TypeObject, res.Doc.Properties["footer"].Value.Type)
}

func TestCompileEnum(t *testing.T) {
	src := `const Schema = z.object({ kind: z.enum(["bar","pie","line"]) });`
	res := CompileSource(src)

	kind := res.Doc.Properties["kind"].Value
	assert.Equal(t, openapi3.TypeString, kind.Type)
	assert.Equal(t, []interface{}{"bar", "pie", "line"}, kind.Enum)
}

func TestCompileEnumSingleQuoted(t *testing.T) {
	src := `const Schema = z.object({ kind: z.enum(['bar', 'pie']) });`
	res := CompileSource(src)

	kind := res.Doc.Properties["kind"].Value
	assert.Equal(t, []interface{}{"bar", "pie"}, kind.Enum)
}

func TestCompileNumberBounds(t *testing.T) {
	src := `const Schema = z.object({ ratio: z.number().min(0.5).max(2.5) });`
	res := CompileSource(src)

	ratio := res.Doc.Properties["ratio"].Value
	assert.Equal(t, openapi3.TypeNumber, ratio.Type)
	require.NotNil(t, ratio.Min)
	require.NotNil(t, ratio.Max)
	assert.Equal(t, 0.5, *ratio.Min)
	assert.Equal(t, 2.5, *ratio.Max)
}

func TestCompileBoolean(t *testing.T) {
	src := `const Schema = z.object({ visible: z.boolean() });`
	res := CompileSource(src)

	assert.Equal(t, openapi3.TypeBoolean, res.Doc.Properties["visible"].Value.Type)
}

func TestCompileArrayBounds(t *testing.T) {
	src := `const Schema = z.object({ bullets: z.array(z.string().min(5)).min(1).max(6) });`
	res := CompileSource(src)

	bullets := res.Doc.Properties["bullets"].Value
	assert.Equal(t, openapi3.TypeArray, bullets.Type)
	assert.Equal(t, uint64(1), bullets.MinItems)
	require.NotNil(t, bullets.MaxItems)
	assert.Equal(t, uint64(6), *bullets.MaxItems)
	assert.Equal(t, uint64(5), bullets.Items.Value.MinLength)
}

func TestCompileChainAcrossNewlines(t *testing.T) {
	src := "const Schema = z.object({ title: z.string()\n  .min(3)\n  .max(80) });"
	res := CompileSource(src)

	title := res.Doc.Properties["title"].Value
	assert.Equal(t, uint64(3), title.MinLength)
	require.NotNil(t, title.MaxLength)
	assert.Equal(t, uint64(80), *title.MaxLength)
}

func TestCompileBoundWithMessageArgument(t *testing.T) {
	src := `const Schema = z.object({ title: z.string().min(3, { message: "too short" }) });`
	res := CompileSource(src)

	assert.Equal(t, uint64(3), res.Doc.Properties["title"].Value.MinLength)
}

func TestCompileQuotedFieldNames(t *testing.T) {
	src := `const Schema = z.object({ "data-label": z.string(), 'x': z.number() });`
	res := CompileSource(src)

	assert.Contains(t, res.Doc.Properties, "data-label")
	assert.Contains(t, res.Doc.Properties, "x")
}

func TestCompileNestedObjects(t *testing.T) {
	src := `
const Schema = z.object({
  header: z.object({
    title: z.string().min(3).max(100),
    tags: z.array(z.enum(["intro","body","outro"])),
  }),
  footer: z.string().optional(),
});
`
	res := CompileSource(src)
	require.False(t, res.Fallback)

	header := res.Doc.Properties["header"].Value
	assert.Equal(t, openapi3.TypeObject, header.Type)
	assert.Equal(t, []string{"title", "tags"}, header.Required)

	tags := header.Properties["tags"].Value
	assert.Equal(t, openapi3.TypeArray, tags.Type)
	assert.Equal(t, []interface{}{"intro", "body", "outro"}, tags.Items.Value.Enum)

	assert.Equal(t, []string{"header"}, res.Doc.Required)
}

func TestCompileUnknownFragmentDegrades(t *testing.T) {
	src := `const Schema = z.object({ blob: z.record(z.string()), title: z.string() });`
	res := CompileSource(src)
	require.False(t, res.Fallback)

	// The unrecognized member tightens to an empty closed object.
	blob := res.Doc.Properties["blob"].Value
	assert.Equal(t, openapi3.TypeObject, blob.Type)
	require.NotNil(t, blob.AdditionalProperties.Has)
	assert.False(t, *blob.AdditionalProperties.Has)
	assert.Empty(t, blob.Properties)
}

func TestCompileArrayOfUnknownBecomesStrings(t *testing.T) {
	src := `const Schema = z.object({ cells: z.array(z.union([z.string(), z.number()])) });`
	res := CompileSource(src)

	cells := res.Doc.Properties["cells"].Value
	assert.Equal(t, openapi3.TypeArray, cells.Type)
	require.NotNil(t, cells.Items)
	assert.Equal(t, openapi3.TypeString, cells.Items.Value.Type)
}

func TestCompileFallbackOnProse(t *testing.T) {
	res := CompileSource("This file has no declarations at all, just prose.")

	assert.True(t, res.Fallback)
	assert.Empty(t, res.Main)
	bs, err := json.Marshal(res.Doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 3, "maxLength": 100},
			"content": {"type": "string", "minLength": 10, "maxLength": 500}
		},
		"required": ["title", "content"],
		"additionalProperties": false
	}`, string(bs))
}

func TestCompileFallbackOnUnresolvedMain(t *testing.T) {
	src := `const Schema = z.union([z.string(), z.number()]);`
	res := CompileSource(src)

	assert.True(t, res.Fallback)
	assert.Equal(t, "Schema", res.Main)
}

func TestCompileMalformedDeclarationSkipped(t *testing.T) {
	src := `
const BrokenSchema = z.object({ title: z.string(
const Schema = z.object({ title: z.string() });
`
	res := CompileSource(src)

	assert.False(t, res.Fallback)
	assert.Equal(t, "Schema", res.Main)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, res.Doc.Properties, "title")
}

func TestCompileReferenceCycle(t *testing.T) {
	src := `
const NodeSchema = z.object({ label: z.string(), children: z.array(NodeSchema) });
const Schema = z.object({ root: NodeSchema });
`
	res := CompileSource(src)
	require.False(t, res.Fallback)

	root := res.Doc.Properties["root"].Value
	children := root.Properties["children"].Value
	assert.Equal(t, openapi3.TypeArray, children.Type)
	// The cyclic reference degrades, leaving the array with string items.
	assert.Equal(t, openapi3.TypeString, children.Items.Value.Type)
}

func TestCompileDepthCeiling(t *testing.T) {
	expr := strings.Repeat("z.array(", 80) + "z.string()" + strings.Repeat(")", 80)
	res := CompileSource("const Schema = " + expr + ";")

	assert.False(t, res.Fallback)
	assert.Equal(t, openapi3.TypeArray, res.Doc.Type)
}

func TestCompileDeterministic(t *testing.T) {
	src := `
const ItemSchema = z.object({ label: z.string(), weight: z.number().optional() });
const Schema = z.object({ title: z.string().min(3), items: z.array(ItemSchema).max(12) });
`
	a := CompileSource(src)
	b := CompileSource(src)

	bsA, err := json.Marshal(a.Doc)
	require.NoError(t, err)
	bsB, err := json.Marshal(b.Doc)
	require.NoError(t, err)
	assert.Equal(t, string(bsA), string(bsB))
}

func TestCompileEveryObjectClosedEveryArrayTyped(t *testing.T) {
	src := `
const CellSchema = z.object({ text: z.string(), emphasis: z.boolean().optional() });
const RowSchema = z.object({ cells: z.array(CellSchema).min(1) });
const slideSchema = z.object({
  title: z.string().min(3).max(120),
  rows: z.array(RowSchema),
  notes: z.array(z.unknownThing()),
});
`
	res := CompileSource(src)
	require.False(t, res.Fallback)
	assertStrict(t, res.Doc)
}

// assertStrict checks the output invariants at every depth: objects closed,
// arrays carrying concrete items.
func assertStrict(t *testing.T, s *openapi3.Schema) {
	t.Helper()
	switch s.Type {
	case openapi3.TypeObject:
		require.NotNil(t, s.AdditionalProperties.Has)
		assert.False(t, *s.AdditionalProperties.Has)
		for _, ref := range s.Properties {
			assertStrict(t, ref.Value)
		}
	case openapi3.TypeArray:
		require.NotNil(t, s.Items)
		require.NotNil(t, s.Items.Value)
		assert.NotEmpty(t, s.Items.Value.Type)
		assertStrict(t, s.Items.Value)
	}
}

func TestCompileCountsDeclarations(t *testing.T) {
	src := `
const HeaderSchema = z.string();
const BodySchema = z.string();
const Schema = z.object({ header: HeaderSchema, body: BodySchema });
`
	res := CompileSource(src)

	assert.Equal(t, 3, res.Decls)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, "Schema", res.Main)
}

func TestCompileForwardsOptions(t *testing.T) {
	src := `const DeckShape = z.object({ title: z.string() });`
	res := CompileSource(src, declscan.WithSuffix("Shape"), declscan.WithEntryNames("DeckShape"))

	assert.False(t, res.Fallback)
	assert.Equal(t, "DeckShape", res.Main)
	assert.Contains(t, res.Doc.Properties, "title")
}

func TestCompileContainerHintSelection(t *testing.T) {
	src := `
const TitleSchema = z.string().min(3);
const chartSlideSchema = z.object({ title: TitleSchema, series: z.array(z.number()) });
`
	res := CompileSource(src)

	assert.Equal(t, "chartSlideSchema", res.Main)
	assert.Contains(t, res.Doc.Properties, "series")
}
