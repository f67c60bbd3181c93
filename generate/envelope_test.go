package generate

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilansari261/ai-slides-sub000/layoutschema"
)

func compileDoc(t *testing.T, source string) *openapi3.Schema {
	t.Helper()
	res := layoutschema.CompileSource(source)
	require.False(t, res.Fallback)
	return res.Doc
}

func TestResponseSchemaAddsOptionalSpeakerNote(t *testing.T) {
	doc := compileDoc(t, `const Schema = z.object({ title: z.string() });`)
	out := ResponseSchema(doc)

	require.Contains(t, out.Properties, "speakerNote")
	assert.Equal(t, openapi3.TypeString, out.Properties["speakerNote"].Value.Type)
	assert.NotContains(t, out.Required, "speakerNote")
	assert.Contains(t, out.Required, "title")
}

func TestResponseSchemaDropsTopLevelID(t *testing.T) {
	doc := compileDoc(t, `const Schema = z.object({ id: z.string(), title: z.string() });`)
	out := ResponseSchema(doc)

	assert.NotContains(t, out.Properties, "id")
	assert.NotContains(t, out.Required, "id")
	assert.Contains(t, out.Properties, "title")
}

func TestResponseSchemaDoesNotMutateInput(t *testing.T) {
	doc := compileDoc(t, `const Schema = z.object({ id: z.string(), title: z.string() });`)
	_ = ResponseSchema(doc)

	assert.Contains(t, doc.Properties, "id")
	assert.NotContains(t, doc.Properties, "speakerNote")
	assert.Contains(t, doc.Required, "id")
}

func TestResponseSchemaNonObjectPassesThrough(t *testing.T) {
	doc := &openapi3.Schema{Type: openapi3.TypeString}

	assert.Same(t, doc, ResponseSchema(doc))
	assert.Nil(t, ResponseSchema(nil))
}

func TestSplitReply(t *testing.T) {
	reply, err := SplitReply([]byte(`{"content": {"title": "Q3 results", "speakerNote": "pause here"}}`))
	require.NoError(t, err)

	assert.Equal(t, "pause here", reply.SpeakerNote)
	assert.JSONEq(t, `{"title": "Q3 results"}`, string(reply.Content))
}

func TestSplitReplyWithoutNote(t *testing.T) {
	reply, err := SplitReply([]byte(`{"content": {"title": "Q3 results"}}`))
	require.NoError(t, err)

	assert.Empty(t, reply.SpeakerNote)
	assert.JSONEq(t, `{"title": "Q3 results"}`, string(reply.Content))
}

func TestSplitReplyMissingContent(t *testing.T) {
	_, err := SplitReply([]byte(`{"status": "ok"}`))
	assert.ErrorIs(t, err, ErrMissingContent)
}

func TestSplitReplyMalformed(t *testing.T) {
	_, err := SplitReply([]byte(`{"content": `))
	assert.Error(t, err)
}
