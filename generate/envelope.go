package generate

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/valyala/fastjson"
)

// Two top-level fields get special treatment at the generation boundary: the
// model is always offered a speaker note to fill in, and it is never asked to
// invent a layout id.
const (
	speakerNoteField = "speakerNote"
	idField          = "id"
)

// ResponseSchema builds the document sent as the generation call's response
// schema: the layout schema with an optional speakerNote string added and a
// top-level id property, if the layout declared one, removed. The input
// document is shared and never mutated; non-object documents pass through
// unchanged because there is nothing to add fields to.
func ResponseSchema(doc *openapi3.Schema) *openapi3.Schema {
	if doc == nil || doc.Type != openapi3.TypeObject {
		return doc
	}

	out := *doc
	out.Properties = make(openapi3.Schemas, len(doc.Properties)+1)
	for name, ref := range doc.Properties {
		if name == idField {
			continue
		}
		out.Properties[name] = ref
	}
	note := &openapi3.Schema{Type: openapi3.TypeString}
	out.Properties[speakerNoteField] = note.NewRef()

	out.Required = nil
	for _, name := range doc.Required {
		if name != idField {
			out.Required = append(out.Required, name)
		}
	}
	return &out
}

// SplitReply parses a generation response body, {"content": {...}}, and
// splits the speaker note back out of the content object.
func SplitReply(body []byte) (*Reply, error) {
	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse generation reply: %w", err)
	}
	content := v.Get("content")
	if content == nil {
		return nil, ErrMissingContent
	}

	reply := &Reply{}
	if note := content.Get(speakerNoteField); note != nil {
		if bs, err := note.StringBytes(); err == nil {
			reply.SpeakerNote = string(bs)
		}
		content.Del(speakerNoteField)
	}
	reply.Content = content.MarshalTo(nil)
	return reply, nil
}
