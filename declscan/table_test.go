package declscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTableCapturesDeclarations(t *testing.T) {
	src := `
import { z } from "zod";

const TitleSchema = z.string().min(3);
const CardSchema = z.object({ title: TitleSchema, body: z.string() });
export const Schema = z.object({ cards: z.array(CardSchema) });
`
	tbl := BuildTable(src)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 0, tbl.Skipped())
	assert.Equal(t, []string{"TitleSchema", "CardSchema", "Schema"}, tbl.Names())

	text, ok := tbl.Lookup("TitleSchema")
	assert.True(t, ok)
	assert.Equal(t, "z.string().min(3)", text)

	text, ok = tbl.Lookup("Schema")
	assert.True(t, ok)
	assert.Equal(t, "z.object({ cards: z.array(CardSchema) })", text)
}

func TestBuildTableSkipsUnbalanced(t *testing.T) {
	src := `
const BrokenSchema = z.object({ title: z.string(
const GoodSchema = z.object({ title: z.string() });
`
	tbl := BuildTable(src)

	_, ok := tbl.Lookup("GoodSchema")
	assert.True(t, ok)
	assert.Equal(t, 1, tbl.Skipped())
	assert.Equal(t, []string{"GoodSchema"}, tbl.Names())
}

func TestBuildTableLastWriteWins(t *testing.T) {
	src := `
const CardSchema = z.string();
const OtherSchema = z.boolean();
const CardSchema = z.number();
`
	tbl := BuildTable(src)

	text, ok := tbl.Lookup("CardSchema")
	assert.True(t, ok)
	assert.Equal(t, "z.number()", text)
	assert.Equal(t, []string{"CardSchema", "OtherSchema"}, tbl.Names())
}

func TestBuildTableIgnoresOtherIdentifiers(t *testing.T) {
	src := `
const helper = z.string();
const config = { retries: 3 };
const ItemSchema = z.object({});
`
	tbl := BuildTable(src)

	assert.Equal(t, []string{"ItemSchema"}, tbl.Names())
}

func TestBuildTableDottedBuilderPath(t *testing.T) {
	src := `const CountSchema = z.coerce.number();`
	tbl := BuildTable(src)

	text, ok := tbl.Lookup("CountSchema")
	assert.True(t, ok)
	assert.Equal(t, "z.coerce.number()", text)
}

func TestBuildTableCustomSuffix(t *testing.T) {
	src := `
const CardShape = z.object({ title: z.string() });
const CardSchema = z.object({});
`
	tbl := BuildTable(src, WithSuffix("Shape"))

	assert.Equal(t, []string{"CardShape"}, tbl.Names())
}
