package layoutschema

import "regexp"

// Meta is the identifying information a layout source carries about itself,
// stored alongside the compiled schema. Fields the source does not declare
// are empty.
type Meta struct {
	ID          string
	Name        string
	Description string
}

// The generated components declare their identity either as standalone
// const assignments or as entries of a metadata object literal. Both forms
// hold plain string literals, so simple patterns are enough here; nothing
// in the compiler depends on these.
var (
	idConstPattern   = metaConstPattern("layoutId")
	nameConstPattern = metaConstPattern("layoutName")
	descConstPattern = metaConstPattern("layoutDescription")

	idEntryPattern   = metaEntryPattern("id")
	nameEntryPattern = metaEntryPattern("name")
	descEntryPattern = metaEntryPattern("description")
)

// ExtractMeta pulls the layout's id, name and description out of the source
// text. Const assignments win over object-literal entries because the const
// form is what the component generator emits; the entry form covers sources
// written by hand.
func ExtractMeta(source string) Meta {
	return Meta{
		ID:          firstMatch(source, idConstPattern, idEntryPattern),
		Name:        firstMatch(source, nameConstPattern, nameEntryPattern),
		Description: firstMatch(source, descConstPattern, descEntryPattern),
	}
}

func firstMatch(source string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(source); m != nil {
			return m[2]
		}
	}
	return ""
}

func metaConstPattern(ident string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?:export\s+)?(?:const|let|var)\s+` + ident + `\s*=\s*(['"` + "`" + `])([^'"` + "`" + `]*)(['"` + "`" + `])`)
}

func metaEntryPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?m)^\s*['"]?` + key + `['"]?\s*:\s*(['"` + "`" + `])([^'"` + "`" + `]*)(['"` + "`" + `])`)
}
