package declscan

import (
	"log/slog"
	"regexp"
)

// Table holds every declaration recovered from one source text: identifier to
// expression text, with the order of first appearance retained.
type Table struct {
	names   []string
	decls   map[string]string
	skipped int
}

// BuildTable scans source for assignments of a builder call to an identifier
// carrying the schema suffix and captures each one's expression span.
// Declarations whose spans never balance are counted and skipped, and a
// redeclared identifier keeps its original position but takes the new text.
func BuildTable(source string, opts ...Option) *Table {
	cfg := newConfig(opts)
	t := &Table{decls: make(map[string]string)}
	re := declPattern(cfg.suffix)
	for _, m := range re.FindAllStringSubmatchIndex(source, -1) {
		name := source[m[2]:m[3]]
		span, ok := ExtractSpan(source, m[4])
		if !ok {
			slog.Debug("skipping unbalanced declaration", "name", name)
			t.skipped++
			continue
		}
		if _, seen := t.decls[name]; !seen {
			t.names = append(t.names, name)
		}
		t.decls[name] = span
	}
	return t
}

// Len returns the number of captured declarations.
func (t *Table) Len() int { return len(t.names) }

// Skipped returns how many candidate declarations were dropped because their
// spans never balanced.
func (t *Table) Skipped() int { return t.skipped }

// Names returns the captured identifiers in order of first appearance. The
// returned slice is the table's own; callers must not mutate it.
func (t *Table) Names() []string { return t.names }

// Lookup returns the expression text captured for name.
func (t *Table) Lookup(name string) (string, bool) {
	text, ok := t.decls[name]
	return text, ok
}

// declPattern matches "<identifier><suffix> = z.<method>(" with the
// identifier and the builder-call head as submatches. The head may be a
// dotted method path; classification of the method happens later, the table
// only needs to know where the expression starts.
func declPattern(suffix string) *regexp.Regexp {
	ident := `[A-Za-z_$][A-Za-z0-9_$]*`
	return regexp.MustCompile(
		`((?:` + ident + `)?` + regexp.QuoteMeta(suffix) + `)\s*=\s*` +
			`(z\s*\.\s*` + ident + `(?:\s*\.\s*` + ident + `)*\s*\()`)
}
