package declscan

import (
	"log/slog"
	"regexp"
	"strings"
)

// containerHint marks the declaration that wraps a whole slide rather than
// one of its pieces.
const containerHint = "slide"

// SelectMain picks the entry-point declaration of a layout source. It tries,
// in order: a table entry with one of the configured entry names, a scan of
// the raw source for an entry-name assignment the table missed (export and
// let/var forms), the longest captured declaration whose name mentions the
// container hint, and finally the last captured declaration. It reports false
// only when the source yields no usable declaration at all.
func SelectMain(source string, t *Table, opts ...Option) (name, text string, ok bool) {
	cfg := newConfig(opts)

	for _, entry := range cfg.entryNames {
		if text, ok := t.Lookup(entry); ok {
			return entry, text, true
		}
	}

	if name, text, ok := scanEntryAssignment(source, cfg.entryNames); ok {
		slog.Debug("entry declaration recovered from raw source", "name", name)
		return name, text, true
	}

	var best string
	for _, n := range t.Names() {
		if !strings.Contains(strings.ToLower(n), containerHint) {
			continue
		}
		if best == "" || len(t.decls[n]) > len(t.decls[best]) {
			best = n
		}
	}
	if best != "" {
		return best, t.decls[best], true
	}

	if len(t.names) > 0 {
		last := t.names[len(t.names)-1]
		return last, t.decls[last], true
	}
	return "", "", false
}

// scanEntryAssignment looks for "const <entry> = z." directly in the raw
// source, tolerating export qualifiers and let/var declarations that the
// table's narrower pattern may have passed over, and extracts the span at the
// match.
func scanEntryAssignment(source string, entryNames []string) (string, string, bool) {
	if len(entryNames) == 0 {
		return "", "", false
	}
	quoted := make([]string, len(entryNames))
	for i, n := range entryNames {
		quoted[i] = regexp.QuoteMeta(n)
	}
	re := regexp.MustCompile(
		`(?:export\s+)?(?:const|let|var)\s+(` + strings.Join(quoted, "|") + `)\s*=\s*(z\s*\.)`)
	for _, m := range re.FindAllStringSubmatchIndex(source, -1) {
		span, ok := ExtractSpan(source, m[4])
		if !ok {
			continue
		}
		return source[m[2]:m[3]], span, true
	}
	return "", "", false
}
